package services

import (
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"bankcore/config"
	"bankcore/models"
	"bankcore/utils"

	"github.com/go-playground/validator/v10"
)

// Archiver описывает необязательный архив состояния банка.
// Реестр в памяти остается источником истины: архив пишется вдогонку
// и никогда не читается на пути выполнения операции.
type Archiver interface {
	SaveCustomer(customer *models.Customer) error
	SaveAccount(account *models.Account) error
	SaveTransaction(transaction *models.Transaction) error
}

// TransactionRequest представляет данные для операции по счету
type TransactionRequest struct {
	AccountNumber string  `json:"account_number" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
}

// TransferRequest представляет данные для перевода средств
type TransferRequest struct {
	SourceNumber      string  `json:"source_number" validate:"required"`
	DestinationNumber string  `json:"destination_number" validate:"required"`
	Amount            float64 `json:"amount" validate:"required,gt=0"`
}

// CreateAccountDTO представляет данные для открытия счета
type CreateAccountDTO struct {
	CustomerID     uint    `json:"-" validate:"required"`
	Kind           string  `json:"kind" validate:"required,oneof=SAVINGS CHECKING BUSINESS"`
	InitialDeposit float64 `json:"initial_deposit" validate:"gte=0"`
	Overdraft      bool    `json:"overdraft"`
	BusinessName   string  `json:"business_name" validate:"omitempty,min=2,max=100"`
	TaxID          string  `json:"tax_id" validate:"omitempty,max=20"`
}

// AccountDTO представляет счет в ответах API
type AccountDTO struct {
	Number              string      `json:"number"`
	Kind                string      `json:"kind"`
	Owner               CustomerDTO `json:"owner"`
	Balance             float64     `json:"balance"`
	Active              bool        `json:"active"`
	OverdraftProtection bool        `json:"overdraft_protection"`
	BusinessName        string      `json:"business_name,omitempty"`
	OpenedAt            string      `json:"opened_at"`
	UpdatedAt           string      `json:"updated_at"`
}

// TransactionDTO представляет транзакцию в ответах API
type TransactionDTO struct {
	ID           int64   `json:"id"`
	Type         string  `json:"type"`
	Amount       float64 `json:"amount"`
	BalanceAfter float64 `json:"balance_after"`
	Description  string  `json:"description"`
	CreatedAt    string  `json:"created_at"`
}

// StatementDTO представляет выписку по счету:
// текущий баланс (числом и прописью) и последние транзакции,
// отсортированные от новых к старым.
type StatementDTO struct {
	AccountNumber  string           `json:"account_number"`
	AccountKind    string           `json:"account_kind"`
	Owner          string           `json:"owner"`
	Balance        float64          `json:"balance"`
	BalanceInWords string           `json:"balance_in_words"`
	Transactions   []TransactionDTO `json:"transactions"`
	Lines          []string         `json:"lines"`
}

// ReportDTO представляет сводный отчет банка
type ReportDTO struct {
	TotalCustomers   int     `json:"total_customers"`
	TotalAccounts    int     `json:"total_accounts"`
	TotalDeposits    float64 `json:"total_deposits"`
	SavingsAccounts  int     `json:"savings_accounts"`
	CheckingAccounts int     `json:"checking_accounts"`
	BusinessAccounts int     `json:"business_accounts"`
}

// BankService представляет реестр банка и все операции над ним.
// Реестр создается явно один раз при старте процесса и передается
// по ссылке всем, кому он нужен — никакого скрытого синглтона.
// Один мьютекс сериализует все изменения состояния: межсчетовый
// перевод выполняется целиком в одной критической секции.
type BankService struct {
	mu        sync.Mutex
	cfg       *config.Config
	validator *validator.Validate
	email     *EmailService
	archive   Archiver

	customers map[uint]*models.Customer
	accounts  map[string]*models.Account
	// Номера счетов в порядке регистрации: ежемесячная обработка
	// обходит счета именно в этом порядке.
	order []string

	nextCustomerID    uint
	nextAccountNumber int64
	nextTransactionID int64
}

// NewBankService создает новый экземпляр BankService.
// Архив может быть nil — тогда банк работает только в памяти.
func NewBankService(cfg *config.Config, email *EmailService, archive Archiver) *BankService {
	return &BankService{
		cfg:       cfg,
		validator: validator.New(),
		email:     email,
		archive:   archive,
		customers: make(map[uint]*models.Customer),
		accounts:  make(map[string]*models.Account),

		// Счетчики стартуют с учебных значений исходной модели
		nextCustomerID:    1000,
		nextAccountNumber: 100000,
		nextTransactionID: 1000,
	}
}

// validateStruct валидирует DTO и переводит ошибки валидации
// в человекочитаемые сообщения
func (s *BankService) validateStruct(dto interface{}) error {
	err := s.validator.Struct(dto)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var errorMessages []string
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			errorMessages = append(errorMessages, "поле "+e.Field()+" обязательно")
		case "gt":
			errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть больше "+e.Param())
		case "gte":
			errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть больше или равно "+e.Param())
		case "min":
			errorMessages = append(errorMessages, "поле "+e.Field()+" должно содержать минимум "+e.Param()+" символов")
		case "max":
			errorMessages = append(errorMessages, "поле "+e.Field()+" должно содержать максимум "+e.Param()+" символов")
		case "oneof":
			errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть одним из: "+e.Param())
		case "email":
			errorMessages = append(errorMessages, "поле "+e.Field()+" должно быть корректным email")
		default:
			errorMessages = append(errorMessages, "поле "+e.Field()+" не прошло проверку "+e.Tag())
		}
	}
	return &ValidationError{Message: strings.Join(errorMessages, "; ")}
}

// ValidationError представляет отказ валидации входных данных
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// newTransaction создает запись транзакции со следующим порядковым номером.
// Вызывается только под мьютексом и только после успешной валидации.
func (s *BankService) newTransaction(a *models.Account, kind models.TransactionType, amount float64, description string) models.Transaction {
	s.nextTransactionID++
	txn := models.Transaction{
		ID:            s.nextTransactionID,
		AccountNumber: a.Number,
		Type:          kind,
		Amount:        amount,
		BalanceAfter:  a.Balance,
		Description:   description,
		CreatedAt:     time.Now(),
	}
	a.Transactions = append(a.Transactions, txn)
	return txn
}

// depositLocked зачисляет средства и записывает транзакцию.
// Вызывается только под мьютексом.
func (s *BankService) depositLocked(a *models.Account, amount float64, kind models.TransactionType, description string) models.Transaction {
	a.Balance += amount
	a.UpdatedAt = time.Now()
	return s.newTransaction(a, kind, amount, description)
}

// withdrawLocked списывает средства по правилам вида счета.
// При отказе валидации состояние счета не меняется.
// Вызывается только под мьютексом.
func (s *BankService) withdrawLocked(a *models.Account, tier models.CustomerTier, amount float64, kind models.TransactionType, description string) ([]models.Transaction, error) {
	if !a.Active {
		return nil, models.ErrAccountInactive
	}
	if amount <= 0 {
		return nil, models.ErrAmountNotPositive
	}

	rules := rulesByKind[a.Kind]
	fee := rules.withdrawalFee(s.cfg.Bank, a, tier, amount)
	if err := rules.validateWithdrawal(s.cfg.Bank, a, amount, fee); err != nil {
		return nil, err
	}

	a.Balance -= amount + fee
	a.UpdatedAt = time.Now()

	txns := []models.Transaction{s.newTransaction(a, kind, amount, description)}
	if fee > 0 {
		txns = append(txns, s.newTransaction(a, models.TransactionTypeFee, fee, "Withdrawal fee"))
	}

	if a.Kind == models.AccountKindSavings {
		a.WithdrawalsThisMonth++
	}

	return txns, nil
}

// archiveAfter отправляет снимки счетов и новые транзакции в архив.
// Вызывается после освобождения мьютекса; ошибки архива не влияют
// на результат операции и только логируются.
func (s *BankService) archiveAfter(accounts []models.Account, txns []models.Transaction) {
	if s.archive == nil {
		return
	}
	for i := range accounts {
		if err := s.archive.SaveAccount(&accounts[i]); err != nil {
			utils.LogError("Ошибка архивации счета %s: %v", accounts[i].Number, err)
		}
	}
	for i := range txns {
		if err := s.archive.SaveTransaction(&txns[i]); err != nil {
			utils.LogError("Ошибка архивации транзакции %d: %v", txns[i].ID, err)
		}
	}
}

// notify отправляет уведомление о транзакции, если почта настроена
func (s *BankService) notify(email, accountNumber string, amount float64, operation string) {
	if s.email == nil || email == "" {
		return
	}
	if err := s.email.SendTransactionNotification(email, accountNumber, amount, operation); err != nil {
		log.Printf("Ошибка отправки уведомления: %v", err)
	}
}

// CreateAccount открывает счет указанного вида и регистрирует его в реестре.
// Начальный взнос, если он задан, записывается как обычное пополнение.
func (s *BankService) CreateAccount(dto CreateAccountDTO) (*AccountDTO, error) {
	start := time.Now()
	result, err := s.createAccount(dto)
	utils.LogOperation("create_account", start, err)
	if err == nil {
		utils.GetMetrics().RecordAccountCreated(result.Kind)
	}
	return result, err
}

func (s *BankService) createAccount(dto CreateAccountDTO) (*AccountDTO, error) {
	if err := s.validateStruct(dto); err != nil {
		return nil, err
	}

	s.mu.Lock()

	customer, ok := s.customers[dto.CustomerID]
	if !ok {
		s.mu.Unlock()
		return nil, models.ErrCustomerNotFound
	}

	s.nextAccountNumber++
	account := &models.Account{
		Number:   strconv.FormatInt(s.nextAccountNumber, 10),
		OwnerID:  customer.ID,
		Kind:     models.AccountKind(dto.Kind),
		Active:   true,
		OpenedAt: time.Now(),
	}

	// Поля, зависящие от вида счета
	switch account.Kind {
	case models.AccountKindSavings:
		account.InterestRate = s.cfg.Bank.SavingsRate
		account.MinBalance = s.cfg.Bank.SavingsMinBalance
	case models.AccountKindChecking:
		account.OverdraftProtection = dto.Overdraft
	case models.AccountKindBusiness:
		// У бизнес-счета овердрафт включен всегда
		account.OverdraftProtection = true
		account.InterestRate = s.cfg.Bank.BusinessRate
		account.BusinessName = dto.BusinessName
		account.TaxID = dto.TaxID
		if account.BusinessName == "" {
			account.BusinessName = "Business"
		}
		if account.TaxID == "" {
			account.TaxID = "000-00-0000"
		}
	}

	var txns []models.Transaction
	if dto.InitialDeposit > 0 {
		txns = append(txns, s.depositLocked(account, dto.InitialDeposit, models.TransactionTypeDeposit, "Deposit - "+account.Kind.DisplayName()))
	}

	s.accounts[account.Number] = account
	s.order = append(s.order, account.Number)
	customer.AccountNumbers = append(customer.AccountNumbers, account.Number)

	accCopy := *account
	custCopy := *customer
	result := s.toAccountDTOLocked(account, customer)
	s.mu.Unlock()

	if s.archive != nil {
		if err := s.archive.SaveCustomer(&custCopy); err != nil {
			utils.LogError("Ошибка архивации клиента %d: %v", custCopy.ID, err)
		}
	}
	s.archiveAfter([]models.Account{accCopy}, txns)

	return result, nil
}

// Deposit пополняет банковский счет
func (s *BankService) Deposit(request TransactionRequest) (*AccountDTO, error) {
	start := time.Now()
	result, err := s.deposit(request)
	utils.LogOperation("deposit", start, err)
	utils.GetMetrics().RecordOperation("deposit", err)
	return result, err
}

func (s *BankService) deposit(request TransactionRequest) (*AccountDTO, error) {
	if err := s.validateStruct(request); err != nil {
		return nil, err
	}

	s.mu.Lock()

	account, ok := s.accounts[request.AccountNumber]
	if !ok {
		s.mu.Unlock()
		return nil, models.ErrAccountNotFound
	}
	if !account.Active {
		s.mu.Unlock()
		return nil, models.ErrAccountInactive
	}

	txn := s.depositLocked(account, request.Amount, models.TransactionTypeDeposit, "Deposit - "+account.Kind.DisplayName())

	owner := s.customers[account.OwnerID]
	ownerEmail := ""
	if owner != nil {
		ownerEmail = owner.Email
	}
	accCopy := *account
	result := s.toAccountDTOLocked(account, owner)
	s.mu.Unlock()

	s.archiveAfter([]models.Account{accCopy}, []models.Transaction{txn})
	s.notify(ownerEmail, accCopy.Number, request.Amount, "Пополнение")

	return result, nil
}

// Withdraw снимает средства с банковского счета.
// Проверка допустимости и расчет комиссии зависят от вида счета;
// при отказе баланс и история не меняются.
func (s *BankService) Withdraw(request TransactionRequest) (*AccountDTO, error) {
	start := time.Now()
	result, err := s.withdraw(request)
	utils.LogOperation("withdraw", start, err)
	utils.GetMetrics().RecordOperation("withdraw", err)
	return result, err
}

func (s *BankService) withdraw(request TransactionRequest) (*AccountDTO, error) {
	if err := s.validateStruct(request); err != nil {
		return nil, err
	}

	s.mu.Lock()

	account, ok := s.accounts[request.AccountNumber]
	if !ok {
		s.mu.Unlock()
		return nil, models.ErrAccountNotFound
	}

	owner := s.customers[account.OwnerID]
	tier := models.CustomerTierRegular
	ownerEmail := ""
	if owner != nil {
		tier = owner.Tier
		ownerEmail = owner.Email
	}

	txns, err := s.withdrawLocked(account, tier, request.Amount, models.TransactionTypeWithdrawal, "Withdrawal - "+account.Kind.DisplayName())
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	accCopy := *account
	result := s.toAccountDTOLocked(account, owner)
	s.mu.Unlock()

	s.archiveAfter([]models.Account{accCopy}, txns)
	s.notify(ownerEmail, accCopy.Number, request.Amount, "Снятие")

	return result, nil
}

// Transfer переводит средства между счетами.
// Перевод выполняется целиком в одной критической секции: либо
// записываются обе ноги (TRANSFER_OUT у источника, TRANSFER_IN у
// получателя), либо ни одна — частичного эффекта не бывает.
func (s *BankService) Transfer(request TransferRequest) error {
	start := time.Now()
	err := s.transfer(request)
	utils.LogOperation("transfer", start, err)
	utils.GetMetrics().RecordOperation("transfer", err)
	return err
}

func (s *BankService) transfer(request TransferRequest) error {
	if err := s.validateStruct(request); err != nil {
		return err
	}
	if request.SourceNumber == request.DestinationNumber {
		return models.ErrSameAccount
	}

	s.mu.Lock()

	source, ok := s.accounts[request.SourceNumber]
	if !ok {
		s.mu.Unlock()
		return models.ErrAccountNotFound
	}
	destination, ok := s.accounts[request.DestinationNumber]
	if !ok {
		s.mu.Unlock()
		return models.ErrAccountNotFound
	}

	if !source.Transferable() {
		s.mu.Unlock()
		return models.ErrNotTransferable
	}
	if request.Amount > s.cfg.Bank.TransferLimit {
		s.mu.Unlock()
		return models.ErrTransferLimit
	}
	if !destination.Active {
		s.mu.Unlock()
		return models.ErrAccountInactive
	}

	owner := s.customers[source.OwnerID]
	tier := models.CustomerTierRegular
	ownerEmail := ""
	if owner != nil {
		tier = owner.Tier
		ownerEmail = owner.Email
	}

	// Исходящая нога уже включает все проверки вида счета; входящая
	// нога после них отказать не может, поэтому перевод атомарен.
	txns, err := s.withdrawLocked(source, tier, request.Amount, models.TransactionTypeTransferOut, "Transfer to account "+destination.Number)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	txns = append(txns, s.depositLocked(destination, request.Amount, models.TransactionTypeTransferIn, "Transfer from account "+source.Number))

	srcCopy := *source
	dstCopy := *destination
	s.mu.Unlock()

	s.archiveAfter([]models.Account{srcCopy, dstCopy}, txns)
	s.notify(ownerEmail, srcCopy.Number, request.Amount, "Перевод")

	return nil
}

// applyInterestLocked начисляет месячные проценты по правилам вида счета.
// Нулевая сумма означает, что счету в этом цикле ничего не положено.
// Начисление сознательно не защищено от повторного вызова: каждый вызов
// считает проценты от текущего баланса.
func (s *BankService) applyInterestLocked(a *models.Account) (models.Transaction, bool) {
	amount := rulesByKind[a.Kind].interestAmount(s.cfg.Bank, a)
	if amount <= 0 {
		return models.Transaction{}, false
	}

	description := "Monthly interest (" + strconv.FormatFloat(a.InterestRate*100, 'f', 2, 64) + "% APR)"
	if a.Kind == models.AccountKindBusiness {
		description = "Business account interest (" + strconv.FormatFloat(a.InterestRate*100, 'f', 2, 64) + "% APR)"
	}

	txn := s.depositLocked(a, amount, models.TransactionTypeInterest, description)
	now := time.Now()
	a.LastInterestAt = &now
	return txn, true
}

// ApplyInterest начисляет проценты на один счет
func (s *BankService) ApplyInterest(accountNumber string) (float64, error) {
	start := time.Now()
	amount, err := s.applyInterest(accountNumber)
	utils.LogOperation("interest", start, err)
	utils.GetMetrics().RecordOperation("interest", err)
	return amount, err
}

func (s *BankService) applyInterest(accountNumber string) (float64, error) {
	s.mu.Lock()

	account, ok := s.accounts[accountNumber]
	if !ok {
		s.mu.Unlock()
		return 0, models.ErrAccountNotFound
	}
	if !account.Active {
		s.mu.Unlock()
		return 0, models.ErrAccountInactive
	}

	txn, applied := s.applyInterestLocked(account)
	accCopy := *account
	s.mu.Unlock()

	if !applied {
		return 0, nil
	}
	s.archiveAfter([]models.Account{accCopy}, []models.Transaction{txn})
	return txn.Amount, nil
}

// chargeMonthlyFeeLocked списывает плату за обслуживание бизнес-счета.
// При нехватке средств плата пропускается, а не уводит счет в минус.
func (s *BankService) chargeMonthlyFeeLocked(a *models.Account, tier models.CustomerTier) (models.Transaction, bool) {
	fee := s.cfg.Bank.BusinessMonthlyFee * tier.FeeMultiplier()
	if a.Balance < fee {
		utils.LogInfo("Недостаточно средств для ежемесячной платы по счету %s", a.Number)
		return models.Transaction{}, false
	}

	a.Balance -= fee
	a.UpdatedAt = time.Now()
	txn := s.newTransaction(a, models.TransactionTypeFee, fee, "Monthly business account fee")
	now := time.Now()
	a.LastFeeAt = &now
	return txn, true
}

// ChargeMonthlyFee списывает ежемесячную плату с одного бизнес-счета
func (s *BankService) ChargeMonthlyFee(accountNumber string) error {
	s.mu.Lock()

	account, ok := s.accounts[accountNumber]
	if !ok {
		s.mu.Unlock()
		return models.ErrAccountNotFound
	}
	if account.Kind != models.AccountKindBusiness {
		s.mu.Unlock()
		return models.ErrNotBusiness
	}
	if !account.Active {
		s.mu.Unlock()
		return models.ErrAccountInactive
	}

	tier := models.CustomerTierRegular
	if owner := s.customers[account.OwnerID]; owner != nil {
		tier = owner.Tier
	}

	txn, charged := s.chargeMonthlyFeeLocked(account, tier)
	accCopy := *account
	s.mu.Unlock()

	if charged {
		s.archiveAfter([]models.Account{accCopy}, []models.Transaction{txn})
	}
	return nil
}

// ProcessMonthlyInterest начисляет проценты всем процентным счетам
// в порядке регистрации. Счета независимы: пропуск одного счета
// не останавливает обработку остальных. Возвращает число счетов,
// которым проценты были реально начислены.
func (s *BankService) ProcessMonthlyInterest() int {
	start := time.Now()

	s.mu.Lock()

	applied := 0
	var accCopies []models.Account
	var txns []models.Transaction
	for _, number := range s.order {
		account := s.accounts[number]
		if !account.Active || !account.InterestBearing() {
			continue
		}
		txn, ok := s.applyInterestLocked(account)
		if !ok {
			continue
		}
		applied++
		accCopies = append(accCopies, *account)
		txns = append(txns, txn)
	}
	s.mu.Unlock()

	s.archiveAfter(accCopies, txns)
	utils.LogOperation("monthly_interest", start, nil)
	utils.GetMetrics().RecordOperation("interest", nil)
	return applied
}

// ProcessMonthlyFees списывает ежемесячную плату со всех бизнес-счетов
// в порядке регистрации и закрывает месячный цикл: счетчики бесплатных
// снятий сберегательных счетов обнуляются. Возвращает число счетов,
// с которых плата была списана.
func (s *BankService) ProcessMonthlyFees() int {
	start := time.Now()

	s.mu.Lock()

	charged := 0
	var accCopies []models.Account
	var txns []models.Transaction
	for _, number := range s.order {
		account := s.accounts[number]
		if !account.Active {
			continue
		}

		switch account.Kind {
		case models.AccountKindBusiness:
			tier := models.CustomerTierRegular
			if owner := s.customers[account.OwnerID]; owner != nil {
				tier = owner.Tier
			}
			txn, ok := s.chargeMonthlyFeeLocked(account, tier)
			if !ok {
				continue
			}
			charged++
			accCopies = append(accCopies, *account)
			txns = append(txns, txn)
		case models.AccountKindSavings:
			// Новый месяц — новый лимит бесплатных снятий
			account.WithdrawalsThisMonth = 0
		}
	}
	s.mu.Unlock()

	s.archiveAfter(accCopies, txns)
	utils.LogOperation("monthly_fees", start, nil)
	utils.GetMetrics().RecordOperation("fees", nil)
	return charged
}

// CloseAccount переводит счет в закрытое состояние.
// Состояние терминальное: обратного перехода нет, операции по
// закрытому счету отклоняются.
func (s *BankService) CloseAccount(accountNumber string) error {
	s.mu.Lock()

	account, ok := s.accounts[accountNumber]
	if !ok {
		s.mu.Unlock()
		return models.ErrAccountNotFound
	}
	if !account.Active {
		s.mu.Unlock()
		return models.ErrAccountInactive
	}

	account.Active = false
	account.UpdatedAt = time.Now()
	accCopy := *account
	s.mu.Unlock()

	s.archiveAfter([]models.Account{accCopy}, nil)
	return nil
}

// GetAccount возвращает счет по номеру
func (s *BankService) GetAccount(accountNumber string) (*AccountDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountNumber]
	if !ok {
		return nil, models.ErrAccountNotFound
	}
	return s.toAccountDTOLocked(account, s.customers[account.OwnerID]), nil
}

// AccountOwner возвращает идентификатор владельца счета.
// Используется контроллерами для проверки прав доступа.
func (s *BankService) AccountOwner(accountNumber string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountNumber]
	if !ok {
		return 0, models.ErrAccountNotFound
	}
	return account.OwnerID, nil
}

// GenerateStatement формирует выписку: баланс и последние limit
// транзакций от новых к старым. Операция только читает состояние.
func (s *BankService) GenerateStatement(accountNumber string, limit int) (*StatementDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountNumber]
	if !ok {
		return nil, models.ErrAccountNotFound
	}

	if limit <= 0 {
		limit = s.cfg.Bank.StatementLimit
	}

	ownerName := ""
	if owner := s.customers[account.OwnerID]; owner != nil {
		ownerName = owner.FullName()
	}

	statement := &StatementDTO{
		AccountNumber:  account.Number,
		AccountKind:    account.Kind.DisplayName(),
		Owner:          ownerName,
		Balance:        account.Balance,
		BalanceInWords: utils.AmountInWords(account.Balance),
	}

	// История хранится от старых к новым, выписка идет в обратном порядке
	for i := len(account.Transactions) - 1; i >= 0 && len(statement.Transactions) < limit; i-- {
		txn := account.Transactions[i]
		statement.Transactions = append(statement.Transactions, TransactionDTO{
			ID:           txn.ID,
			Type:         string(txn.Type),
			Amount:       txn.Amount,
			BalanceAfter: txn.BalanceAfter,
			Description:  txn.Description,
			CreatedAt:    txn.CreatedAt.Format(time.RFC3339),
		})
		statement.Lines = append(statement.Lines, txn.String())
	}

	return statement, nil
}

// GenerateBankReport возвращает сводный отчет:
// количество клиентов и счетов и суммарные остатки по видам счетов
func (s *BankService) GenerateBankReport() *ReportDTO {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := &ReportDTO{
		TotalCustomers: len(s.customers),
		TotalAccounts:  len(s.accounts),
	}

	for _, account := range s.accounts {
		report.TotalDeposits += account.Balance
		switch account.Kind {
		case models.AccountKindSavings:
			report.SavingsAccounts++
		case models.AccountKindChecking:
			report.CheckingAccounts++
		case models.AccountKindBusiness:
			report.BusinessAccounts++
		}
	}

	return report
}

// toAccountDTOLocked конвертирует счет в DTO.
// Вызывается только под мьютексом.
func (s *BankService) toAccountDTOLocked(account *models.Account, owner *models.Customer) *AccountDTO {
	dto := &AccountDTO{
		Number:              account.Number,
		Kind:                string(account.Kind),
		Balance:             account.Balance,
		Active:              account.Active,
		OverdraftProtection: account.OverdraftProtection,
		BusinessName:        account.BusinessName,
		OpenedAt:            account.OpenedAt.Format(time.RFC3339),
		UpdatedAt:           account.UpdatedAt.Format(time.RFC3339),
	}
	if owner != nil {
		dto.Owner = toCustomerDTO(owner)
	}
	return dto
}
