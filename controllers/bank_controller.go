package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bankcore/models"
	"bankcore/services"

	"github.com/gorilla/mux"
)

// BankController обрабатывает запросы, связанные с банковскими операциями
type BankController struct {
	bankService *services.BankService
}

// NewBankController создает новый экземпляр BankController
func NewBankController(bank *services.BankService) *BankController {
	return &BankController{
		bankService: bank,
	}
}

// writeError сопоставляет доменную ошибку с HTTP-статусом
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, models.ErrAccountNotFound), errors.Is(err, models.ErrCustomerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrInsufficientFunds),
		errors.Is(err, models.ErrMinBalance),
		errors.Is(err, models.ErrAccountInactive),
		errors.Is(err, models.ErrTierDowngrade),
		errors.Is(err, models.ErrEmailTaken):
		status = http.StatusConflict
	}
	http.Error(w, err.Error(), status)
}

// writeJSON отправляет ответ в формате JSON
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// customerFromContext получает ID клиента из контекста (установлен middleware)
func customerFromContext(w http.ResponseWriter, r *http.Request) (uint, bool) {
	customerID, ok := r.Context().Value("customer_id").(uint)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return 0, false
	}
	return customerID, true
}

// checkOwnership проверяет, что счет принадлежит клиенту
func (c *BankController) checkOwnership(w http.ResponseWriter, accountNumber string, customerID uint) bool {
	ownerID, err := c.bankService.AccountOwner(accountNumber)
	if err != nil {
		writeError(w, err)
		return false
	}
	if ownerID != customerID {
		http.Error(w, "нет доступа к данному счету", http.StatusForbidden)
		return false
	}
	return true
}

// CreateAccount обрабатывает запрос на открытие банковского счета
func (c *BankController) CreateAccount(w http.ResponseWriter, r *http.Request) {
	customerID, ok := customerFromContext(w, r)
	if !ok {
		return
	}

	// Создаем DTO для запроса
	var dto services.CreateAccountDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Счет всегда открывается на аутентифицированного клиента
	dto.CustomerID = customerID

	account, err := c.bankService.CreateAccount(dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, account)
}

// GetAccounts возвращает все счета клиента
func (c *BankController) GetAccounts(w http.ResponseWriter, r *http.Request) {
	customerID, ok := customerFromContext(w, r)
	if !ok {
		return
	}

	accounts, err := c.bankService.CustomerAccounts(customerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, accounts)
}

// GetAccount возвращает один счет клиента
func (c *BankController) GetAccount(w http.ResponseWriter, r *http.Request) {
	customerID, ok := customerFromContext(w, r)
	if !ok {
		return
	}

	number := mux.Vars(r)["number"]
	if !c.checkOwnership(w, number, customerID) {
		return
	}

	account, err := c.bankService.GetAccount(number)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// Deposit обрабатывает запрос на пополнение банковского счета
func (c *BankController) Deposit(w http.ResponseWriter, r *http.Request) {
	customerID, ok := customerFromContext(w, r)
	if !ok {
		return
	}

	var dto services.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	dto.AccountNumber = mux.Vars(r)["number"]

	if !c.checkOwnership(w, dto.AccountNumber, customerID) {
		return
	}

	account, err := c.bankService.Deposit(dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// Withdraw обрабатывает запрос на снятие средств
func (c *BankController) Withdraw(w http.ResponseWriter, r *http.Request) {
	customerID, ok := customerFromContext(w, r)
	if !ok {
		return
	}

	var dto services.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	dto.AccountNumber = mux.Vars(r)["number"]

	if !c.checkOwnership(w, dto.AccountNumber, customerID) {
		return
	}

	account, err := c.bankService.Withdraw(dto)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// Transfer обрабатывает запрос на перевод средств между счетами
func (c *BankController) Transfer(w http.ResponseWriter, r *http.Request) {
	customerID, ok := customerFromContext(w, r)
	if !ok {
		return
	}

	var dto services.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	dto.SourceNumber = mux.Vars(r)["number"]

	// Переводить можно только со своего счета
	if !c.checkOwnership(w, dto.SourceNumber, customerID) {
		return
	}

	if err := c.bankService.Transfer(dto); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

// Statement возвращает выписку по счету
func (c *BankController) Statement(w http.ResponseWriter, r *http.Request) {
	customerID, ok := customerFromContext(w, r)
	if !ok {
		return
	}

	number := mux.Vars(r)["number"]
	if !c.checkOwnership(w, number, customerID) {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "некорректное значение limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	statement, err := c.bankService.GenerateStatement(number, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statement)
}

// CloseAccount обрабатывает запрос на закрытие счета
func (c *BankController) CloseAccount(w http.ResponseWriter, r *http.Request) {
	customerID, ok := customerFromContext(w, r)
	if !ok {
		return
	}

	number := mux.Vars(r)["number"]
	if !c.checkOwnership(w, number, customerID) {
		return
	}

	if err := c.bankService.CloseAccount(number); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

// Me возвращает профиль аутентифицированного клиента
// вместе с суммарным остатком по всем его счетам
func (c *BankController) Me(w http.ResponseWriter, r *http.Request) {
	customerID, ok := customerFromContext(w, r)
	if !ok {
		return
	}

	customer, err := c.bankService.GetCustomer(customerID)
	if err != nil {
		writeError(w, err)
		return
	}

	total, err := c.bankService.TotalBalance(customerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"customer":      customer,
		"total_balance": total,
	})
}

// UpgradeTier обрабатывает запрос на повышение категории клиента
func (c *BankController) UpgradeTier(w http.ResponseWriter, r *http.Request) {
	customerID, ok := customerFromContext(w, r)
	if !ok {
		return
	}

	var req struct {
		Tier string `json:"tier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	customer, err := c.bankService.UpgradeTier(customerID, models.CustomerTier(req.Tier))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, customer)
}
