package services

import (
	"time"

	"bankcore/models"
	"bankcore/utils"

	"golang.org/x/crypto/bcrypt"
)

// CreateCustomerDTO представляет данные для регистрации клиента
type CreateCustomerDTO struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string `json:"last_name" validate:"required,min=2,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,min=5,max=20"`
	Password  string `json:"password" validate:"required,min=8"`
	Age       int    `json:"age" validate:"required,gt=0"`
}

// CustomerDTO представляет клиента в ответах API
type CustomerDTO struct {
	ID             uint     `json:"id"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone,omitempty"`
	Age            int      `json:"age"`
	Tier           string   `json:"tier"`
	TierName       string   `json:"tier_name"`
	AccountNumbers []string `json:"account_numbers"`
}

func toCustomerDTO(c *models.Customer) CustomerDTO {
	numbers := make([]string, len(c.AccountNumbers))
	copy(numbers, c.AccountNumbers)
	return CustomerDTO{
		ID:             c.ID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		Phone:          c.Phone,
		Age:            c.Age,
		Tier:           string(c.Tier),
		TierName:       c.Tier.Description(),
		AccountNumbers: numbers,
	}
}

// CreateCustomer регистрирует нового клиента банка.
// Клиент младше 18 лет не регистрируется, email должен быть уникален,
// пароль хранится только в виде bcrypt-хэша.
func (s *BankService) CreateCustomer(dto CreateCustomerDTO) (*CustomerDTO, error) {
	start := time.Now()
	result, err := s.createCustomer(dto)
	utils.LogOperation("create_customer", start, err)
	if err == nil {
		utils.GetMetrics().RecordCustomerCreated()
		if s.email != nil {
			if mailErr := s.email.SendWelcomeNotification(result.Email, result.FirstName); mailErr != nil {
				utils.LogError("Ошибка отправки приветственного письма: %v", mailErr)
			}
		}
	}
	return result, err
}

func (s *BankService) createCustomer(dto CreateCustomerDTO) (*CustomerDTO, error) {
	if err := s.validateStruct(dto); err != nil {
		return nil, err
	}
	if dto.Age < 18 {
		return nil, &models.UnderageError{Age: dto.Age}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()

	for _, existing := range s.customers {
		if existing.Email == dto.Email {
			s.mu.Unlock()
			return nil, models.ErrEmailTaken
		}
	}

	s.nextCustomerID++
	customer := &models.Customer{
		ID:        s.nextCustomerID,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Password:  string(hashedPassword),
		Age:       dto.Age,
		Tier:      models.CustomerTierRegular,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.customers[customer.ID] = customer

	custCopy := *customer
	result := toCustomerDTO(customer)
	s.mu.Unlock()

	if s.archive != nil {
		if err := s.archive.SaveCustomer(&custCopy); err != nil {
			utils.LogError("Ошибка архивации клиента %d: %v", custCopy.ID, err)
		}
	}

	return &result, nil
}

// FindCustomerByEmail возвращает копию клиента вместе с хэшем пароля.
// Используется только при аутентификации.
func (s *BankService) FindCustomerByEmail(email string) (*models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, customer := range s.customers {
		if customer.Email == email {
			c := *customer
			return &c, nil
		}
	}
	return nil, models.ErrCustomerNotFound
}

// GetCustomer возвращает клиента по идентификатору
func (s *BankService) GetCustomer(id uint) (*CustomerDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[id]
	if !ok {
		return nil, models.ErrCustomerNotFound
	}
	result := toCustomerDTO(customer)
	return &result, nil
}

// UpgradeTier повышает категорию клиента.
// Категория меняется только вверх: REGULAR -> PREMIUM -> VIP.
func (s *BankService) UpgradeTier(id uint, tier models.CustomerTier) (*CustomerDTO, error) {
	if tier.Rank() < 0 {
		return nil, &ValidationError{Message: "неизвестная категория клиента: " + string(tier)}
	}

	s.mu.Lock()

	customer, ok := s.customers[id]
	if !ok {
		s.mu.Unlock()
		return nil, models.ErrCustomerNotFound
	}
	if tier.Rank() <= customer.Tier.Rank() {
		s.mu.Unlock()
		return nil, models.ErrTierDowngrade
	}

	customer.Tier = tier
	customer.UpdatedAt = time.Now()

	custCopy := *customer
	result := toCustomerDTO(customer)
	s.mu.Unlock()

	if s.archive != nil {
		if err := s.archive.SaveCustomer(&custCopy); err != nil {
			utils.LogError("Ошибка архивации клиента %d: %v", custCopy.ID, err)
		}
	}

	return &result, nil
}

// TotalBalance возвращает суммарный остаток по всем счетам клиента.
// Сумма каждый раз пересчитывается по реестру, а не кэшируется.
func (s *BankService) TotalBalance(id uint) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[id]
	if !ok {
		return 0, models.ErrCustomerNotFound
	}

	total := 0.0
	for _, number := range customer.AccountNumbers {
		if account, ok := s.accounts[number]; ok {
			total += account.Balance
		}
	}
	return total, nil
}

// CustomerAccounts возвращает все счета клиента в порядке открытия
func (s *BankService) CustomerAccounts(id uint) ([]AccountDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[id]
	if !ok {
		return nil, models.ErrCustomerNotFound
	}

	result := make([]AccountDTO, 0, len(customer.AccountNumbers))
	for _, number := range customer.AccountNumbers {
		if account, ok := s.accounts[number]; ok {
			result = append(result, *s.toAccountDTOLocked(account, customer))
		}
	}
	return result, nil
}
