package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bankcore/config"
	"bankcore/middleware"
	"bankcore/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter собирает роутер с теми же маршрутами, что и main
func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	cfg, err := config.NewConfig()
	require.NoError(t, err)

	bank := services.NewBankService(cfg, services.NewEmailService(cfg), nil)

	authController := NewAuthController(bank, cfg)
	bankController := NewBankController(bank)
	adminController := NewAdminController(bank)

	router := mux.NewRouter()
	router.HandleFunc("/api/auth/signUp", authController.SignUp).Methods("POST")
	router.HandleFunc("/api/auth/signIn", authController.SignIn).Methods("POST")

	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(middleware.AuthMiddleware([]byte(authController.GetJWTKey())))

	protected.HandleFunc("/bank/accounts", bankController.CreateAccount).Methods("POST")
	protected.HandleFunc("/bank/accounts", bankController.GetAccounts).Methods("GET")
	protected.HandleFunc("/bank/accounts/{number}", bankController.GetAccount).Methods("GET")
	protected.HandleFunc("/bank/accounts/{number}/deposit", bankController.Deposit).Methods("POST")
	protected.HandleFunc("/bank/accounts/{number}/withdraw", bankController.Withdraw).Methods("POST")
	protected.HandleFunc("/bank/accounts/{number}/transfer", bankController.Transfer).Methods("POST")
	protected.HandleFunc("/bank/accounts/{number}/statement", bankController.Statement).Methods("GET")
	protected.HandleFunc("/bank/accounts/{number}/close", bankController.CloseAccount).Methods("POST")
	protected.HandleFunc("/bank/customers/me", bankController.Me).Methods("GET")
	protected.HandleFunc("/bank/customers/me/upgrade", bankController.UpgradeTier).Methods("POST")
	protected.HandleFunc("/bank/admin/report", adminController.Report).Methods("GET")

	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func signUpTestCustomer(t *testing.T, router *mux.Router, email string) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/auth/signUp", "", map[string]interface{}{
		"firstName": "Ivan",
		"lastName":  "Petrov",
		"email":     email,
		"password":  "Secret123!",
		"age":       30,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var response AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotEmpty(t, response.Token.Token)
	return response.Token.Token
}

func TestSignUpAndSignIn(t *testing.T) {
	router := newTestRouter(t)

	signUpTestCustomer(t, router, "ivan@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/auth/signIn", "", map[string]string{
		"email":    "ivan@example.com",
		"password": "Secret123!",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response SignInResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Token)
}

func TestSignInWithWrongPassword(t *testing.T) {
	router := newTestRouter(t)
	signUpTestCustomer(t, router, "ivan@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/auth/signIn", "", map[string]string{
		"email":    "ivan@example.com",
		"password": "WrongPass1!",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignUpRejectsWeakPassword(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/signUp", "", map[string]interface{}{
		"firstName": "Ivan",
		"lastName":  "Petrov",
		"email":     "weak@example.com",
		"password":  "password",
		"age":       30,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignUpRejectsUnderage(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/signUp", "", map[string]interface{}{
		"firstName": "Ivan",
		"lastName":  "Petrov",
		"email":     "young@example.com",
		"password":  "Secret123!",
		"age":       16,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/bank/accounts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAccountLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	token := signUpTestCustomer(t, router, "ivan@example.com")

	// Открываем сберегательный счет с начальным взносом
	rec := doJSON(t, router, http.MethodPost, "/api/bank/accounts", token, map[string]interface{}{
		"kind":            "SAVINGS",
		"initial_deposit": 1000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var account services.AccountDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))
	assert.Equal(t, 1000.0, account.Balance)

	// Пополняем счет
	rec = doJSON(t, router, http.MethodPost, "/api/bank/accounts/"+account.Number+"/deposit", token, map[string]interface{}{
		"amount": 250,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated services.AccountDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, 1250.0, updated.Balance)

	// Запрашиваем выписку
	rec = doJSON(t, router, http.MethodGet, "/api/bank/accounts/"+account.Number+"/statement", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var statement services.StatementDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &statement))
	assert.Equal(t, 1250.0, statement.Balance)
	require.Len(t, statement.Transactions, 2)
	assert.Equal(t, "DEPOSIT", statement.Transactions[0].Type)

	// Закрываем счет
	rec = doJSON(t, router, http.MethodPost, "/api/bank/accounts/"+account.Number+"/close", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Операции по закрытому счету отклоняются
	rec = doJSON(t, router, http.MethodPost, "/api/bank/accounts/"+account.Number+"/deposit", token, map[string]interface{}{
		"amount": 100,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAccountOwnershipIsEnforced(t *testing.T) {
	router := newTestRouter(t)
	ownerToken := signUpTestCustomer(t, router, "owner@example.com")
	strangerToken := signUpTestCustomer(t, router, "stranger@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/bank/accounts", ownerToken, map[string]interface{}{
		"kind":            "CHECKING",
		"initial_deposit": 500,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var account services.AccountDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))

	// Чужой клиент не видит счет и не может его пополнить
	rec = doJSON(t, router, http.MethodGet, "/api/bank/accounts/"+account.Number, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/bank/accounts/"+account.Number+"/deposit", strangerToken, map[string]interface{}{
		"amount": 100,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWithdrawOverLimitReturnsConflict(t *testing.T) {
	router := newTestRouter(t)
	token := signUpTestCustomer(t, router, "ivan@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/bank/accounts", token, map[string]interface{}{
		"kind":            "CHECKING",
		"initial_deposit": 100,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var account services.AccountDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &account))

	rec = doJSON(t, router, http.MethodPost, "/api/bank/accounts/"+account.Number+"/withdraw", token, map[string]interface{}{
		"amount": 1000,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestMeAndTierUpgrade(t *testing.T) {
	router := newTestRouter(t)
	token := signUpTestCustomer(t, router, "ivan@example.com")

	rec := doJSON(t, router, http.MethodGet, "/api/bank/customers/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/bank/customers/me/upgrade", token, map[string]string{
		"tier": "PREMIUM",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var customer services.CustomerDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customer))
	assert.Equal(t, "PREMIUM", customer.Tier)

	// Понижение категории отклоняется
	rec = doJSON(t, router, http.MethodPost, "/api/bank/customers/me/upgrade", token, map[string]string{
		"tier": "REGULAR",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestBankReportOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	token := signUpTestCustomer(t, router, "ivan@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/bank/accounts", token, map[string]interface{}{
		"kind":            "SAVINGS",
		"initial_deposit": 1000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/bank/admin/report", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report services.ReportDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 1, report.TotalCustomers)
	assert.Equal(t, 1, report.SavingsAccounts)
	assert.Equal(t, 1000.0, report.TotalDeposits)
}
