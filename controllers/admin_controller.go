package controllers

import (
	"net/http"

	"bankcore/services"
	"bankcore/utils"
)

// AdminController обрабатывает служебные операции банка:
// ежемесячную обработку, сводный отчет и ключевую ставку ЦБ
type AdminController struct {
	bankService *services.BankService
}

// NewAdminController создает новый экземпляр AdminController
func NewAdminController(bank *services.BankService) *AdminController {
	return &AdminController{
		bankService: bank,
	}
}

// ProcessInterest запускает начисление процентов по всем счетам
func (c *AdminController) ProcessInterest(w http.ResponseWriter, r *http.Request) {
	applied := c.bankService.ProcessMonthlyInterest()
	writeJSON(w, http.StatusOK, map[string]int{"accounts_credited": applied})
}

// ProcessFees запускает списание ежемесячной платы по всем счетам
func (c *AdminController) ProcessFees(w http.ResponseWriter, r *http.Request) {
	charged := c.bankService.ProcessMonthlyFees()
	writeJSON(w, http.StatusOK, map[string]int{"accounts_charged": charged})
}

// Report возвращает сводный отчет банка
func (c *AdminController) Report(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.bankService.GenerateBankReport())
}

// KeyRate возвращает текущую ключевую ставку ЦБ
func (c *AdminController) KeyRate(w http.ResponseWriter, r *http.Request) {
	rate, err := services.GetCentralBankRate()
	if err != nil {
		utils.LogError("Ошибка получения ключевой ставки: %v", err)
		http.Error(w, "сервис ставок недоступен", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"key_rate": rate})
}
