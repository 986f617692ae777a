package services

import (
	"log"
	"time"

	"bankcore/config"
)

// MonthlySchedulerService предоставляет автоматический запуск
// ежемесячной обработки: начисления процентов и списания платы
type MonthlySchedulerService struct {
	bank   *BankService
	period time.Duration
}

// NewMonthlySchedulerService создает новый экземпляр MonthlySchedulerService
func NewMonthlySchedulerService(bank *BankService, cfg *config.Config) *MonthlySchedulerService {
	period := time.Duration(cfg.Bank.ProcessingIntervalHours) * time.Hour
	if period <= 0 {
		period = 720 * time.Hour
	}
	return &MonthlySchedulerService{
		bank:   bank,
		period: period,
	}
}

// Start запускает планировщик ежемесячной обработки
func (s *MonthlySchedulerService) Start() {
	// Сначала начисляются проценты, затем списывается плата
	processingTicker := time.NewTicker(s.period)
	go func() {
		for {
			select {
			case <-processingTicker.C:
				applied := s.bank.ProcessMonthlyInterest()
				log.Printf("Ежемесячные проценты начислены: %d счетов", applied)

				charged := s.bank.ProcessMonthlyFees()
				log.Printf("Ежемесячная плата списана: %d счетов", charged)
			}
		}
	}()
}
