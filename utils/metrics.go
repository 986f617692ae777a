package utils

import (
	"sync"
	"time"
)

// Metrics содержит метрики банковских операций
type Metrics struct {
	mu sync.RWMutex

	// Метрики операций
	TotalOperations   int64
	FailedOperations  int64
	DepositCount      int64
	WithdrawalCount   int64
	TransferCount     int64
	InterestRuns      int64
	FeeRuns           int64
	LastOperationTime time.Time

	// Метрики реестра
	CustomersCreated int64
	AccountsCreated  int64
	AccountsByKind   map[string]int64

	// Метрики ошибок
	ErrorCount    int64
	LastErrorTime time.Time
	ErrorTypes    map[string]int64
}

var (
	metrics     *Metrics
	metricsOnce sync.Once
)

// GetMetrics возвращает экземпляр метрик
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			AccountsByKind: make(map[string]int64),
			ErrorTypes:     make(map[string]int64),
		}
	})
	return metrics
}

// RecordOperation записывает метрики банковской операции
func (m *Metrics) RecordOperation(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalOperations++
	m.LastOperationTime = time.Now()

	switch operation {
	case "deposit":
		m.DepositCount++
	case "withdraw":
		m.WithdrawalCount++
	case "transfer":
		m.TransferCount++
	case "interest":
		m.InterestRuns++
	case "fees":
		m.FeeRuns++
	}

	if err != nil {
		m.FailedOperations++
		m.recordErrorLocked(err)
	}
}

// RecordCustomerCreated записывает метрику создания клиента
func (m *Metrics) RecordCustomerCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CustomersCreated++
}

// RecordAccountCreated записывает метрику открытия счета
func (m *Metrics) RecordAccountCreated(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AccountsCreated++
	m.AccountsByKind[kind]++
}

// RecordError записывает метрики ошибки
func (m *Metrics) RecordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordErrorLocked(err)
}

func (m *Metrics) recordErrorLocked(err error) {
	m.ErrorCount++
	m.LastErrorTime = time.Now()

	errorType := "unknown"
	if err != nil {
		errorType = err.Error()
	}
	m.ErrorTypes[errorType]++
}

// GetMetricsSnapshot возвращает снимок текущих метрик
func (m *Metrics) GetMetricsSnapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byKind := make(map[string]int64, len(m.AccountsByKind))
	for k, v := range m.AccountsByKind {
		byKind[k] = v
	}
	errTypes := make(map[string]int64, len(m.ErrorTypes))
	for k, v := range m.ErrorTypes {
		errTypes[k] = v
	}

	return map[string]interface{}{
		"total_operations":    m.TotalOperations,
		"failed_operations":   m.FailedOperations,
		"deposit_count":       m.DepositCount,
		"withdrawal_count":    m.WithdrawalCount,
		"transfer_count":      m.TransferCount,
		"interest_runs":       m.InterestRuns,
		"fee_runs":            m.FeeRuns,
		"customers_created":   m.CustomersCreated,
		"accounts_created":    m.AccountsCreated,
		"accounts_by_kind":    byKind,
		"error_count":         m.ErrorCount,
		"error_types":         errTypes,
		"last_operation_time": m.LastOperationTime,
		"last_error_time":     m.LastErrorTime,
	}
}

// ResetMetrics сбрасывает все метрики
func (m *Metrics) ResetMetrics() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalOperations = 0
	m.FailedOperations = 0
	m.DepositCount = 0
	m.WithdrawalCount = 0
	m.TransferCount = 0
	m.InterestRuns = 0
	m.FeeRuns = 0
	m.CustomersCreated = 0
	m.AccountsCreated = 0
	m.AccountsByKind = make(map[string]int64)
	m.ErrorCount = 0
	m.ErrorTypes = make(map[string]int64)
}
