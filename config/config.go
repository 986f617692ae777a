package config

import (
	"github.com/spf13/viper"
)

// Config представляет конфигурацию приложения
type Config struct {
	Server struct {
		Port    int
		OpsPort int
	}
	DB struct {
		Enabled  bool
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
	}
	JWT struct {
		SecretKey string
		ExpiresIn int // в часах
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	Bank BankRules
}

// BankRules представляет бизнес-правила счетов.
// Значения по умолчанию повторяют учебные константы банковской модели.
type BankRules struct {
	SavingsRate             float64 // годовая ставка сберегательного счета
	SavingsMinBalance       float64 // минимальный остаток сберегательного счета
	SavingsWithdrawalFee    float64 // комиссия за снятие сверх бесплатного лимита
	FreeWithdrawalsPerMonth int     // бесплатных снятий в месяц
	OverdraftLimit          float64 // лимит овердрафта расчетного счета
	OverdraftFee            float64 // комиссия за уход в овердрафт
	TransferLimit           float64 // лимит одного перевода
	BusinessRate            float64 // годовая ставка бизнес-счета
	BusinessRateThreshold   float64 // порог баланса для процентов бизнес-счету
	BusinessMonthlyFee      float64 // ежемесячная плата за обслуживание бизнес-счета
	StatementLimit          int     // сколько последних транзакций попадает в выписку
	ProcessingIntervalHours int     // период ежемесячной обработки планировщиком
}

// NewConfig создает новый экземпляр конфигурации.
// Все значения читаются из переменных окружения через viper,
// для каждого ключа задано значение по умолчанию.
func NewConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	// Настройки сервера
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("OPS_PORT", 8081)

	// Настройки базы данных (архив выключен, пока явно не включен)
	v.SetDefault("DB_ENABLED", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "bank_db")

	// Настройки JWT
	v.SetDefault("JWT_SECRET_KEY", "your-secret-key-here")
	v.SetDefault("JWT_EXPIRES_IN", 24)

	// Настройки SMTP: пустой username означает, что отправка писем выключена
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "")

	// Бизнес-правила счетов
	v.SetDefault("SAVINGS_RATE", 0.025)
	v.SetDefault("SAVINGS_MIN_BALANCE", 100.0)
	v.SetDefault("SAVINGS_WITHDRAWAL_FEE", 2.0)
	v.SetDefault("FREE_WITHDRAWALS_PER_MONTH", 3)
	v.SetDefault("OVERDRAFT_LIMIT", 500.0)
	v.SetDefault("OVERDRAFT_FEE", 35.0)
	v.SetDefault("TRANSFER_LIMIT", 10000.0)
	v.SetDefault("BUSINESS_RATE", 0.015)
	v.SetDefault("BUSINESS_RATE_THRESHOLD", 50000.0)
	v.SetDefault("BUSINESS_MONTHLY_FEE", 25.0)
	v.SetDefault("STATEMENT_LIMIT", 10)
	v.SetDefault("PROCESSING_INTERVAL_HOURS", 720)

	cfg := &Config{}

	cfg.Server.Port = v.GetInt("SERVER_PORT")
	cfg.Server.OpsPort = v.GetInt("OPS_PORT")

	cfg.DB.Enabled = v.GetBool("DB_ENABLED")
	cfg.DB.Host = v.GetString("DB_HOST")
	cfg.DB.Port = v.GetInt("DB_PORT")
	cfg.DB.User = v.GetString("DB_USER")
	cfg.DB.Password = v.GetString("DB_PASSWORD")
	cfg.DB.DBName = v.GetString("DB_NAME")

	cfg.JWT.SecretKey = v.GetString("JWT_SECRET_KEY")
	cfg.JWT.ExpiresIn = v.GetInt("JWT_EXPIRES_IN")

	cfg.SMTP.Host = v.GetString("SMTP_HOST")
	cfg.SMTP.Port = v.GetInt("SMTP_PORT")
	cfg.SMTP.Username = v.GetString("SMTP_USERNAME")
	cfg.SMTP.Password = v.GetString("SMTP_PASSWORD")
	cfg.SMTP.From = v.GetString("SMTP_FROM")

	cfg.Bank.SavingsRate = v.GetFloat64("SAVINGS_RATE")
	cfg.Bank.SavingsMinBalance = v.GetFloat64("SAVINGS_MIN_BALANCE")
	cfg.Bank.SavingsWithdrawalFee = v.GetFloat64("SAVINGS_WITHDRAWAL_FEE")
	cfg.Bank.FreeWithdrawalsPerMonth = v.GetInt("FREE_WITHDRAWALS_PER_MONTH")
	cfg.Bank.OverdraftLimit = v.GetFloat64("OVERDRAFT_LIMIT")
	cfg.Bank.OverdraftFee = v.GetFloat64("OVERDRAFT_FEE")
	cfg.Bank.TransferLimit = v.GetFloat64("TRANSFER_LIMIT")
	cfg.Bank.BusinessRate = v.GetFloat64("BUSINESS_RATE")
	cfg.Bank.BusinessRateThreshold = v.GetFloat64("BUSINESS_RATE_THRESHOLD")
	cfg.Bank.BusinessMonthlyFee = v.GetFloat64("BUSINESS_MONTHLY_FEE")
	cfg.Bank.StatementLimit = v.GetInt("STATEMENT_LIMIT")
	cfg.Bank.ProcessingIntervalHours = v.GetInt("PROCESSING_INTERVAL_HOURS")

	return cfg, nil
}
