package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"bankcore/config"
	"bankcore/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Database представляет архив состояния банка в PostgreSQL.
// Архив пишется поверх реестра в памяти: запись идемпотентна
// (повторное сохранение обновляет строку), чтение архивом не управляет.
type Database struct {
	DB *gorm.DB
}

// NewDatabase устанавливает соединение с базой данных и выполняет миграции
func NewDatabase(cfg *config.Config) (*Database, error) {
	// Формируем строку подключения
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.DBName,
	)

	// Настраиваем логгер
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	// Устанавливаем соединение
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %v", err)
	}

	// Настраиваем пул соединений
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пула соединений: %v", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Выполняем SQL миграции
	if err := runMigrations(cfg); err != nil {
		return nil, fmt.Errorf("ошибка выполнения SQL миграций: %v", err)
	}

	// Выполняем автоматическую миграцию моделей
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("ошибка автоматической миграции моделей: %v", err)
	}

	return &Database{DB: db}, nil
}

// GetDB возвращает экземпляр GORM
func (d *Database) GetDB() *gorm.DB {
	return d.DB
}

// Close закрывает подключение к базе данных
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// runMigrations выполняет SQL миграции
func runMigrations(cfg *config.Config) error {
	// Формируем URL для миграций
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.DBName,
	)

	// Создаем экземпляр миграции
	m, err := migrate.New(
		"file://migrations",
		dsn,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания миграции: %v", err)
	}

	// Выполняем миграции
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("ошибка выполнения миграций: %v", err)
	}

	return nil
}

// autoMigrate выполняет автоматическую миграцию моделей
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Customer{},
		&models.Account{},
		&models.Transaction{},
	)
	if err != nil {
		return fmt.Errorf("ошибка автоматической миграции: %v", err)
	}

	return nil
}

// SaveCustomer сохраняет снимок клиента в архив
func (d *Database) SaveCustomer(customer *models.Customer) error {
	return d.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(customer).Error
}

// SaveAccount сохраняет снимок счета в архив
func (d *Database) SaveAccount(account *models.Account) error {
	return d.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(account).Error
}

// SaveTransaction сохраняет транзакцию в архив
func (d *Database) SaveTransaction(transaction *models.Transaction) error {
	return d.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(transaction).Error
}

// GetCustomerByID возвращает клиента из архива
func (d *Database) GetCustomerByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	err := d.DB.First(&customer, id).Error
	return &customer, err
}

// GetAccountByNumber возвращает счет из архива
func (d *Database) GetAccountByNumber(number string) (*models.Account, error) {
	var account models.Account
	err := d.DB.Where("number = ?", number).First(&account).Error
	return &account, err
}

// GetAccountTransactions возвращает транзакции счета из архива
func (d *Database) GetAccountTransactions(number string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := d.DB.Where("account_number = ?", number).Order("id").Find(&transactions).Error
	return transactions, err
}
