package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"bankcore/config"
	"bankcore/controllers"
	"bankcore/database"
	"bankcore/middleware"
	"bankcore/services"
	"bankcore/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/mux"
)

// healthHandler отвечает на проверку живости сервиса
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// metricsHandler отдает снимок внутренних метрик
func metricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(utils.GetMetrics().GetMetricsSnapshot())
}

// startOpsServer запускает служебный сервер с health-check и метриками
func startOpsServer(cfg *config.Config) {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(middleware.Logger())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.RateLimit())
	engine.Use(middleware.CORSMiddleware())

	engine.GET("/health", gin.WrapF(healthHandler))
	engine.GET("/metrics", gin.WrapF(metricsHandler))

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.OpsPort)
		log.Printf("Служебный сервер запущен на порту %s", addr)
		if err := engine.Run(addr); err != nil {
			log.Printf("Ошибка служебного сервера: %v", err)
		}
	}()
}

func main() {
	// Инициализируем конфигурацию
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Инициализируем архив состояния, если он включен.
	// Банк полностью работоспособен и без архива.
	var archive services.Archiver
	if cfg.DB.Enabled {
		db, err := database.NewDatabase(cfg)
		if err != nil {
			log.Printf("Архив недоступен, продолжаем без него: %v", err)
		} else {
			defer db.Close()
			archive = db
		}
	}

	// Инициализируем сервис email
	emailService := services.NewEmailService(cfg)

	// Создаем реестр банка
	bank := services.NewBankService(cfg, emailService, archive)

	// Запускаем планировщик ежемесячной обработки
	scheduler := services.NewMonthlySchedulerService(bank, cfg)
	scheduler.Start()
	log.Println("Планировщик ежемесячной обработки запущен")

	// Запускаем служебный сервер
	startOpsServer(cfg)

	// Создаем роутер
	router := mux.NewRouter()

	// Инициализируем контроллеры
	authController := controllers.NewAuthController(bank, cfg)
	bankController := controllers.NewBankController(bank)
	adminController := controllers.NewAdminController(bank)

	// Публичные маршруты для аутентификации
	router.HandleFunc("/api/auth/signUp", authController.SignUp).Methods("POST")
	router.HandleFunc("/api/auth/signIn", authController.SignIn).Methods("POST")

	// Защищенные маршруты
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(middleware.AuthMiddleware([]byte(authController.GetJWTKey())))
	protected.Use(middleware.LoggingMiddleware)

	// Маршруты для работы с банковскими счетами
	protected.HandleFunc("/bank/accounts", bankController.CreateAccount).Methods("POST")
	protected.HandleFunc("/bank/accounts", bankController.GetAccounts).Methods("GET")
	protected.HandleFunc("/bank/accounts/{number}", bankController.GetAccount).Methods("GET")
	protected.HandleFunc("/bank/accounts/{number}/deposit", bankController.Deposit).Methods("POST")
	protected.HandleFunc("/bank/accounts/{number}/withdraw", bankController.Withdraw).Methods("POST")
	protected.HandleFunc("/bank/accounts/{number}/transfer", bankController.Transfer).Methods("POST")
	protected.HandleFunc("/bank/accounts/{number}/statement", bankController.Statement).Methods("GET")
	protected.HandleFunc("/bank/accounts/{number}/close", bankController.CloseAccount).Methods("POST")

	// Маршруты для работы с профилем клиента
	protected.HandleFunc("/bank/customers/me", bankController.Me).Methods("GET")
	protected.HandleFunc("/bank/customers/me/upgrade", bankController.UpgradeTier).Methods("POST")

	// Служебные маршруты банка
	protected.HandleFunc("/bank/admin/interest", adminController.ProcessInterest).Methods("POST")
	protected.HandleFunc("/bank/admin/fees", adminController.ProcessFees).Methods("POST")
	protected.HandleFunc("/bank/admin/report", adminController.Report).Methods("GET")
	protected.HandleFunc("/bank/admin/keyrate", adminController.KeyRate).Methods("GET")

	// Запускаем сервер
	port := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на порту %s", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
