package services

import (
	"fmt"
	"log"
	"time"

	"bankcore/config"

	"gopkg.in/gomail.v2"
)

// EmailService предоставляет методы для отправки email.
// Если SMTP не сконфигурирован, отправка пропускается с записью в лог.
type EmailService struct {
	dialer  *gomail.Dialer
	from    string
	enabled bool
}

// NewEmailService создает новый экземпляр EmailService
func NewEmailService(cfg *config.Config) *EmailService {
	if cfg.SMTP.Username == "" {
		log.Println("SMTP не настроен, уведомления по email отключены")
		return &EmailService{enabled: false}
	}

	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &EmailService{
		dialer:  dialer,
		from:    cfg.SMTP.From,
		enabled: true,
	}
}

// SendEmail отправляет email
func (s *EmailService) SendEmail(to, subject, body string) error {
	if !s.enabled {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("ошибка отправки email: %v", err)
	}

	return nil
}

// SendTransactionNotification отправляет уведомление об операции по счету
func (s *EmailService) SendTransactionNotification(to, accountNumber string, amount float64, operation string) error {
	subject := "Уведомление об операции по счету"
	body := fmt.Sprintf(`
		<h2>Уведомление об операции</h2>
		<p>Счет: %s</p>
		<p>Тип операции: %s</p>
		<p>Сумма: %.2f</p>
		<p>Дата: %s</p>
	`, accountNumber, operation, amount, time.Now().Format("02.01.2006 15:04:05"))

	return s.SendEmail(to, subject, body)
}

// SendWelcomeNotification отправляет приветственное письмо новому клиенту
func (s *EmailService) SendWelcomeNotification(to, firstName string) error {
	subject := "Добро пожаловать в наш банк"
	body := fmt.Sprintf(`
		<h2>Добро пожаловать, %s!</h2>
		<p>Ваш профиль клиента успешно создан.</p>
		<p>Теперь вы можете открывать счета и совершать операции.</p>
		<p>С уважением,<br>Команда банка</p>
	`, firstName)

	return s.SendEmail(to, subject, body)
}
