package dispatch

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/gomail.v2"

	"orderdesk/internal/domain"
	"orderdesk/internal/ports"
	"orderdesk/pkg/metrics"
)

// Config — параметры SMTP и шаблон письма.
type Config struct {
	Host string
	Port int

	Subject  string
	Greeting string
	Body     string

	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyURL     string

	AuditLogPath string
}

// Request — задание на отправку письма одному поставщику.
type Request struct {
	Supplier     domain.Supplier
	Sender       domain.SenderIdentity
	DocumentPath string
}

type mailDialer interface {
	DialAndSend(msg ...*gomail.Message) error
}

// Sender отправляет письма заказов с вложенным документом.
// Пароль берется из хранилища ОС непосредственно перед отправкой;
// все проверки выполняются до первого обращения к SMTP-серверу.
type Sender struct {
	cfg     Config
	secrets ports.SecretStore
	log     ports.Logger
	audit   *auditLog

	// dial подменяется в тестах.
	dial func(host string, port int, user, password string) mailDialer
}

// NewSender — DI-конструктор.
func NewSender(cfg Config, secrets ports.SecretStore, log ports.Logger) *Sender {
	return &Sender{
		cfg:     cfg,
		secrets: secrets,
		log:     log,
		audit:   newAuditLog(cfg.AuditLogPath),
		dial: func(host string, port int, user, password string) mailDialer {
			return gomail.NewDialer(host, port, user, password)
		},
	}
}

// Send отправляет письмо. Ошибка всегда имеет тип *Error с категорией.
func (s *Sender) Send(ctx context.Context, req Request) error {
	if err := s.send(ctx, req); err != nil {
		sendErr := categorize(err)
		metrics.MailSends.WithLabelValues(string(sendErr.Category)).Inc()
		s.audit.append("failed", req.Supplier.Name, sendErr.Error())
		s.log.Errorf(ctx, "отправка для %s не удалась: %v", req.Supplier.Name, sendErr)
		return sendErr
	}

	metrics.MailSends.WithLabelValues("ok").Inc()
	s.audit.append("success", req.Supplier.Name, "письмо отправлено")
	s.log.Infof(ctx, "письмо для %s отправлено", req.Supplier.Name)
	return nil
}

func (s *Sender) send(_ context.Context, req Request) error {
	// Пароль проверяется первым: без него незачем трогать сеть.
	password, found, err := s.secrets.Secret(req.Sender.Email)
	if err != nil {
		return newError(CategoryMissingCredential, "credential store: %w", err)
	}
	if !found || password == "" {
		return newError(CategoryMissingCredential, "password for %s is not stored", req.Sender.Email)
	}

	toAddrs := extractAddresses(req.Supplier.EmailTo)
	if len(toAddrs) == 0 {
		return newError(CategoryMissingRecipient, "supplier %s has no recipient address", req.Supplier.Name)
	}
	ccAddrs := extractAddresses(req.Supplier.EmailCC)

	if req.DocumentPath == "" {
		return newError(CategoryMissingDocument, "document path is empty")
	}
	if _, err := os.Stat(req.DocumentPath); err != nil {
		return newError(CategoryMissingDocument, "document %s: %w", req.DocumentPath, err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", req.Sender.Email)
	msg.SetHeader("To", toAddrs...)
	if len(ccAddrs) > 0 {
		msg.SetHeader("Cc", ccAddrs...)
	}
	msg.SetHeader("Subject", sanitizeHeader(s.cfg.Subject))
	msg.SetBody("text/plain", s.body(req))
	msg.Attach(req.DocumentPath)

	if err := s.dial(s.cfg.Host, s.cfg.Port, req.Sender.Email, password).DialAndSend(msg); err != nil {
		return err
	}
	return nil
}

// body собирает текст письма: обращение, шаблон, подпись.
func (s *Sender) body(req Request) string {
	contact := req.Supplier.Contact
	if contact == "" {
		contact = "Procurement"
	}

	orderContact := req.Sender.DisplayName
	if req.Sender.Department != "" {
		orderContact = req.Sender.Department + " " + orderContact
	}

	phone := "TEL: " + s.cfg.CompanyPhone
	if req.Sender.GuidanceNumber != "" {
		phone = fmt.Sprintf("%s (guidance %s)", phone, req.Sender.GuidanceNumber)
	}

	var b strings.Builder
	b.WriteString(req.Supplier.Name + "\n")
	b.WriteString("Attn: " + contact + "\n\n")
	b.WriteString(s.cfg.Greeting + "\n")
	b.WriteString(s.cfg.Body + "\n\n")
	b.WriteString("==================\n")
	b.WriteString(s.cfg.CompanyName + "\n")
	b.WriteString("Orders: " + orderContact + "\n")
	b.WriteString(s.cfg.CompanyAddress + "\n")
	b.WriteString("Email: " + req.Sender.Email + "\n")
	b.WriteString(phone + "\n")
	if s.cfg.CompanyURL != "" {
		b.WriteString("URL: " + s.cfg.CompanyURL + "\n")
	}
	b.WriteString("==================")
	return b.String()
}
