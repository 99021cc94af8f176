package service

import (
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/vastra-shop/internal/config"
	"github.com/vastra-shop/internal/i18n"
	"github.com/vastra-shop/internal/models"
)

// EmailService 邮件发送服务，只发送纯文本通知
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled 邮件服务是否可用
func (s *EmailService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled
}

// OrderStatusEmailInput 订单状态邮件输入
type OrderStatusEmailInput struct {
	OrderNo string
	Status  string
	Amount  models.Money
	Custom  bool
}

// SendOrderStatusEmail 发送订单状态通知
func (s *EmailService) SendOrderStatusEmail(toEmail string, input OrderStatusEmailInput, locale string) error {
	subject, body := buildOrderStatusContent(input, locale)
	return s.send(toEmail, subject, body)
}

func (s *EmailService) send(to, subject, body string) error {
	if !s.Enabled() {
		return ErrEmailServiceDisabled
	}
	cfg := s.cfg
	if cfg.Host == "" || cfg.Port == 0 || cfg.From == "" {
		return ErrEmailServiceNotConfig
	}
	if _, err := mail.ParseAddress(to); err != nil {
		return ErrInvalidEmail
	}

	client, err := s.dial()
	if err != nil {
		return err
	}
	defer client.Close()

	if cfg.Username != "" || cfg.Password != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)); err != nil {
				return err
			}
		}
	}

	msg := composeMessage(fromHeader(cfg.From, cfg.FromName), to, subject, body)
	if err := deliver(client, cfg.From, to, msg); err != nil {
		if isEmailRecipientRejected(err) {
			return fmt.Errorf("%w: %v", ErrEmailRecipientRejected, err)
		}
		return err
	}
	return nil
}

// dial 按配置建立连接：UseSSL 为隐式 TLS（465），UseTLS 为 STARTTLS，否则明文
func (s *EmailService) dial() (*smtp.Client, error) {
	cfg := s.cfg
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	tlsCfg := &tls.Config{ServerName: cfg.Host}

	if cfg.UseSSL {
		conn, err := tls.Dial("tcp", addr, tlsCfg)
		if err != nil {
			return nil, err
		}
		client, err := smtp.NewClient(conn, cfg.Host)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		return client, nil
	}

	client, err := smtp.Dial(addr)
	if err != nil {
		return nil, err
	}
	if cfg.UseTLS {
		if err := client.StartTLS(tlsCfg); err != nil {
			_ = client.Close()
			return nil, err
		}
	}
	return client, nil
}

func deliver(client *smtp.Client, from, to string, msg []byte) error {
	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

// buildOrderStatusContent 按语言生成状态邮件标题与正文
func buildOrderStatusContent(input OrderStatusEmailInput, locale string) (string, string) {
	locale = i18n.NormalizeLocale(locale)
	statusKey := "order.status." + strings.ToLower(strings.TrimSpace(input.Status))
	label := i18n.T(locale, statusKey)
	if label == statusKey {
		label = input.Status
	}
	subject := i18n.Sprintf(locale, "email.order_status.subject", input.OrderNo, label)
	if input.Custom {
		return subject, i18n.Sprintf(locale, "email.custom_order_status.body", input.OrderNo, label)
	}
	return subject, i18n.Sprintf(locale, "email.order_status.body", input.OrderNo, label, input.Amount.String())
}

func fromHeader(address, name string) string {
	if strings.TrimSpace(name) == "" {
		return address
	}
	return (&mail.Address{Name: name, Address: address}).String()
}

func composeMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	header := func(key, value string) {
		b.WriteString(key + ": " + value + "\r\n")
	}
	header("From", from)
	header("To", to)
	header("Subject", mime.QEncoding.Encode("UTF-8", subject))
	header("MIME-Version", "1.0")
	header("Content-Type", "text/plain; charset=UTF-8")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// 收件人被拒的常见服务端提示
var recipientRejectedHints = []string{
	"no such recipient",
	"no such user",
	"recipient not found",
	"recipient address rejected",
	"invalid recipient",
	"user unknown",
	"unknown user",
	"unknown mailbox",
	"mailbox unavailable",
}

// isEmailRecipientRejected 判断 SMTP 错误是否为收件人不存在，这类错误重试无意义
func isEmailRecipientRejected(err error) bool {
	if err == nil {
		return false
	}
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) && (protoErr.Code == 550 || protoErr.Code == 553) {
		return true
	}
	message := strings.ToLower(err.Error())
	for _, hint := range recipientRejectedHints {
		if strings.Contains(message, hint) {
			return true
		}
	}
	return false
}
