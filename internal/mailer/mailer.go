// Package mailer sends assignment emails over SMTP.
package mailer

import (
	"bytes"
	"fmt"
	"net/smtp"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/team-tracker/internal/config"
	"github.com/BuzzLyutic/team-tracker/internal/model"
)

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Mailer struct {
	cfg    config.SMTP
	send   SendFunc
	cb     *gobreaker.CircuitBreaker[struct{}]
	logger *zap.Logger
}

type Option func(*Mailer)

func WithSendFunc(f SendFunc) Option {
	return func(m *Mailer) { m.send = f }
}

// New builds a mailer whose breaker opens after three consecutive failures
// and lets one probe through every openFor.
func New(cfg config.SMTP, logger *zap.Logger, openFor time.Duration, opts ...Option) *Mailer {
	m := &Mailer{cfg: cfg, send: smtp.SendMail, logger: logger}
	m.cb = gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Mailer) State() gobreaker.State {
	return m.cb.State()
}

// SendAssignment mails the recipient of d about the task assigned to them.
// While the breaker is open it fails with gobreaker.ErrOpenState without
// contacting the server.
func (m *Mailer) SendAssignment(d model.Delivery) error {
	msg := assignmentMessage(m.cfg.From, d)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)

	_, err := m.cb.Execute(func() (struct{}, error) {
		return struct{}{}, m.send(m.cfg.Addr(), auth, m.cfg.From, []string{d.Email}, msg)
	})
	if err != nil {
		return fmt.Errorf("send assignment mail to %s: %w", d.Email, err)
	}
	m.logger.Info("assignment mail sent",
		zap.String("notification_id", d.Notification.ID),
		zap.String("to", d.Email),
	)
	return nil
}

func assignmentMessage(from string, d model.Delivery) []byte {
	task := "a task"
	if d.Notification.TaskName != nil {
		task = fmt.Sprintf("%q", *d.Notification.TaskName)
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", d.Email)
	fmt.Fprintf(&b, "Subject: You were assigned %s in %s\r\n", task, d.Notification.ProjectName)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	fmt.Fprintf(&b, "Hi %s,\r\n\r\n", d.MemberName)
	fmt.Fprintf(&b, "You were assigned %s in project %s.\r\n", task, d.Notification.ProjectName)
	return b.Bytes()
}
