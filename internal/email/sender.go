// Package email delivers review-decision notifications to employees.
package email

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"talent-hub/internal/config"
	"talent-hub/internal/domain/eligibility"
)

// Sender delivers a review outcome to the employee who filed the request.
type Sender interface {
	SendReviewDecision(to string, req eligibility.Request) error
}

// SMTPSender sends mail through the configured SMTP relay.
type SMTPSender struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *SMTPSender) SendReviewDecision(to string, req eligibility.Request) error {
	subject, body := decisionMessage(req)
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send review decision to %s: %w", to, err)
	}
	return nil
}

// LogSender writes decisions to the application log instead of sending mail.
// Used when SMTP is not configured.
type LogSender struct {
	Logger *log.Logger
}

func (s *LogSender) SendReviewDecision(to string, req eligibility.Request) error {
	if s.Logger != nil {
		subject, _ := decisionMessage(req)
		s.Logger.Printf("email (disabled): to=%s subject=%q", to, subject)
	}
	return nil
}

func decisionMessage(req eligibility.Request) (subject, body string) {
	switch req.Status {
	case eligibility.StatusApproved:
		return "Your job switch request was approved",
			"Your job switch request has been approved. You can now apply to open positions on the jobs board."
	case eligibility.StatusRejected:
		body := fmt.Sprintf("Your job switch request was rejected.\n\nReason: %s\n", req.RejectionReason)
		if end := req.RestrictionEnd(); !end.IsZero() {
			body += fmt.Sprintf("\nYou may submit a new request after %s.\n", end.Format("January 2, 2006"))
		}
		return "Your job switch request was rejected", body
	default:
		return "Your job switch request was updated",
			fmt.Sprintf("Your job switch request status changed to %s.", req.Status)
	}
}
