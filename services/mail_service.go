package services

import (
	"log"
	"time"
)

type Mailer interface {
	SendOTP(to, name, code string, expiresAt time.Time) error
}

// LogMailer prints verification codes instead of delivering them.
type LogMailer struct {
	From string
}

func NewLogMailer(from string) *LogMailer {
	return &LogMailer{From: from}
}

func (m *LogMailer) SendOTP(to, name, code string, expiresAt time.Time) error {
	log.Printf("[mail] from=%s to=%s name=%q subject=%q code=%s expires=%s",
		m.From, to, name, "Your verification code", code, expiresAt.Format(time.RFC3339))
	return nil
}
