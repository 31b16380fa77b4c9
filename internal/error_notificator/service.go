package error_notificator

import (
	"context"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
)

// Service sends alerts in the background so a slow Telegram API never delays a reply.
type Service struct {
	infra   Notificator
	log     *logger.ZapLogger
	timeout time.Duration
}

func NewService(infra Notificator, log *logger.ZapLogger) *Service {
	return &Service{infra: infra, log: log, timeout: 10 * time.Second}
}

func (s *Service) Notify(_ context.Context, source string, err error, details string) error {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if sendErr := s.infra.Notify(ctx, source, err, details); sendErr != nil {
			s.log.Log(logger.LogEntry{Level: "warn", Message: "admin notification failed", Error: sendErr, Service: source})
		}
	}()
	return nil
}
