package error_notificator

import "context"

type Notificator interface {
	// Notify — сообщает админу о сбое внешнего сервиса
	Notify(ctx context.Context, source string, err error, details string) error
}
