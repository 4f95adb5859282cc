// Пакет retry — небольшой комбинатор повторных попыток с линейным backoff.
// Политика: ограниченное число попыток, задержка = Delay * номер попытки.
package retry

import (
	"context"
	"time"
)

// Policy — параметры повторов.
type Policy struct {
	Attempts int           // максимум попыток (минимум 1)
	Delay    time.Duration // базовая задержка; реальная = Delay * номер попытки
}

// Do — выполняет op до первого успеха или исчерпания попыток.
// Возвращает последнюю ошибку op либо ошибку контекста, если ожидание прервано.
func (p Policy) Do(ctx context.Context, op func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if lastErr = op(); lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		if !sleep(ctx, p.Delay*time.Duration(attempt)) {
			return ctx.Err()
		}
	}
	return lastErr
}

// sleep ждёт d или останавливается по контексту.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
