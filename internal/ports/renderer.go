package ports

import (
	"context"

	"orderdesk/internal/domain"
)

// DocumentRenderer — генерация документа заказа для одного поставщика.
// Возвращает путь к созданному файлу.
type DocumentRenderer interface {
	Render(ctx context.Context, job domain.RenderJob) (string, error)
}
