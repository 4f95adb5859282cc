// Пакет ctxmeta — нейтральный слой для работы с метаданными операции,
// которые прокидываются через context.Context (task_id, request_id).
// Идея: воркеры и логгер зависят от небольшого общего пакета, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	// Ключи контекста (неэкспортируемые типы — чтобы избежать коллизий).
	KeyTaskID    ctxKey = "task_id"
	KeyRequestID ctxKey = "request_id"
)

// WithTaskID кладёт идентификатор фоновой операции в контекст (если пусто — ничего не делает).
func WithTaskID(ctx context.Context, taskID string) context.Context {
	if ctx == nil || taskID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyTaskID, taskID)
}

// TaskIDFromContext достаёт task_id из контекста.
func TaskIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyTaskID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
// Используется диагностическим HTTP-слоем.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyRequestID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
