package ports

import (
	"context"

	"orderdesk/internal/domain"
)

// CacheStats — статистика кэша результатов.
type CacheStats struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Expired int `json:"expired"`
}

// ResultCache — кэш результатов выборки, ключ — выбор отделов.
// Требования к реализации: потокобезопасность; независимость ключа от
// порядка отделов; ленивое вытеснение по TTL при чтении (без фонового потока).
type ResultCache interface {
	// Get — (result, true) при попадании; (nil, false) при промахе/истечении.
	Get(ctx context.Context, departments []string) (*domain.FetchResult, bool)

	// Set — сохранить результат выборки для данного выбора отделов.
	Set(ctx context.Context, departments []string, result *domain.FetchResult) error

	// Clear — полная очистка.
	Clear(ctx context.Context)

	// Stats — количество записей всего/актуальных/истёкших.
	Stats(ctx context.Context) CacheStats
}
