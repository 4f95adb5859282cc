package memory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
	"time"

	"orderdesk/internal/domain"
	"orderdesk/internal/ports"
	"orderdesk/pkg/metrics"
)

// ResultCache - потокобезопасный in-memory кэш результатов выборки с TTL.
// Ключ строится из набора отделов, порядок отделов значения не имеет.
// Просроченные записи удаляются лениво при обращении.
type ResultCache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

type entry struct {
	result    *domain.FetchResult
	storedAt  time.Time
	expiresAt time.Time
}

var _ ports.ResultCache = (*ResultCache)(nil)

// NewResultCache создает кэш с заданным TTL.
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Key возвращает детерминированный ключ для набора отделов:
// sha256 от отсортированного списка имен.
func Key(departments []string) string {
	sorted := make([]string, len(departments))
	copy(sorted, departments)
	sort.Strings(sorted)

	sum := sha256.Sum256([]byte(strings.Join(sorted, "\x00")))
	return hex.EncodeToString(sum[:])
}

// Get возвращает закэшированный результат, если запись существует и не просрочена.
// Просроченная запись удаляется на месте.
func (c *ResultCache) Get(_ context.Context, departments []string) (*domain.FetchResult, bool) {
	key := Key(departments)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}

	// Запись, дожившая ровно до expiresAt, уже считается просроченной.
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		metrics.CacheOps.WithLabelValues("expired").Inc()
		metrics.CacheSize.Set(float64(len(c.entries)))
		return nil, false
	}

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return e.result, true
}

// Set сохраняет результат для набора отделов. Nil-результат не кэшируется.
func (c *ResultCache) Set(_ context.Context, departments []string, result *domain.FetchResult) error {
	if result == nil {
		return nil
	}

	key := Key(departments)
	stored := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		result:    result,
		storedAt:  stored,
		expiresAt: stored.Add(c.ttl),
	}

	metrics.CacheOps.WithLabelValues("put").Inc()
	metrics.CacheSize.Set(float64(len(c.entries)))
	return nil
}

// Clear удаляет все записи.
func (c *ResultCache) Clear(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)

	metrics.CacheOps.WithLabelValues("clear").Inc()
	metrics.CacheSize.Set(0)
}

// Stats возвращает срез состояния кэша без вытеснения записей.
func (c *ResultCache) Stats(_ context.Context) ports.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	stats := ports.CacheStats{Total: len(c.entries)}
	for _, e := range c.entries {
		if !now.Before(e.expiresAt) {
			stats.Expired++
		} else {
			stats.Valid++
		}
	}
	return stats
}
