package fanout

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"orderdesk/internal/ports"
)

// Summary — итог пакетной простановки дат.
type Summary struct {
	Attempted int
	Failed    int
}

// Fanout проставляет дату заказа на множестве записей ограниченным пулом
// min(maxWorkers, n) с общим ограничением частоты вызовов. Сбой одной
// записи не прерывает остальные.
type Fanout struct {
	store      ports.RemoteStore
	log        ports.Logger
	maxWorkers int
	limiter    *rate.Limiter
}

// New — DI-конструктор. callDelay — минимальный интервал между вызовами
// удалённой базы по всем рабочим горутинам.
func New(store ports.RemoteStore, log ports.Logger, maxWorkers int, callDelay time.Duration) *Fanout {
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	limit := rate.Inf
	if callDelay > 0 {
		limit = rate.Every(callDelay)
	}

	return &Fanout{
		store:      store,
		log:        log,
		maxWorkers: maxWorkers,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// StampAll проставляет дату на каждой записи и блокируется до завершения.
func (f *Fanout) StampAll(ctx context.Context, recordIDs []string, day time.Time) Summary {
	if len(recordIDs) == 0 {
		return Summary{}
	}

	workers := f.maxWorkers
	if len(recordIDs) < workers {
		workers = len(recordIDs)
	}

	jobs := make(chan string)
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed int
	)

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for id := range jobs {
				if err := f.limiter.Wait(ctx); err != nil {
					mu.Lock()
					failed++
					mu.Unlock()
					continue
				}
				if err := f.store.StampOrdered(ctx, id, day); err != nil {
					f.log.Warnf(ctx, "дата на записи %s не проставлена: %v", id, err)
					mu.Lock()
					failed++
					mu.Unlock()
				}
			}
		}()
	}

	for _, id := range recordIDs {
		jobs <- id
	}
	close(jobs)
	wg.Wait()

	return Summary{Attempted: len(recordIDs), Failed: failed}
}
