package usecase

import (
	"context"
	"fmt"
	"sync"

	"orderdesk/internal/domain"
	"orderdesk/internal/ports"
)

// FetchService — прикладная логика выборки заказов: кэш, параллельная
// загрузка двух таблиц, джойн с поставщиками и группировка.
type FetchService struct {
	store ports.RemoteStore // прямой доступ к удалённой базе
	cache ports.ResultCache // прямой доступ к кэшу результатов
	log   ports.Logger      // прямой доступ к логгеру

	// remoteNames переводит отображаемые имена отделов в номенклатуру
	// удалённой базы. Пустая карта означает совпадение имен.
	remoteNames map[string]string

	// displayNames — обратная карта: имя в удалённой базе -> отображаемое.
	displayNames map[string]string
}

// NewFetchService — DI-конструктор.
func NewFetchService(
	store ports.RemoteStore,
	cache ports.ResultCache,
	log ports.Logger,
	remoteNames map[string]string,
) *FetchService {
	displayNames := make(map[string]string, len(remoteNames))
	for display, remote := range remoteNames {
		if remote != "" {
			displayNames[remote] = display
		}
	}

	return &FetchService{
		store:        store,
		cache:        cache,
		log:          log,
		remoteNames:  remoteNames,
		displayNames: displayNames,
	}
}

// Fetch — получить результат выборки для набора отделов: сначала из кэша,
// при промахе — из удалённой базы с записью в кэш.
// Пустой результат — нормальный исход, не ошибка.
func (s *FetchService) Fetch(ctx context.Context, departments []string) (*domain.FetchResult, error) {
	if result, found := s.cache.Get(ctx, departments); found {
		s.log.Infof(ctx, "cache hit for departments=%v", departments)
		return result, nil
	}
	s.log.Infof(ctx, "cache miss for departments=%v", departments)

	result, err := s.fetchRemote(ctx, departments)
	if err != nil {
		return nil, err
	}

	if setErr := s.cache.Set(ctx, departments, result); setErr != nil {
		s.log.Warnf(ctx, "cache.Set failed departments=%v err=%v", departments, setErr)
	}
	return result, nil
}

// Refresh — принудительная выборка мимо кэша с обновлением кэша.
func (s *FetchService) Refresh(ctx context.Context, departments []string) (*domain.FetchResult, error) {
	result, err := s.fetchRemote(ctx, departments)
	if err != nil {
		return nil, err
	}
	if setErr := s.cache.Set(ctx, departments, result); setErr != nil {
		s.log.Warnf(ctx, "cache.Set failed departments=%v err=%v", departments, setErr)
	}
	return result, nil
}

// InvalidateCache — сброс кэша (после мутаций удалённой базы).
func (s *FetchService) InvalidateCache(ctx context.Context) {
	s.cache.Clear(ctx)
}

// CacheStats — статистика кэша для диагностики.
func (s *FetchService) CacheStats(ctx context.Context) ports.CacheStats {
	return s.cache.Stats(ctx)
}

// fetchRemote загружает обе таблицы параллельно и собирает результат.
func (s *FetchService) fetchRemote(ctx context.Context, departments []string) (*domain.FetchResult, error) {
	var (
		wg        sync.WaitGroup
		records   []domain.OrderRecord
		suppliers []domain.Supplier
		ordersErr error
		supplErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		records, ordersErr = s.store.FetchOrders(ctx, s.toRemoteNames(departments))
	}()
	go func() {
		defer wg.Done()
		suppliers, supplErr = s.store.FetchSuppliers(ctx)
	}()
	wg.Wait()

	if ordersErr != nil {
		return nil, fmt.Errorf("fetch orders: %w", ordersErr)
	}
	if supplErr != nil {
		return nil, fmt.Errorf("fetch suppliers: %w", supplErr)
	}

	result := s.join(records, suppliers)
	s.log.Infof(ctx, "fetched orders=%d unlinked=%d suppliers=%d",
		len(result.Orders), result.UnlinkedCount, len(result.BySupplier))
	return result, nil
}

// toRemoteNames переводит отображаемые имена отделов в удалённые.
// Имя без перевода передается как есть.
func (s *FetchService) toRemoteNames(departments []string) []string {
	if len(departments) == 0 {
		return nil
	}
	out := make([]string, 0, len(departments))
	for _, name := range departments {
		if remote, ok := s.remoteNames[name]; ok && remote != "" {
			out = append(out, remote)
			continue
		}
		out = append(out, name)
	}
	return out
}

// toDisplayNames переводит теги отделов из номенклатуры удалённой базы
// обратно в отображаемые имена. Весь код выше выборки работает только с
// отображаемыми именами: они же служат ключами кэша, фильтра и настроек.
func (s *FetchService) toDisplayNames(departments []string) []string {
	if len(s.displayNames) == 0 || len(departments) == 0 {
		return departments
	}
	out := make([]string, 0, len(departments))
	for _, name := range departments {
		if display, ok := s.displayNames[name]; ok {
			out = append(out, display)
			continue
		}
		out = append(out, name)
	}
	return out
}

// join связывает записи заказов с поставщиками. Запись без ссылки на
// поставщика или со ссылкой на неизвестную запись учитывается в
// UnlinkedCount и не попадает в выборку.
func (s *FetchService) join(records []domain.OrderRecord, suppliers []domain.Supplier) *domain.FetchResult {
	byID := make(map[string]domain.Supplier, len(suppliers))
	for _, sup := range suppliers {
		byID[sup.ID] = sup
	}

	result := &domain.FetchResult{
		BySupplier: make(map[string][]domain.OrderLine),
		Suppliers:  make(map[string]domain.Supplier),
	}

	for _, rec := range records {
		supplier, ok := byID[rec.SupplierRef]
		if rec.SupplierRef == "" || !ok || supplier.Name == "" {
			result.UnlinkedCount++
			continue
		}

		line := domain.OrderLine{
			RecordID:    rec.ID,
			Maker:       rec.Maker,
			PartNumber:  rec.PartNumber,
			Quantity:    rec.Quantity,
			Remarks:     rec.Remarks,
			Departments: s.toDisplayNames(rec.Departments),
			SupplierID:  rec.SupplierRef,
		}
		result.Orders = append(result.Orders, line)
		result.BySupplier[supplier.Name] = append(result.BySupplier[supplier.Name], line)
		result.Suppliers[supplier.Name] = supplier
	}

	return result
}
