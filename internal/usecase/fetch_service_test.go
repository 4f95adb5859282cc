package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	"orderdesk/internal/domain"
	"orderdesk/internal/ports/mocks"
)

func newService(t *testing.T, remoteNames map[string]string) (*FetchService, *mocks.MockRemoteStore, *mocks.MockResultCache) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	store := mocks.NewMockRemoteStore(ctrl)
	cache := mocks.NewMockResultCache(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	return NewFetchService(store, cache, log, remoteNames), store, cache
}

func TestFetchService_CacheHit(t *testing.T) {
	svc, _, cache := newService(t, nil)
	ctx := context.Background()

	cached := &domain.FetchResult{Orders: []domain.OrderLine{{RecordID: "rec-1"}}}
	cache.EXPECT().Get(ctx, []string{"Assembly"}).Return(cached, true)

	got, err := svc.Fetch(ctx, []string{"Assembly"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got != cached {
		t.Fatalf("ожидали закэшированный результат")
	}
}

func TestFetchService_JoinAndGroup(t *testing.T) {
	svc, store, cache := newService(t, nil)
	ctx := context.Background()

	records := []domain.OrderRecord{
		{ID: "rec-1", Maker: "ACME", SupplierRef: "sup-1"},
		{ID: "rec-2", Maker: "Globex", SupplierRef: "sup-1"},
		{ID: "rec-3", Maker: "Initech"}, // без ссылки на поставщика
	}
	suppliers := []domain.Supplier{
		{ID: "sup-1", Name: "Supplier A", EmailTo: "a@example.com"},
		{ID: "sup-2", Name: "Supplier B"},
	}

	cache.EXPECT().Get(ctx, []string{"Assembly"}).Return(nil, false)
	store.EXPECT().FetchOrders(gomock.Any(), []string{"Assembly"}).Return(records, nil)
	store.EXPECT().FetchSuppliers(gomock.Any()).Return(suppliers, nil)
	cache.EXPECT().Set(ctx, []string{"Assembly"}, gomock.Any()).Return(nil)

	got, err := svc.Fetch(ctx, []string{"Assembly"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(got.Orders) != 2 || got.UnlinkedCount != 1 {
		t.Fatalf("ожидали 2 связанные позиции и 1 несвязанную, получили %d/%d",
			len(got.Orders), got.UnlinkedCount)
	}
	if len(got.Orders)+got.UnlinkedCount != len(records) {
		t.Fatalf("каждая запись должна быть учтена ровно один раз")
	}
	if len(got.BySupplier["Supplier A"]) != 2 {
		t.Fatalf("ожидали 2 позиции в группе Supplier A, получили %d", len(got.BySupplier["Supplier A"]))
	}
	if _, ok := got.Suppliers["Supplier B"]; ok {
		t.Fatalf("поставщик без позиций не должен попадать в результат")
	}
	if got.Suppliers["Supplier A"].EmailTo != "a@example.com" {
		t.Fatalf("данные поставщика должны переноситься в результат")
	}
}

func TestFetchService_UnknownSupplierRefCountsAsUnlinked(t *testing.T) {
	svc, store, cache := newService(t, nil)
	ctx := context.Background()

	cache.EXPECT().Get(ctx, gomock.Nil()).Return(nil, false)
	store.EXPECT().FetchOrders(gomock.Any(), gomock.Nil()).Return([]domain.OrderRecord{
		{ID: "rec-1", SupplierRef: "missing"},
	}, nil)
	store.EXPECT().FetchSuppliers(gomock.Any()).Return(nil, nil)
	cache.EXPECT().Set(ctx, gomock.Nil(), gomock.Any()).Return(nil)

	got, err := svc.Fetch(ctx, nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !got.Empty() || got.UnlinkedCount != 1 {
		t.Fatalf("ссылка на неизвестного поставщика должна считаться несвязанной: %+v", got)
	}
}

func TestFetchService_RemoteNameTranslation(t *testing.T) {
	svc, store, cache := newService(t, map[string]string{"Assembly": "組立"})
	ctx := context.Background()

	records := []domain.OrderRecord{
		{ID: "rec-1", SupplierRef: "sup-1", Departments: []string{"組立", "Paint"}},
	}
	suppliers := []domain.Supplier{{ID: "sup-1", Name: "Supplier A"}}

	cache.EXPECT().Get(ctx, []string{"Assembly", "Paint"}).Return(nil, false)
	// Переводится только имя из карты, остальные идут как есть.
	store.EXPECT().FetchOrders(gomock.Any(), []string{"組立", "Paint"}).Return(records, nil)
	store.EXPECT().FetchSuppliers(gomock.Any()).Return(suppliers, nil)
	cache.EXPECT().Set(ctx, []string{"Assembly", "Paint"}, gomock.Any()).Return(nil)

	got, err := svc.Fetch(ctx, []string{"Assembly", "Paint"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	// Теги позиций возвращаются в отображаемых именах: от них зависят
	// выбор отдела, номер указания и подпапка сохранения.
	line := got.Orders[0]
	if len(line.Departments) != 2 || line.Departments[0] != "Assembly" || line.Departments[1] != "Paint" {
		t.Fatalf("теги должны переводиться обратно в отображаемые имена: %v", line.Departments)
	}
	if dept := domain.ResolveDepartment([]string{"Assembly"}, got.Orders); dept != "Assembly" {
		t.Fatalf("отдел должен совпадать с фильтром пользователя, получили %q", dept)
	}
}

func TestFetchService_StoreError(t *testing.T) {
	svc, store, cache := newService(t, nil)
	ctx := context.Background()

	wantErr := errors.New("boom")
	cache.EXPECT().Get(ctx, gomock.Nil()).Return(nil, false)
	store.EXPECT().FetchOrders(gomock.Any(), gomock.Nil()).Return(nil, wantErr)
	store.EXPECT().FetchSuppliers(gomock.Any()).Return(nil, nil)

	if _, err := svc.Fetch(ctx, nil); !errors.Is(err, wantErr) {
		t.Fatalf("ожидали проброс ошибки хранилища, получили %v", err)
	}
}

func TestFetchService_Refresh_BypassesCacheGet(t *testing.T) {
	svc, store, cache := newService(t, nil)
	ctx := context.Background()

	store.EXPECT().FetchOrders(gomock.Any(), gomock.Nil()).Return(nil, nil)
	store.EXPECT().FetchSuppliers(gomock.Any()).Return(nil, nil)
	cache.EXPECT().Set(ctx, gomock.Nil(), gomock.Any()).Return(nil)

	if _, err := svc.Refresh(ctx, nil); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
}
