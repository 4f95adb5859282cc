package notion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orderdesk/internal/ports"
	"orderdesk/pkg/retry"
)

type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cli := New(Config{
		Token:       "secret",
		OrdersDB:    "db-orders",
		SuppliersDB: "db-suppliers",
		BaseURL:     srv.URL,
		Timeout:     5 * time.Second,
		Retry:       retry.Policy{Attempts: 3, Delay: time.Millisecond},
	}, nopLogger{})
	return cli, srv
}

func orderPage(id, maker string) map[string]any {
	return map[string]any{
		"id": id,
		"properties": map[string]any{
			"Maker":       map[string]any{"rich_text": []map[string]any{{"plain_text": maker}}},
			"Part Number": map[string]any{"rich_text": []map[string]any{{"plain_text": "P-" + id}}},
			"Quantity":    map[string]any{"number": 3},
			"Departments": map[string]any{"multi_select": []map[string]any{{"name": "Assembly"}}},
			"Supplier":    map[string]any{"relation": []map[string]any{{"id": "sup-1"}}},
		},
	}
}

func TestClient_FetchOrders_Pagination(t *testing.T) {
	var cursors []string

	cli, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/databases/db-orders/query" {
			t.Errorf("неожиданный путь: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("неожиданный заголовок авторизации: %q", got)
		}

		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		cursor, _ := body["start_cursor"].(string)
		cursors = append(cursors, cursor)

		if cursor == "" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"results":     []any{orderPage("rec-1", "ACME")},
				"has_more":    true,
				"next_cursor": "cur-2",
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results":  []any{orderPage("rec-2", "Globex")},
			"has_more": false,
		})
	}))

	records, err := cli.FetchOrders(context.Background(), []string{"Assembly"})
	if err != nil {
		t.Fatalf("FetchOrders: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("ожидали 2 записи, получили %d", len(records))
	}
	if records[0].ID != "rec-1" || records[1].ID != "rec-2" {
		t.Fatalf("неожиданные записи: %+v", records)
	}
	if records[0].Maker != "ACME" || records[0].Quantity != 3 || records[0].SupplierRef != "sup-1" {
		t.Fatalf("неожиданные поля первой записи: %+v", records[0])
	}
	if len(cursors) != 2 || cursors[1] != "cur-2" {
		t.Fatalf("ожидали проход по курсору, cursors = %v", cursors)
	}
}

func TestClient_FetchOrders_RetryThenSucceed(t *testing.T) {
	var calls int

	cli, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results":  []any{orderPage("rec-1", "ACME")},
			"has_more": false,
		})
	}))

	records, err := cli.FetchOrders(context.Background(), nil)
	if err != nil {
		t.Fatalf("FetchOrders: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("ожидали 1 запись, получили %d", len(records))
	}
	if calls != 3 {
		t.Fatalf("ожидали 3 вызова (2 повтора), получили %d", calls)
	}
}

func TestClient_FetchOrders_PartialResultOnPageFailure(t *testing.T) {
	cli, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if cursor, _ := body["start_cursor"].(string); cursor != "" {
			// Вторая страница недоступна во всех попытках.
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results":     []any{orderPage("rec-1", "ACME")},
			"has_more":    true,
			"next_cursor": "cur-2",
		})
	}))

	records, err := cli.FetchOrders(context.Background(), nil)
	if err != nil {
		t.Fatalf("частичный результат не должен быть ошибкой: %v", err)
	}
	if len(records) != 1 || records[0].ID != "rec-1" {
		t.Fatalf("ожидали частичный результат из первой страницы, получили %+v", records)
	}
}

func TestClient_FetchOrders_DepartmentFilter(t *testing.T) {
	var filter map[string]any

	cli, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		filter, _ = body["filter"].(map[string]any)
		_ = json.NewEncoder(w).Encode(map[string]any{"results": []any{}, "has_more": false})
	}))

	if _, err := cli.FetchOrders(context.Background(), []string{"Assembly", "Paint"}); err != nil {
		t.Fatalf("FetchOrders: %v", err)
	}

	and, ok := filter["and"].([]any)
	if !ok || len(and) != 2 {
		t.Fatalf("ожидали условие and из двух частей, filter = %v", filter)
	}
	or, ok := and[1].(map[string]any)["or"].([]any)
	if !ok || len(or) != 2 {
		t.Fatalf("ожидали or по двум отделам, получили %v", and[1])
	}
}

func TestClient_FetchSuppliers(t *testing.T) {
	cli, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/databases/db-suppliers/query" {
			t.Errorf("неожиданный путь: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []any{map[string]any{
				"id": "sup-1",
				"properties": map[string]any{
					"Name":     map[string]any{"title": []map[string]any{{"plain_text": "Supplier A"}}},
					"Contact":  map[string]any{"rich_text": []map[string]any{{"plain_text": "Tanaka"}}},
					"Email":    map[string]any{"email": " a@example.com "},
					"Email CC": map[string]any{"email": "cc@example.com"},
				},
			}},
			"has_more": false,
		})
	}))

	suppliers, err := cli.FetchSuppliers(context.Background())
	if err != nil {
		t.Fatalf("FetchSuppliers: %v", err)
	}
	if len(suppliers) != 1 {
		t.Fatalf("ожидали 1 поставщика, получили %d", len(suppliers))
	}
	s := suppliers[0]
	if s.Name != "Supplier A" || s.Contact != "Tanaka" || s.EmailTo != "a@example.com" || s.EmailCC != "cc@example.com" {
		t.Fatalf("неожиданный поставщик: %+v", s)
	}
}

func TestClient_StampOrdered(t *testing.T) {
	var (
		method string
		path   string
		body   map[string]any
	)

	cli, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))

	day := time.Date(2025, 9, 25, 14, 30, 0, 0, time.UTC)
	if err := cli.StampOrdered(context.Background(), "rec-1", day); err != nil {
		t.Fatalf("StampOrdered: %v", err)
	}

	if method != http.MethodPatch || path != "/v1/pages/rec-1" {
		t.Fatalf("неожиданный запрос: %s %s", method, path)
	}
	props := body["properties"].(map[string]any)
	date := props["Ordered Date"].(map[string]any)["date"].(map[string]any)
	if date["start"] != "2025-09-25" {
		t.Fatalf("ожидали дату без времени, получили %v", date["start"])
	}
}

func TestClient_NotConfigured(t *testing.T) {
	cli := New(Config{}, nopLogger{})

	if _, err := cli.FetchOrders(context.Background(), nil); !errors.Is(err, ports.ErrNotConfigured) {
		t.Fatalf("ожидали ErrNotConfigured, получили %v", err)
	}
	if _, err := cli.FetchSuppliers(context.Background()); !errors.Is(err, ports.ErrNotConfigured) {
		t.Fatalf("ожидали ErrNotConfigured, получили %v", err)
	}
	if err := cli.StampOrdered(context.Background(), "rec-1", time.Now()); !errors.Is(err, ports.ErrNotConfigured) {
		t.Fatalf("ожидали ErrNotConfigured, получили %v", err)
	}
}
