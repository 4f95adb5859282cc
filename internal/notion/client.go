package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"orderdesk/internal/domain"
	"orderdesk/internal/ports"
	"orderdesk/pkg/metrics"
	"orderdesk/pkg/retry"
)

const apiVersion = "2022-06-28"

// Имена свойств в удалённых таблицах.
const (
	propOrderStatus = "Order Status" // formula, значение содержит needsOrderMark
	propDepartments = "Departments"  // multi_select
	propSupplierRef = "Supplier"     // relation на таблицу поставщиков
	propMaker       = "Maker"        // rich_text
	propPartNumber  = "Part Number"  // rich_text
	propQuantity    = "Quantity"     // number
	propRemarks     = "Remarks"      // rich_text
	propOrderedDate = "Ordered Date" // date

	propSupplierName = "Name"     // title
	propContact      = "Contact"  // rich_text
	propEmail        = "Email"    // email
	propEmailCC      = "Email CC" // email

	needsOrderMark = "Needs Order"
)

// Config — параметры доступа к удалённой базе.
type Config struct {
	Token       string
	OrdersDB    string
	SuppliersDB string
	BaseURL     string
	Timeout     time.Duration
	Retry       retry.Policy
}

// Client — HTTP-клиент удалённой базы рабочего пространства.
// Все запросы к API сериализуются мьютексом: удалённый сервис ограничивает
// частоту обращений, а клиент делится между конкурентными выборками.
type Client struct {
	cfg   Config
	httpc *http.Client
	mu    sync.Mutex
	log   ports.Logger
}

var _ ports.RemoteStore = (*Client)(nil)

// New создает клиент. Полноту конфигурации проверяют сами операции.
func New(cfg Config, log ports.Logger) *Client {
	return &Client{
		cfg:   cfg,
		httpc: &http.Client{Timeout: cfg.Timeout},
		log:   log,
	}
}

func (c *Client) configured() bool {
	return c.cfg.Token != "" && c.cfg.OrdersDB != "" && c.cfg.SuppliersDB != ""
}

// FetchOrders возвращает записи заказов со статусом «требует заказа»,
// отфильтрованные по отделам. При сбое страницы возвращается частичный
// результат без ошибки.
func (c *Client) FetchOrders(ctx context.Context, departments []string) ([]domain.OrderRecord, error) {
	if !c.configured() {
		return nil, ports.ErrNotConfigured
	}

	pages := c.fetchAll(ctx, "orders", c.cfg.OrdersDB, ordersFilter(departments))

	records := make([]domain.OrderRecord, 0, len(pages))
	for _, page := range pages {
		records = append(records, orderFromPage(page))
	}
	return records, nil
}

// FetchSuppliers возвращает все записи таблицы поставщиков.
func (c *Client) FetchSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	if !c.configured() {
		return nil, ports.ErrNotConfigured
	}

	pages := c.fetchAll(ctx, "suppliers", c.cfg.SuppliersDB, nil)

	suppliers := make([]domain.Supplier, 0, len(pages))
	for _, page := range pages {
		suppliers = append(suppliers, supplierFromPage(page))
	}
	return suppliers, nil
}

// StampOrdered проставляет дату заказа (без времени) на одной записи.
func (c *Client) StampOrdered(ctx context.Context, recordID string, day time.Time) error {
	if !c.configured() {
		return ports.ErrNotConfigured
	}

	body := map[string]any{
		"properties": map[string]any{
			propOrderedDate: map[string]any{
				"date": map[string]any{"start": day.Format("2006-01-02")},
			},
		},
	}

	err := c.do(ctx, http.MethodPatch, "/v1/pages/"+recordID, body, nil)
	if err != nil {
		metrics.RemoteMutations.WithLabelValues("failed").Inc()
		return fmt.Errorf("stamp ordered %s: %w", recordID, err)
	}

	metrics.RemoteMutations.WithLabelValues("ok").Inc()
	return nil
}

// ordersFilter строит JSON-фильтр запроса: базовое условие по формуле статуса,
// при непустом списке отделов — И с ИЛИ-набором условий по multi_select.
func ordersFilter(departments []string) map[string]any {
	base := map[string]any{
		"property": propOrderStatus,
		"formula":  map[string]any{"string": map[string]any{"contains": needsOrderMark}},
	}
	if len(departments) == 0 {
		return base
	}

	deptFilters := make([]map[string]any, 0, len(departments))
	for _, name := range departments {
		deptFilters = append(deptFilters, map[string]any{
			"property":     propDepartments,
			"multi_select": map[string]any{"contains": name},
		})
	}

	var deptCond any = deptFilters[0]
	if len(deptFilters) > 1 {
		deptCond = map[string]any{"or": deptFilters}
	}
	return map[string]any{"and": []any{base, deptCond}}
}

// fetchAll выгружает все страницы таблицы по курсору. Каждая страница
// запрашивается с повторами; если повторы исчерпаны, возвращается то,
// что успели собрать.
func (c *Client) fetchAll(ctx context.Context, table, databaseID string, filter map[string]any) []pageObject {
	var (
		all    []pageObject
		cursor string
	)

	for {
		body := map[string]any{}
		if filter != nil {
			body["filter"] = filter
		}
		if cursor != "" {
			body["start_cursor"] = cursor
		}

		var resp queryResponse
		err := c.cfg.Retry.Do(ctx, func() error {
			reqErr := c.do(ctx, http.MethodPost, "/v1/databases/"+databaseID+"/query", body, &resp)
			if reqErr != nil {
				metrics.RemotePageRetries.WithLabelValues(table).Inc()
			}
			return reqErr
		})
		if err != nil {
			c.log.Warnf(ctx, "выгрузка таблицы %s прервана, отдаем частичный результат (%d записей): %v",
				table, len(all), err)
			return all
		}

		all = append(all, resp.Results...)
		metrics.RemotePagesFetched.WithLabelValues(table).Inc()

		if !resp.HasMore || resp.NextCursor == "" {
			return all
		}
		cursor = resp.NextCursor
	}
}

// do выполняет один HTTP-запрос к API под мьютексом клиента.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, payload)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
