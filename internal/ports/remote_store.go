package ports

import (
	"context"
	"errors"
	"time"

	"orderdesk/internal/domain"
)

// ErrNotConfigured — отсутствуют обязательные идентификаторы/токен удалённой базы.
// Ошибка конфигурации: операция не выполняется и не повторяется.
var ErrNotConfigured = errors.New("remote store is not configured")

// RemoteStore — доступ к удалённой базе рабочего пространства.
// Требования к реализации: пагинация и повторы скрыты внутри; частичный
// результат при сбое страницы считается финальным и НЕ является ошибкой;
// общий клиент сериализуется внутренним мьютексом (клиент не считается
// безопасным для нескоординированных конкурентных вызовов).
type RemoteStore interface {
	// FetchOrders — все записи таблицы заказов со статусом «требует заказа»,
	// отфильтрованные по отделам (пустой фильтр = без ограничения).
	// Имена отделов передаются в удалённой номенклатуре.
	FetchOrders(ctx context.Context, departments []string) ([]domain.OrderRecord, error)

	// FetchSuppliers — все записи таблицы поставщиков (без фильтра).
	FetchSuppliers(ctx context.Context) ([]domain.Supplier, error)

	// StampOrdered — проставить дату заказа (без времени) на одной записи.
	StampOrdered(ctx context.Context, recordID string, day time.Time) error
}
