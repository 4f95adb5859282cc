package app

import "orderdesk/internal/domain"

// View — интерфейс отображения. Все методы вызываются только из цикла
// событий; реализация не обязана быть потокобезопасной.
type View interface {
	// Log — строка в журнал интерфейса.
	Log(text string)

	// ShowData — показать результат выборки.
	ShowData(result *domain.FetchResult)

	// ShowPreview — показать предпросмотр документа поставщика.
	ShowPreview(supplier, path string)

	// ClearPreview — скрыть предпросмотр и запретить отправку.
	ClearPreview()

	// SetBusy — заблокировать/разблокировать элементы управления.
	SetBusy(busy bool)

	// MarkSent — пометить поставщика отправленным в списке.
	MarkSent(supplier string)

	// ShowError — сообщение об ошибке с подсказкой по устранению.
	ShowError(message, hint string)

	// ConfirmSend — подтверждение отправки письма.
	ConfirmSend(supplier, recipient string) bool

	// ConfirmStamp — подтверждение простановки даты заказа после отправки.
	ConfirmStamp(supplier string) bool
}
