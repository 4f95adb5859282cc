package bridge

import "orderdesk/internal/domain"

// Message — сообщение рабочей горутины для цикла интерфейса.
// Закрытое множество типов: обработчик разбирает его type switch'ем.
type Message interface{ isMessage() }

// LogMessage — строка для журнала интерфейса.
type LogMessage struct {
	Text string
}

// DataReady — выборка завершена, данные готовы к показу.
type DataReady struct {
	Result *domain.FetchResult
}

// PreviewReady — документ предпросмотра по одному поставщику готов.
type PreviewReady struct {
	Supplier string
	Path     string
	Err      error
}

// SendDone — письмо поставщику отправлено; записи ждут простановки даты.
type SendDone struct {
	Supplier  string
	RecordIDs []string
}

// MutationAck — итог фоновой простановки дат по записям.
type MutationAck struct {
	Attempted int
	Failed    int
}

// SendFailed — отправка письма не удалась; категория определяет подсказку.
type SendFailed struct {
	Supplier string
	Category string
	Detail   string
}

// TaskDone — фоновая задача завершена, интерфейс можно разблокировать.
type TaskDone struct {
	Err error
}

func (LogMessage) isMessage()   {}
func (DataReady) isMessage()    {}
func (PreviewReady) isMessage() {}
func (SendDone) isMessage()     {}
func (MutationAck) isMessage()  {}
func (SendFailed) isMessage()   {}
func (TaskDone) isMessage()     {}
