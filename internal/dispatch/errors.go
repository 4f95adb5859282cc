package dispatch

import (
	"errors"
	"fmt"
	"net"
	"net/textproto"
)

// Category — класс сбоя отправки. Категория, а не текст ошибки, определяет
// подсказку пользователю и запись в журнале отправки.
type Category string

const (
	CategoryAuth              Category = "auth"
	CategoryConnection        Category = "connection"
	CategoryMissingRecipient  Category = "missing_recipient"
	CategoryMissingDocument   Category = "missing_document"
	CategoryMissingCredential Category = "missing_credential"
	CategoryUnexpected        Category = "unexpected"
)

// Hint — подсказка по устранению для пользователя.
func (c Category) Hint() string {
	switch c {
	case CategoryAuth:
		return "Не удалось войти на SMTP-сервер. Проверьте логин и пароль учетной записи."
	case CategoryConnection:
		return "SMTP-сервер недоступен. Проверьте сеть и параметры сервера."
	case CategoryMissingRecipient:
		return "У поставщика не задан адрес получателя. Заполните поле Email в таблице поставщиков."
	case CategoryMissingDocument:
		return "Документ заказа не найден. Сформируйте документ заново."
	case CategoryMissingCredential:
		return "Пароль учетной записи не сохранен в хранилище ОС. Сохраните пароль в настройках."
	default:
		return "Непредвиденная ошибка отправки. Подробности в журнале."
	}
}

// Error — сбой отправки с категорией.
type Error struct {
	Category Category
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("send failed (%s): %v", e.Category, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(category Category, format string, args ...any) *Error {
	return &Error{Category: category, Err: fmt.Errorf(format, args...)}
}

// categorize относит ошибку SMTP-диалога к категории.
// Коды 53x — отказ аутентификации, сетевые ошибки — недоступность сервера.
func categorize(err error) *Error {
	var sendErr *Error
	if errors.As(err, &sendErr) {
		return sendErr
	}

	var protoErr *textproto.Error
	if errors.As(err, &protoErr) && protoErr.Code >= 530 && protoErr.Code < 540 {
		return &Error{Category: CategoryAuth, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return &Error{Category: CategoryConnection, Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &Error{Category: CategoryConnection, Err: err}
	}

	return &Error{Category: CategoryUnexpected, Err: err}
}
