package app

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync/atomic"

	"orderdesk/internal/domain"
)

// ConsoleView — консольная реализация View. Stdin принадлежит циклу
// команд, поэтому ответы на подтверждения приходят через Reply: пока
// AwaitingReply возвращает true, читатель stdin передает строки сюда,
// а не разбирает их как команды. В режиме autoYes подтверждения
// отвечаются утвердительно без вопроса.
type ConsoleView struct {
	out     io.Writer
	autoYes bool

	awaiting atomic.Bool
	replies  chan string
}

var _ View = (*ConsoleView)(nil)

// NewConsoleView — DI-конструктор.
func NewConsoleView(out io.Writer, autoYes bool) *ConsoleView {
	return &ConsoleView{
		out:     out,
		autoYes: autoYes,
		replies: make(chan string),
	}
}

// AwaitingReply — ожидается ли сейчас ответ на подтверждение.
func (v *ConsoleView) AwaitingReply() bool {
	return v.awaiting.Load()
}

// Reply передает строку пользователя ожидающему подтверждению.
// Блокируется до приема; вызывать только после AwaitingReply() == true.
func (v *ConsoleView) Reply(line string) {
	v.replies <- line
}

func (v *ConsoleView) Log(text string) {
	fmt.Fprintln(v.out, text)
}

func (v *ConsoleView) ShowData(result *domain.FetchResult) {
	suppliers := make([]string, 0, len(result.BySupplier))
	for name := range result.BySupplier {
		suppliers = append(suppliers, name)
	}
	sort.Strings(suppliers)

	fmt.Fprintf(v.out, "поставщики (%d):\n", len(suppliers))
	for _, name := range suppliers {
		fmt.Fprintf(v.out, "  %-30s %d позиций\n", name, len(result.BySupplier[name]))
	}
}

func (v *ConsoleView) ShowPreview(supplier, path string) {
	fmt.Fprintf(v.out, "предпросмотр «%s»: %s\n", supplier, path)
}

func (v *ConsoleView) ClearPreview() {}

func (v *ConsoleView) SetBusy(busy bool) {
	if busy {
		fmt.Fprintln(v.out, "...")
	}
}

func (v *ConsoleView) MarkSent(supplier string) {
	fmt.Fprintf(v.out, "[отправлено] %s\n", supplier)
}

func (v *ConsoleView) ShowError(message, hint string) {
	fmt.Fprintf(v.out, "ошибка: %s\n", message)
	if hint != "" {
		fmt.Fprintf(v.out, "подсказка: %s\n", hint)
	}
}

func (v *ConsoleView) ConfirmSend(supplier, recipient string) bool {
	return v.confirm(fmt.Sprintf("отправить письмо для «%s» на %s? [y/N] ", supplier, recipient))
}

func (v *ConsoleView) ConfirmStamp(supplier string) bool {
	return v.confirm(fmt.Sprintf("проставить дату заказа на записях «%s»? [y/N] ", supplier))
}

func (v *ConsoleView) confirm(prompt string) bool {
	if v.autoYes {
		return true
	}

	v.awaiting.Store(true)
	defer v.awaiting.Store(false)

	fmt.Fprint(v.out, prompt)
	answer := strings.ToLower(strings.TrimSpace(<-v.replies))
	return answer == "y" || answer == "yes"
}
