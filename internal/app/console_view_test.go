package app

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

// reply ждет, пока представление начнет ожидать ответа, и передает строку.
func reply(t *testing.T, v *ConsoleView, line string) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !v.AwaitingReply() {
		if time.Now().After(deadline) {
			t.Errorf("представление не ждет ответа")
			return
		}
		time.Sleep(time.Millisecond)
	}
	v.Reply(line)
}

func TestConsoleView_ConfirmViaReply(t *testing.T) {
	out := &bytes.Buffer{}
	v := NewConsoleView(out, false)

	go reply(t, v, "y")
	if !v.ConfirmSend("Supplier A", "a@example.com") {
		t.Fatalf("ответ y должен подтверждать отправку")
	}
	if v.AwaitingReply() {
		t.Fatalf("после ответа ожидание должно сниматься")
	}
	if !strings.Contains(out.String(), "Supplier A") {
		t.Fatalf("вопрос должен называть поставщика: %q", out.String())
	}

	go reply(t, v, "n")
	if v.ConfirmStamp("Supplier A") {
		t.Fatalf("ответ n должен отклонять простановку")
	}
}

func TestConsoleView_AutoYesSkipsPrompt(t *testing.T) {
	out := &bytes.Buffer{}
	v := NewConsoleView(out, true)

	if !v.ConfirmSend("Supplier A", "a@example.com") {
		t.Fatalf("autoYes должен подтверждать без вопроса")
	}
	if out.Len() != 0 {
		t.Fatalf("autoYes не должен печатать вопрос: %q", out.String())
	}
}
