package bridge

import (
	"testing"

	"orderdesk/internal/domain"
)

func TestBridge_DrainEmpty(t *testing.T) {
	b := New(8)

	if got := b.Drain(); got != nil {
		t.Fatalf("пустой мост должен возвращать nil, получили %v", got)
	}
}

func TestBridge_PreservesSenderOrder(t *testing.T) {
	b := New(8)

	b.Post(LogMessage{Text: "первое"})
	b.Post(DataReady{Result: &domain.FetchResult{}})
	b.Post(TaskDone{})

	msgs := b.Drain()
	if len(msgs) != 3 {
		t.Fatalf("ожидали 3 сообщения, получили %d", len(msgs))
	}
	if _, ok := msgs[0].(LogMessage); !ok {
		t.Fatalf("ожидали LogMessage первым, получили %T", msgs[0])
	}
	if _, ok := msgs[1].(DataReady); !ok {
		t.Fatalf("ожидали DataReady вторым, получили %T", msgs[1])
	}
	if _, ok := msgs[2].(TaskDone); !ok {
		t.Fatalf("ожидали TaskDone третьим, получили %T", msgs[2])
	}
}

func TestBridge_DrainIsNonBlocking(t *testing.T) {
	b := New(2)
	b.Post(LogMessage{Text: "x"})

	if got := len(b.Drain()); got != 1 {
		t.Fatalf("ожидали 1 сообщение, получили %d", got)
	}
	// Повторный Drain сразу возвращает пустой результат.
	if got := b.Drain(); got != nil {
		t.Fatalf("ожидали пустой результат, получили %v", got)
	}
}

func TestLogWriter_SplitsLines(t *testing.T) {
	b := New(8)
	w := NewLogWriter(b)

	if _, err := w.Write([]byte("первая строка\nвторая строка\n\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	msgs := b.Drain()
	if len(msgs) != 2 {
		t.Fatalf("ожидали 2 сообщения, получили %d", len(msgs))
	}
	if got := msgs[0].(LogMessage).Text; got != "первая строка" {
		t.Fatalf("неожиданный текст: %q", got)
	}
}
