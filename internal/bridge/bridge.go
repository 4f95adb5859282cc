package bridge

import (
	"orderdesk/pkg/metrics"
)

// Bridge — буферизованный канал сообщений от рабочих горутин к циклу
// интерфейса. Сообщения одного отправителя сохраняют порядок отправки.
// Потребитель один: цикл интерфейса опрашивает мост по тикеру.
type Bridge struct {
	ch chan Message
}

// New создает мост с заданным размером буфера.
func New(buffer int) *Bridge {
	if buffer < 1 {
		buffer = 1
	}
	return &Bridge{ch: make(chan Message, buffer)}
}

// Post отправляет сообщение. Блокируется при заполненном буфере:
// рабочая горутина подождет, пока цикл интерфейса разгребет очередь.
func (b *Bridge) Post(msg Message) {
	b.ch <- msg
	metrics.BridgeMessages.WithLabelValues(kind(msg)).Inc()
}

// Drain забирает все накопившиеся сообщения без блокировки.
// Возвращает nil, если сообщений нет.
func (b *Bridge) Drain() []Message {
	var out []Message
	for {
		select {
		case msg := <-b.ch:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func kind(msg Message) string {
	switch msg.(type) {
	case LogMessage:
		return "log"
	case DataReady:
		return "data_ready"
	case PreviewReady:
		return "preview_ready"
	case SendDone:
		return "send_done"
	case MutationAck:
		return "mutation_ack"
	case SendFailed:
		return "send_failed"
	case TaskDone:
		return "task_done"
	default:
		return "unknown"
	}
}
