package bridge

import "strings"

// LogWriter — io.Writer, превращающий строки в LogMessage.
// Позволяет направить вывод фоновой задачи в журнал интерфейса.
type LogWriter struct {
	b *Bridge
}

// NewLogWriter создает writer поверх моста.
func NewLogWriter(b *Bridge) *LogWriter {
	return &LogWriter{b: b}
}

// Write отправляет каждую непустую строку отдельным сообщением.
func (w *LogWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			w.b.Post(LogMessage{Text: line})
		}
	}
	return len(p), nil
}
