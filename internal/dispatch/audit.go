package dispatch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// auditLog — журнал отправок в TSV: время, статус, поставщик, детали.
// Сбой записи журнала не прерывает работу пользователя.
type auditLog struct {
	path string
	now  func() time.Time
}

func newAuditLog(path string) *auditLog {
	return &auditLog{path: path, now: time.Now}
}

func (a *auditLog) append(status, supplier, detail string) {
	if a.path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		return
	}

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	line := fmt.Sprintf("%s\t%s\t%s\t%s\n",
		a.now().Format("2006-01-02 15:04:05"),
		status,
		flatten(supplier),
		flatten(detail),
	)
	_, _ = f.WriteString(line)
}

func flatten(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.TrimSpace(s)
}
