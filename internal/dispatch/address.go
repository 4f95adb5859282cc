package dispatch

import (
	"net/mail"
	"strings"
)

// sanitizeHeader обрезает значение до первой строки: перевод строки в
// заголовке — инъекция.
func sanitizeHeader(value string) string {
	for i, r := range value {
		if r == '\n' || r == '\r' {
			value = value[:i]
			break
		}
	}
	return strings.TrimSpace(value)
}

// extractAddresses разбирает список адресов, разделенных запятой или
// точкой с запятой. Невалидные куски молча отбрасываются.
func extractAddresses(value string) []string {
	normalized := strings.ReplaceAll(sanitizeHeader(value), ";", ",")

	var out []string
	for _, chunk := range strings.Split(normalized, ",") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		addr, err := mail.ParseAddress(chunk)
		if err != nil {
			continue
		}
		out = append(out, addr.Address)
	}
	return out
}
