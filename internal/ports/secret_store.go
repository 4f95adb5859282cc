package ports

// SecretStore — хранилище секретов платформы (пароли почтовых аккаунтов).
// Secret возвращает (секрет, true, nil) при наличии; (,"", false, nil) —
// секрет не сохранён; ошибка — хранилище недоступно.
type SecretStore interface {
	Secret(account string) (string, bool, error)
}
