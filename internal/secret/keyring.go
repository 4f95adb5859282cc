package secret

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"orderdesk/internal/ports"
)

// serviceName — имя сервиса в хранилище учетных данных ОС.
const serviceName = "OrderDesk"

// Keyring — адаптер хранилища учетных данных ОС.
type Keyring struct {
	service string
}

var _ ports.SecretStore = (*Keyring)(nil)

// NewKeyring создает адаптер со стандартным именем сервиса.
func NewKeyring() *Keyring {
	return &Keyring{service: serviceName}
}

// Secret возвращает пароль учетной записи. Отсутствие записи — не ошибка.
func (k *Keyring) Secret(account string) (string, bool, error) {
	password, err := keyring.Get(k.service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("keyring get %s: %w", account, err)
	}
	return password, true, nil
}

// Store сохраняет пароль учетной записи.
func (k *Keyring) Store(account, password string) error {
	if err := keyring.Set(k.service, account, password); err != nil {
		return fmt.Errorf("keyring set %s: %w", account, err)
	}
	return nil
}

// Delete удаляет пароль учетной записи.
func (k *Keyring) Delete(account string) error {
	if err := keyring.Delete(k.service, account); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring delete %s: %w", account, err)
	}
	return nil
}
