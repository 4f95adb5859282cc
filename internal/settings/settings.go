package settings

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Settings — пользовательские настройки рабочего места: компания,
// учетные записи отправителей, отделы и их привязки.
type Settings struct {
	Company  Company            `toml:"company"`
	Accounts map[string]Account `toml:"accounts" validate:"min=1,dive"`

	// Departments — отображаемые имена отделов в порядке показа.
	Departments []string `toml:"departments" validate:"min=1"`

	// DepartmentDefaults — отдел -> ключ учетной записи по умолчанию.
	DepartmentDefaults map[string]string `toml:"department_defaults"`

	// GuidanceNumbers — отдел -> номер указания для документа заказа.
	GuidanceNumbers map[string]string `toml:"guidance_numbers"`

	// RemoteNames — отображаемое имя отдела -> имя в удалённой базе.
	// Пустая карта означает совпадение имен.
	RemoteNames map[string]string `toml:"remote_names"`
}

// Company — реквизиты компании для подписи письма и документа.
type Company struct {
	Name    string `toml:"name" validate:"required"`
	Address string `toml:"address"`
	Phone   string `toml:"phone"`
	Fax     string `toml:"fax"`
	URL     string `toml:"url"`
}

// Account — учетная запись отправителя.
type Account struct {
	DisplayName string `toml:"display_name" validate:"required"`
	Address     string `toml:"address" validate:"required,email"`
}

// Load читает и валидирует настройки из TOML-файла.
func Load(path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}

	var s Settings
	if err := toml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("validate settings %s: %w", path, err)
	}
	return &s, nil
}

// Validate проверяет структуру и согласованность привязок.
func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return err
	}

	for dept, key := range s.DepartmentDefaults {
		if _, ok := s.Accounts[key]; !ok {
			return fmt.Errorf("department %q references unknown account %q", dept, key)
		}
	}
	return nil
}

// AccountKeys — ключи учетных записей в стабильном порядке.
func (s *Settings) AccountKeys() []string {
	keys := make([]string, 0, len(s.Accounts))
	for k := range s.Accounts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GuidanceNumber — номер указания для отдела (пустая строка, если не задан).
func (s *Settings) GuidanceNumber(department string) string {
	return s.GuidanceNumbers[department]
}
