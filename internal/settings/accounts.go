package settings

// DefaultAccount выбирает учетную запись отправителя по выбранным отделам.
// Порядок предпочтения:
//  1. первый выбранный отдел с настроенной записью по умолчанию;
//  2. любая настроенная запись по умолчанию (в порядке списка отделов);
//  3. первая учетная запись по алфавиту ключей.
//
// Возвращает ключ записи; пустая строка — записей нет вообще.
func (s *Settings) DefaultAccount(selected []string) string {
	for _, dept := range selected {
		if key, ok := s.DepartmentDefaults[dept]; ok {
			if _, exists := s.Accounts[key]; exists {
				return key
			}
		}
	}

	for _, dept := range s.Departments {
		if key, ok := s.DepartmentDefaults[dept]; ok {
			if _, exists := s.Accounts[key]; exists {
				return key
			}
		}
	}

	if keys := s.AccountKeys(); len(keys) > 0 {
		return keys[0]
	}
	return ""
}
