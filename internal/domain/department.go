package domain

// ResolveDepartment — выбирает отдел для документа/письма поставщика.
// Предпочтение: первый отдел из активного фильтра пользователя, который
// встречается в тегах позиций; иначе — первый тег, присутствующий в позициях.
// Порядок selected задаёт приоритет.
func ResolveDepartment(selected []string, lines []OrderLine) string {
	present := departmentsOf(lines)
	for _, dept := range selected {
		for _, have := range present {
			if dept == have {
				return dept
			}
		}
	}
	if len(present) > 0 {
		return present[0]
	}
	return ""
}

// departmentsOf — уникальные теги отделов в порядке появления.
func departmentsOf(lines []OrderLine) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 4)
	for _, line := range lines {
		for _, dept := range line.Departments {
			if dept == "" {
				continue
			}
			if _, ok := seen[dept]; ok {
				continue
			}
			seen[dept] = struct{}{}
			out = append(out, dept)
		}
	}
	return out
}
