package domain

import "testing"

func linesWithDepartments(depts ...[]string) []OrderLine {
	lines := make([]OrderLine, 0, len(depts))
	for i, d := range depts {
		lines = append(lines, OrderLine{RecordID: string(rune('a' + i)), Departments: d})
	}
	return lines
}

func TestResolveDepartment_PrefersSelected(t *testing.T) {
	lines := linesWithDepartments([]string{"Support", "Sales"}, []string{"Sales"})

	got := ResolveDepartment([]string{"Sales", "Support"}, lines)
	if got != "Sales" {
		t.Fatalf("want Sales (first selected present in tags), got %q", got)
	}
}

// Порядок выбора задаётся порядком фильтра, а не порядком тегов.
func TestResolveDepartment_SelectionOrderWins(t *testing.T) {
	lines := linesWithDepartments([]string{"Support", "Sales"})

	if got := ResolveDepartment([]string{"Support", "Sales"}, lines); got != "Support" {
		t.Fatalf("want Support, got %q", got)
	}
	if got := ResolveDepartment([]string{"Sales", "Support"}, lines); got != "Sales" {
		t.Fatalf("want Sales, got %q", got)
	}
}

func TestResolveDepartment_FallbackToFirstTag(t *testing.T) {
	lines := linesWithDepartments([]string{"Warehouse"}, []string{"Support"})

	got := ResolveDepartment([]string{"Sales"}, lines)
	if got != "Warehouse" {
		t.Fatalf("want Warehouse (first tag present), got %q", got)
	}
}

func TestResolveDepartment_NoTags(t *testing.T) {
	lines := linesWithDepartments([]string{}, nil)

	if got := ResolveDepartment([]string{"Sales"}, lines); got != "" {
		t.Fatalf("want empty department, got %q", got)
	}
}
