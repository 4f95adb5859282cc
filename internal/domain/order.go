package domain

// OrderRecord — строка таблицы заказов до связывания с поставщиком.
// Поля с дефектами в удалённой записи приводятся к нулевым значениям,
// а не к ошибке: джойн не должен падать из-за одной записи.
type OrderRecord struct {
	ID          string   // идентификатор записи в удалённой базе
	Maker       string   // производитель
	PartNumber  string   // артикул
	Quantity    int      // количество (>= 0)
	Remarks     string   // примечания
	Departments []string // теги отделов (отображаемые имена)
	SupplierRef string   // ссылка на запись поставщика; пустая = не связана
}

// Supplier — запись поставщика из второй таблицы. После загрузки не изменяется.
type Supplier struct {
	ID      string
	Name    string // отображаемое имя (ключ группировки)
	Contact string // контактное лицо
	EmailTo string
	EmailCC string
}

// OrderLine — позиция к заказу, уже связанная с поставщиком.
type OrderLine struct {
	RecordID    string
	Maker       string
	PartNumber  string
	Quantity    int
	Remarks     string
	Departments []string
	SupplierID  string
}

// FetchResult — полный результат выборки и джойна за один цикл.
// Инвариант: каждая связанная позиция входит ровно в одну группу;
// UnlinkedCount + len(Orders) == числу исходных записей заказов.
type FetchResult struct {
	Orders        []OrderLine
	UnlinkedCount int
	BySupplier    map[string][]OrderLine
	Suppliers     map[string]Supplier // ключ — имя поставщика
}

// Empty — true, если выборка не принесла ни одной связанной позиции.
func (r *FetchResult) Empty() bool {
	return r == nil || len(r.Orders) == 0
}

// RecordIDs — идентификаторы записей всех позиций одного поставщика.
func (r *FetchResult) RecordIDs(supplier string) []string {
	lines := r.BySupplier[supplier]
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.RecordID)
	}
	return ids
}
