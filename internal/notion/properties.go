package notion

import (
	"strings"

	"orderdesk/internal/domain"
)

// Формы ответа API. Описаны только используемые поля.

type queryResponse struct {
	Results    []pageObject `json:"results"`
	HasMore    bool         `json:"has_more"`
	NextCursor string       `json:"next_cursor"`
}

type pageObject struct {
	ID         string              `json:"id"`
	Properties map[string]property `json:"properties"`
}

type property struct {
	Title       []textFragment `json:"title"`
	RichText    []textFragment `json:"rich_text"`
	Number      *float64       `json:"number"`
	Email       *string        `json:"email"`
	MultiSelect []selectOption `json:"multi_select"`
	Relation    []relationRef  `json:"relation"`
}

type textFragment struct {
	PlainText string `json:"plain_text"`
}

type selectOption struct {
	Name string `json:"name"`
}

type relationRef struct {
	ID string `json:"id"`
}

// Извлечение значений свойств. Дефектное или отсутствующее свойство дает
// нулевое значение, а не ошибку.

func (p property) text() string {
	frags := p.RichText
	if len(frags) == 0 {
		frags = p.Title
	}
	var b strings.Builder
	for _, f := range frags {
		b.WriteString(f.PlainText)
	}
	return strings.TrimSpace(b.String())
}

func (p property) number() int {
	if p.Number == nil {
		return 0
	}
	return int(*p.Number)
}

func (p property) email() string {
	if p.Email == nil {
		return ""
	}
	return strings.TrimSpace(*p.Email)
}

func (p property) tags() []string {
	var names []string
	for _, opt := range p.MultiSelect {
		if name := strings.TrimSpace(opt.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (p property) firstRelation() string {
	if len(p.Relation) == 0 {
		return ""
	}
	return p.Relation[0].ID
}

func orderFromPage(page pageObject) domain.OrderRecord {
	props := page.Properties
	return domain.OrderRecord{
		ID:          page.ID,
		Maker:       props[propMaker].text(),
		PartNumber:  props[propPartNumber].text(),
		Quantity:    props[propQuantity].number(),
		Remarks:     props[propRemarks].text(),
		Departments: props[propDepartments].tags(),
		SupplierRef: props[propSupplierRef].firstRelation(),
	}
}

func supplierFromPage(page pageObject) domain.Supplier {
	props := page.Properties
	return domain.Supplier{
		ID:      page.ID,
		Name:    props[propSupplierName].text(),
		Contact: props[propContact].text(),
		EmailTo: props[propEmail].email(),
		EmailCC: props[propEmailCC].email(),
	}
}
