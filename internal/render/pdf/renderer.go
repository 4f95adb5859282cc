package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/go-pdf/fpdf"

	"orderdesk/internal/domain"
	"orderdesk/internal/ports"
	"orderdesk/pkg/metrics"
)

// Company — реквизиты компании для шапки документа.
type Company struct {
	Name    string
	Address string
	Phone   string
	Fax     string
	URL     string
}

// Renderer генерирует документ заказа (A4, книжная ориентация).
type Renderer struct {
	company Company
	now     func() time.Time
}

var _ ports.DocumentRenderer = (*Renderer)(nil)

// NewRenderer — DI-конструктор.
func NewRenderer(company Company) *Renderer {
	return &Renderer{company: company, now: time.Now}
}

var unsafeFilenameChars = regexp.MustCompile(`[\\/:*?"<>|]`)

// Filename строит имя файла документа: метка времени, очищенное имя
// поставщика, фиксированный суффикс.
func Filename(supplier string, at time.Time) string {
	safe := unsafeFilenameChars.ReplaceAllString(supplier, "_")
	return fmt.Sprintf("%s_%s_order.pdf", at.Format("20060102150405"), safe)
}

// Render создает PDF в job.OutputDir и возвращает путь к файлу.
func (r *Renderer) Render(_ context.Context, job domain.RenderJob) (string, error) {
	if job.OutputDir == "" {
		metrics.DocumentsRendered.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("render for %s: output dir is empty", job.Supplier.Name)
	}
	if err := os.MkdirAll(job.OutputDir, 0o755); err != nil {
		metrics.DocumentsRendered.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("render for %s: %w", job.Supplier.Name, err)
	}

	now := r.now()
	path := filepath.Join(job.OutputDir, Filename(job.Supplier.Name, now))

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(15, 15, 15)
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()

	r.writeHeader(doc, job, now)
	r.writeGreeting(doc)
	r.writeItems(doc, job.Items)

	if err := doc.OutputFileAndClose(path); err != nil {
		metrics.DocumentsRendered.WithLabelValues("failed").Inc()
		return "", fmt.Errorf("render for %s: %w", job.Supplier.Name, err)
	}

	metrics.DocumentsRendered.WithLabelValues("ok").Inc()
	return path, nil
}

// writeHeader: дата выпуска справа, заголовок по центру, адресат слева
// и блок отправителя справа.
func (r *Renderer) writeHeader(doc *fpdf.Fpdf, job domain.RenderJob, now time.Time) {
	doc.SetFont("Arial", "", 11)
	doc.CellFormat(180, 6, "Issued: "+now.Format("2006/01/02"), "", 1, "R", false, 0, "")

	doc.SetFont("Arial", "B", 22)
	doc.CellFormat(180, 12, "ORDER FORM", "", 1, "C", false, 0, "")
	doc.Ln(6)

	// Адресат: имя поставщика и контактное лицо с отступом.
	leftX := doc.GetX()
	topY := doc.GetY()
	doc.SetFont("Arial", "", 14)
	doc.CellFormat(110, 7, "To: "+job.Supplier.Name, "", 1, "L", false, 0, "")
	if job.Supplier.Contact != "" {
		doc.SetX(leftX + 12)
		doc.CellFormat(98, 7, "Attn: "+job.Supplier.Contact, "", 1, "L", false, 0, "")
	}

	// Блок отправителя в правой колонке.
	sender := job.Sender
	phone := r.company.Phone
	if sender.GuidanceNumber != "" {
		phone = fmt.Sprintf("%s (guidance %s)", phone, sender.GuidanceNumber)
	}
	lines := []string{
		r.company.Name,
		r.company.Address,
		"TEL: " + phone,
	}
	if r.company.Fax != "" {
		lines = append(lines, "FAX: "+r.company.Fax)
	}
	if r.company.URL != "" {
		lines = append(lines, "URL: "+r.company.URL)
	}
	lines = append(lines,
		fmt.Sprintf("Contact: %s %s", sender.Department, sender.DisplayName),
		"Email: "+sender.Email,
	)

	doc.SetFont("Arial", "", 11)
	doc.SetXY(leftX+110, topY)
	for _, line := range lines {
		doc.SetX(leftX + 110)
		doc.CellFormat(70, 6, line, "", 1, "L", false, 0, "")
	}
	doc.Ln(8)
}

func (r *Renderer) writeGreeting(doc *fpdf.Fpdf) {
	doc.SetFont("Arial", "", 11)
	doc.CellFormat(180, 6, "Please accept the following order.", "", 1, "L", false, 0, "")
	doc.CellFormat(180, 6, "Kindly confirm the delivery dates and reply within 2 business days.", "", 1, "L", false, 0, "")
	doc.Ln(5)
}

// writeItems: таблица позиций с пустой колонкой «срок поставки» под ответ.
func (r *Renderer) writeItems(doc *fpdf.Fpdf, items []domain.OrderLine) {
	type column struct {
		title string
		width float64
		align string
	}
	columns := []column{
		{"Part Number", 55, "L"},
		{"Maker", 40, "L"},
		{"Qty", 15, "C"},
		{"Reply Due", 25, "C"},
		{"Remarks", 45, "L"},
	}

	doc.SetFont("Arial", "B", 11)
	for _, col := range columns {
		doc.CellFormat(col.width, 8, col.title, "1", 0, "C", false, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Arial", "", 11)
	for _, item := range items {
		values := []string{
			item.PartNumber,
			item.Maker,
			fmt.Sprintf("%d", item.Quantity),
			"", // заполняет поставщик
			item.Remarks,
		}
		for i, col := range columns {
			doc.CellFormat(col.width, 8, values[i], "1", 0, col.align, false, 0, "")
		}
		doc.Ln(-1)
	}
}
