package pregen

import (
	"context"
	"sort"
	"sync"

	"orderdesk/internal/domain"
	"orderdesk/internal/ports"
)

// Outcome — итог генерации документа по одному поставщику.
type Outcome struct {
	Supplier string
	Path     string
	Err      error
}

// Batch — задание на пакетную генерацию: по одному документу на поставщика.
type Batch struct {
	Result   *domain.FetchResult
	Selected []string // выбранные отделы, влияют на подпись документа

	// Sender — общая часть отправителя; отдел и номер указания
	// подставляются на каждого поставщика отдельно.
	Sender   domain.SenderIdentity
	Guidance func(department string) string

	OutputDir string

	// Progress вызывается по мере готовности документов (из рабочих
	// горутин). Может быть nil.
	Progress func(Outcome)
}

// Pool — ограниченный пул генерации документов. Размер пула — min(maxWorkers, n),
// но не меньше одного.
type Pool struct {
	renderer   ports.DocumentRenderer
	log        ports.Logger
	maxWorkers int
}

// New — DI-конструктор.
func New(renderer ports.DocumentRenderer, log ports.Logger, maxWorkers int) *Pool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Pool{renderer: renderer, log: log, maxWorkers: maxWorkers}
}

// RenderAll генерирует документы для всех поставщиков выборки и блокируется
// до завершения. Возвращает ровно по одному итогу на поставщика, в
// алфавитном порядке. Сбой одного документа не прерывает остальные.
func (p *Pool) RenderAll(ctx context.Context, batch Batch) []Outcome {
	suppliers := make([]string, 0, len(batch.Result.BySupplier))
	for name := range batch.Result.BySupplier {
		suppliers = append(suppliers, name)
	}
	sort.Strings(suppliers)

	if len(suppliers) == 0 {
		return nil
	}

	workers := p.maxWorkers
	if len(suppliers) < workers {
		workers = len(suppliers)
	}

	jobs := make(chan string)
	outcomes := make([]Outcome, len(suppliers))
	index := make(map[string]int, len(suppliers))
	for i, name := range suppliers {
		index[name] = i
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for name := range jobs {
				outcome := p.renderOne(ctx, batch, name)
				outcomes[index[name]] = outcome
				if batch.Progress != nil {
					batch.Progress(outcome)
				}
			}
		}()
	}

	for _, name := range suppliers {
		jobs <- name
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

func (p *Pool) renderOne(ctx context.Context, batch Batch, supplierName string) Outcome {
	lines := batch.Result.BySupplier[supplierName]
	department := domain.ResolveDepartment(batch.Selected, lines)

	sender := batch.Sender
	sender.Department = department
	if batch.Guidance != nil {
		sender.GuidanceNumber = batch.Guidance(department)
	}

	path, err := p.renderer.Render(ctx, domain.RenderJob{
		Supplier:  batch.Result.Suppliers[supplierName],
		Items:     lines,
		Sender:    sender,
		OutputDir: batch.OutputDir,
	})
	if err != nil {
		p.log.Warnf(ctx, "документ для %s не сгенерирован: %v", supplierName, err)
		return Outcome{Supplier: supplierName, Err: err}
	}
	return Outcome{Supplier: supplierName, Path: path}
}
