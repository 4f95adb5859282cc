package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"orderdesk/internal/bridge"
	"orderdesk/internal/dispatch"
	"orderdesk/internal/domain"
	"orderdesk/internal/fanout"
	"orderdesk/internal/ports"
	"orderdesk/internal/pregen"
	"orderdesk/internal/settings"
	"orderdesk/internal/usecase"
	"orderdesk/pkg/ctxmeta"
)

// Controller — координатор рабочего цикла: выборка, предпросмотр,
// отправка, простановка дат. Все поля состояния читаются и меняются
// только из цикла событий; фоновые задачи общаются с ним через мост.
type Controller struct {
	fetch  *usecase.FetchService
	pool   *pregen.Pool
	sender *dispatch.Sender
	fan    *fanout.Fanout
	sets   *settings.Settings
	br     *bridge.Bridge
	view   View
	log    ports.Logger

	saveDir string

	busy     bool
	selected []string
	account  string
	result   *domain.FetchResult
	tempDir  string
	docs     map[string]string
	sent     map[string]struct{}

	// pendingStamp — поставщик, ждущий итога простановки дат.
	pendingStamp string

	// снимок состояния для диагностического HTTP; читается из чужих горутин.
	snapMu sync.Mutex
	snap   map[string]any
}

// NewController — DI-конструктор.
func NewController(
	fetch *usecase.FetchService,
	pool *pregen.Pool,
	sender *dispatch.Sender,
	fan *fanout.Fanout,
	sets *settings.Settings,
	br *bridge.Bridge,
	view View,
	log ports.Logger,
	saveDir string,
) *Controller {
	c := &Controller{
		fetch:   fetch,
		pool:    pool,
		sender:  sender,
		fan:     fan,
		sets:    sets,
		br:      br,
		view:    view,
		log:     log,
		saveDir: saveDir,
		docs:    make(map[string]string),
		sent:    make(map[string]struct{}),
		snap:    map[string]any{"busy": false},
	}
	c.account = sets.DefaultAccount(nil)
	return c
}

// Busy — выполняется ли фоновая задача.
func (c *Controller) Busy() bool { return c.busy }

// Account — ключ текущей учетной записи отправителя.
func (c *Controller) Account() string { return c.account }

// SetAccount — сменить учетную запись отправителя вручную.
func (c *Controller) SetAccount(key string) {
	if _, ok := c.sets.Accounts[key]; !ok {
		c.view.Log(fmt.Sprintf("учетная запись %q не найдена", key))
		return
	}
	c.account = key
}

// Snapshot — снимок состояния для диагностики; безопасен для вызова из
// любых горутин.
func (c *Controller) Snapshot() map[string]any {
	c.snapMu.Lock()
	defer c.snapMu.Unlock()

	out := make(map[string]any, len(c.snap))
	for k, v := range c.snap {
		out[k] = v
	}
	return out
}

func (c *Controller) updateSnapshot() {
	snap := map[string]any{
		"busy":            c.busy,
		"documents_ready": len(c.docs),
		"sent":            len(c.sent),
		"account":         c.account,
	}
	if c.result != nil {
		snap["orders"] = len(c.result.Orders)
		snap["unlinked"] = c.result.UnlinkedCount
		snap["suppliers"] = len(c.result.BySupplier)
	}

	c.snapMu.Lock()
	c.snap = snap
	c.snapMu.Unlock()
}

// StartFetch запускает цикл выборки для набора отделов. Повторный запуск
// при выполняющейся задаче игнорируется.
func (c *Controller) StartFetch(departments []string) {
	if c.busy {
		c.view.Log("задача уже выполняется, дождитесь завершения")
		return
	}

	c.selected = departments
	if key := c.sets.DefaultAccount(departments); key != "" {
		c.account = key
	}

	c.resetTempStorage()
	c.result = nil
	c.sent = make(map[string]struct{})
	c.view.ClearPreview()
	c.setBusy(true)

	ctx := c.taskContext()
	go c.fetchTask(ctx, departments)
}

func (c *Controller) fetchTask(ctx context.Context, departments []string) {
	defer c.recoverToBridge(ctx)

	if len(departments) > 0 {
		c.br.Post(bridge.LogMessage{Text: fmt.Sprintf("выборка по отделам: %s", strings.Join(departments, ", "))})
	} else {
		c.br.Post(bridge.LogMessage{Text: "выборка без фильтра по отделам"})
	}

	result, err := c.fetch.Fetch(ctx, departments)
	if err != nil {
		c.br.Post(bridge.LogMessage{Text: fmt.Sprintf("выборка не удалась: %v", err)})
		c.br.Post(bridge.TaskDone{Err: err})
		return
	}

	c.br.Post(bridge.LogMessage{Text: fmt.Sprintf("найдено %d позиций к заказу", len(result.Orders))})
	c.br.Post(bridge.DataReady{Result: result})
}

func (c *Controller) pregenTask(ctx context.Context, result *domain.FetchResult) {
	defer c.recoverToBridge(ctx)

	c.br.Post(bridge.LogMessage{Text: "подготовка документов заказов..."})

	acct := c.sets.Accounts[c.account]
	c.pool.RenderAll(ctx, pregen.Batch{
		Result:   result,
		Selected: c.selected,
		Sender: domain.SenderIdentity{
			DisplayName: acct.DisplayName,
			Email:       acct.Address,
		},
		Guidance: func(dept string) string {
			return digitsOnly(c.sets.GuidanceNumber(dept))
		},
		OutputDir: c.tempDir,
		Progress: func(o pregen.Outcome) {
			c.br.Post(bridge.PreviewReady{Supplier: o.Supplier, Path: o.Path, Err: o.Err})
		},
	})

	c.br.Post(bridge.LogMessage{Text: "все документы подготовлены"})
	c.br.Post(bridge.TaskDone{})
}

// SelectSupplier показывает предпросмотр документа выбранного поставщика.
func (c *Controller) SelectSupplier(name string) {
	if c.busy {
		return
	}
	if _, ok := c.sent[name]; ok {
		c.view.ClearPreview()
		c.view.Log(fmt.Sprintf("«%s» уже отправлен", name))
		return
	}

	path, ok := c.docs[name]
	if !ok || path == "" {
		c.view.ClearPreview()
		c.view.Log("документ еще готовится, повторите позже")
		return
	}

	c.view.ShowPreview(name, path)
}

// SendMail отправляет письмо выбранному поставщику: копия документа в
// постоянное хранилище, подтверждение, фоновая отправка.
func (c *Controller) SendMail(supplier string) {
	if c.busy {
		return
	}

	path, ok := c.docs[supplier]
	if !ok || path == "" {
		c.view.Log("документ не готов, отправка невозможна")
		return
	}
	if c.result == nil {
		return
	}
	lines := c.result.BySupplier[supplier]
	if len(lines) == 0 {
		c.view.ShowError(fmt.Sprintf("позиции для «%s» не найдены", supplier), "")
		return
	}

	department := domain.ResolveDepartment(c.selected, lines)
	if _, err := c.saveDocument(path, department); err != nil {
		c.view.ShowError(fmt.Sprintf("не удалось сохранить документ: %v", err), "")
		return
	}

	sup := c.result.Suppliers[supplier]
	if !c.view.ConfirmSend(supplier, sup.EmailTo) {
		c.view.Log("отправка отменена")
		return
	}

	c.setBusy(true)
	ctx := c.taskContext()
	go c.sendTask(ctx, supplier, department, path)
}

func (c *Controller) sendTask(ctx context.Context, supplier, department, docPath string) {
	defer c.recoverToBridge(ctx)

	acct := c.sets.Accounts[c.account]
	req := dispatch.Request{
		Supplier: c.result.Suppliers[supplier],
		Sender: domain.SenderIdentity{
			DisplayName:    acct.DisplayName,
			Email:          acct.Address,
			Department:     department,
			GuidanceNumber: digitsOnly(c.sets.GuidanceNumber(department)),
		},
		DocumentPath: docPath,
	}

	c.br.Post(bridge.LogMessage{Text: fmt.Sprintf("отправка письма для «%s» (от %s)...", supplier, acct.Address)})

	if err := c.sender.Send(ctx, req); err != nil {
		category, detail := dispatch.CategoryUnexpected, err.Error()
		var sendErr *dispatch.Error
		if errors.As(err, &sendErr) {
			category, detail = sendErr.Category, sendErr.Err.Error()
		}
		c.br.Post(bridge.SendFailed{Supplier: supplier, Category: string(category), Detail: detail})
		c.br.Post(bridge.TaskDone{Err: err})
		return
	}

	c.br.Post(bridge.SendDone{Supplier: supplier, RecordIDs: c.result.RecordIDs(supplier)})
}

func (c *Controller) stampTask(ctx context.Context, recordIDs []string) {
	defer c.recoverToBridge(ctx)

	summary := c.fan.StampAll(ctx, recordIDs, time.Now())
	c.br.Post(bridge.MutationAck{Attempted: summary.Attempted, Failed: summary.Failed})
}

// Poll забирает накопившиеся сообщения моста и применяет их к интерфейсу.
// Паника обработчика не валит цикл: состояние сбрасывается в незанятое.
func (c *Controller) Poll() {
	defer func() {
		if r := recover(); r != nil {
			c.log.Errorf(context.Background(), "сбой обработки сообщений: %v", r)
			c.view.Log(fmt.Sprintf("внутренняя ошибка интерфейса: %v", r))
			c.finishTask()
		}
	}()

	for _, msg := range c.br.Drain() {
		c.handle(msg)
	}
}

func (c *Controller) handle(msg bridge.Message) {
	switch m := msg.(type) {
	case bridge.LogMessage:
		c.view.Log(m.Text)

	case bridge.DataReady:
		c.onDataReady(m.Result)

	case bridge.PreviewReady:
		if m.Err != nil {
			c.view.Log(fmt.Sprintf("документ для «%s» не подготовлен: %v", m.Supplier, m.Err))
			return
		}
		c.docs[m.Supplier] = m.Path
		c.updateSnapshot()

	case bridge.SendDone:
		c.onSendDone(m)

	case bridge.SendFailed:
		c.view.ShowError(m.Detail, dispatch.Category(m.Category).Hint())

	case bridge.MutationAck:
		c.onMutationAck(m)

	case bridge.TaskDone:
		c.finishTask()
	}
}

func (c *Controller) onDataReady(result *domain.FetchResult) {
	c.result = result
	c.view.ShowData(result)
	c.updateSnapshot()

	if result.UnlinkedCount > 0 {
		c.view.Log(fmt.Sprintf(
			"внимание: %d записей без поставщика скрыты из списка; заполните ссылку на поставщика в удалённой базе",
			result.UnlinkedCount))
	}

	if result.Empty() {
		c.view.Log("позиций к заказу не найдено")
		c.finishTask()
		return
	}

	// Выборка показана; документы готовятся фоном, занятость сохраняется.
	ctx := c.taskContext()
	go c.pregenTask(ctx, result)
}

func (c *Controller) onSendDone(m bridge.SendDone) {
	if c.view.ConfirmStamp(m.Supplier) {
		c.pendingStamp = m.Supplier
		c.view.Log(fmt.Sprintf("простановка даты заказа для «%s»...", m.Supplier))
		ctx := c.taskContext()
		go c.stampTask(ctx, m.RecordIDs)
		return
	}

	c.markSent(m.Supplier, false)
	c.finishTask()
}

func (c *Controller) onMutationAck(m bridge.MutationAck) {
	if m.Failed > 0 {
		c.view.Log(fmt.Sprintf("дата проставлена на %d из %d записей", m.Attempted-m.Failed, m.Attempted))
	} else {
		c.view.Log(fmt.Sprintf("дата проставлена на всех записях (%d)", m.Attempted))
	}

	// Мутации делают кэш устаревшим.
	c.fetch.InvalidateCache(context.Background())

	if c.pendingStamp != "" {
		c.markSent(c.pendingStamp, true)
		c.pendingStamp = ""
	}
	c.finishTask()
}

func (c *Controller) markSent(supplier string, stamped bool) {
	c.sent[supplier] = struct{}{}
	c.view.MarkSent(supplier)
	c.view.ClearPreview()
	if stamped {
		c.view.Log(fmt.Sprintf("«%s» отправлен, даты обновлены", supplier))
	} else {
		c.view.Log(fmt.Sprintf("«%s» отправлен, обновление дат пропущено", supplier))
	}
	c.updateSnapshot()
}

// saveDocument копирует документ в постоянное хранилище, при известном
// отделе — в его подпапку. Возвращает путь копии.
func (c *Controller) saveDocument(docPath, department string) (string, error) {
	destDir := c.saveDir
	if department != "" {
		destDir = filepath.Join(destDir, department)
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}

	dest := filepath.Join(destDir, filepath.Base(docPath))
	if err := copyFile(docPath, dest); err != nil {
		return "", err
	}

	c.view.Log(fmt.Sprintf("документ сохранен: %s", dest))
	return dest, nil
}

func (c *Controller) setBusy(busy bool) {
	c.busy = busy
	c.view.SetBusy(busy)
	c.updateSnapshot()
}

func (c *Controller) finishTask() {
	c.setBusy(false)
}

// resetTempStorage пересоздает временную папку предпросмотров.
func (c *Controller) resetTempStorage() {
	if c.tempDir != "" {
		_ = os.RemoveAll(c.tempDir)
	}
	dir, err := os.MkdirTemp("", "orderdesk-preview-*")
	if err != nil {
		// Временная папка обязана существовать; без нее предпросмотры
		// лягут рядом с постоянным хранилищем.
		dir = filepath.Join(c.saveDir, ".preview")
		_ = os.MkdirAll(dir, 0o755)
	}
	c.tempDir = dir
	c.docs = make(map[string]string)
}

// Close освобождает ресурсы. Занятый контроллер закрывать нельзя.
func (c *Controller) Close() error {
	if c.busy {
		return fmt.Errorf("задача выполняется, завершение отложено")
	}
	if c.tempDir != "" {
		_ = os.RemoveAll(c.tempDir)
		c.tempDir = ""
	}
	return nil
}

func (c *Controller) taskContext() context.Context {
	return ctxmeta.WithTaskID(context.Background(), uuid.New().String())
}

// recoverToBridge переводит панику фоновой задачи в сообщения моста,
// чтобы интерфейс разблокировался.
func (c *Controller) recoverToBridge(ctx context.Context) {
	if r := recover(); r != nil {
		c.log.Errorf(ctx, "паника фоновой задачи: %v", r)
		c.br.Post(bridge.LogMessage{Text: fmt.Sprintf("сбой фоновой задачи: %v", r)})
		c.br.Post(bridge.TaskDone{Err: fmt.Errorf("panic: %v", r)})
	}
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
