package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"orderdesk/config"
	"orderdesk/internal/bridge"
	cachemem "orderdesk/internal/cache/memory"
	"orderdesk/internal/dispatch"
	"orderdesk/internal/fanout"
	"orderdesk/internal/notion"
	"orderdesk/internal/ports"
	"orderdesk/internal/pregen"
	pdfrender "orderdesk/internal/render/pdf"
	"orderdesk/internal/secret"
	"orderdesk/internal/settings"
	rest "orderdesk/internal/transport/http"
	"orderdesk/internal/usecase"
	"orderdesk/pkg/logger"
	"orderdesk/pkg/metrics"
	"orderdesk/pkg/retry"
)

// App — собранное приложение: контроллер рабочего цикла и
// диагностический HTTP-сервер.
type App struct {
	Logger     ports.Logger
	Controller *Controller
	HTTPServer *http.Server

	// Commands — операции интерфейса; выполняются в цикле событий.
	Commands chan func()

	pollInterval    time.Duration
	gracefulTimeout time.Duration
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию
// очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config, view View) (*App, Cleanup, error) {
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	metrics.MustRegister()

	sets, err := settings.Load(cfg.Paths.SettingsFile)
	if err != nil {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}

	store := notion.New(notion.Config{
		Token:       cfg.Remote.Token,
		OrdersDB:    cfg.Remote.OrdersDB,
		SuppliersDB: cfg.Remote.SuppliersDB,
		BaseURL:     cfg.Remote.BaseURL,
		Timeout:     cfg.Remote.Timeout,
		Retry:       retry.Policy{Attempts: cfg.Remote.RetryAttempts, Delay: cfg.Remote.RetryDelay},
	}, logg)

	cache := cachemem.NewResultCache(cfg.Cache.TTL)
	fetchService := usecase.NewFetchService(store, cache, logg, sets.RemoteNames)

	renderer := pdfrender.NewRenderer(pdfrender.Company{
		Name:    sets.Company.Name,
		Address: sets.Company.Address,
		Phone:   sets.Company.Phone,
		Fax:     sets.Company.Fax,
		URL:     sets.Company.URL,
	})
	pool := pregen.New(renderer, logg, cfg.Pregen.MaxWorkers)

	sender := dispatch.NewSender(dispatch.Config{
		Host:           cfg.SMTP.Host,
		Port:           cfg.SMTP.Port,
		Subject:        cfg.Mail.Subject,
		Greeting:       cfg.Mail.Greeting,
		Body:           cfg.Mail.Body,
		CompanyName:    sets.Company.Name,
		CompanyAddress: sets.Company.Address,
		CompanyPhone:   sets.Company.Phone,
		CompanyURL:     sets.Company.URL,
		AuditLogPath:   cfg.Paths.AuditLog,
	}, secret.NewKeyring(), logg)

	fan := fanout.New(store, logg, cfg.Fanout.MaxWorkers, cfg.Fanout.CallDelay)

	br := bridge.New(cfg.Bridge.Buffer)
	controller := NewController(fetchService, pool, sender, fan, sets, br, view, logg, cfg.Paths.SaveDir)

	applyGinMode(ctx, cfg.Diag.GinMode, logg)
	router := rest.NewRouter(rest.NewHandler(fetchService, controller.Snapshot, logg))
	httpServer := &http.Server{
		Addr:              cfg.Diag.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	app := &App{
		Logger:          logg,
		Controller:      controller,
		HTTPServer:      httpServer,
		Commands:        make(chan func(), 16),
		pollInterval:    cfg.Bridge.PollInterval,
		gracefulTimeout: 5 * time.Second,
	}

	cleanup := func() {
		if err := controller.Close(); err != nil {
			logg.Warnf(ctx, "controller close: %v", err)
		}
		if err := cleanupLogger(); err != nil {
			logg.Warnf(ctx, "cleanup logger: %v", err)
		}
	}
	return app, cleanup, nil
}

// Run — цикл событий приложения: опрос моста по тикеру и выполнение
// команд интерфейса. Блокируется до отмены контекста; перед выходом
// дожидается завершения фоновой задачи.
func (a *App) Run(ctx context.Context) error {
	go func() {
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Errorf(ctx, "diag http server: %v", err)
		}
	}()
	a.Logger.Infof(ctx, "diag http listening on %s", a.HTTPServer.Addr)

	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return a.shutdown()

		case <-ticker.C:
			a.Controller.Poll()

		case cmd, ok := <-a.Commands:
			if !ok {
				return a.shutdown()
			}
			cmd()
		}
	}
}

// shutdown дожидается завершения текущей задачи и гасит HTTP-сервер.
func (a *App) shutdown() error {
	for a.Controller.Busy() {
		time.Sleep(a.pollInterval)
		a.Controller.Poll()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()
	return a.HTTPServer.Shutdown(shutdownCtx)
}
