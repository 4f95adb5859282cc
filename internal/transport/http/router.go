package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"orderdesk/internal/ports"
	"orderdesk/internal/usecase"
	"orderdesk/pkg/httpx"
)

// Handler — диагностический HTTP-интерфейс: health, метрики, состояние
// кэша и приложения. Заказами он не управляет.
type Handler struct {
	service *usecase.FetchService
	state   func() map[string]any
	log     ports.Logger
}

// NewHandler — DI-конструктор. state возвращает снимок состояния
// приложения (busy-флаг и счетчики последней выборки); может быть nil.
func NewHandler(service *usecase.FetchService, state func() map[string]any, log ports.Logger) *Handler {
	return &Handler{service: service, state: state, log: log}
}

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(200, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/cache/stats", h.cacheStats)
	r.GET("/state", h.appState)

	return r
}

func (h *Handler) cacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.CacheStats(c.Request.Context()))
}

func (h *Handler) appState(c *gin.Context) {
	if h.state == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, h.state())
}
