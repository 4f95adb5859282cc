package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"

	"orderdesk/internal/ports"
	"orderdesk/internal/ports/mocks"
	"orderdesk/internal/usecase"
)

func newTestRouter(t *testing.T, state func() map[string]any) (*gin.Engine, *mocks.MockResultCache) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	store := mocks.NewMockRemoteStore(ctrl)
	cache := mocks.NewMockResultCache(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	service := usecase.NewFetchService(store, cache, log, nil)
	return NewRouter(NewHandler(service, state, log)), cache
}

func TestRouter_Ping(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("неожиданный ответ: %d %q", w.Code, w.Body.String())
	}
}

func TestRouter_CacheStats(t *testing.T) {
	router, cache := newTestRouter(t, nil)

	cache.EXPECT().Stats(gomock.Any()).Return(ports.CacheStats{Total: 3, Valid: 2, Expired: 1})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cache/stats", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("неожиданный статус: %d", w.Code)
	}

	var got ports.CacheStats
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Total != 3 || got.Valid != 2 || got.Expired != 1 {
		t.Fatalf("неожиданная статистика: %+v", got)
	}
}

func TestRouter_State(t *testing.T) {
	router, _ := newTestRouter(t, func() map[string]any {
		return map[string]any{"busy": true}
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/state", nil))

	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got["busy"] != true {
		t.Fatalf("неожиданное состояние: %v", got)
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("ответ должен содержать X-Request-ID")
	}
}
