package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"daraja_stk/internal/adapter/persistence/repository"
	"daraja_stk/internal/domain/entities"
	"daraja_stk/internal/usecase/interfaces"
	mock_interfaces "daraja_stk/internal/usecase/interfaces/mocks"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newIdempotentRouter(repo interfaces.IIdempotencyRepository, calls *int32, status int) *gin.Engine {
	r := gin.New()
	r.POST("/v1/stk-push", Idempotency(repo, time.Hour), func(c *gin.Context) {
		n := atomic.AddInt32(calls, 1)
		body, _ := c.GetRawData()
		c.JSON(status, gin.H{"call": n, "echo": string(body)})
	})
	return r
}

func post(r http.Handler, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/stk-push", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("no key passes through", func(t *testing.T) {
		var calls int32
		r := newIdempotentRouter(repository.NewIdempotencyMemoryRepository(), &calls, http.StatusOK)

		post(r, "", `{"amount":1}`)
		post(r, "", `{"amount":1}`)
		if calls != 2 {
			t.Fatalf("expected 2 handler calls, got %d", calls)
		}
	})

	t.Run("duplicate replays stored response", func(t *testing.T) {
		var calls int32
		r := newIdempotentRouter(repository.NewIdempotencyMemoryRepository(), &calls, http.StatusOK)

		first := post(r, "key-1", `{"amount":1}`)
		if first.Code != http.StatusOK || first.Header().Get(HeaderCacheHit) != "" {
			t.Fatalf("unexpected first response: %d %v", first.Code, first.Header())
		}

		second := post(r, "key-1", `{"amount":1}`)
		if second.Code != http.StatusOK || second.Header().Get(HeaderCacheHit) != "true" {
			t.Fatalf("expected replay, got %d %v", second.Code, second.Header())
		}
		if second.Body.String() != first.Body.String() {
			t.Fatalf("replayed body differs: %s vs %s", second.Body.String(), first.Body.String())
		}
		if calls != 1 {
			t.Fatalf("handler should run once, ran %d", calls)
		}
	})

	t.Run("handler still reads the body", func(t *testing.T) {
		var calls int32
		r := newIdempotentRouter(repository.NewIdempotencyMemoryRepository(), &calls, http.StatusOK)

		w := post(r, "key-echo", `{"amount":7}`)
		if !strings.Contains(w.Body.String(), `{\"amount\":7}`) {
			t.Fatalf("body not restored for handler: %s", w.Body.String())
		}
	})

	t.Run("client errors are stored", func(t *testing.T) {
		var calls int32
		r := newIdempotentRouter(repository.NewIdempotencyMemoryRepository(), &calls, http.StatusBadRequest)

		post(r, "key-400", `{}`)
		second := post(r, "key-400", `{}`)
		if second.Code != http.StatusBadRequest || second.Header().Get(HeaderCacheHit) != "true" || calls != 1 {
			t.Fatalf("expected stored 400 replay, got %d calls=%d", second.Code, calls)
		}
	})

	t.Run("different body conflicts", func(t *testing.T) {
		var calls int32
		r := newIdempotentRouter(repository.NewIdempotencyMemoryRepository(), &calls, http.StatusOK)

		post(r, "key-2", `{"amount":1}`)
		w := post(r, "key-2", `{"amount":2}`)
		if w.Code != http.StatusConflict || !strings.Contains(w.Body.String(), "IDEMPOTENCY_KEY_REUSED") {
			t.Fatalf("expected 409 reuse, got %d %s", w.Code, w.Body.String())
		}
		if calls != 1 {
			t.Fatalf("handler should run once, ran %d", calls)
		}
	})

	t.Run("server errors are not stored", func(t *testing.T) {
		var calls int32
		r := newIdempotentRouter(repository.NewIdempotencyMemoryRepository(), &calls, http.StatusBadGateway)

		post(r, "key-5xx", `{"amount":1}`)
		w := post(r, "key-5xx", `{"amount":1}`)
		if w.Header().Get(HeaderCacheHit) == "true" || calls != 2 {
			t.Fatalf("5xx must not be replayed, calls=%d", calls)
		}
	})

	t.Run("in flight duplicate conflicts", func(t *testing.T) {
		repo := repository.NewIdempotencyMemoryRepository()
		var calls int32
		r := newIdempotentRouter(repo, &calls, http.StatusOK)

		body := `{"amount":1}`
		now := time.Now().UTC()
		_ = repo.Create(t.Context(), entities.IdempotencyRecord{
			Key:       "key-busy",
			BodyHash:  hashBody([]byte(body)),
			State:     entities.IdempotencyStateProcessing,
			CreatedAt: now,
			ExpiresAt: now.Add(time.Hour),
		})

		w := post(r, "key-busy", body)
		if w.Code != http.StatusConflict || !strings.Contains(w.Body.String(), "IDEMPOTENCY_REQUEST_IN_PROGRESS") {
			t.Fatalf("expected 409 in progress, got %d %s", w.Code, w.Body.String())
		}
		if calls != 0 {
			t.Fatalf("handler must not run, ran %d", calls)
		}
	})

	t.Run("panic releases key", func(t *testing.T) {
		repo := repository.NewIdempotencyMemoryRepository()
		r := gin.New()
		r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
			c.AbortWithStatus(http.StatusInternalServerError)
		}))
		r.POST("/v1/stk-push", Idempotency(repo, time.Hour), func(c *gin.Context) {
			panic("boom")
		})

		w := post(r, "key-panic", `{}`)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
		if rec, _ := repo.Get(t.Context(), "key-panic"); rec.Key != "" {
			t.Fatalf("expected key to be released, got %+v", rec)
		}
	})

	t.Run("key too long", func(t *testing.T) {
		var calls int32
		r := newIdempotentRouter(repository.NewIdempotencyMemoryRepository(), &calls, http.StatusOK)

		w := post(r, strings.Repeat("k", 256), `{}`)
		if w.Code != http.StatusBadRequest || calls != 0 {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("lost create race conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIIdempotencyRepository(ctrl)
		var calls int32
		r := newIdempotentRouter(repo, &calls, http.StatusOK)

		repo.EXPECT().Get(gomock.Any(), "key-race").Return(entities.IdempotencyRecord{}, nil)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(interfaces.ErrIdempotencyKeyExists)

		w := post(r, "key-race", `{}`)
		if w.Code != http.StatusConflict || calls != 0 {
			t.Fatalf("expected 409, got %d calls=%d", w.Code, calls)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIIdempotencyRepository(ctrl)
		var calls int32
		r := newIdempotentRouter(repo, &calls, http.StatusOK)

		repo.EXPECT().Get(gomock.Any(), "key-err").Return(entities.IdempotencyRecord{}, errors.New("dynamodb down"))

		w := post(r, "key-err", `{}`)
		if w.Code != http.StatusInternalServerError || calls != 0 {
			t.Fatalf("expected 500, got %d calls=%d", w.Code, calls)
		}
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRequestID))
	})

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		id := w.Header().Get(HeaderRequestID)
		if len(id) != 36 || w.Body.String() != id {
			t.Fatalf("expected generated uuid, got header=%q body=%q", id, w.Body.String())
		}
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(HeaderRequestID, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Header().Get(HeaderRequestID) != "abc-123" || w.Body.String() != "abc-123" {
			t.Fatalf("expected propagated id, got %q", w.Header().Get(HeaderRequestID))
		}
	})
}
