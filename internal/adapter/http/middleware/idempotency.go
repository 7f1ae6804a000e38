package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"daraja_stk/internal/domain/entities"
	"daraja_stk/internal/usecase/interfaces"
	"daraja_stk/pkg"

	"github.com/gin-gonic/gin"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderCacheHit       = "X-Cache-Hit"

	maxIdempotencyKeyLen = 255
)

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency makes POST retries safe when the client sends an
// Idempotency-Key header. Requests without the header pass through.
//
//   - unseen key: the request runs and its response is stored for ttl
//   - same key and body, finished: the stored response is replayed with X-Cache-Hit: true
//   - same key, different body: 409
//   - same key while the first request is still running: 409
//
// 5xx responses are not stored so the client can retry them.
func Idempotency(repo interfaces.IIdempotencyRepository, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLen {
			abortWith(c, pkg.NewDomainErrorSimple("INVALID_IDEMPOTENCY_KEY", "Idempotency-Key must be at most 255 characters", http.StatusBadRequest))
			return
		}

		rawBody, err := io.ReadAll(c.Request.Body)
		if err != nil {
			abortWith(c, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(rawBody))
		bodyHash := hashBody(rawBody)
		ctx := c.Request.Context()

		existing, err := repo.Get(ctx, key)
		if err != nil {
			log.Printf("[idempotency][middleware] get failed key=%s err=%v", key, err)
			abortWith(c, pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError))
			return
		}
		if existing.Key != "" {
			handleExisting(c, existing, bodyHash)
			return
		}

		now := time.Now().UTC()
		err = repo.Create(ctx, entities.IdempotencyRecord{
			Key:       key,
			BodyHash:  bodyHash,
			State:     entities.IdempotencyStateProcessing,
			CreatedAt: now,
			ExpiresAt: now.Add(ttl),
		})
		if errors.Is(err, interfaces.ErrIdempotencyKeyExists) {
			log.Printf("[idempotency][middleware] concurrent duplicate key=%s", key)
			abortWith(c, inProgressError())
			return
		}
		if err != nil {
			log.Printf("[idempotency][middleware] create failed key=%s err=%v", key, err)
			abortWith(c, pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError))
			return
		}

		// The client may be gone; the record still has to be settled.
		storeCtx := context.WithoutCancel(ctx)
		settled := false
		defer func() {
			if settled {
				return
			}
			// Panicking handler: release the key so the client can retry.
			if err := repo.Delete(storeCtx, key); err != nil {
				log.Printf("[idempotency][middleware] delete failed key=%s err=%v", key, err)
			}
		}()

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()
		settled = true

		status := writer.Status()
		if status >= http.StatusInternalServerError {
			if err := repo.Delete(storeCtx, key); err != nil {
				log.Printf("[idempotency][middleware] delete failed key=%s err=%v", key, err)
			}
			return
		}

		err = repo.Update(storeCtx, entities.IdempotencyRecord{
			Key:          key,
			BodyHash:     bodyHash,
			State:        entities.IdempotencyStateComplete,
			StatusCode:   status,
			ResponseBody: writer.body.Bytes(),
			CreatedAt:    now,
			ExpiresAt:    now.Add(ttl),
		})
		if err != nil {
			log.Printf("[idempotency][middleware] update failed key=%s err=%v", key, err)
		}
	}
}

func handleExisting(c *gin.Context, rec entities.IdempotencyRecord, bodyHash string) {
	if rec.BodyHash != bodyHash {
		log.Printf("[idempotency][middleware] body mismatch key=%s", rec.Key)
		abortWith(c, pkg.NewDomainErrorSimple("IDEMPOTENCY_KEY_REUSED", "Idempotency key already used for a different request body", http.StatusConflict))
		return
	}
	if rec.State != entities.IdempotencyStateComplete {
		log.Printf("[idempotency][middleware] request in progress key=%s", rec.Key)
		abortWith(c, inProgressError())
		return
	}

	log.Printf("[idempotency][middleware] replay key=%s status=%d", rec.Key, rec.StatusCode)
	c.Header(HeaderCacheHit, "true")
	c.Data(rec.StatusCode, "application/json; charset=utf-8", rec.ResponseBody)
	c.Abort()
}

func inProgressError() *pkg.AppError {
	return pkg.NewDomainErrorSimple("IDEMPOTENCY_REQUEST_IN_PROGRESS", "A request with this idempotency key is still being processed", http.StatusConflict)
}

func abortWith(c *gin.Context, appErr *pkg.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func hashBody(body []byte) string {
	h := sha256.Sum256(body)
	return hex.EncodeToString(h[:])
}
