package web

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/stockroom/stockroom-service/internal/auth"
	"github.com/stockroom/stockroom-service/pkg/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs one line per request after it completes.
func RequestLogger(log logger.ZapLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// ActorContext copies the caller identity header into the request context.
// Token verification happens upstream; here the subject is already resolved.
func ActorContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actorID := r.Header.Get("X-User-Id"); actorID != "" {
			r = r.WithContext(auth.WithActorID(r.Context(), actorID))
		}
		next.ServeHTTP(w, r)
	})
}
