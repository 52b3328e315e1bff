package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func Logging(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				fields := []zap.Field{
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("took", time.Since(start)),
					zap.String("request_id", chimw.GetReqID(r.Context())),
				}
				if ws := r.Header.Get(WorkspaceHeader); ws != "" {
					fields = append(fields, zap.String("workspace", ws))
				}
				switch {
				case ww.Status() >= 500:
					log.Error("http", fields...)
				case ww.Status() >= 400:
					log.Warn("http", fields...)
				default:
					log.Info("http", fields...)
				}
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
