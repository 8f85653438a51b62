package httpapi

import (
	"net/http"
	"time"

	"github.com/DoyleJ11/draft-room/internal/controls"
	"github.com/DoyleJ11/draft-room/internal/hub"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func SetupRoutes(h *hub.Hub, log *zap.Logger) http.Handler {
	hd := handlers{hub: h, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	// Public routes
	r.Get("/healthz", Healthz)
	r.Get("/", hd.homePage)
	r.Get("/api/home", hd.homeJSON)
	r.Post("/rooms", hd.createRoom)

	r.Route("/rooms/{code}", func(r chi.Router) {
		r.Get("/controls", hd.controlsPage)
		r.Post("/start", hd.intent((*controls.Panel).EmitStart))
		r.Post("/pause", hd.intent((*controls.Panel).EmitPause))
		r.Post("/complete", hd.complete)
	})
	r.Get("/api/rooms/{code}/controls", hd.controlsJSON)
	return r
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())))
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
