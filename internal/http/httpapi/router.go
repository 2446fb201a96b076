package httpapi

import (
	stdhttp "net/http"
	"time"

	"studio/internal/http/handlers"
	"studio/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *handlers.App) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(app.Config.AllowedOrigins),
		middleware.I18N("en"),
		middleware.RateLimit(app.Config.RateLimitPerMin, time.Minute),
	)

	r.Get("/", app.Page)
	r.Get("/v1/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/session", app.SessionState)
		r.Post("/session/reset", app.ResetSession)
		r.Post("/session/viewer", app.SetViewer)

		r.Route("/images", func(r chi.Router) {
			r.Post("/encode", app.EncodeInput)
			r.Post("/generate", app.GenerateImage)
			r.Post("/refine", app.RefineResult)
			r.Get("/download", app.DownloadResult)
		})
	})

	return r
}
