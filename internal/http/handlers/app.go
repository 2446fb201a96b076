package handlers

import (
	"encoding/json"
	"net/http"

	"studio/internal/infra"
	"studio/internal/providers/image"
	"studio/internal/session"

	"github.com/rs/zerolog"
)

const sessionCookie = "studio_session"

// App is the handler container; it owns the pieces every request needs.
type App struct {
	Config    *infra.Config
	Logger    zerolog.Logger
	Sessions  *session.Store
	Providers map[string]image.Generator
}

func NewApp(cfg *infra.Config, logger zerolog.Logger, sessions *session.Store, providers map[string]image.Generator) *App {
	return &App{
		Config:    cfg,
		Logger:    logger,
		Sessions:  sessions,
		Providers: providers,
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]errorBody{"error": {Code: code, Message: message}})
}

// session resolves the caller's session from the cookie, creating one (and
// setting the cookie) on first contact or after expiry.
func (a *App) session(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}
	sess := a.Sessions.GetOrCreate(id)
	if sess.ID() != id {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sess.ID(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}
