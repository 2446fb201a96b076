package handlers

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed web/index.html
var webFS embed.FS

var pageTemplate = template.Must(template.ParseFS(webFS, "web/index.html"))

type pageData struct {
	WatermarkLabel string
	MaxUploadBytes int64
}

// Page serves the single-page UI. Everything behavioral lives behind the JSON
// API; the page is presentation glue only.
func (a *App) Page(w http.ResponseWriter, r *http.Request) {
	// Ensure the session cookie exists before the page makes its first API call.
	a.session(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := pageTemplate.Execute(w, pageData{
		WatermarkLabel: a.Config.WatermarkLabel,
		MaxUploadBytes: a.Config.MaxUploadBytes,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("failed to render page")
	}
}
