package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"studio/internal/domain"
	"studio/internal/middleware"
)

// SessionState returns a snapshot of the caller's session so the page can
// re-render after a reload.
func (a *App) SessionState(w http.ResponseWriter, r *http.Request) {
	sess := a.session(w, r)
	a.json(w, http.StatusOK, sess.Snapshot())
}

// RefineResult promotes the current result into the input image slot, so the
// next submission edits it instead of starting from scratch. The prompt is
// left untouched.
func (a *App) RefineResult(w http.ResponseWriter, r *http.Request) {
	sess := a.session(w, r)
	locale := middleware.LocaleFromContext(r.Context())

	img, err := sess.PromoteResult()
	if err != nil {
		if errors.Is(err, domain.ErrNoResult) {
			a.error(w, http.StatusNotFound, "no_result", message(locale, msgNoResult))
			return
		}
		a.Logger.Error().Err(err).Msg("failed to promote result into input")
		a.error(w, http.StatusInternalServerError, "internal", "could not reuse the generated image")
		return
	}
	a.json(w, http.StatusOK, img)
}

// ResetSession clears every session field, implementing the explicit
// "remove image" action.
func (a *App) ResetSession(w http.ResponseWriter, r *http.Request) {
	sess := a.session(w, r)
	sess.Reset()
	a.json(w, http.StatusOK, sess.Snapshot())
}

type viewerRequest struct {
	DisplayReference string `json:"display_reference"`
}

// SetViewer records which image the full-screen overlay shows; an empty
// reference closes the overlay.
func (a *App) SetViewer(w http.ResponseWriter, r *http.Request) {
	sess := a.session(w, r)

	var req viewerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	sess.SetViewer(req.DisplayReference)
	a.json(w, http.StatusOK, sess.Snapshot())
}
