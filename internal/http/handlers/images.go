package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"studio/internal/imaging"
	"studio/internal/middleware"
	"studio/internal/providers/genai"
	"studio/internal/providers/image"
)

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	DisplayReference string `json:"display_reference"`
}

// EncodeInput accepts a multipart upload, converts it into an EncodedImage and
// stores it as the session's seed image. Acquisition failures are logged and
// the input is effectively ignored; nothing else in the session changes.
func (a *App) EncodeInput(w http.ResponseWriter, r *http.Request) {
	sess := a.session(w, r)
	locale := middleware.LocaleFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, a.Config.MaxUploadBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		a.Logger.Warn().Err(err).Msg("image upload rejected")
		a.error(w, http.StatusBadRequest, "bad_upload", message(locale, msgBadUpload))
		return
	}
	defer file.Close()

	img, err := imaging.Encode(file, header.Header.Get("Content-Type"))
	if err != nil {
		a.Logger.Warn().Err(err).Str("filename", header.Filename).Msg("failed to encode uploaded image")
		a.error(w, http.StatusBadRequest, "bad_upload", message(locale, msgBadUpload))
		return
	}

	sess.SetInput(img)
	a.json(w, http.StatusOK, img)
}

// GenerateImage runs one full submission: validate → synthesize → watermark.
// Every failure inside the pipeline is caught here exactly once, logged,
// recorded on the session and surfaced as a single human-readable message.
// No partial results are ever returned.
func (a *App) GenerateImage(w http.ResponseWriter, r *http.Request) {
	sess := a.session(w, r)
	locale := middleware.LocaleFromContext(r.Context())

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		// Validation failure: no remote call is attempted.
		a.error(w, http.StatusBadRequest, "empty_prompt", message(locale, msgEmptyPrompt))
		return
	}

	if err := sess.Begin(prompt, message(locale, msgGenerating)); err != nil {
		a.error(w, http.StatusConflict, "busy", message(locale, msgBusy))
		return
	}

	requestID := middleware.RequestIDFromContext(r.Context())
	var seed *imaging.EncodedImage
	if img, ok := sess.Input(); ok {
		seed = &img
	}

	ref, err := a.runPipeline(r.Context(), prompt, requestID, locale, seed)
	if err != nil {
		msg := a.failureMessage(err, locale)
		sess.Fail(msg)
		a.Logger.Error().
			Err(err).
			Str("request_id", requestID).
			Str("provider", a.Config.Provider).
			Msg("image generation failed")
		a.error(w, http.StatusBadGateway, "generation_failed", msg)
		return
	}

	sess.Complete(ref)
	a.json(w, http.StatusOK, generateResponse{DisplayReference: ref})
}

// runPipeline is the sequential submission pipeline: the seed image (when
// present) and prompt go to the provider, and the provider's output is
// re-encoded and watermarked. Each step's input is the previous step's output;
// nothing runs concurrently within one submission.
func (a *App) runPipeline(ctx context.Context, prompt, requestID, locale string, seed *imaging.EncodedImage) (string, error) {
	gen, ok := a.Providers[a.Config.Provider]
	if !ok {
		return "", fmt.Errorf("unknown image provider %q", a.Config.Provider)
	}

	req := image.GenerateRequest{Prompt: prompt, RequestID: requestID, Locale: locale}
	if seed != nil && !seed.IsZero() {
		data, err := seed.Data()
		if err != nil {
			return "", fmt.Errorf("decode input image: %w", err)
		}
		req.SourceImage = &image.SourceImage{Data: data, MIME: seed.MediaType}
	}

	asset, err := gen.Generate(ctx, req)
	if err != nil {
		return "", err
	}

	encoded, err := imaging.New(asset.Data, asset.Format)
	if err != nil {
		return "", err
	}
	return imaging.Watermark(encoded.DisplayReference, a.Config.WatermarkLabel)
}

// failureMessage maps a pipeline error to the text shown in the error banner:
// the no-image case gets its dedicated wording, any other error surfaces its
// own message, and an empty message falls back to a generic one.
func (a *App) failureMessage(err error, locale string) string {
	if errors.Is(err, genai.ErrNoImage) {
		return message(locale, msgNoImage)
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return message(locale, msgGenerateFailed)
}

// DownloadResult streams the most recent watermarked result as an attachment.
// The handler reads session state but never mutates it.
func (a *App) DownloadResult(w http.ResponseWriter, r *http.Request) {
	sess := a.session(w, r)
	locale := middleware.LocaleFromContext(r.Context())

	ref := sess.Result()
	if ref == "" {
		a.error(w, http.StatusNotFound, "no_result", message(locale, msgNoResult))
		return
	}
	data, mediaType, err := imaging.ParseDataURL(ref)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "stored result is not a valid data URL")
		return
	}

	filename := fmt.Sprintf("generated-image-by-thara-%d.png", time.Now().UnixMilli())
	w.Header().Set("Content-Type", mediaType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
