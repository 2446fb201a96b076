package image

import "context"

// SourceImage is the optional seed supplied with a generation request. Its
// bytes and MIME type are forwarded to the provider as conditioning input.
type SourceImage struct {
	Data []byte
	MIME string
}

// GenerateRequest describes a normalized request passed to any image provider.
type GenerateRequest struct {
	Prompt      string
	RequestID   string
	Locale      string
	SourceImage *SourceImage
}

// Asset represents one synthesized image.
type Asset struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// Generator is the contract implemented by all image providers. Exactly one
// provider invocation happens per submission; providers never retry or cache.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*Asset, error)
}
