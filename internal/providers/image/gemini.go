package image

import (
	"context"

	"studio/internal/providers/genai"
)

// GeminiGenerator adapts the Gemini client to the Generator contract.
type GeminiGenerator struct {
	client *genai.Client
}

func NewGeminiGenerator(client *genai.Client) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

func (g *GeminiGenerator) Generate(ctx context.Context, req GenerateRequest) (*Asset, error) {
	imageReq := genai.ImageRequest{
		Prompt:    req.Prompt,
		RequestID: req.RequestID,
	}
	if req.SourceImage != nil {
		imageReq.SeedData = req.SourceImage.Data
		imageReq.SeedMIME = req.SourceImage.MIME
	}

	asset, err := g.client.GenerateImage(ctx, imageReq)
	if err != nil {
		return nil, err
	}
	return &Asset{
		Data:   asset.Data,
		Format: asset.MimeType,
		Width:  asset.Width,
		Height: asset.Height,
	}, nil
}

var _ Generator = (*GeminiGenerator)(nil)
