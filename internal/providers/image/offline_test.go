package image

import (
	"bytes"
	"context"
	"image/png"
	"testing"
)

func TestOfflineIsDeterministic(t *testing.T) {
	gen := NewOffline()
	req := GenerateRequest{Prompt: "a red balloon", RequestID: "req-1", Locale: "en"}

	first, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	second, err := gen.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !bytes.Equal(first.Data, second.Data) {
		t.Error("identical requests must render identical placeholder bytes")
	}

	other, err := gen.Generate(context.Background(), GenerateRequest{Prompt: "a blue balloon", RequestID: "req-1", Locale: "en"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if bytes.Equal(first.Data, other.Data) {
		t.Error("a different prompt should change the rendered placeholder")
	}
}

func TestOfflineProducesDecodablePNG(t *testing.T) {
	gen := NewOffline()
	asset, err := gen.Generate(context.Background(), GenerateRequest{Prompt: "anything", RequestID: "req-2"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if asset.Format != "image/png" {
		t.Errorf("unexpected format: %s", asset.Format)
	}
	img, err := png.Decode(bytes.NewReader(asset.Data))
	if err != nil {
		t.Fatalf("placeholder is not a decodable PNG: %v", err)
	}
	if img.Bounds().Dx() != 1024 || img.Bounds().Dy() != 1024 {
		t.Errorf("default dimensions should be 1024x1024, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestOfflineMatchesSeedDimensions(t *testing.T) {
	gen := NewOffline()

	// Render once to obtain a decodable PNG, then feed it back as the seed.
	base, err := gen.Generate(context.Background(), GenerateRequest{Prompt: "seed", RequestID: "req-3"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	asset, err := gen.Generate(context.Background(), GenerateRequest{
		Prompt:      "edit the seed",
		RequestID:   "req-4",
		SourceImage: &SourceImage{Data: base.Data, MIME: base.Format},
	})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if asset.Width != 1024 || asset.Height != 1024 {
		t.Errorf("seeded generation should adopt the seed dimensions, got %dx%d", asset.Width, asset.Height)
	}
}

func TestOfflineHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewOffline().Generate(ctx, GenerateRequest{Prompt: "never"}); err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
}
