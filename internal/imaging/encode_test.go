package imaging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal valid PNG header bytes, enough for MIME sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00\x90w\x53\xde")

func TestNewBuildsDisplayReference(t *testing.T) {
	img, err := New(pngHeader, "image/png")
	require.NoError(t, err)

	assert.Equal(t, "image/png", img.MediaType)
	assert.Equal(t, "data:"+img.MediaType+";base64,"+img.Bytes, img.DisplayReference)

	data, err := img.Data()
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestNewSniffsMissingMediaType(t *testing.T) {
	for _, declared := range []string{"", "application/octet-stream", "   "} {
		img, err := New(pngHeader, declared)
		require.NoError(t, err, "declared=%q", declared)
		assert.Equal(t, "image/png", img.MediaType, "declared=%q", declared)
	}
}

func TestNewRejectsNonImagePayload(t *testing.T) {
	_, err := New([]byte("just some text, definitely not pixels"), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotAnImage))
}

func TestNewRejectsEmptyPayload(t *testing.T) {
	_, err := New(nil, "image/png")
	require.Error(t, err)
}

func TestEncodeReadsFullContents(t *testing.T) {
	img, err := Encode(bytes.NewReader(pngHeader), "image/png")
	require.NoError(t, err)
	assert.False(t, img.IsZero())

	data, err := img.Data()
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestParseDataURLRoundTrip(t *testing.T) {
	img, err := New(pngHeader, "image/png")
	require.NoError(t, err)

	data, mediaType, err := ParseDataURL(img.DisplayReference)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mediaType)
	assert.Equal(t, pngHeader, data)
}

func TestParseDataURLRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		ref  string
	}{
		{"not a data URL", "https://example.com/image.png"},
		{"no comma", "data:image/png;base64"},
		{"not base64 encoded", "data:image/png,rawbytes"},
		{"bad payload", "data:image/png;base64,!!!not-base64!!!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseDataURL(tt.ref)
			assert.Error(t, err)
		})
	}
}

func TestFromDataURLProducesIndependentCopy(t *testing.T) {
	original, err := New(pngHeader, "image/png")
	require.NoError(t, err)

	rebuilt, err := FromDataURL(original.DisplayReference)
	require.NoError(t, err)
	assert.Equal(t, original.Bytes, rebuilt.Bytes)
	assert.Equal(t, original.MediaType, rebuilt.MediaType)
	assert.True(t, strings.HasPrefix(rebuilt.DisplayReference, "data:image/png;base64,"))
}
