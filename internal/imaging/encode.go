package imaging

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const dataURLPrefix = "data:"

// ErrNotAnImage is returned when a payload does not carry an image MIME type.
var ErrNotAnImage = errors.New("imaging: payload is not an image")

// EncodedImage is an image in transit: the base64 payload, the MIME type that
// describes it, and the derived data URL a browser can use directly as an
// image source. The three fields are built together and never mutated; the
// display reference is always reconstructible as
// "data:" + MediaType + ";base64," + Bytes.
type EncodedImage struct {
	Bytes            string `json:"bytes"`
	MediaType        string `json:"media_type"`
	DisplayReference string `json:"display_reference"`
}

// New builds an EncodedImage from raw bytes. When declaredType is empty or not
// an image type the content is sniffed instead, since browsers occasionally
// upload files with a blank or bogus Content-Type.
func New(data []byte, declaredType string) (EncodedImage, error) {
	if len(data) == 0 {
		return EncodedImage{}, errors.New("imaging: empty payload")
	}
	mediaType := strings.TrimSpace(declaredType)
	if !strings.HasPrefix(mediaType, "image/") {
		mediaType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return EncodedImage{}, fmt.Errorf("%w: detected %s", ErrNotAnImage, mediaType)
	}
	encoded := base64.StdEncoding.EncodeToString(data)
	return EncodedImage{
		Bytes:            encoded,
		MediaType:        mediaType,
		DisplayReference: dataURLPrefix + mediaType + ";base64," + encoded,
	}, nil
}

// Encode reads an uploaded file to completion and converts it into an
// EncodedImage. It resolves exactly once: either with the completed image or
// with the read error. No retry, no side effects beyond the read.
func Encode(r io.Reader, declaredType string) (EncodedImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return EncodedImage{}, fmt.Errorf("imaging: read upload: %w", err)
	}
	return New(data, declaredType)
}

// Data returns the decoded binary payload.
func (e EncodedImage) Data() ([]byte, error) {
	return base64.StdEncoding.DecodeString(e.Bytes)
}

// IsZero reports whether the image is empty.
func (e EncodedImage) IsZero() bool {
	return e.Bytes == ""
}

// ParseDataURL splits a display reference back into its binary payload and
// MIME type.
func ParseDataURL(ref string) ([]byte, string, error) {
	if !strings.HasPrefix(ref, dataURLPrefix) {
		return nil, "", errors.New("imaging: not a data URL")
	}
	meta, payload, ok := strings.Cut(ref[len(dataURLPrefix):], ",")
	if !ok {
		return nil, "", errors.New("imaging: malformed data URL")
	}
	mediaType := strings.TrimSuffix(meta, ";base64")
	if mediaType == meta {
		return nil, "", errors.New("imaging: data URL is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("imaging: decode data URL payload: %w", err)
	}
	return data, mediaType, nil
}

// FromDataURL rebuilds an EncodedImage from an existing display reference.
// The refinement loop uses this to promote a result back into the next
// submission's input image.
func FromDataURL(ref string) (EncodedImage, error) {
	data, mediaType, err := ParseDataURL(ref)
	if err != nil {
		return EncodedImage{}, err
	}
	return New(data, mediaType)
}
