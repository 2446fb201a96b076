package session

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio/internal/domain"
	"studio/internal/imaging"
)

func resultDataURL(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetRGBA(x, y, color.RGBA{G: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	encoded, err := imaging.New(buf.Bytes(), "image/png")
	require.NoError(t, err)
	return encoded.DisplayReference
}

func TestBeginRejectsConcurrentSubmission(t *testing.T) {
	s := newSession("s1")
	require.NoError(t, s.Begin("a red balloon", "working"))

	err := s.Begin("another prompt", "working")
	assert.ErrorIs(t, err, domain.ErrBusy)

	snap := s.Snapshot()
	assert.True(t, snap.Busy)
	assert.Equal(t, "a red balloon", snap.PromptText, "the rejected submission must not overwrite the prompt")
}

func TestBeginClearsPreviousError(t *testing.T) {
	s := newSession("s1")
	s.Fail("something broke")
	require.Equal(t, "something broke", s.Snapshot().LastError)

	require.NoError(t, s.Begin("retry", "working"))
	snap := s.Snapshot()
	assert.Empty(t, snap.LastError, "starting a submission clears the error banner")
	assert.Equal(t, "working", snap.BusyMessage)
}

func TestCompleteAndFailAreMutuallyExclusive(t *testing.T) {
	ref := resultDataURL(t)

	s := newSession("s1")
	require.NoError(t, s.Begin("prompt", "working"))
	s.Complete(ref)

	snap := s.Snapshot()
	assert.False(t, snap.Busy)
	assert.Empty(t, snap.BusyMessage)
	assert.Empty(t, snap.LastError)
	assert.Equal(t, ref, snap.ResultImage)

	require.NoError(t, s.Begin("prompt 2", "working"))
	s.Fail("provider exploded")

	snap = s.Snapshot()
	assert.False(t, snap.Busy)
	assert.Equal(t, "provider exploded", snap.LastError)
	assert.Empty(t, snap.ResultImage, "a failed submission reverts the result pane")
}

func TestPromoteResultFeedsRefinementLoop(t *testing.T) {
	ref := resultDataURL(t)

	s := newSession("s1")
	require.NoError(t, s.Begin("make it green", "working"))
	s.Complete(ref)

	img, err := s.PromoteResult()
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, "make it green", snap.PromptText, "promotion must leave the prompt untouched")
	assert.Empty(t, snap.ResultImage, "promotion must clear the result slot")
	assert.Empty(t, snap.ViewerImage)
	require.NotNil(t, snap.InputImage)
	assert.Equal(t, img.Bytes, snap.InputImage.Bytes)
	assert.Equal(t, "image/png", snap.InputImage.MediaType)

	// The loop is unbounded: completing again and promoting again works the
	// same way with no history beyond the current input image.
	require.NoError(t, s.Begin("make it greener", "working"))
	s.Complete(ref)
	_, err = s.PromoteResult()
	require.NoError(t, err)
}

func TestPromoteResultWithoutResult(t *testing.T) {
	s := newSession("s1")
	_, err := s.PromoteResult()
	assert.ErrorIs(t, err, domain.ErrNoResult)
}

func TestResetClearsEverything(t *testing.T) {
	ref := resultDataURL(t)

	s := newSession("s1")
	input, err := imaging.FromDataURL(ref)
	require.NoError(t, err)
	s.SetInput(input)
	require.NoError(t, s.Begin("prompt", "working"))
	s.Complete(ref)
	s.SetViewer(ref)

	s.Reset()

	snap := s.Snapshot()
	assert.Nil(t, snap.InputImage)
	assert.Empty(t, snap.PromptText)
	assert.False(t, snap.Busy)
	assert.Empty(t, snap.BusyMessage)
	assert.Empty(t, snap.LastError)
	assert.Empty(t, snap.ResultImage)
	assert.Empty(t, snap.ViewerImage)
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(time.Minute)

	created := store.Create()
	got, ok := store.Get(created.ID())
	require.True(t, ok)
	assert.Same(t, created, got)

	_, ok = store.Get("unknown-id")
	assert.False(t, ok)

	assert.NotNil(t, store.GetOrCreate(""), "empty id must allocate a fresh session")
	again := store.GetOrCreate(created.ID())
	assert.Same(t, created, again)
}
