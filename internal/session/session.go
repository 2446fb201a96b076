package session

import (
	"sync"

	"studio/internal/domain"
	"studio/internal/imaging"
)

// Session is the ephemeral per-browser state of the creative tool. The result
// image, the last error and the busy flag are mutually exclusive outcomes of a
// submission; the transition methods below are the only way to move between
// them, so the exclusivity holds by construction.
type Session struct {
	mu sync.Mutex

	id          string
	inputImage  *imaging.EncodedImage
	promptText  string
	busy        bool
	busyMessage string
	lastError   string
	resultImage string
	viewerImage string
}

// Snapshot is a copy of the session fields safe to hand to templates and JSON
// encoders.
type Snapshot struct {
	ID          string                 `json:"id"`
	InputImage  *imaging.EncodedImage  `json:"input_image,omitempty"`
	PromptText  string                 `json:"prompt_text"`
	Busy        bool                   `json:"busy"`
	BusyMessage string                 `json:"busy_message,omitempty"`
	LastError   string                 `json:"last_error,omitempty"`
	ResultImage string                 `json:"result_image,omitempty"`
	ViewerImage string                 `json:"viewer_image,omitempty"`
}

func newSession(id string) *Session {
	return &Session{id: id}
}

// ID returns the immutable session identifier.
func (s *Session) ID() string {
	return s.id
}

// Snapshot returns a consistent copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:          s.id,
		PromptText:  s.promptText,
		Busy:        s.busy,
		BusyMessage: s.busyMessage,
		LastError:   s.lastError,
		ResultImage: s.resultImage,
		ViewerImage: s.viewerImage,
	}
	if s.inputImage != nil {
		img := *s.inputImage
		snap.InputImage = &img
	}
	return snap
}

// SetInput replaces the seed image for the next submission.
func (s *Session) SetInput(img imaging.EncodedImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputImage = &img
}

// Input returns a copy of the current seed image, if any.
func (s *Session) Input() (imaging.EncodedImage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inputImage == nil {
		return imaging.EncodedImage{}, false
	}
	return *s.inputImage, true
}

// Begin marks the start of a submission. It records the prompt, raises the
// busy flag and clears the previous error banner. A second submission while
// one is outstanding is rejected with domain.ErrBusy.
func (s *Session) Begin(prompt, busyMessage string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return domain.ErrBusy
	}
	s.busy = true
	s.busyMessage = busyMessage
	s.promptText = prompt
	s.lastError = ""
	return nil
}

// Complete records a successful submission outcome.
func (s *Session) Complete(displayRef string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	s.busyMessage = ""
	s.lastError = ""
	s.resultImage = displayRef
}

// Fail records a failed submission outcome. The busy indicator clears, the
// result pane reverts to empty and the message is kept until the next
// submission attempt.
func (s *Session) Fail(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	s.busyMessage = ""
	s.resultImage = ""
	s.lastError = message
}

// Result returns the display reference of the most recent successful
// submission, or the empty string.
func (s *Session) Result() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultImage
}

// SetViewer records which image the full-screen overlay is showing; an empty
// reference closes it.
func (s *Session) SetViewer(displayRef string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewerImage = displayRef
}

// PromoteResult moves the current result into the input image slot so the next
// submission refines it. The prompt is left untouched, the result slot is
// cleared and no reference to the prior result value is retained. Each
// refinement iteration is a fully independent request; nothing bounds how many
// times a result can be promoted.
func (s *Session) PromoteResult() (imaging.EncodedImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resultImage == "" {
		return imaging.EncodedImage{}, domain.ErrNoResult
	}
	img, err := imaging.FromDataURL(s.resultImage)
	if err != nil {
		return imaging.EncodedImage{}, err
	}
	s.inputImage = &img
	s.resultImage = ""
	s.viewerImage = ""
	return img, nil
}

// Reset clears every field, implementing the explicit "remove image" action.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputImage = nil
	s.promptText = ""
	s.busy = false
	s.busyMessage = ""
	s.lastError = ""
	s.resultImage = ""
	s.viewerImage = ""
}
