package voice

import (
	"context"

	"github.com/pkg/errors"
)

// ErrUnavailable reports that the device has no speech capability. Callers
// surface it as a notice, never as a crash.
var ErrUnavailable = errors.New("speech capability not available")

// TranscriptEvent is one step of a dictation stream: interim partials update
// the pending input live, the final transcript replaces it. A non-nil Err
// terminates the stream.
type TranscriptEvent struct {
	Text  string
	Final bool
	Err   error
}

// Dictation is a speech-to-text capture session source. Start opens a new
// recognition session and implicitly stops any prior one; the returned
// channel yields ordered partial-then-final events and is closed when the
// session ends.
type Dictation interface {
	Start(ctx context.Context) (<-chan TranscriptEvent, error)
	Stop()
}

// Playback renders assistant replies as speech. Speak cancels any in-flight
// utterance first. Best-effort: implementations never fail the caller.
type Playback interface {
	Speak(text string)
}

// NoopDictation stands in when no recognition capability exists.
type NoopDictation struct{}

func (NoopDictation) Start(context.Context) (<-chan TranscriptEvent, error) {
	return nil, ErrUnavailable
}

func (NoopDictation) Stop() {}

// NoopPlayback silently skips playback.
type NoopPlayback struct{}

func (NoopPlayback) Speak(string) {}
