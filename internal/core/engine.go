package core

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/askdeck/askdeck/internal/assistant"
	"github.com/askdeck/askdeck/internal/chat"
	"github.com/askdeck/askdeck/internal/domain"
	"github.com/askdeck/askdeck/internal/identity"
	"github.com/askdeck/askdeck/internal/input"
	"github.com/askdeck/askdeck/internal/store"
	"github.com/askdeck/askdeck/internal/voice"
)

// NoResponsePlaceholder replaces an empty assistant reply.
const NoResponsePlaceholder = "No response received."

var (
	// ErrBusy rejects a submit while a request is already in flight. The
	// view swallows it; the engine stays consistent.
	ErrBusy = errors.New("a request is already awaiting a response")
	// ErrNothingToSend rejects a submit with no typed text and no
	// attachment.
	ErrNothingToSend = errors.New("nothing to send")
	// ErrSessionNotFound is returned by Open for an unknown session id.
	ErrSessionNotFound = errors.New("session not found")
)

// Engine owns the active transcript and drives the request/response
// lifecycle against the assistant endpoint. All observable state transitions
// are serialized by its lock: while a request is awaiting a response, new
// submits are rejected, and every transition that appends a message writes
// the session collection through to the store before completing.
type Engine struct {
	sessions *store.SessionStore
	counter  *store.UsageCounter
	client   assistant.Client
	composer *input.Composer

	dictation voice.Dictation
	playback  voice.Playback

	logger *zap.Logger
	notify func(string)
	now    func() time.Time
	newID  func() string

	requestTimeout time.Duration
	autoSendDelay  time.Duration

	mu         sync.Mutex
	busy       bool
	userKey    string
	transcript []chat.Message
	collection []chat.Session
	activeID   string
}

// Deps wires the engine's collaborators. Dictation, Playback, Notify and
// Logger are optional; missing ones degrade to no-ops.
type Deps struct {
	UserKey  string
	Sessions *store.SessionStore
	Counter  *store.UsageCounter
	Client   assistant.Client
	Composer *input.Composer

	Dictation voice.Dictation
	Playback  voice.Playback

	Logger         *zap.Logger
	Notify         func(string)
	RequestTimeout time.Duration
}

const defaultAutoSendDelay = 500 * time.Millisecond

func NewEngine(deps Deps) *Engine {
	e := &Engine{
		sessions:       deps.Sessions,
		counter:        deps.Counter,
		client:         deps.Client,
		composer:       deps.Composer,
		dictation:      deps.Dictation,
		playback:       deps.Playback,
		logger:         deps.Logger,
		notify:         deps.Notify,
		now:            time.Now,
		newID:          uuid.NewString,
		requestTimeout: deps.RequestTimeout,
		autoSendDelay:  defaultAutoSendDelay,
		userKey:        deps.UserKey,
	}
	if e.dictation == nil {
		e.dictation = voice.NoopDictation{}
	}
	if e.playback == nil {
		e.playback = voice.NoopPlayback{}
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.notify == nil {
		e.notify = func(string) {}
	}
	e.collection = e.sessions.Load(e.userKey)
	return e
}

// Composer exposes the staged input state to the view.
func (o *Engine) Composer() *input.Composer { return o.composer }

// Busy reports whether a request is awaiting a response.
func (o *Engine) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busy
}

// Transcript returns a copy of the active message list in submission order.
func (o *Engine) Transcript() []chat.Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]chat.Message(nil), o.transcript...)
}

// Sessions returns a copy of the session collection, most recent first.
func (o *Engine) Sessions() []chat.Session {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]chat.Session(nil), o.collection...)
}

// ActiveSessionID returns the id of the active session, or "" when the next
// submit will create a new one.
func (o *Engine) ActiveSessionID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.activeID
}

// Submit builds the outgoing payload from the staged input and drives one
// full request/response cycle. Guard violations (nothing staged, already
// busy) return sentinel errors the view treats as silent no-ops. Transport
// failures do not return an error: they surface as a synthetic assistant
// message and the engine goes back to idle.
func (o *Engine) Submit(ctx context.Context) error {
	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return ErrBusy
	}
	composed, ok := o.composer.Compose()
	if !ok {
		o.mu.Unlock()
		return ErrNothingToSend
	}

	o.busy = true
	o.transcript = append(o.transcript, chat.Message{
		Role:       chat.RoleUser,
		Text:       composed.Display,
		Attachment: composed.Attachment,
		Mode:       string(composed.Mode),
	})
	o.composer.Reset()
	o.syncSessionLocked()

	if _, err := o.counter.Increment(); err != nil {
		o.logger.Warn("could not persist usage counter", zap.Error(err))
	}
	o.mu.Unlock()

	reply, err := o.ask(ctx, composed.Payload, composed.SystemPrompt)

	o.mu.Lock()
	o.busy = false
	if err != nil {
		o.logger.Error("assistant request failed", zap.Error(err))
		o.transcript = append(o.transcript, chat.Message{
			Role: chat.RoleAssistant,
			Text: "⚠️ Something went wrong. Make sure the backend server is running at " + o.client.Endpoint(),
		})
		o.syncSessionLocked()
		o.mu.Unlock()
		return nil
	}

	display := reply
	if display == "" {
		display = NoResponsePlaceholder
	}
	if cfg, modeOK := domain.GetModeConfig(composed.Mode); modeOK {
		display = cfg.Icon + " " + display
	}
	o.transcript = append(o.transcript, chat.Message{
		Role: chat.RoleAssistant,
		Text: display,
		Mode: string(composed.Mode),
	})
	o.syncSessionLocked()
	o.mu.Unlock()

	// Playback gets the raw response text, not the annotated display form.
	if reply != "" {
		o.playback.Speak(reply)
	}
	return nil
}

func (o *Engine) ask(ctx context.Context, payload, systemPrompt string) (string, error) {
	if o.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.requestTimeout)
		defer cancel()
	}
	return o.client.Ask(ctx, payload, systemPrompt)
}

// syncSessionLocked flushes the transcript into the active session, creating
// one on first append. The collection is written through before the
// transition is considered finished. Callers hold the lock.
func (o *Engine) syncSessionLocked() {
	if len(o.transcript) == 0 {
		return
	}
	now := o.now()
	messages := append([]chat.Message(nil), o.transcript...)

	if o.activeID == "" {
		session := chat.Session{
			ID:        o.newID(),
			Title:     chat.DeriveTitle(o.transcript[0].Text),
			Messages:  messages,
			CreatedAt: now,
			UpdatedAt: now,
		}
		o.activeID = session.ID
		o.collection = append([]chat.Session{session}, o.collection...)
	} else {
		session, idx, found := lo.FindIndexOf(o.collection, func(s chat.Session) bool {
			return s.ID == o.activeID
		})
		if !found {
			return
		}
		session.Messages = messages
		session.UpdatedAt = now
		o.collection = append(o.collection[:idx], o.collection[idx+1:]...)
		o.collection = append([]chat.Session{session}, o.collection...)
	}

	if err := o.sessions.Save(o.userKey, o.collection); err != nil {
		o.logger.Error("could not persist session collection", zap.Error(err))
	}
}

// StartNew clears the transcript; the next submit creates a fresh session.
func (o *Engine) StartNew() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.transcript = nil
	o.activeID = ""
}

// Open replaces the transcript with a saved session's messages and makes it
// active.
func (o *Engine) Open(sessionID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	session, found := lo.Find(o.collection, func(s chat.Session) bool {
		return s.ID == sessionID
	})
	if !found {
		return ErrSessionNotFound
	}
	o.transcript = append([]chat.Message(nil), session.Messages...)
	o.activeID = session.ID
	return nil
}

// Remove deletes a session from the collection and the store. Removing the
// active session also clears the transcript. Unknown ids are a no-op.
func (o *Engine) Remove(sessionID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	remaining, err := o.sessions.Delete(o.userKey, sessionID)
	if !identity.IsLoggedIn(o.userKey) {
		// Guests have no persisted collection; drop it in memory only.
		remaining = lo.Filter(o.collection, func(s chat.Session, _ int) bool {
			return s.ID != sessionID
		})
	}
	o.collection = remaining
	if o.activeID == sessionID {
		o.transcript = nil
		o.activeID = ""
	}
	return err
}

// Dictate runs one recognition session: interim partials update the staged
// text live, the final transcript replaces it and auto-submits after a short
// delay so the user sees the final text. Capability errors surface as a
// notice and never crash.
func (o *Engine) Dictate(ctx context.Context) {
	events, err := o.dictation.Start(ctx)
	if err != nil {
		if errors.Is(err, voice.ErrUnavailable) {
			o.notify("Speech recognition is not supported on this device.")
		} else {
			o.notify("Could not start dictation: " + err.Error())
		}
		return
	}

	for event := range events {
		switch {
		case event.Err != nil:
			o.logger.Warn("dictation ended with error", zap.Error(event.Err))
			o.notify("Dictation stopped: " + event.Err.Error())
			return
		case event.Final:
			o.composer.SetText(event.Text)
			time.Sleep(o.autoSendDelay)
			if err := o.Submit(ctx); err != nil {
				o.logger.Debug("dictated submit rejected", zap.Error(err))
			}
			return
		default:
			o.composer.SetText(event.Text)
		}
	}
}
