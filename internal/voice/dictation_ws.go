package voice

import (
	"context"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	eventPartial = "partial"
	eventFinal   = "final"
	eventError   = "error"
)

// gatewayEvent is the JSON frame the speech gateway emits per recognition
// step.
type gatewayEvent struct {
	Event string `json:"event"`
	Text  string `json:"text"`
}

// GatewayDictation streams transcripts from a speech gateway over a
// websocket. At most one recognition session is active at a time; starting a
// new one tears down the previous connection.
type GatewayDictation struct {
	url    string
	logger *zap.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewGatewayDictation(url string, logger *zap.Logger) *GatewayDictation {
	// The gateway URL may be configured with either scheme.
	if after, ok := strings.CutPrefix(url, "http"); ok {
		url = "ws" + after
	}
	return &GatewayDictation{url: url, logger: logger}
}

func (o *GatewayDictation) Start(ctx context.Context) (<-chan TranscriptEvent, error) {
	o.Stop()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, o.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not connect to speech gateway")
	}

	o.mu.Lock()
	o.conn = conn
	o.mu.Unlock()

	events := make(chan TranscriptEvent)
	go o.readLoop(ctx, conn, events)
	return events, nil
}

func (o *GatewayDictation) readLoop(ctx context.Context, conn *websocket.Conn, events chan<- TranscriptEvent) {
	defer close(events)
	defer o.closeConn(conn)

	for {
		var frame gatewayEvent
		if err := conn.ReadJSON(&frame); err != nil {
			if ctx.Err() == nil {
				o.logger.Warn("dictation stream closed", zap.Error(err))
				events <- TranscriptEvent{Err: err}
			}
			return
		}

		switch frame.Event {
		case eventPartial:
			events <- TranscriptEvent{Text: frame.Text}
		case eventFinal:
			events <- TranscriptEvent{Text: frame.Text, Final: true}
			return
		case eventError:
			events <- TranscriptEvent{Err: errors.New(frame.Text)}
			return
		}
	}
}

// Stop ends the active recognition session, if any.
func (o *GatewayDictation) Stop() {
	o.mu.Lock()
	conn := o.conn
	o.conn = nil
	o.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}

func (o *GatewayDictation) closeConn(conn *websocket.Conn) {
	o.mu.Lock()
	if o.conn == conn {
		o.conn = nil
	}
	o.mu.Unlock()
	conn.Close()
}
