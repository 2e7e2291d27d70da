package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type speakRequest struct {
	Text  string  `json:"text"`
	Rate  float64 `json:"rate"`
	Pitch float64 `json:"pitch"`
}

// GatewayPlayback speaks replies through a TTS gateway. A new utterance
// cancels the previous one, so at most one is ever in flight.
type GatewayPlayback struct {
	url    string
	client *http.Client
	logger *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewGatewayPlayback(url string, logger *zap.Logger) *GatewayPlayback {
	if after, ok := strings.CutPrefix(url, "ws"); ok {
		url = "http" + after
	}
	return &GatewayPlayback{
		url:    url,
		client: &http.Client{},
		logger: logger,
	}
}

func (o *GatewayPlayback) Speak(text string) {
	ctx, cancel := context.WithCancel(context.Background())

	o.mu.Lock()
	if o.cancel != nil {
		o.cancel()
	}
	o.cancel = cancel
	o.mu.Unlock()

	go func() {
		body, err := json.Marshal(speakRequest{Text: text, Rate: 1, Pitch: 1})
		if err != nil {
			return
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.url+"/speak", bytes.NewReader(body))
		if err != nil {
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := o.client.Do(req)
		if err != nil {
			// Playback is best-effort; a dead gateway only costs the audio.
			o.logger.Debug("playback request failed", zap.Error(err))
			return
		}
		resp.Body.Close()
	}()
}
