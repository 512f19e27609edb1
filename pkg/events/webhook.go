package events

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Mateiul123/Blockchainworkapp/pkg/logging"
)

// WebhookSink POSTs each event as JSON to a configured URL. Failures are
// logged and dropped; notification delivery is outside the ledger's
// correctness boundary.
type WebhookSink struct {
	url    string
	token  string
	client *http.Client
	logger logging.Logger
}

var _ Sink = (*WebhookSink)(nil)

func NewWebhookSink(url string, token string, logger logging.Logger) *WebhookSink {
	return &WebhookSink{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

func (s *WebhookSink) Publish(event Event) {
	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf("Error marshaling event %s: %v", event.Type, err)
		return
	}

	go func() {
		if err := s.post(body); err != nil {
			s.logger.Errorf("Error delivering event %s webhook: %v", event.Type, err)
		}
	}()
}

func (s *WebhookSink) post(body []byte) error {
	req, err := http.NewRequest(http.MethodPost, s.url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook responded %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
