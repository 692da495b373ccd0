package notify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Luapxanna/ops-pilot/internal/logging"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
)

// Notifier delivers digests to an optional webhook. Delivery runs behind a
// circuit breaker so a dead endpoint cannot stall the daily jobs. With no
// webhook configured, digests are logged instead.
type Notifier struct {
	webhookURL string
	client     *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewNotifier builds a Notifier; webhookURL may be empty.
func NewNotifier(webhookURL string) *Notifier {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "digest-webhook",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Circuit breaker %q changed from %s to %s", name, from, to)
		},
	})
	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
		breaker:    breaker,
	}
}

// SendDigest delivers one digest. Errors are returned for the caller to
// log; the daily job treats them as non-fatal.
func (n *Notifier) SendDigest(subject, text string) error {
	if n.webhookURL == "" {
		logging.Logger.Infof("Digest %q (no webhook configured):\n%s", subject, text)
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"subject": subject,
		"text":    text,
	})
	if err != nil {
		return errors.Wrap(err, "encoding digest payload")
	}

	_, err = n.breaker.Execute(func() (interface{}, error) {
		resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			return nil, errors.Errorf("webhook returned status %d", resp.StatusCode)
		}
		return nil, nil
	})
	return errors.Wrap(err, "delivering digest")
}
