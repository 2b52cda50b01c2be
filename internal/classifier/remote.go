package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/phishscan/phishscan/internal/config"
	"github.com/phishscan/phishscan/internal/model"
)

// ErrMissingProbability is returned when the remote model's response
// lacks the phishing_probability field.
var ErrMissingProbability = errors.New("remote model response has no phishing_probability")

// RemoteClassifier sends the feature vector to an external model service
// and reads back a phishing probability. Any deviation from the expected
// contract (transport failure, non-2xx status, malformed or incomplete
// body, timeout) is an error; callers wrap this classifier in a Fallback.
type RemoteClassifier struct {
	// endpoint is the model service URL receiving POSTed feature vectors.
	endpoint string

	// client is the HTTP client with the prediction timeout applied.
	client *http.Client
}

// RemoteOption configures a RemoteClassifier.
type RemoteOption func(*RemoteClassifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) RemoteOption {
	return func(c *RemoteClassifier) {
		c.client = client
	}
}

// WithPredictTimeout sets the per-prediction timeout.
func WithPredictTimeout(timeout time.Duration) RemoteOption {
	return func(c *RemoteClassifier) {
		c.client.Timeout = timeout
	}
}

// NewRemoteClassifier creates a remote classifier for the given endpoint
// with the default 5 second prediction timeout.
func NewRemoteClassifier(endpoint string, opts ...RemoteOption) *RemoteClassifier {
	c := &RemoteClassifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: config.DefaultClassifierTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Name returns the classifier name.
func (c *RemoteClassifier) Name() string {
	return "remote"
}

// prediction is the expected remote response body. The probability is a
// pointer so an absent field is distinguishable from an explicit zero.
type prediction struct {
	PhishingProbability *float64 `json:"phishing_probability"`
}

// Predict POSTs the serialized feature vector to the model endpoint and
// returns the clamped probability from its response.
func (c *RemoteClassifier) Predict(ctx context.Context, features *model.FeatureVector) (float64, error) {
	body, err := json.Marshal(features)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize features: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build prediction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("prediction request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("remote model returned status %d", resp.StatusCode)
	}

	var pred prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return 0, fmt.Errorf("failed to decode prediction response: %w", err)
	}
	if pred.PhishingProbability == nil {
		return 0, ErrMissingProbability
	}

	return clamp(*pred.PhishingProbability), nil
}
