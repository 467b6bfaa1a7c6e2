package device

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"mocktail/internal/config"
	"mocktail/internal/domain"
	"mocktail/internal/interfaces"
)

const relayPath = "/make-drink"

// Keep rejection messages readable even if the controller replies with junk.
const maxReplyExcerpt = 256

type client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds the relay client for the dispensing controller. The
// connect timeout bounds connection establishment; the call timeout bounds
// the whole request including the connect phase.
func NewClient(cfg config.ControllerConfig) interfaces.DeviceRelay {
	dialer := &net.Dialer{
		Timeout: time.Duration(cfg.ConnectTimeoutSec) * time.Second,
	}

	return &client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.CallTimeoutSec) * time.Second,
			Transport: &http.Transport{
				DialContext: dialer.DialContext,
			},
		},
	}
}

type relayRequest struct {
	Items []domain.OrderItem `json:"items"`
}

// Relay issues exactly one POST to the controller. No retry: the controller
// dispenses on receipt, so a second attempt could pour the order twice.
func (c *client) Relay(ctx context.Context, items []domain.OrderItem) (json.RawMessage, error) {
	body, err := json.Marshal(relayRequest{Items: items})
	if err != nil {
		return nil, fmt.Errorf("failed to encode relay payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+relayPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, fmt.Errorf("%w: request timed out: %v", domain.ErrDeviceUnreachable, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrDeviceUnreachable, err)
	}
	defer resp.Body.Close()

	reply, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read reply: %v", domain.ErrDeviceUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrDeviceRejected, resp.StatusCode, excerpt(reply))
	}

	return reply, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxReplyExcerpt {
		s = s[:maxReplyExcerpt] + "..."
	}
	return s
}
