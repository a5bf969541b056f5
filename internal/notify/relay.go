package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RelayClient publishes staff alerts to a topic on an ntfy-style push
// relay: a plain HTTP POST to <base>/<topic> with the message as body.
type RelayClient struct {
	baseURL string
	client  *http.Client
}

func NewRelayClient(baseURL string) *RelayClient {
	return &RelayClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *RelayClient) Publish(ctx context.Context, topic, title, message string) error {
	if c.baseURL == "" || topic == "" {
		return fmt.Errorf("push relay not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+url.PathEscape(topic), strings.NewReader(message))
	if err != nil {
		return err
	}
	req.Header.Set("Title", title)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("push relay request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("push relay error: status %d", resp.StatusCode)
	}
	return nil
}

// PhoneGateway is the fallback channel: an HTTP gateway that forwards a
// text message to the shop's phone.
type PhoneGateway struct {
	baseURL string
	client  *http.Client
}

func NewPhoneGateway(baseURL string) *PhoneGateway {
	return &PhoneGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *PhoneGateway) Send(ctx context.Context, phone, message string) error {
	if g.baseURL == "" || phone == "" {
		return fmt.Errorf("phone gateway not configured")
	}

	u, err := url.Parse(g.baseURL)
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("phone", phone)
	q.Set("text", message)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("phone gateway request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("phone gateway error: status %d", resp.StatusCode)
	}
	return nil
}
