// Package mailer sends the plain-text report through the EmailJS REST API.
//
// A send is a single attempt: there is no retry. Failures carry the raw
// response payload so the caller can show it to the operator unchanged.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultEndpoint is the EmailJS send endpoint.
const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// Config represents the configuration for the mail client.
type Config struct {
	Endpoint   string
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	Timeout    time.Duration // Default: 30 seconds
}

// Client is an EmailJS client.
type Client struct {
	httpClient *http.Client
	endpoint   string
	serviceID  string
	templateID string
	publicKey  string
	privateKey string
	logger     *slog.Logger
}

// Message is the parameter map handed to the e-mail template.
type Message struct {
	Subject string
	Body    string
	To      string
}

// Response is the service's reply to a successful send.
type Response struct {
	Status int
	Text   string
}

// SendError is returned when the service rejects a send or cannot be
// reached. Payload holds the raw response body, if any.
type SendError struct {
	Status  int
	Payload string
	Err     error
}

func (e *SendError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("send failed: %v", e.Err)
	}
	return fmt.Sprintf("send failed: status %d: %s", e.Status, e.Payload)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// Outcome is the single result delivered by SendAsync.
type Outcome struct {
	Response *Response
	Err      error
}

// OK reports whether the send succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// NewClient creates a new mail client.
func NewClient(config Config, logger *slog.Logger) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		endpoint:   endpoint,
		serviceID:  config.ServiceID,
		templateID: config.TemplateID,
		publicKey:  config.PublicKey,
		privateKey: config.PrivateKey,
		logger:     logger,
	}
}

// Params builds the template parameter map for msg.
func Params(msg Message) map[string]string {
	return map[string]string{
		"subject":  msg.Subject,
		"message":  msg.Body,
		"to_email": msg.To,
	}
}

// Send delivers msg in a single attempt.
func (c *Client) Send(ctx context.Context, msg Message) (*Response, error) {
	payload := sendRequest{
		ServiceID:      c.serviceID,
		TemplateID:     c.templateID,
		UserID:         c.publicKey,
		AccessToken:    c.privateKey,
		TemplateParams: Params(msg),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.DebugContext(ctx, "sending report", "service_id", c.serviceID, "template_id", c.templateID, "to", msg.To)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &SendError{Err: err}
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SendError{Status: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &SendError{Status: resp.StatusCode, Payload: string(text)}
	}

	c.logger.InfoContext(ctx, "report sent", "to", msg.To, "status", resp.StatusCode)
	return &Response{Status: resp.StatusCode, Text: string(text)}, nil
}

// SendAsync starts Send in the background. The returned channel receives
// exactly one Outcome and is then closed.
func (c *Client) SendAsync(ctx context.Context, msg Message) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		resp, err := c.Send(ctx, msg)
		out <- Outcome{Response: resp, Err: err}
	}()
	return out
}
