// Package notify sends batch completion notices through the Pushover API.
package notify

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/fairway-data/swing.report/internal/httputil"
)

// DefaultEndpoint is the Pushover message API endpoint.
const DefaultEndpoint = "https://api.pushover.net/1/messages.json"

// Env var names for FromEnv.
const (
	TokenEnv = "PUSHOVER_TOKEN"
	UserEnv  = "PUSHOVER_USER"
)

// Pushover sends messages to a single Pushover user.
type Pushover struct {
	Token    string
	User     string
	Endpoint string
	Client   httputil.HTTPClient
}

// New builds a notifier with the default endpoint and HTTP client.
func New(token, user string) *Pushover {
	return &Pushover{
		Token:    token,
		User:     user,
		Endpoint: DefaultEndpoint,
		Client:   httputil.NewStandardClient(nil),
	}
}

// FromEnv builds a notifier from the PUSHOVER_TOKEN and PUSHOVER_USER
// environment variables. ok is false when either is unset, which callers
// treat as notifications-disabled rather than an error.
func FromEnv() (p *Pushover, ok bool) {
	token := os.Getenv(TokenEnv)
	user := os.Getenv(UserEnv)
	if token == "" || user == "" {
		return nil, false
	}
	return New(token, user), true
}

// Notify sends a message with the given title. An empty title omits the
// field so Pushover falls back to the application name.
func (p *Pushover) Notify(message, title string) error {
	form := url.Values{
		"token":   {p.Token},
		"user":    {p.User},
		"message": {message},
	}
	if title != "" {
		form.Set("title", title)
	}

	resp, err := p.Client.PostForm(p.Endpoint, form)
	if err != nil {
		return fmt.Errorf("pushover request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("pushover returned %d: %s", resp.StatusCode, body)
	}
	return nil
}
