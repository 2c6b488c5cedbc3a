// Package toggl starts and stops time entries through the Toggl Track v9 API.
package toggl

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/sporadisk/punchclock/client"
	"github.com/sporadisk/punchclock/message"
)

const (
	DefaultEndpoint    = "https://api.track.toggl.com/api/v9"
	DefaultCreatedWith = "punchclock"
	DefaultTimeout     = 10 * time.Second
)

// Messages supplies the descriptions of started and stopped entries.
type Messages interface {
	Start(r *rand.Rand) string
	End(r *rand.Rand) string
}

type Client struct {
	// Configuration
	Endpoint    string
	Email       string
	Password    string
	APIToken    string
	WorkspaceID int64
	ProjectID   *int64
	CreatedWith string
	Timeout     time.Duration

	// Collaborators. Zero values are replaced in Init.
	Messages  Messages
	Rand      *rand.Rand
	Now       func() time.Time
	Logger    *slog.Logger
	Transport http.RoundTripper

	// State
	HttpClient *client.HttpClient
	current    *TimeEntry
}

func (c *Client) Init() error {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.CreatedWith == "" {
		c.CreatedWith = DefaultCreatedWith
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Messages == nil {
		c.Messages = defaultMessages{}
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	c.Logger = c.Logger.With("component", "toggl")

	transport, err := c.authTransport()
	if err != nil {
		return fmt.Errorf("c.authTransport: %w", err)
	}

	c.HttpClient = client.NewHttpClient(c.Timeout, transport)
	return nil
}

// Current returns the entry this client believes is running, or nil.
func (c *Client) Current() *TimeEntry {
	return c.current
}

// Adopt makes entry the tracked entry, e.g. after reading the running entry
// from the API at startup.
func (c *Client) Adopt(entry *TimeEntry) {
	c.current = entry
}

type defaultMessages struct{}

func (defaultMessages) Start(*rand.Rand) string { return message.DefaultStart }
func (defaultMessages) End(*rand.Rand) string   { return message.DefaultEnd }
