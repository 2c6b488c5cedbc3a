package terminal

import (
	"io"
	"os"
)

// Client renders human-readable output for the CLI commands.
type Client struct {
	Out io.Writer
}

func (c *Client) Init() error {
	if c.Out == nil {
		c.Out = os.Stdout
	}
	return nil
}
