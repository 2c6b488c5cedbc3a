package toggl

import (
	"context"
	"fmt"

	"github.com/sporadisk/punchclock/format"
)

// Begin stops the tracked entry, if any, and starts a new running entry
// with a random start description. On failure the tracked entry is left
// as it was after the stop attempt.
func (c *Client) Begin(ctx context.Context) error {
	err := c.Stop(ctx)
	if err != nil {
		c.Logger.Error("stopping the previous entry failed", "error", err)
	}

	description := c.Messages.Start(c.Rand)
	endpoint := fmt.Sprintf("workspaces/%d/time_entries", c.WorkspaceID)
	body := &createEntryBody{
		CreatedWith: c.CreatedWith,
		Description: description,
		Start:       c.Now().UTC().Format(startLayout),
		WorkspaceID: c.WorkspaceID,
		Duration:    -1,
		ProjectID:   c.ProjectID,
	}

	resp, err := c.PostRequest(ctx, endpoint, body)
	if err != nil {
		return fmt.Errorf("c.PostRequest(%s): %w", endpoint, err)
	}

	if !resp.OK() {
		return newAPIError("starting entry", resp)
	}

	entry, err := parseEntry(resp.Body)
	if err != nil {
		return fmt.Errorf("parseEntry: %w", err)
	}
	if entry == nil {
		return fmt.Errorf("%w: empty response", ErrMalformedEntry)
	}

	c.current = entry
	c.Logger.Info("entry started", "id", entry.ID, "description", description, "at", format.TimestampSeconds(c.Now()))
	return nil
}

// Stop stops the tracked entry. Without a tracked entry it does nothing.
func (c *Client) Stop(ctx context.Context) error {
	if c.current == nil {
		return nil
	}
	return c.StopByID(ctx, c.current.ID)
}

// StopByID stops the entry with the given id. The tracked entry is cleared
// only when the call succeeds.
func (c *Client) StopByID(ctx context.Context, id int64) error {
	description := c.Messages.End(c.Rand)
	endpoint := fmt.Sprintf("workspaces/%d/time_entries/%d/stop", c.WorkspaceID, id)

	resp, err := c.PatchRequest(ctx, endpoint, nil)
	if err != nil {
		return fmt.Errorf("c.PatchRequest(%s): %w", endpoint, err)
	}

	if !resp.OK() {
		return newAPIError("stopping entry", resp)
	}

	c.current = nil
	c.Logger.Info("entry stopped", "id", id, "description", description, "at", format.TimestampSeconds(c.Now()))
	return nil
}

// CurrentEntry reads the running entry of the authenticated user. It returns
// nil when nothing is running.
func (c *Client) CurrentEntry(ctx context.Context) (*TimeEntry, error) {
	endpoint := "me/time_entries/current"
	resp, err := c.GetRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("c.GetRequest(%s): %w", endpoint, err)
	}

	if !resp.OK() {
		return nil, newAPIError("reading current entry", resp)
	}

	entry, err := parseEntry(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parseEntry: %w", err)
	}
	return entry, nil
}
