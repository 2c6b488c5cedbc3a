package toggl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// startLayout is the UTC timestamp format sent when creating entries.
const startLayout = "2006-01-02T15:04:05Z"

// TimeEntry is a Toggl time entry. A negative Duration marks a running entry.
type TimeEntry struct {
	ID          int64      `json:"id"`
	WorkspaceID int64      `json:"workspace_id"`
	ProjectID   *int64     `json:"project_id,omitempty"`
	Description string     `json:"description"`
	Start       time.Time  `json:"start"`
	Stop        *time.Time `json:"stop,omitempty"`
	Duration    int64      `json:"duration"`
	CreatedWith string     `json:"created_with,omitempty"`
}

func (e *TimeEntry) Running() bool {
	return e.Duration < 0
}

type createEntryBody struct {
	CreatedWith string `json:"created_with"`
	Description string `json:"description"`
	Start       string `json:"start"`
	WorkspaceID int64  `json:"workspace_id"`
	Duration    int64  `json:"duration"`
	ProjectID   *int64 `json:"project_id,omitempty"`
}

// parseEntry decodes a single time entry. A JSON null yields a nil entry.
func parseEntry(body []byte) (*TimeEntry, error) {
	trimmed := bytes.TrimSpace(body)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var entry TimeEntry
	err := json.Unmarshal(trimmed, &entry)
	if err != nil {
		return nil, fmt.Errorf("%w: json.Unmarshal: %w", ErrMalformedEntry, err)
	}

	if entry.ID == 0 {
		return nil, fmt.Errorf("%w: missing id", ErrMalformedEntry)
	}

	return &entry, nil
}
