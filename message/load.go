package message

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// Load reads a newline-delimited source and returns its non-blank lines
// verbatim. A missing source yields an empty list and no error.
func Load(fs afero.Fs, path string) ([]string, error) {
	if path == "" {
		return []string{}, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("afero.ReadFile(%s): %w", path, err)
	}

	return parse(string(data)), nil
}

func parse(text string) []string {
	lines := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
