package message

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"

	"github.com/spf13/afero"
)

// Kind identifies one of the two message pools.
type Kind string

const (
	KindStart Kind = "start"
	KindEnd   Kind = "end"
)

// Store holds the start and end pools. Pools are swapped as a whole on
// reload; a Pool value is never mutated.
type Store struct {
	fs        afero.Fs
	startPath string
	endPath   string
	logger    *slog.Logger

	start atomic.Pointer[Pool]
	end   atomic.Pointer[Pool]
}

// NewStore loads both sources from fs. Missing sources produce empty pools.
func NewStore(fs afero.Fs, startPath, endPath string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		fs:        fs,
		startPath: startPath,
		endPath:   endPath,
		logger:    logger.With("component", "messages"),
	}

	for _, kind := range []Kind{KindStart, KindEnd} {
		if err := s.Reload(kind); err != nil {
			return nil, fmt.Errorf("s.Reload(%s): %w", kind, err)
		}
	}

	return s, nil
}

// Start picks a start description, falling back to DefaultStart.
func (s *Store) Start(r *rand.Rand) string {
	return s.start.Load().Pick(r, DefaultStart)
}

// End picks an end description, falling back to DefaultEnd.
func (s *Store) End(r *rand.Rand) string {
	return s.end.Load().Pick(r, DefaultEnd)
}

func (s *Store) Pool(kind Kind) *Pool {
	if kind == KindEnd {
		return s.end.Load()
	}
	return s.start.Load()
}

func (s *Store) Path(kind Kind) string {
	if kind == KindEnd {
		return s.endPath
	}
	return s.startPath
}

// Reload re-reads the source for kind and replaces its pool.
func (s *Store) Reload(kind Kind) error {
	path := s.Path(kind)
	lines, err := Load(s.fs, path)
	if err != nil {
		return fmt.Errorf("Load: %w", err)
	}

	pool := NewPool(lines)
	if kind == KindEnd {
		s.end.Store(pool)
	} else {
		s.start.Store(pool)
	}

	s.logger.Debug("messages loaded", "kind", kind, "path", path, "count", pool.Len())
	return nil
}
