package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/spf13/afero"

	"github.com/sporadisk/punchclock/client/toggl"
	"github.com/sporadisk/punchclock/config"
	"github.com/sporadisk/punchclock/logging"
	"github.com/sporadisk/punchclock/message"
	"github.com/sporadisk/punchclock/schedule"
	"github.com/sporadisk/punchclock/workday"
)

type options struct {
	configPath string
	testMode   bool
}

// app holds the components shared by every command.
type app struct {
	opts   *options
	conf   *config.Config
	logger *slog.Logger
	loc    *time.Location
	rng    *rand.Rand
	store  *message.Store
	client *toggl.Client
}

func newApp(opts *options, logOut io.Writer) (*app, error) {
	conf, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	level, err := logging.ParseLevel(conf.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logging.ParseLevel: %w", err)
	}
	logger := logging.New(logOut, level, opts.testMode)

	loc, err := conf.Location()
	if err != nil {
		return nil, fmt.Errorf("conf.Location: %w", err)
	}

	timeout, err := conf.Timeout()
	if err != nil {
		return nil, fmt.Errorf("conf.Timeout: %w", err)
	}

	a := &app{
		opts:   opts,
		conf:   conf,
		logger: logger,
		loc:    loc,
		rng:    newRand(conf.Seed()),
	}

	a.store, err = message.NewStore(afero.NewOsFs(), conf.Messages.Start, conf.Messages.End, logger)
	if err != nil {
		return nil, fmt.Errorf("message.NewStore: %w", err)
	}

	a.client = &toggl.Client{
		Endpoint:    conf.Endpoint,
		Email:       conf.Email,
		Password:    conf.Password,
		APIToken:    conf.APIToken,
		WorkspaceID: conf.WorkspaceID,
		ProjectID:   conf.ProjectID,
		Timeout:     timeout,
		Messages:    a.store,
		Rand:        a.rng,
		Now:         a.now,
		Logger:      logger,
	}
	err = a.client.Init()
	if err != nil {
		return nil, fmt.Errorf("toggl.Client.Init: %w", err)
	}

	return a, nil
}

func (a *app) now() time.Time {
	return time.Now().In(a.loc)
}

// plan computes the trigger times for this process lifetime.
func (a *app) plan(now time.Time) workday.Plan {
	if a.opts.testMode {
		a.logger.Info("test mode: running the schedule in seconds instead of hours")
		return workday.TestPlan(now, a.rng)
	}
	return workday.NormalPlan(now, a.conf.Anchors(), a.conf.JitterMinutes(), a.rng)
}

func (a *app) scheduler(plan workday.Plan, now time.Time) (*schedule.Scheduler, error) {
	s := schedule.New()
	err := s.Weekly(plan, a.client.Begin, a.client.Stop, now)
	if err != nil {
		return nil, fmt.Errorf("s.Weekly: %w", err)
	}
	return s, nil
}

// newRand seeds from seed, or randomly when seed is zero.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}
