package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sporadisk/punchclock/client/toggl"
	"github.com/sporadisk/punchclock/parameter"
	"github.com/sporadisk/punchclock/workday"
)

const (
	DefaultPath          = ".punchclock.yaml"
	DefaultEmail         = "default_email@example.com"
	DefaultPassword      = "default_password"
	DefaultStartMessages = "start_messages.txt"
	DefaultEndMessages   = "end_messages.txt"
	DefaultPollInterval  = time.Minute
	TestPollInterval     = time.Second
)

type Config struct {
	Endpoint     string          `yaml:"endpoint"`
	Email        string          `yaml:"email"`
	Password     string          `yaml:"password"`
	APIToken     string          `yaml:"apiToken"`
	WorkspaceID  int64           `yaml:"workspaceId"`
	ProjectID    *int64          `yaml:"projectId"`
	UseKeyring   bool            `yaml:"useKeyring"`
	AdoptRunning bool            `yaml:"adoptRunning"`
	LogLevel     string          `yaml:"logLevel"`
	Messages     *MessagesConfig `yaml:"messages"`
	Schedule     *ScheduleConfig `yaml:"schedule"`
	HTTP         *HTTPConfig     `yaml:"http"`
}

type MessagesConfig struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	Watch bool   `yaml:"watch"`
}

type ScheduleConfig struct {
	JitterMinutes *int    `yaml:"jitterMinutes"`
	Anchors       *Anchor `yaml:"anchors"`
	PollInterval  string  `yaml:"pollInterval"`
	Timezone      string  `yaml:"timezone"`
	Seed          uint64  `yaml:"seed"`
}

type Anchor struct {
	MorningStart   int `yaml:"morningStart"`
	MorningEnd     int `yaml:"morningEnd"`
	AfternoonStart int `yaml:"afternoonStart"`
	AfternoonEnd   int `yaml:"afternoonEnd"`
}

type HTTPConfig struct {
	Timeout string `yaml:"timeout"`
}

// Load reads the YAML file at path, applies environment overrides and fills
// in defaults. An empty path means DefaultPath, which may be absent.
func Load(path string) (*Config, error) {
	return load(path, true)
}

// LoadUnresolved is Load without the keyring lookup, for commands that
// manage the stored secret.
func LoadUnresolved(path string) (*Config, error) {
	return load(path, false)
}

func load(path string, resolveSecrets bool) (*Config, error) {
	var useDefaultConf bool
	useDefaultConf = (path == "")

	if useDefaultConf {
		path = DefaultPath
	}

	conf := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || !useDefaultConf {
			return nil, fmt.Errorf("os.ReadFile: %w", err)
		}
		// No config was found, but no config path was specified either
	} else {
		err = yaml.Unmarshal(data, &conf)
		if err != nil {
			return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
		}
	}

	err = conf.applyEnv()
	if err != nil {
		return nil, err
	}

	conf.applyDefaults()

	if resolveSecrets {
		err = conf.resolveCredentials()
		if err != nil {
			return nil, err
		}
	}

	err = conf.Validate()
	if err != nil {
		return nil, err
	}

	return &conf, nil
}

func (c *Config) applyEnv() error {
	invalid := []string{}

	if v := env("EMAIL"); v != "" {
		c.Email = v
	}
	if v := env("PASSWORD"); v != "" {
		c.Password = v
	}
	if v := env("API_TOKEN"); v != "" {
		c.APIToken = v
	}
	if v := env("WORKSPACE_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id < 0 {
			invalid = append(invalid, "WORKSPACE_ID")
		} else {
			c.WorkspaceID = id
		}
	}
	if v := env("PROJECT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			invalid = append(invalid, "PROJECT_ID")
		} else {
			c.ProjectID = &id
		}
	}
	if v := env("START_MESSAGES"); v != "" {
		c.messages().Start = v
	}
	if v := env("END_MESSAGES"); v != "" {
		c.messages().End = v
	}
	if v := env("PUNCHCLOCK_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			invalid = append(invalid, "PUNCHCLOCK_SEED")
		} else {
			c.schedule().Seed = seed
		}
	}
	if v := env("PUNCHCLOCK_TZ"); v != "" {
		c.schedule().Timezone = v
	}
	if v := env("PUNCHCLOCK_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	if len(invalid) > 0 {
		return fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = toggl.DefaultEndpoint
	}
	if c.Email == "" {
		c.Email = DefaultEmail
	}
	if c.Password == "" && c.APIToken == "" && !c.UseKeyring {
		c.Password = DefaultPassword
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.messages().Start == "" {
		c.messages().Start = DefaultStartMessages
	}
	if c.messages().End == "" {
		c.messages().End = DefaultEndMessages
	}
	if c.schedule().JitterMinutes == nil {
		window := workday.DefaultJitterMinutes
		c.schedule().JitterMinutes = &window
	}
	if c.schedule().Anchors == nil {
		a := workday.DefaultAnchors
		c.schedule().Anchors = &Anchor{
			MorningStart:   a.MorningStart,
			MorningEnd:     a.MorningEnd,
			AfternoonStart: a.AfternoonStart,
			AfternoonEnd:   a.AfternoonEnd,
		}
	}
	if c.HTTP == nil {
		c.HTTP = &HTTPConfig{}
	}
}

// Validate checks values that cannot be corrected with a default.
func (c *Config) Validate() error {
	level, err := parameter.Validate(c.LogLevel, []string{"debug", "info", "warn", "error"})
	if err != nil {
		return fmt.Errorf("logLevel: %w", err)
	}
	c.LogLevel = level

	if *c.schedule().JitterMinutes < 0 || *c.schedule().JitterMinutes > 59 {
		return fmt.Errorf("schedule.jitterMinutes must be within 0-59, got %d", *c.schedule().JitterMinutes)
	}

	err = c.Anchors().Validate()
	if err != nil {
		return fmt.Errorf("schedule.anchors: %w", err)
	}

	_, err = c.PollInterval(false)
	if err != nil {
		return fmt.Errorf("schedule.pollInterval: %w", err)
	}

	_, err = c.Timeout()
	if err != nil {
		return fmt.Errorf("http.timeout: %w", err)
	}

	_, err = c.Location()
	if err != nil {
		return fmt.Errorf("schedule.timezone: %w", err)
	}

	return nil
}

func (c *Config) Anchors() workday.Anchors {
	a := c.schedule().Anchors
	return workday.Anchors{
		MorningStart:   a.MorningStart,
		MorningEnd:     a.MorningEnd,
		AfternoonStart: a.AfternoonStart,
		AfternoonEnd:   a.AfternoonEnd,
	}
}

func (c *Config) JitterMinutes() int {
	return *c.schedule().JitterMinutes
}

func (c *Config) Seed() uint64 {
	return c.schedule().Seed
}

// PollInterval returns the configured interval, or the mode default.
func (c *Config) PollInterval(testMode bool) (time.Duration, error) {
	if testMode {
		return TestPollInterval, nil
	}
	return parsePositiveDuration(c.schedule().PollInterval, DefaultPollInterval)
}

func (c *Config) Timeout() (time.Duration, error) {
	return parsePositiveDuration(c.HTTP.Timeout, toggl.DefaultTimeout)
}

// Location returns the configured timezone, or time.Local.
func (c *Config) Location() (*time.Location, error) {
	tz := c.schedule().Timezone
	if tz == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("time.LoadLocation(%s): %w", tz, err)
	}
	return loc, nil
}

func (c *Config) messages() *MessagesConfig {
	if c.Messages == nil {
		c.Messages = &MessagesConfig{}
	}
	return c.Messages
}

func (c *Config) schedule() *ScheduleConfig {
	if c.Schedule == nil {
		c.Schedule = &ScheduleConfig{}
	}
	return c.Schedule
}

func parsePositiveDuration(value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("time.ParseDuration: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", d)
	}
	return d, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
