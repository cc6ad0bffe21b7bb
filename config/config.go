// Package config reads the lifeboard settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrInvalidConfig is wrapped by every error caused by a bad setting.
var ErrInvalidConfig = errors.New("config: invalid value")

// The environment variables that Load reads.
const (
	EnvSeed        = "LIFEBOARD_SEED"
	EnvBoard       = "LIFEBOARD_BOARD"
	EnvDisplay     = "LIFEBOARD_DISPLAY"
	EnvButtons     = "LIFEBOARD_BUTTONS"
	EnvRecord      = "LIFEBOARD_RECORD"
	EnvRecordPath  = "LIFEBOARD_RECORD_PATH"
	EnvMonitor     = "LIFEBOARD_MONITOR"
	EnvMonitorPort = "LIFEBOARD_MONITOR_PORT"
	EnvOpenBrowser = "LIFEBOARD_OPEN_BROWSER"
)

// Display selects where frames are shown.
type Display string

// The supported displays.
const (
	DisplayTerminal Display = "terminal"
	DisplaySDL      Display = "sdl"
	DisplayNone     Display = "none"
)

// ParseDisplay validates a display name.
func ParseDisplay(s string) (Display, error) {
	switch d := Display(strings.ToLower(strings.TrimSpace(s))); d {
	case DisplayTerminal, DisplaySDL, DisplayNone:
		return d, nil
	default:
		return "", fmt.Errorf("%w: display %q", ErrInvalidConfig, s)
	}
}

// ButtonsStdin and ButtonsNone are the fixed button modes. A mode of the
// form ScriptPrefix+"a@1-3,b@5" replays a script.
const (
	ButtonsStdin = "stdin"
	ButtonsNone  = "none"
	ScriptPrefix = "script:"
)

// ValidateButtons checks a button mode.
func ValidateButtons(s string) error {
	switch {
	case s == ButtonsStdin, s == ButtonsNone:
		return nil
	case strings.HasPrefix(s, ScriptPrefix):
		return nil
	default:
		return fmt.Errorf("%w: buttons %q", ErrInvalidConfig, s)
	}
}

// ValidatePort checks a monitor port number. Zero picks a random port.
func ValidatePort(port int) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("%w: monitor port %d", ErrInvalidConfig, port)
	}

	return nil
}

// Config holds every setting of a run.
type Config struct {
	// Seed drives the random source. Zero uses the system random source.
	Seed uint64

	// BoardPath names a file with the first board. Empty starts from a
	// random board.
	BoardPath string

	Display Display
	Buttons string

	Record     bool
	RecordPath string

	Monitor     bool
	MonitorPort int
	OpenBrowser bool
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Display: DisplayTerminal,
		Buttons: ButtonsStdin,
	}
}

// Load reads the .env file in the working directory, if there is one, and
// then the environment.
func Load() (*Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is like Load but reads the given env files. Missing files are
// skipped. Variables already in the environment win over the files.
func LoadFiles(files ...string) (*Config, error) {
	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	c := Default()

	var err error

	if v := getenv(EnvSeed); v != "" {
		c.Seed, err = strconv.ParseUint(v, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvSeed, v)
		}
	}

	c.BoardPath = getenv(EnvBoard)

	if v := getenv(EnvDisplay); v != "" {
		c.Display, err = ParseDisplay(v)
		if err != nil {
			return nil, err
		}
	}

	if v := getenv(EnvButtons); v != "" {
		err = ValidateButtons(v)
		if err != nil {
			return nil, err
		}

		c.Buttons = v
	}

	c.Record, err = parseBool(getenv, EnvRecord)
	if err != nil {
		return nil, err
	}

	c.RecordPath = getenv(EnvRecordPath)

	c.Monitor, err = parseBool(getenv, EnvMonitor)
	if err != nil {
		return nil, err
	}

	if v := getenv(EnvMonitorPort); v != "" {
		c.MonitorPort, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvMonitorPort, v)
		}

		err = ValidatePort(c.MonitorPort)
		if err != nil {
			return nil, err
		}
	}

	c.OpenBrowser, err = parseBool(getenv, EnvOpenBrowser)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func parseBool(getenv func(string) string, name string) (bool, error) {
	v := getenv(name)
	if v == "" {
		return false, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q", ErrInvalidConfig, name, v)
	}

	return b, nil
}
