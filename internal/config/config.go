package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/inkshell/internal/app"
	"github.com/atomicstack/inkshell/internal/device"
	"github.com/atomicstack/inkshell/internal/settings"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envSettings            = "INKSHELL_SETTINGS"
	envDevice              = "INKSHELL_DEVICE"
	envHeadless            = "INKSHELL_HEADLESS"
	envScreenshotDir       = "INKSHELL_SCREENSHOT_DIR"
	envNotificationTimeout = "INKSHELL_NOTIFICATION_TIMEOUT"
	envTrace               = "INKSHELL_TRACE"
	envLogFile             = "INKSHELL_LOG_FILE"
)

const defaultNotificationTimeout = 4 * time.Second

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("inkshell", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	settingsPath := fs.String("settings", envOrDefault(env, envSettings, settings.DefaultPath), "path to the settings document")
	deviceName := fs.String("device", envOrDefault(env, envDevice, device.DefaultName), "emulated device ("+strings.Join(device.Names(), ", ")+")")
	headless := fs.Bool("headless", envOrBool(env, envHeadless, false), "run without the terminal host")
	screenshotDir := fs.String("screenshot-dir", envOrDefault(env, envScreenshotDir, "."), "directory screenshots are written to")
	timeout := fs.Duration("notification-timeout", envOrDuration(env, envNotificationTimeout, defaultNotificationTimeout), "how long notifications stay on screen (0 keeps them until tapped)")
	initOnly := fs.Bool("init", false, "write default settings and an empty library index, then exit")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			SettingsPath:        *settingsPath,
			Device:              *deviceName,
			Headless:            *headless,
			ScreenshotDir:       *screenshotDir,
			NotificationTimeout: *timeout,
			Init:                *initOnly,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"settings":            *settingsPath,
			"device":              *deviceName,
			"headless":            strconv.FormatBool(*headless),
			"screenshotDir":       *screenshotDir,
			"notificationTimeout": timeout.String(),
			"init":                strconv.FormatBool(*initOnly),
			"trace":               strconv.FormatBool(*trace),
			"logFile":             *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects unknown devices and negative durations.
func Validate(cfg Config) error {
	if _, err := device.Lookup(cfg.App.Device); err != nil {
		return err
	}
	if cfg.App.NotificationTimeout < 0 {
		return fmt.Errorf("notification timeout must be >= 0 (got %s)", cfg.App.NotificationTimeout)
	}
	if strings.TrimSpace(cfg.App.SettingsPath) == "" {
		return fmt.Errorf("settings path must not be empty")
	}
	return nil
}
