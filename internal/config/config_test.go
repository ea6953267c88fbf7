package config

import (
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.SettingsPath != "Settings.json" {
		t.Fatalf("expected default settings path, got %q", cfg.App.SettingsPath)
	}
	if cfg.App.Device != "touch" {
		t.Fatalf("expected touch device, got %q", cfg.App.Device)
	}
	if cfg.App.NotificationTimeout != 4*time.Second {
		t.Fatalf("expected 4s timeout, got %s", cfg.App.NotificationTimeout)
	}
	if cfg.App.Headless || cfg.App.Init || cfg.Logging.Trace {
		t.Fatalf("expected boolean flags off by default: %+v", cfg)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	env := []string{
		"INKSHELL_DEVICE=glo-hd",
		"INKSHELL_HEADLESS=true",
		"INKSHELL_NOTIFICATION_TIMEOUT=2s",
		"INKSHELL_TRACE=1",
		"INKSHELL_LOG_FILE=/tmp/ink.log",
	}
	cfg, err := LoadArgs([]string{"--device", "clara-hd", "--screenshot-dir", "/tmp/shots"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Device != "clara-hd" {
		t.Fatalf("flag should win over env, got %q", cfg.App.Device)
	}
	if !cfg.App.Headless || cfg.App.NotificationTimeout != 2*time.Second {
		t.Fatalf("env values not applied: %+v", cfg.App)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "/tmp/ink.log" {
		t.Fatalf("logging env not applied: %+v", cfg.Logging)
	}
	if cfg.Flags["screenshotDir"] != "/tmp/shots" || cfg.Flags["notificationTimeout"] != "2s" {
		t.Fatalf("unexpected flag map %v", cfg.Flags)
	}
}

func TestLoadArgsIgnoresMalformedEnvironment(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"INKSHELL_HEADLESS=maybe", "INKSHELL_NOTIFICATION_TIMEOUT=soon", "garbage"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Headless || cfg.App.NotificationTimeout != 4*time.Second {
		t.Fatalf("malformed env should fall back to defaults: %+v", cfg.App)
	}
}

func TestLoadArgsRejectsUnknownFlag(t *testing.T) {
	if _, err := LoadArgs([]string{"--socket", "x"}, nil); err == nil {
		t.Fatalf("expected unknown flag error")
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := LoadArgs([]string{"--device", "kindle"}, nil)
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected unknown device error")
	}
	cfg, _ = LoadArgs([]string{"--notification-timeout", "-1s"}, nil)
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected negative timeout error")
	}
	cfg, _ = LoadArgs([]string{"--init"}, nil)
	if err := Validate(cfg); err != nil || !cfg.App.Init {
		t.Fatalf("init flag: %v %+v", err, cfg.App)
	}
}
