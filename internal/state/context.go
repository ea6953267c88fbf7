// Package state holds the process-lifetime Context shared by the
// dispatcher and every view. Only the dispatcher goroutine touches it, so
// it carries no locks.
package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/inkshell/internal/battery"
	"github.com/atomicstack/inkshell/internal/device"
	"github.com/atomicstack/inkshell/internal/font"
	"github.com/atomicstack/inkshell/internal/frontlight"
	"github.com/atomicstack/inkshell/internal/metadata"
	"github.com/atomicstack/inkshell/internal/settings"
)

// Context is the shared application state.
type Context struct {
	Device       device.Descriptor
	Settings     settings.Settings
	SettingsPath string
	Library      LibraryStore
	Fonts        *font.Fonts
	Frontlight   frontlight.Frontlight
	Battery      battery.Battery

	Inverted   bool
	Monochrome bool

	// NotificationTimeout is how long notifications stay up; zero keeps
	// them until dismissed.
	NotificationTimeout time.Duration
	ScreenshotDir       string
	Now                 func() time.Time

	notificationIndex uint
}

// New assembles a Context from already loaded parts.
func New(dev device.Descriptor, s settings.Settings, md metadata.Metadata, fonts *font.Fonts, fl frontlight.Frontlight, bat battery.Battery) *Context {
	return &Context{
		Device:        dev,
		Settings:      s,
		Library:       NewLibraryStore(s.LibraryPath, md),
		Fonts:         fonts,
		Frontlight:    fl,
		Battery:       bat,
		ScreenshotDir: ".",
		Now:           time.Now,
	}
}

// Load reads the settings document, the library index it points to and the
// font cache. Any failure is fatal to startup.
func Load(dev device.Descriptor, settingsPath string) (*Context, error) {
	s, err := settings.Load(settingsPath)
	if err != nil {
		return nil, err
	}
	md, err := metadata.Load(s.LibraryPath)
	if err != nil {
		return nil, err
	}
	md, _, err = metadata.Sync(s.LibraryPath, md, time.Now())
	if err != nil {
		return nil, err
	}
	fonts, err := font.Load(s.FontPath, dev.DPI)
	if err != nil {
		return nil, err
	}
	ctx := New(dev, s, md, fonts, frontlight.NewFake(s.FrontlightLevels), battery.NewFake())
	ctx.SettingsPath = settingsPath
	return ctx, nil
}

// Init writes default settings and an empty library index, for a first run.
func Init(settingsPath string) error {
	s := settings.Default()
	if err := metadata.EnsureLibrary(s.LibraryPath); err != nil {
		return err
	}
	if err := metadata.Save(s.LibraryPath, nil); err != nil {
		return err
	}
	return settings.Save(settingsPath, s)
}

// NextNotificationIndex mints a fresh notification sequence number.
func (c *Context) NextNotificationIndex() uint {
	c.notificationIndex++
	return c.notificationIndex
}

// Save persists the library index and the settings. Both are attempted even
// if the first fails.
func (c *Context) Save() error {
	if c.Frontlight != nil {
		c.Settings.FrontlightLevels = c.Frontlight.Levels()
	}
	var errs []error
	if err := metadata.Save(c.Library.Root(), c.Library.Entries()); err != nil {
		errs = append(errs, fmt.Errorf("can't save metadata: %w", err))
	}
	if err := settings.Save(c.SettingsPath, c.Settings); err != nil {
		errs = append(errs, fmt.Errorf("can't save settings: %w", err))
	}
	return errors.Join(errs...)
}

// Clock returns the current time from the context's clock.
func (c *Context) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
