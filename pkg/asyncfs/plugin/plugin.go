// Package plugin defines the capability interface for bookmark
// post-processors and the manager that hosts them.
package plugin

import (
	"path/filepath"

	"github.com/arthur-debert/asyncfs/pkg/asyncfs/bookmark"
)

// Plugin is the fixed capability interface every plugin implements.
// ProcessEntry, MenuItems and HandleMenuItem are optional behaviors;
// a plugin with nothing to contribute returns nil from them.
type Plugin interface {
	Name() string
	Version() string
	Description() string
	Author() string

	// Dependencies names plugins that must be initialized before this
	// one. Every named plugin must be registered.
	Dependencies() []string

	Initialize(ctx *Context) error
	Shutdown() error

	// ProcessEntry may return a replacement for entry, or nil to leave
	// it unchanged.
	ProcessEntry(entry *bookmark.Entry) *bookmark.Entry

	// MenuItems contributes context-menu items.
	MenuItems() []MenuItem

	// HandleMenuItem acts on a clicked menu item. Plugins that do not
	// own itemID report handled == false.
	HandleMenuItem(itemID string, entry *bookmark.Entry) (handled bool, err error)
}

// Base provides no-op implementations of the optional Plugin methods;
// embed it to implement only what the plugin needs.
type Base struct{}

func (Base) Dependencies() []string { return nil }

func (Base) ProcessEntry(*bookmark.Entry) *bookmark.Entry { return nil }

func (Base) MenuItems() []MenuItem { return nil }

func (Base) HandleMenuItem(string, *bookmark.Entry) (bool, error) { return false, nil }

// MenuItem is one context-menu entry contributed by a plugin.
type MenuItem struct {
	ID       string
	Label    string
	Icon     string
	Shortcut string
	Enabled  bool
}

// NewMenuItem creates an enabled menu item.
func NewMenuItem(id, label string) MenuItem {
	return MenuItem{ID: id, Label: label, Enabled: true}
}

// Context is the surface plugins interact with the host through:
// data directories and a shared key/value area.
type Context struct {
	AppDataDir    string
	PluginDataDir string

	shared    map[string]string
	callbacks map[string]func(data string)
}

// NewContext creates a context rooted at appDataDir.
func NewContext(appDataDir string) *Context {
	return &Context{
		AppDataDir:    appDataDir,
		PluginDataDir: filepath.Join(appDataDir, "plugins"),
		shared:        make(map[string]string),
		callbacks:     make(map[string]func(string)),
	}
}

// SetShared stores a shared value.
func (c *Context) SetShared(key, value string) {
	c.shared[key] = value
}

// Shared returns a shared value.
func (c *Context) Shared(key string) (string, bool) {
	v, ok := c.shared[key]
	return v, ok
}

// RegisterCallback registers a callback for an event name, replacing
// any previous one.
func (c *Context) RegisterCallback(event string, fn func(data string)) {
	c.callbacks[event] = fn
}

// TriggerEvent invokes the callback registered for event, if any.
func (c *Context) TriggerEvent(event, data string) {
	if fn, ok := c.callbacks[event]; ok {
		fn(data)
	}
}

// DataDir returns the per-plugin data directory for name.
func (c *Context) DataDir(name string) string {
	return filepath.Join(c.PluginDataDir, name)
}
