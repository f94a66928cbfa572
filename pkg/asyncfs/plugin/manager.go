package plugin

import (
	"fmt"

	"github.com/gammazero/toposort"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/asyncfs/pkg/asyncfs/bookmark"
)

// Info is a read-only summary of one registered plugin.
type Info struct {
	Name        string
	Version     string
	Description string
	Author      string
	Enabled     bool
}

// Manager hosts an ordered collection of plugins. Registration order
// is preserved for the processing pipeline; per-name configuration
// (enablement plus the plugin's key/value settings) lives in a side
// table so a disabled plugin stays registered with its values intact.
type Manager struct {
	plugins  []Plugin
	byName   map[string]Plugin
	settings map[string]*Settings
	order    []string
	context  *Context
	logger   zerolog.Logger
}

// NewManager creates a plugin manager rooted at appDataDir.
func NewManager(appDataDir string, logger zerolog.Logger) *Manager {
	return &Manager{
		byName:   make(map[string]Plugin),
		settings: make(map[string]*Settings),
		context:  NewContext(appDataDir),
		logger:   logger,
	}
}

// Context returns the shared plugin context.
func (m *Manager) Context() *Context {
	return m.context
}

// Register adds a plugin without initializing it. Names must be unique.
func (m *Manager) Register(p Plugin) error {
	name := p.Name()
	if _, exists := m.byName[name]; exists {
		return fmt.Errorf("plugin %q is already registered", name)
	}
	m.plugins = append(m.plugins, p)
	m.byName[name] = p
	m.order = append(m.order, name)
	m.settings[name] = NewSettings()

	m.logger.Debug().
		Str("plugin", name).
		Str("version", p.Version()).
		Msg("plugin registered")
	return nil
}

// InitializeAll initializes every enabled plugin, ordered so that each
// plugin's declared dependencies are initialized before it. A missing
// dependency or a dependency cycle fails the whole initialization.
func (m *Manager) InitializeAll() error {
	for _, p := range m.plugins {
		for _, dep := range p.Dependencies() {
			if _, ok := m.byName[dep]; !ok {
				return fmt.Errorf("plugin %q depends on unregistered plugin %q", p.Name(), dep)
			}
		}
	}

	edges := make([]toposort.Edge, 0)
	for _, p := range m.plugins {
		for _, dep := range p.Dependencies() {
			edges = append(edges, toposort.Edge{dep, p.Name()})
		}
	}

	sorted, err := toposort.Toposort(edges)
	if err != nil {
		return fmt.Errorf("circular plugin dependency detected: %w", err)
	}

	initOrder := make([]string, 0, len(m.plugins))
	seen := make(map[string]bool)
	for _, nameInterface := range sorted {
		name, ok := nameInterface.(string)
		if !ok {
			return fmt.Errorf("unexpected type in topological sort result: %T", nameInterface)
		}
		if _, registered := m.byName[name]; registered && !seen[name] {
			initOrder = append(initOrder, name)
			seen[name] = true
		}
	}
	// Plugins outside the dependency graph keep registration order.
	for _, name := range m.order {
		if !seen[name] {
			initOrder = append(initOrder, name)
			seen[name] = true
		}
	}

	for _, name := range initOrder {
		if !m.IsEnabled(name) {
			continue
		}
		if err := m.byName[name].Initialize(m.context); err != nil {
			return fmt.Errorf("failed to initialize plugin %q: %w", name, err)
		}
		m.logger.Info().Str("plugin", name).Msg("plugin initialized")
	}
	return nil
}

// ShutdownAll shuts down every enabled plugin in reverse registration
// order. The first failure is returned but shutdown continues for the
// remaining plugins.
func (m *Manager) ShutdownAll() error {
	var firstErr error
	for i := len(m.order) - 1; i >= 0; i-- {
		name := m.order[i]
		if !m.IsEnabled(name) {
			continue
		}
		if err := m.byName[name].Shutdown(); err != nil {
			m.logger.Warn().Str("plugin", name).Err(err).Msg("plugin shutdown failed")
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to shut down plugin %q: %w", name, err)
			}
		}
	}
	return firstErr
}

// Unregister shuts down and removes a plugin.
func (m *Manager) Unregister(name string) error {
	p, ok := m.byName[name]
	if !ok {
		return fmt.Errorf("plugin %q is not registered", name)
	}
	if m.IsEnabled(name) {
		if err := p.Shutdown(); err != nil {
			return fmt.Errorf("failed to shut down plugin %q: %w", name, err)
		}
	}
	delete(m.byName, name)
	delete(m.settings, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	for i, registered := range m.plugins {
		if registered.Name() == name {
			m.plugins = append(m.plugins[:i], m.plugins[i+1:]...)
			break
		}
	}
	return nil
}

// Enable initializes and enables a registered plugin. Enabling an
// already-enabled plugin is a no-op.
func (m *Manager) Enable(name string) error {
	p, ok := m.byName[name]
	if !ok {
		return fmt.Errorf("plugin %q is not registered", name)
	}
	if m.IsEnabled(name) {
		return nil
	}
	if err := p.Initialize(m.context); err != nil {
		return fmt.Errorf("failed to initialize plugin %q: %w", name, err)
	}
	m.settings[name].Enabled = true
	return nil
}

// Disable shuts down and disables a registered plugin. Disabling an
// already-disabled plugin is a no-op.
func (m *Manager) Disable(name string) error {
	p, ok := m.byName[name]
	if !ok {
		return fmt.Errorf("plugin %q is not registered", name)
	}
	if !m.IsEnabled(name) {
		return nil
	}
	if err := p.Shutdown(); err != nil {
		return fmt.Errorf("failed to shut down plugin %q: %w", name, err)
	}
	m.settings[name].Enabled = false
	return nil
}

// IsEnabled reports whether name is registered and enabled.
func (m *Manager) IsEnabled(name string) bool {
	s, ok := m.settings[name]
	return ok && s.Enabled
}

// Settings returns the configuration of a registered plugin. The
// returned value is live: mutations are visible to the manager.
func (m *Manager) Settings(name string) (*Settings, bool) {
	s, ok := m.settings[name]
	return s, ok
}

// List summarizes registered plugins in registration order.
func (m *Manager) List() []Info {
	infos := make([]Info, 0, len(m.order))
	for _, name := range m.order {
		p := m.byName[name]
		infos = append(infos, Info{
			Name:        p.Name(),
			Version:     p.Version(),
			Description: p.Description(),
			Author:      p.Author(),
			Enabled:     m.IsEnabled(name),
		})
	}
	return infos
}

// ProcessEntry runs entry through every enabled plugin in registration
// order, feeding each plugin's replacement to the next.
func (m *Manager) ProcessEntry(entry bookmark.Entry) bookmark.Entry {
	processed := entry
	for _, name := range m.order {
		if !m.IsEnabled(name) {
			continue
		}
		if replacement := m.byName[name].ProcessEntry(&processed); replacement != nil {
			processed = *replacement
		}
	}
	return processed
}

// MenuItems collects menu items from enabled plugins in registration
// order.
func (m *Manager) MenuItems() []MenuItem {
	var items []MenuItem
	for _, name := range m.order {
		if m.IsEnabled(name) {
			items = append(items, m.byName[name].MenuItems()...)
		}
	}
	return items
}

// HandleMenuItem offers the clicked item to enabled plugins in
// registration order until one handles it.
func (m *Manager) HandleMenuItem(itemID string, entry *bookmark.Entry) error {
	for _, name := range m.order {
		if !m.IsEnabled(name) {
			continue
		}
		handled, err := m.byName[name].HandleMenuItem(itemID, entry)
		if err != nil {
			return fmt.Errorf("plugin %q failed handling menu item %q: %w", name, itemID, err)
		}
		if handled {
			return nil
		}
	}
	return fmt.Errorf("no plugin handles menu item %q", itemID)
}
