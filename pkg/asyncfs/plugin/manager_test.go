package plugin

import (
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/asyncfs/pkg/asyncfs/bookmark"
)

// recordingPlugin records lifecycle calls into a shared log so tests can
// assert ordering across plugins.
type recordingPlugin struct {
	Base
	name        string
	deps        []string
	initLog     *[]string
	shutdownLog *[]string
	initErr     error
	process     func(entry *bookmark.Entry) *bookmark.Entry
	items       []MenuItem
	handle      func(itemID string, entry *bookmark.Entry) (bool, error)
}

func (p *recordingPlugin) Name() string { return p.name }

func (p *recordingPlugin) Version() string { return "1.0.0" }

func (p *recordingPlugin) Description() string { return "test plugin" }

func (p *recordingPlugin) Author() string { return "tests" }

func (p *recordingPlugin) Dependencies() []string { return p.deps }

func (p *recordingPlugin) Initialize(ctx *Context) error {
	if p.initLog != nil {
		*p.initLog = append(*p.initLog, p.name)
	}
	return p.initErr
}

func (p *recordingPlugin) Shutdown() error {
	if p.shutdownLog != nil {
		*p.shutdownLog = append(*p.shutdownLog, p.name)
	}
	return nil
}

func (p *recordingPlugin) ProcessEntry(entry *bookmark.Entry) *bookmark.Entry {
	if p.process != nil {
		return p.process(entry)
	}
	return nil
}

func (p *recordingPlugin) MenuItems() []MenuItem { return p.items }

func (p *recordingPlugin) HandleMenuItem(itemID string, entry *bookmark.Entry) (bool, error) {
	if p.handle != nil {
		return p.handle(itemID, entry)
	}
	return false, nil
}

func testManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(t.TempDir(), zerolog.New(io.Discard))
}

func TestRegisterRejectsDuplicateNames(t *testing.T) {
	m := testManager(t)

	require.NoError(t, m.Register(&recordingPlugin{name: "alpha"}))
	err := m.Register(&recordingPlugin{name: "alpha"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestInitializeAllRespectsDependencies(t *testing.T) {
	m := testManager(t)
	var initLog []string

	// Registered out of dependency order on purpose.
	require.NoError(t, m.Register(&recordingPlugin{name: "charlie", deps: []string{"bravo"}, initLog: &initLog}))
	require.NoError(t, m.Register(&recordingPlugin{name: "alpha", initLog: &initLog}))
	require.NoError(t, m.Register(&recordingPlugin{name: "bravo", deps: []string{"alpha"}, initLog: &initLog}))

	require.NoError(t, m.InitializeAll())
	require.Len(t, initLog, 3)

	pos := make(map[string]int)
	for i, name := range initLog {
		pos[name] = i
	}
	assert.Less(t, pos["alpha"], pos["bravo"], "alpha must initialize before bravo")
	assert.Less(t, pos["bravo"], pos["charlie"], "bravo must initialize before charlie")
}

func TestInitializeAllDetectsMissingDependency(t *testing.T) {
	m := testManager(t)
	require.NoError(t, m.Register(&recordingPlugin{name: "alpha", deps: []string{"ghost"}}))

	err := m.InitializeAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unregistered")
}

func TestInitializeAllDetectsCycles(t *testing.T) {
	m := testManager(t)
	require.NoError(t, m.Register(&recordingPlugin{name: "alpha", deps: []string{"bravo"}}))
	require.NoError(t, m.Register(&recordingPlugin{name: "bravo", deps: []string{"alpha"}}))

	err := m.InitializeAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circular")
}

func TestInitializeAllPropagatesFailures(t *testing.T) {
	m := testManager(t)
	boom := errors.New("boom")
	require.NoError(t, m.Register(&recordingPlugin{name: "alpha", initErr: boom}))

	err := m.InitializeAll()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestEnableDisable(t *testing.T) {
	m := testManager(t)
	var initLog, shutdownLog []string
	p := &recordingPlugin{name: "alpha", initLog: &initLog, shutdownLog: &shutdownLog}
	require.NoError(t, m.Register(p))

	assert.True(t, m.IsEnabled("alpha"))

	require.NoError(t, m.Disable("alpha"))
	assert.False(t, m.IsEnabled("alpha"))
	assert.Equal(t, []string{"alpha"}, shutdownLog)

	// Disabling twice is a no-op.
	require.NoError(t, m.Disable("alpha"))
	assert.Len(t, shutdownLog, 1)

	require.NoError(t, m.Enable("alpha"))
	assert.True(t, m.IsEnabled("alpha"))
	assert.Equal(t, []string{"alpha"}, initLog)

	// A disabled plugin stays registered.
	require.NoError(t, m.Disable("alpha"))
	infos := m.List()
	require.Len(t, infos, 1)
	assert.False(t, infos[0].Enabled)

	assert.Error(t, m.Enable("ghost"))
	assert.Error(t, m.Disable("ghost"))
}

func TestShutdownAllReversesRegistrationOrder(t *testing.T) {
	m := testManager(t)
	var shutdownLog []string
	require.NoError(t, m.Register(&recordingPlugin{name: "alpha", shutdownLog: &shutdownLog}))
	require.NoError(t, m.Register(&recordingPlugin{name: "bravo", shutdownLog: &shutdownLog}))

	require.NoError(t, m.ShutdownAll())
	assert.Equal(t, []string{"bravo", "alpha"}, shutdownLog)
}

func TestUnregister(t *testing.T) {
	m := testManager(t)
	var shutdownLog []string
	require.NoError(t, m.Register(&recordingPlugin{name: "alpha", shutdownLog: &shutdownLog}))

	require.NoError(t, m.Unregister("alpha"))
	assert.Equal(t, []string{"alpha"}, shutdownLog)
	assert.Empty(t, m.List())
	assert.Error(t, m.Unregister("alpha"))
}

func TestProcessEntryPipeline(t *testing.T) {
	m := testManager(t)

	tagger := &recordingPlugin{name: "tagger", process: func(entry *bookmark.Entry) *bookmark.Entry {
		e := *entry
		e.Tags = append(e.Tags, "tagged")
		return &e
	}}
	renamer := &recordingPlugin{name: "renamer", process: func(entry *bookmark.Entry) *bookmark.Entry {
		// Sees the tagger's output, not the original.
		if !entry.HasTag("tagged") {
			return nil
		}
		e := *entry
		e.Nickname = "processed"
		return &e
	}}
	require.NoError(t, m.Register(tagger))
	require.NoError(t, m.Register(renamer))

	out := m.ProcessEntry(bookmark.NewEntry("a.txt", "a.txt", "", nil, false))
	assert.True(t, out.HasTag("tagged"))
	assert.Equal(t, "processed", out.DisplayName())

	// Disabled plugins drop out of the pipeline.
	require.NoError(t, m.Disable("renamer"))
	out = m.ProcessEntry(bookmark.NewEntry("b.txt", "b.txt", "", nil, false))
	assert.True(t, out.HasTag("tagged"))
	assert.Equal(t, "b.txt", out.DisplayName())
}

func TestMenuItems(t *testing.T) {
	m := testManager(t)
	require.NoError(t, m.Register(&recordingPlugin{name: "alpha", items: []MenuItem{NewMenuItem("alpha.open", "Open")}}))
	require.NoError(t, m.Register(&recordingPlugin{name: "bravo", items: []MenuItem{NewMenuItem("bravo.share", "Share")}}))

	items := m.MenuItems()
	require.Len(t, items, 2)
	assert.Equal(t, "alpha.open", items[0].ID)
	assert.Equal(t, "bravo.share", items[1].ID)
	assert.True(t, items[0].Enabled)

	require.NoError(t, m.Disable("alpha"))
	items = m.MenuItems()
	require.Len(t, items, 1)
	assert.Equal(t, "bravo.share", items[0].ID)
}

func TestHandleMenuItemFirstHandlerWins(t *testing.T) {
	m := testManager(t)
	var handledBy string
	handler := func(name string) func(string, *bookmark.Entry) (bool, error) {
		return func(itemID string, entry *bookmark.Entry) (bool, error) {
			if itemID == name+".open" {
				handledBy = name
				return true, nil
			}
			return false, nil
		}
	}
	require.NoError(t, m.Register(&recordingPlugin{name: "alpha", handle: handler("alpha")}))
	require.NoError(t, m.Register(&recordingPlugin{name: "bravo", handle: handler("bravo")}))

	entry := bookmark.NewEntry("a.txt", "a.txt", "", nil, false)
	require.NoError(t, m.HandleMenuItem("bravo.open", &entry))
	assert.Equal(t, "bravo", handledBy)

	err := m.HandleMenuItem("nobody.open", &entry)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no plugin handles")
}

func TestSettings(t *testing.T) {
	s := NewSettings()
	assert.True(t, s.Enabled)

	_, ok := s.Get("theme")
	assert.False(t, ok)
	assert.Equal(t, "light", s.GetOrDefault("theme", "light"))

	s.Set("theme", "dark")
	v, ok := s.Get("theme")
	require.True(t, ok)
	assert.Equal(t, "dark", v)
	assert.Equal(t, "dark", s.GetOrDefault("theme", "light"))

	s.Set("theme", "solarized")
	assert.Equal(t, "solarized", s.GetOrDefault("theme", "light"))

	s.Set("interval", "30")
	assert.ElementsMatch(t, []string{"theme", "interval"}, s.Keys())
}

func TestManagerPluginSettings(t *testing.T) {
	m := testManager(t)
	require.NoError(t, m.Register(&recordingPlugin{name: "alpha"}))

	settings, ok := m.Settings("alpha")
	require.True(t, ok)
	assert.True(t, settings.Enabled)

	settings.Set("mode", "strict")

	// Settings are live: the stored value is visible on a fresh lookup.
	again, ok := m.Settings("alpha")
	require.True(t, ok)
	v, ok := again.Get("mode")
	require.True(t, ok)
	assert.Equal(t, "strict", v)

	// Disabling keeps the plugin's values.
	require.NoError(t, m.Disable("alpha"))
	assert.False(t, m.IsEnabled("alpha"))
	assert.Equal(t, "strict", again.GetOrDefault("mode", "lax"))

	require.NoError(t, m.Enable("alpha"))
	assert.True(t, settings.Enabled)

	_, ok = m.Settings("ghost")
	assert.False(t, ok)

	// Unregistering drops the settings with the plugin.
	require.NoError(t, m.Unregister("alpha"))
	_, ok = m.Settings("alpha")
	assert.False(t, ok)
}

func TestContextSharedState(t *testing.T) {
	ctx := NewContext(t.TempDir())

	ctx.SetShared("theme", "dark")
	v, ok := ctx.Shared("theme")
	require.True(t, ok)
	assert.Equal(t, "dark", v)

	_, ok = ctx.Shared("missing")
	assert.False(t, ok)

	var got string
	ctx.RegisterCallback("refresh", func(data string) { got = data })
	ctx.TriggerEvent("refresh", "now")
	assert.Equal(t, "now", got)

	// Unknown events are ignored.
	ctx.TriggerEvent("unknown", "x")

	assert.Contains(t, ctx.DataDir("alpha"), "plugins")
}
