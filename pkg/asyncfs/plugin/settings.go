package plugin

// Settings is the per-plugin configuration: the enablement flag plus a
// key/value area plugins keep their own options in. The manager holds
// one Settings per registered plugin; disabling a plugin does not
// discard its values.
type Settings struct {
	Enabled bool

	values map[string]string
}

// NewSettings creates enabled settings with no values.
func NewSettings() *Settings {
	return &Settings{Enabled: true, values: make(map[string]string)}
}

// Set stores a value under key, replacing any previous one.
func (s *Settings) Set(key, value string) {
	s.values[key] = value
}

// Get returns the value under key and whether it is present.
func (s *Settings) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// GetOrDefault returns the value under key, or def when absent.
func (s *Settings) GetOrDefault(key, def string) string {
	if v, ok := s.values[key]; ok {
		return v
	}
	return def
}

// Keys returns the stored keys in unspecified order.
func (s *Settings) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	return keys
}
