package driven

// ConfigStore holds configuration under flat dotted keys such as
// "service.url".
//
// The typed getters return false when the key is absent or holds a value
// of another type, so callers can fall back to their defaults.
type ConfigStore interface {
	// Get returns the raw value stored under key.
	Get(key string) (any, bool)

	// GetString returns a string value.
	GetString(key string) (string, bool)

	// GetInt returns an integer value.
	GetInt(key string) (int, bool)

	// GetFloat returns a number. Integers are widened.
	GetFloat(key string) (float64, bool)

	// GetBool returns a boolean value.
	GetBool(key string) (bool, bool)

	// Set stores value under key and persists it before returning.
	Set(key string, value any) error

	// Path returns where the configuration is kept.
	Path() string
}
