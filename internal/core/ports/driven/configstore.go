package driven

// ConfigStore holds user preferences under dot-notation keys such as
// "ui.theme". Implementations decide where the values live.
type ConfigStore interface {
	// Lookup returns the string stored at key. ok is false when the key is
	// absent or holds something other than a string.
	Lookup(key string) (value string, ok bool)

	// LookupInt returns the integer stored at key. ok is false when the key
	// is absent or holds something other than a whole number.
	LookupInt(key string) (value int, ok bool)

	// Put stores value at key and persists it before returning.
	Put(key string, value any) error
}
