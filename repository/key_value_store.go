package repository

// KeyValueStore is the string-keyed, string-valued medium the parameters
// are persisted to. Get reports false for missing keys and for read failures.
type KeyValueStore interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
