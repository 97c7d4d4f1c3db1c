package cache

// Store is a host-provided durable key/value capability used for optional
// cache persistence. Payloads are serialized snapshots of the full entry
// mapping. All persistence is best-effort: the cache logs store failures
// and keeps working in memory.
type Store interface {
	// Read returns the payload saved under name, or ok=false if none exists.
	Read(name string) (payload string, ok bool, err error)

	// Write saves the payload under name, replacing any previous one.
	Write(name, payload string) error

	// Remove deletes the record under name. Removing a missing record is
	// not an error.
	Remove(name string) error
}
