package server

// debugEntry is one step of a request trace returned to the client on failure
type debugEntry map[string]any

// debugLog accumulates request steps in order. It is not safe for concurrent use;
// each request owns its own log.
type debugLog struct {
	entries []debugEntry
}

// Add appends a step with optional key/value context
func (d *debugLog) Add(step string, kv ...any) {
	entry := debugEntry{"step": step}
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			entry[key] = kv[i+1]
		}
	}
	d.entries = append(d.entries, entry)
}

// Entries returns the recorded steps, never nil
func (d *debugLog) Entries() []debugEntry {
	if d.entries == nil {
		return []debugEntry{}
	}
	return d.entries
}
