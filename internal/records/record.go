package records

// Record is an ordered mapping from field name to scalar value.
type Record struct {
	keys   []string
	values map[string]string
}

func NewRecord() Record {
	return Record{values: make(map[string]string)}
}

// Set stores a value. Re-setting an existing key keeps its original position.
func (r *Record) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; !ok {
		r.declare(key)
	}
	r.values[key] = value
}

// declare registers a key without a value so it still counts towards the
// field set (JSON null, short rows in pad mode).
func (r *Record) declare(key string) {
	for _, k := range r.keys {
		if k == key {
			return
		}
	}
	r.keys = append(r.keys, key)
}

// Get returns the value for key and whether it is present.
func (r Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r Record) Len() int { return len(r.keys) }

// Fields returns the field names of the first record in their original order.
// It returns an empty slice for an empty sequence.
func Fields(recs []Record) []string {
	if len(recs) == 0 {
		return []string{}
	}
	return recs[0].Keys()
}
