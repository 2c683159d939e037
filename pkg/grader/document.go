package grader

import (
	"encoding/json"
	"os"
)

// Document is the raw parsed form of one benchmark result file. A nil
// Document stands for a file that was missing or not valid JSON; every
// accessor tolerates nil so extraction can never fail.
type Document map[string]interface{}

// LoadDocument reads and parses one result file. Missing or malformed files
// return nil, not an error: the grader treats them as absent data.
func LoadDocument(path string) Document {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	return doc
}

// lookup walks a chain of keys through nested maps, stopping with ok=false
// at the first missing key or non-map intermediate value.
func (d Document) lookup(keys ...string) (interface{}, bool) {
	if d == nil {
		return nil, false
	}
	var cur interface{} = map[string]interface{}(d)
	for _, key := range keys {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Float resolves a key path to a float64, rejecting wrong-typed leaves.
func (d Document) Float(keys ...string) (float64, bool) {
	v, ok := d.lookup(keys...)
	if !ok {
		return 0, false
	}
	return asFloat(v)
}

// List resolves a key path to a JSON array.
func (d Document) List(keys ...string) ([]interface{}, bool) {
	v, ok := d.lookup(keys...)
	if !ok {
		return nil, false
	}
	l, ok := v.([]interface{})
	return l, ok
}

// Map resolves a key path to a nested object.
func (d Document) Map(keys ...string) (map[string]interface{}, bool) {
	v, ok := d.lookup(keys...)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]interface{})
	return m, ok
}

// Has reports whether a top-level key exists, regardless of its value.
func (d Document) Has(key string) bool {
	_, ok := d[key]
	return ok
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
