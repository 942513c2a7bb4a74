package reconcile

import (
	"bytes"
	"encoding/json"
	"sort"
)

// canonicalJSON rewrites raw into a canonical form with object keys
// sorted recursively, so two JSON payloads that differ only in key
// order hash and compare equal. Custom node payloads come from filter
// authors and Go's own encoding/json, like most JSON encoders, makes
// no ordering guarantee for map keys. Malformed or empty input is
// returned unchanged as its raw bytes so hashing still terminates.
func canonicalJSON(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	var buf bytes.Buffer
	writeCanonical(&buf, v)
	return buf.String()
}

func writeCanonical(buf *bytes.Buffer, v any) {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyBytes, _ := json.Marshal(k)
			buf.Write(keyBytes)
			buf.WriteByte(':')
			writeCanonical(buf, val[k])
		}
		buf.WriteByte('}')
	case []any:
		buf.WriteByte('[')
		for i, e := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeCanonical(buf, e)
		}
		buf.WriteByte(']')
	default:
		// Strings, numbers, bools, null: encoding/json already produces
		// a canonical representation for scalars.
		b, _ := json.Marshal(val)
		buf.Write(b)
	}
}

// canonicalJSONEqual reports whether two raw JSON payloads are
// semantically equal under key-order-insensitive comparison.
func canonicalJSONEqual(a, b []byte) bool {
	return canonicalJSON(a) == canonicalJSON(b)
}
