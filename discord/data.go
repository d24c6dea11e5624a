package discord

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// The put helpers write a value to a wire mapping only if it isn't the type's empty value,
// as Discord treats an explicit null or empty value differently from an absent key.

func putString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func putInt(m map[string]any, key string, v int) {
	if v != 0 {
		m[key] = v
	}
}

func putBool(m map[string]any, key string, v bool) {
	if v {
		m[key] = true
	}
}

func putID(m map[string]any, key string, id snowflake.ID) {
	if id != 0 {
		m[key] = id.String()
	}
}

func putIDs(m map[string]any, key string, ids []snowflake.ID) {
	if len(ids) != 0 {
		m[key] = idStrings(ids)
	}
}

func putTime(m map[string]any, key string, t time.Time) {
	if !t.IsZero() {
		m[key] = t.UTC().Format(time.RFC3339Nano)
	}
}

func putStrings(m map[string]any, key string, s []string) {
	if len(s) == 0 {
		return
	}
	out := make([]any, 0, len(s))
	for _, v := range s {
		out = append(out, v)
	}
	m[key] = out
}

func putData(m map[string]any, key string, data map[string]any) {
	if len(data) != 0 {
		m[key] = data
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
