package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Timestamp wraps time.Time with tolerant JSON decoding. The backend emits
// naive ISO-8601 timestamps (no zone offset), which strict RFC3339 parsing
// rejects; a timestamp that cannot be parsed decodes to the zero time rather
// than failing the whole payload.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		t.Time = time.Time{}
		return nil
	}
	t.Time = ParseTime(s)
	return nil
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// timeLayouts are tried in order; naive layouts are interpreted as UTC
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ParseTime parses an event or entity timestamp. Missing or unparseable
// values yield the zero time.
func ParseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
