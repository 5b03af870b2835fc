package utils

import (
	"encoding/json"
	"fmt"
	"time"
)

const _timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Time marshals as UTC with millisecond precision, the format every record
// timestamp uses on the wire.
type Time struct {
	time.Time
}

func Now() Time {
	return Time{Time: time.Now()}
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(_timeLayout) + `"`), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshaling time: %w", err)
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return fmt.Errorf("parsing time %q: %w", raw, err)
	}
	t.Time = parsed
	return nil
}
