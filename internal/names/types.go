package names

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const dbTimestampLayout = "2006-01-02 15:04:05"

// ID identifies a record. The API may send it as a JSON string or integer;
// both decode into the same opaque text form.
type ID string

// UnmarshalJSON accepts numbers as well as strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the id text.
func (id ID) String() string {
	return string(id)
}

// Empty reports whether the id is blank.
func (id ID) Empty() bool {
	return strings.TrimSpace(string(id)) == ""
}

// Record mirrors one entry of /api/names.
type Record struct {
	ID        ID     `json:"id"         yaml:"id"`
	Name      string `json:"name"       yaml:"name"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

// ParsedCreatedAt returns CreatedAt as time.Time. Missing or unparseable
// values yield the Unix epoch.
func (r Record) ParsedCreatedAt() time.Time {
	return parseTime(r.CreatedAt)
}

// addRequest is the POST /api/names body.
type addRequest struct {
	Name string `json:"name"`
}

// errorResponse is the body the API sends alongside 4xx statuses.
type errorResponse struct {
	Error string `json:"error"`
}

// healthResponse mirrors /api/health.
type healthResponse struct {
	Status string `json:"status"`
	DB     bool   `json:"db"`
}

var epoch = time.Unix(0, 0).UTC()

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return epoch
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.RFC1123, time.RFC1123Z} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	for _, layout := range []string{dbTimestampLayout, "2006-01-02T15:04:05", time.DateOnly} {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t
		}
	}
	return epoch
}
