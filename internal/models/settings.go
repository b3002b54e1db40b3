package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Settings is the opaque style document attached to a QR code. The
// application never interprets it beyond the isDynamic flag; the url
// and isDynamic entries are echoed from the row's typed columns on
// every write so stale client copies cannot leak through.
type Settings map[string]interface{}

// Value implements the driver.Valuer interface
func (s Settings) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface
func (s *Settings) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, &s)
}

// MarshalJSON returns the JSON encoding
func (s Settings) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	return json.Marshal(map[string]interface{}(s))
}

// UnmarshalJSON sets the JSON encoding
func (s *Settings) UnmarshalJSON(data []byte) error {
	if s == nil {
		return errors.New("nil pointer")
	}
	m := map[string]interface{}{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*s = m
	return nil
}

// IsDynamic reads the isDynamic flag from the document. Missing or
// non-boolean values count as false.
func (s Settings) IsDynamic() bool {
	v, _ := s["isDynamic"].(bool)
	return v
}

// WithContent returns a copy of the document with the authoritative
// url and isDynamic values echoed in.
func (s Settings) WithContent(url string, isDynamic bool) Settings {
	out := make(Settings, len(s)+2)
	for k, v := range s {
		out[k] = v
	}
	out["url"] = url
	out["isDynamic"] = isDynamic
	return out
}
