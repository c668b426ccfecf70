package rara

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Required record keys, in the order they appear in persisted records.
const (
	KeyURL    = "url"
	KeyEntity = "entity"
	KeyID     = "id"
	KeyText   = "text"
)

// AttrUniversalsViolated holds a comma-joined list of link targets instead of
// rendered page text.
const AttrUniversalsViolated = "universals_violated"

// RequiredKeys returns the keys every record carries.
func RequiredKeys() []string {
	return []string{KeyURL, KeyEntity, KeyID, KeyText}
}

func isRequiredKey(key string) bool {
	switch key {
	case KeyURL, KeyEntity, KeyID, KeyText:
		return true
	}
	return false
}

// Record is the structured data extracted from one article page.
type Record struct {
	URL    string
	Entity string
	ID     int
	Text   string

	// Attrs holds the page-specific labeled attributes in discovery order.
	Attrs Attributes
}

// Get returns the value stored under key, looking at the required fields
// first and the attributes second. The id is returned in decimal form.
func (r *Record) Get(key string) (string, bool) {
	switch key {
	case KeyURL:
		return r.URL, true
	case KeyEntity:
		return r.Entity, true
	case KeyID:
		return strconv.Itoa(r.ID), true
	case KeyText:
		return r.Text, true
	}
	return r.Attrs.Get(key)
}

// Keys returns the required keys followed by the attribute keys.
func (r *Record) Keys() []string {
	return append(RequiredKeys(), r.Attrs.Keys()...)
}

// SetAttr stores an attribute value. Keys naming a required field are ignored
// so the typed fields stay authoritative.
func (r *Record) SetAttr(key, value string) {
	if isRequiredKey(key) {
		return
	}
	r.Attrs.Set(key, value)
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "record url required")
	}
	if r.ID < 0 {
		return Errorf(EINVALID, "record id must be non-negative, got %d", r.ID)
	}
	return nil
}

// MarshalJSON encodes the record as one flat object: the required keys first,
// then every attribute in order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	write := func(key string, value any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	if err := write(KeyURL, r.URL); err != nil {
		return nil, err
	}
	if err := write(KeyEntity, r.Entity); err != nil {
		return nil, err
	}
	if err := write(KeyID, r.ID); err != nil {
		return nil, err
	}
	if err := write(KeyText, r.Text); err != nil {
		return nil, err
	}
	for _, key := range r.Attrs.Keys() {
		value, _ := r.Attrs.Get(key)
		if err := write(key, value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a flat record object. The id may be a number or a
// numeric string. Non-string attribute values are kept in their JSON form;
// null becomes an empty string.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return Errorf(EINVALID, "record must be a JSON object")
	}

	*r = Record{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return Errorf(EINVALID, "record key must be a string")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decoding %q: %w", key, err)
		}

		switch key {
		case KeyID:
			id, err := decodeID(raw)
			if err != nil {
				return err
			}
			r.ID = id
		case KeyURL:
			r.URL = decodeString(raw)
		case KeyEntity:
			r.Entity = decodeString(raw)
		case KeyText:
			r.Text = decodeString(raw)
		default:
			r.Attrs.Set(key, decodeString(raw))
		}
	}

	_, err = dec.Token()
	return err
}

func decodeID(raw json.RawMessage) (int, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		id, err := strconv.Atoi(n.String())
		if err != nil {
			return 0, Errorf(EINVALID, "record id %s is not an integer", n)
		}
		return id, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, Errorf(EINVALID, "record id %s is not an integer", raw)
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, Errorf(EINVALID, "record id %q is not an integer", s)
	}
	return id, nil
}

func decodeString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if string(raw) == "null" {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// Attributes is an ordered string-to-string mapping. The zero value is an
// empty mapping ready to use.
type Attributes struct {
	keys   []string
	values map[string]string
}

// Get returns the value for key.
func (a *Attributes) Get(key string) (string, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Set stores value under key. An existing key keeps its position.
func (a *Attributes) Set(key, value string) {
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Keys returns the attribute keys in insertion order.
func (a *Attributes) Keys() []string {
	keys := make([]string, len(a.keys))
	copy(keys, a.keys)
	return keys
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	return len(a.keys)
}
