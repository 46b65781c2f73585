package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Category is one key -> label entry. A label that is not a JSON string is
// kept verbatim in raw and Label is left empty.
type Category struct {
	Key   string
	Label string

	raw json.RawMessage
}

// Categories is the ordered category-label mapping. Its order is the default
// display order of categories and survives a JSON round trip.
type Categories []Category

// Label returns the label for key.
func (c Categories) Label(key string) (string, bool) {
	for _, cat := range c {
		if cat.Key == key {
			return cat.Label, true
		}
	}
	return "", false
}

// Has reports whether key is declared.
func (c Categories) Has(key string) bool {
	_, ok := c.Label(key)
	return ok
}

// Set replaces the label of an existing key in place, or appends a new entry.
func (c *Categories) Set(key, label string) {
	for i := range *c {
		if (*c)[i].Key == key {
			(*c)[i].Label = label
			(*c)[i].raw = nil
			return
		}
	}
	*c = append(*c, Category{Key: key, Label: label})
}

// Keys returns the declared keys in order.
func (c Categories) Keys() []string {
	keys := make([]string, 0, len(c))
	for _, cat := range c {
		keys = append(keys, cat.Key)
	}
	return keys
}

// MarshalJSON encodes the mapping as an object in declaration order.
func (c Categories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, cat := range c {
		label := []byte(cat.raw)
		if label == nil {
			var err error
			if label, err = json.Marshal(cat.Label); err != nil {
				return nil, err
			}
		}
		if err := writeMember(&buf, cat.Key, label); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object of labels, keeping key order. Labels that
// are not strings are kept verbatim. null decodes to an empty mapping.
func (c *Categories) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*c = Categories{}
		return nil
	}

	fields, err := objectFields(data)
	if err != nil {
		return fmt.Errorf("categories: %w", err)
	}

	out := make(Categories, 0, len(fields))
	for _, f := range fields {
		var label string
		if err := json.Unmarshal(f.Value, &label); err != nil {
			out = append(out, Category{Key: f.Key, raw: f.Value})
			continue
		}
		out = append(out, Category{Key: f.Key, Label: label})
	}
	*c = out
	return nil
}
