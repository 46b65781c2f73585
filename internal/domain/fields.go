package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Field is one member of a JSON object, kept in document order.
type Field struct {
	Key   string
	Value json.RawMessage
}

var errNotObject = errors.New("not a JSON object")

// objectFields splits a JSON object into its members without decoding the
// values. Duplicate keys keep the position of the first occurrence and the
// value of the last, the way JavaScript object literals behave.
func objectFields(data []byte) ([]Field, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errNotObject
	}

	var fields []Field
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("member %q: %w", key, err)
		}
		if i, seen := index[key]; seen {
			fields[i].Value = value
			continue
		}
		index[key] = len(fields)
		fields = append(fields, Field{Key: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after object")
	}
	return fields, nil
}

func writeMember(buf *bytes.Buffer, key string, value []byte) error {
	if buf.Len() > 1 {
		buf.WriteByte(',')
	}
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(value)
	return nil
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
