package domain

import (
	"bytes"
	"encoding/json"
)

// Link represents one bookmark entry of the directory.
//
// The store does not validate links: an element of the persisted links array
// that is not a JSON object is kept verbatim (see Valid) so that it survives
// a read-merge-write cycle unchanged. Renderers skip such entries.
type Link struct {
	// ─────────────────────────────
	// Destination
	// ─────────────────────────────

	// Name is the display name. Expected non-empty, enforced by the admin UI only.
	Name string

	// URL is the primary destination.
	URL string

	// URLIntranet is the alternate destination used by the network-mode toggle.
	URLIntranet string

	// ─────────────────────────────
	// Presentation
	// ─────────────────────────────

	// Icon is an emoji or short text. Empty means the renderer placeholder.
	Icon string

	// Category references a key of Directory.Categories. It may be empty or
	// reference an undeclared key.
	Category string

	// Description is free text, rendered as inline markdown.
	Description string

	// unknown holds object members this version does not know about.
	unknown []Field

	// raw is set when the persisted element was not a JSON object.
	raw json.RawMessage
}

// linkJSON mirrors the wire names of a link object.
type linkJSON struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Icon        string `json:"icon,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	URLIntranet string `json:"url_intranet,omitempty"`
}

var knownLinkKeys = map[string]bool{
	"name": true, "url": true, "icon": true,
	"category": true, "description": true, "url_intranet": true,
}

// RawLink builds a link holding an arbitrary JSON value verbatim.
func RawLink(v json.RawMessage) Link {
	return Link{raw: append(json.RawMessage(nil), v...)}
}

// Valid reports whether the link was decoded from a JSON object.
func (l Link) Valid() bool {
	return l.raw == nil
}

// Raw returns the verbatim JSON of an invalid link, nil otherwise.
func (l Link) Raw() json.RawMessage {
	return l.raw
}

// UnmarshalJSON decodes a link object. Anything else (strings, numbers,
// objects with mistyped members) is kept as raw JSON instead of failing.
func (l *Link) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	*l = Link{}

	fields, err := objectFields(trimmed)
	if err != nil {
		l.raw = append(json.RawMessage(nil), trimmed...)
		return nil
	}

	var plain linkJSON
	if err := json.Unmarshal(trimmed, &plain); err != nil {
		l.raw = append(json.RawMessage(nil), trimmed...)
		return nil
	}

	l.Name = plain.Name
	l.URL = plain.URL
	l.Icon = plain.Icon
	l.Category = plain.Category
	l.Description = plain.Description
	l.URLIntranet = plain.URLIntranet

	for _, f := range fields {
		if !knownLinkKeys[f.Key] {
			l.unknown = append(l.unknown, f)
		}
	}
	return nil
}

// MarshalJSON encodes known members first, then unknown ones in their
// original order. Invalid links are emitted verbatim.
func (l Link) MarshalJSON() ([]byte, error) {
	if l.raw != nil {
		return l.raw, nil
	}

	known, err := json.Marshal(linkJSON{
		Name:        l.Name,
		URL:         l.URL,
		Icon:        l.Icon,
		Category:    l.Category,
		Description: l.Description,
		URLIntranet: l.URLIntranet,
	})
	if err != nil {
		return nil, err
	}
	if len(l.unknown) == 0 {
		return known, nil
	}

	var buf bytes.Buffer
	buf.Write(known[:len(known)-1])
	for _, f := range l.unknown {
		if err := writeMember(&buf, f.Key, f.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DisplayName returns Name, or URL when the name is empty.
func (l Link) DisplayName() string {
	if l.Name != "" {
		return l.Name
	}
	return l.URL
}
