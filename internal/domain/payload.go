package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned for input that is not valid JSON.
	ErrMalformed = errors.New("malformed JSON")
	// ErrInvalidShape is returned for valid JSON that is neither an array nor an object.
	ErrInvalidShape = errors.New("expected a links array or a directory object")
)

// Patch is a partial directory: only the members present in the source
// object are set, and each one replaces the whole corresponding member.
// A links or categories member of the wrong JSON type is carried verbatim
// (Links/Categories are then empty) so it survives a merge unchanged.
type Patch struct {
	Links         []Link
	HasLinks      bool
	Categories    Categories
	HasCategories bool
	Extra         []Field

	rawLinks      json.RawMessage
	rawCategories json.RawMessage
}

// Payload is the decoded form of a persisted value or a write body. It is
// either a bare links array (the legacy persisted format) or a partial
// directory object. Decode once at the boundary, then Merge.
type Payload struct {
	legacy bool
	links  []Link
	patch  Patch
}

// LegacyLinks wraps a bare links array.
func LegacyLinks(links []Link) Payload {
	if links == nil {
		links = []Link{}
	}
	return Payload{legacy: true, links: links}
}

// PartialDirectory wraps a partial directory object.
func PartialDirectory(p Patch) Payload {
	return Payload{patch: p}
}

// IsLegacy reports whether the payload is a bare links array.
func (p Payload) IsLegacy() bool { return p.legacy }

// Links returns the links of a legacy payload.
func (p Payload) Links() []Link { return p.links }

// Patch returns the partial directory of an object payload.
func (p Payload) Patch() Patch { return p.patch }

// Decode parses raw JSON into a Payload. Arrays become LegacyLinks, objects
// become PartialDirectory; anything else fails with ErrInvalidShape.
func Decode(data []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return Payload{}, ErrMalformed
	}

	switch trimmed[0] {
	case '[':
		var links []Link
		if err := json.Unmarshal(trimmed, &links); err != nil {
			return Payload{}, fmt.Errorf("decode links: %w", err)
		}
		return LegacyLinks(links), nil
	case '{':
		return decodeObject(trimmed)
	default:
		return Payload{}, ErrInvalidShape
	}
}

func decodeObject(data []byte) (Payload, error) {
	fields, err := objectFields(data)
	if err != nil {
		return Payload{}, fmt.Errorf("decode directory: %w", err)
	}

	var patch Patch
	for _, f := range fields {
		switch f.Key {
		case "links":
			patch.Links, patch.rawLinks = decodeLinksMember(f.Value)
			patch.HasLinks = true
		case "categories":
			patch.Categories, patch.rawCategories = decodeCategoriesMember(f.Value)
			patch.HasCategories = true
		default:
			patch.Extra = append(patch.Extra, f)
		}
	}
	return PartialDirectory(patch), nil
}

// decodeLinksMember never fails: null is an empty list and anything that
// is not an array is returned as raw JSON.
func decodeLinksMember(data json.RawMessage) ([]Link, json.RawMessage) {
	if isNull(data) {
		return []Link{}, nil
	}
	trimmed := bytes.TrimSpace(data)
	var links []Link
	if len(trimmed) == 0 || trimmed[0] != '[' || json.Unmarshal(trimmed, &links) != nil {
		return []Link{}, append(json.RawMessage(nil), trimmed...)
	}
	if links == nil {
		links = []Link{}
	}
	return links, nil
}

// decodeCategoriesMember never fails: null is an empty mapping and anything
// that is not an object is returned as raw JSON.
func decodeCategoriesMember(data json.RawMessage) (Categories, json.RawMessage) {
	var cats Categories
	if err := json.Unmarshal(data, &cats); err != nil {
		return Categories{}, append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	}
	if cats == nil {
		cats = Categories{}
	}
	return cats, nil
}

// Merge applies p over base and returns a new directory. A legacy payload
// replaces links only; an object replaces every top-level member it carries
// and keeps the others from base. base is not modified.
func Merge(base Directory, p Payload) Directory {
	out := base.Clone()
	if p.legacy {
		out.Links = append([]Link{}, p.links...)
		out.rawLinks = nil
		return out
	}

	if p.patch.HasLinks {
		out.Links = append([]Link{}, p.patch.Links...)
		out.rawLinks = p.patch.rawLinks
	}
	if p.patch.HasCategories {
		out.Categories = append(Categories{}, p.patch.Categories...)
		out.rawCategories = p.patch.rawCategories
	}
	for _, f := range p.patch.Extra {
		out.setExtra(f)
	}
	return out
}
