package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Directory is the single persisted record: the links plus the category
// labels. It is the sole source of truth; groupings are derived on every read.
type Directory struct {
	// Links in display order within a category.
	Links []Link

	// Categories maps category keys to display labels.
	Categories Categories

	// Extra holds top-level members other than links and categories so a
	// shallow merge never drops them.
	Extra []Field

	// rawLinks and rawCategories hold a links or categories member that is
	// not an array or object respectively. The typed member is then empty.
	rawLinks      json.RawMessage
	rawCategories json.RawMessage
}

// RawLinks returns the verbatim links member when it was not an array.
func (d Directory) RawLinks() json.RawMessage { return d.rawLinks }

// RawCategories returns the verbatim categories member when it was not an object.
func (d Directory) RawCategories() json.RawMessage { return d.rawCategories }

// Clone returns a deep copy of d.
func (d Directory) Clone() Directory {
	out := Directory{
		Links:         make([]Link, len(d.Links)),
		Categories:    make(Categories, len(d.Categories)),
		rawLinks:      d.rawLinks,
		rawCategories: d.rawCategories,
	}
	copy(out.Links, d.Links)
	copy(out.Categories, d.Categories)
	if len(d.Extra) > 0 {
		out.Extra = make([]Field, len(d.Extra))
		copy(out.Extra, d.Extra)
	}
	return out
}

// setExtra replaces a top-level member by key, or appends it.
func (d *Directory) setExtra(f Field) {
	for i := range d.Extra {
		if d.Extra[i].Key == f.Key {
			d.Extra[i].Value = f.Value
			return
		}
	}
	d.Extra = append(d.Extra, f)
}

// MarshalJSON always emits both links and categories, never null.
func (d Directory) MarshalJSON() ([]byte, error) {
	linksJSON, err := d.linksJSON()
	if err != nil {
		return nil, fmt.Errorf("encode links: %w", err)
	}
	catsJSON := []byte(d.rawCategories)
	if catsJSON == nil {
		if catsJSON, err = json.Marshal(d.Categories); err != nil {
			return nil, fmt.Errorf("encode categories: %w", err)
		}
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeMember(&buf, "links", linksJSON); err != nil {
		return nil, err
	}
	if err := writeMember(&buf, "categories", catsJSON); err != nil {
		return nil, err
	}
	for _, f := range d.Extra {
		if err := writeMember(&buf, f.Key, f.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d Directory) linksJSON() ([]byte, error) {
	if d.rawLinks != nil {
		return d.rawLinks, nil
	}
	links := d.Links
	if links == nil {
		links = []Link{}
	}
	return json.Marshal(links)
}

// UnmarshalJSON decodes a complete directory object. Missing members are
// left empty; use Decode and Merge to apply defaults.
func (d *Directory) UnmarshalJSON(data []byte) error {
	p, err := Decode(data)
	if err != nil {
		return err
	}
	if p.IsLegacy() {
		return fmt.Errorf("directory: %w", ErrInvalidShape)
	}
	*d = Merge(Directory{Links: []Link{}, Categories: Categories{}}, p)
	return nil
}
