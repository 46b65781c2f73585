package domain

import "strings"

// UncategorizedKey is the bucket key of links without a category. It is a
// render-time bucket only and never becomes a Categories entry.
const UncategorizedKey = ""

// Section is one rendered category block.
type Section struct {
	Key   string
	Label string
	Links []Link

	// Declared is true when Key exists in Directory.Categories.
	Declared bool
}

// Uncategorized reports whether s is the implicit uncategorized bucket.
func (s Section) Uncategorized() bool {
	return !s.Declared && s.Key == UncategorizedKey
}

// GroupOptions controls Group.
type GroupOptions struct {
	// IncludeEmpty keeps declared categories that have no links.
	IncludeEmpty bool
	// UncategorizedLabel labels the implicit bucket.
	UncategorizedLabel string
}

// Group derives the display sections of d: declared categories in mapping
// order, then undeclared keys referenced by links in first-seen order, then
// the uncategorized bucket. Invalid links are skipped.
func Group(d Directory, opts GroupOptions) []Section {
	buckets := make(map[string][]Link)
	var undeclared []string
	var uncategorized []Link

	for _, link := range d.Links {
		if !link.Valid() {
			continue
		}
		key := strings.TrimSpace(link.Category)
		if key == UncategorizedKey {
			uncategorized = append(uncategorized, link)
			continue
		}
		if _, seen := buckets[key]; !seen && !d.Categories.Has(key) {
			undeclared = append(undeclared, key)
		}
		buckets[key] = append(buckets[key], link)
	}

	sections := make([]Section, 0, len(d.Categories)+len(undeclared)+1)
	for _, cat := range d.Categories {
		if cat.Key == UncategorizedKey {
			continue
		}
		links := buckets[cat.Key]
		if len(links) == 0 && !opts.IncludeEmpty {
			continue
		}
		label := cat.Label
		if label == "" {
			label = cat.Key
		}
		sections = append(sections, Section{Key: cat.Key, Label: label, Links: links, Declared: true})
	}

	for _, key := range undeclared {
		sections = append(sections, Section{Key: key, Label: key, Links: buckets[key]})
	}

	if len(uncategorized) > 0 {
		label := opts.UncategorizedLabel
		if label == "" {
			label = "Uncategorized"
		}
		sections = append(sections, Section{Key: UncategorizedKey, Label: label, Links: uncategorized})
	}
	return sections
}
