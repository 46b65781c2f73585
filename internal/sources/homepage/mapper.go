package homepage

import (
	"errors"
	"net/url"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MrSnakeDoc/navdir/internal/domain"
)

// ErrNoLinks is returned when a Homepage config yields no usable link.
var ErrNoLinks = errors.New("no valid links found in homepage config")

// Mapper converts Homepage configs into a partial directory carrying both
// links and categories. Groups become categories, in file order.
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapServices converts a services.yaml config. Services without a usable
// absolute href are skipped.
func (m *Mapper) MapServices(config ServicesConfig) (domain.Patch, error) {
	var b patchBuilder

	for _, groupMap := range config {
		for _, groupName := range sortedKeys(groupMap) {
			key := b.category(groupName)

			for _, serviceMap := range groupMap[groupName] {
				for _, serviceName := range sortedKeys(serviceMap) {
					props := serviceMap[serviceName]
					if !isAbsoluteURL(props.Href) {
						continue
					}
					b.add(domain.Link{
						Name:        serviceName,
						URL:         props.Href,
						Icon:        iconText(props.Icon),
						Category:    key,
						Description: props.Description,
					})
				}
			}
		}
	}

	return b.patch()
}

// MapBookmarks converts a bookmarks.yaml config. The bookmark abbreviation
// becomes the link icon.
func (m *Mapper) MapBookmarks(config BookmarksConfig) (domain.Patch, error) {
	var b patchBuilder

	for _, category := range config {
		for _, categoryName := range sortedKeys(category) {
			key := b.category(categoryName)

			for _, bookmarkMap := range category[categoryName] {
				for _, bookmarkName := range sortedKeys(bookmarkMap) {
					entries := bookmarkMap[bookmarkName]
					// Each bookmark has a list with a single entry
					if len(entries) == 0 || !isAbsoluteURL(entries[0].Href) {
						continue
					}
					entry := entries[0]

					icon := entry.Abbr
					if icon == "" {
						icon = iconText(entry.Icon)
					}
					b.add(domain.Link{
						Name:        bookmarkName,
						URL:         entry.Href,
						Icon:        icon,
						Category:    key,
						Description: entry.Description,
					})
				}
			}
		}
	}

	return b.patch()
}

type patchBuilder struct {
	links      []domain.Link
	categories domain.Categories
}

func (b *patchBuilder) category(name string) string {
	key := CategoryKey(name)
	if !b.categories.Has(key) {
		b.categories.Set(key, strings.TrimSpace(name))
	}
	return key
}

func (b *patchBuilder) add(l domain.Link) {
	b.links = append(b.links, l)
}

func (b *patchBuilder) patch() (domain.Patch, error) {
	if len(b.links) == 0 {
		return domain.Patch{}, ErrNoLinks
	}

	// Groups whose every entry was skipped are not imported.
	used := make(map[string]bool, len(b.categories))
	for _, l := range b.links {
		used[l.Category] = true
	}
	cats := make(domain.Categories, 0, len(b.categories))
	for _, c := range b.categories {
		if used[c.Key] {
			cats = append(cats, c)
		}
	}

	return domain.Patch{
		Links:         b.links,
		HasLinks:      true,
		Categories:    cats,
		HasCategories: true,
	}, nil
}

// CategoryKey derives a category key from a group name
// Example: "Home Lab / Media" -> "home-lab-media"
func CategoryKey(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			dash = false
			continue
		}
		if sb.Len() > 0 && !dash {
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

// iconText keeps short textual icons (emoji, initials) and drops Homepage
// icon references such as "adguard-home.svg" or "mdi-home".
func iconText(icon string) string {
	icon = strings.TrimSpace(icon)
	if icon == "" || utf8.RuneCountInString(icon) > 4 {
		return ""
	}
	if strings.ContainsAny(icon, "./") {
		return ""
	}
	return icon
}

func isAbsoluteURL(href string) bool {
	u, err := url.Parse(strings.TrimSpace(href))
	return err == nil && u.Scheme != "" && u.Host != ""
}

// sortedKeys makes the order of multi-key YAML maps deterministic.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
