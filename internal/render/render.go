// Package render turns a directory into the public homepage and serves the
// static admin page.
package render

import (
	"bytes"
	"embed"
	"encoding/hex"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/zeebo/blake3"

	"github.com/MrSnakeDoc/navdir/internal/domain"
)

//go:embed templates/*.html templates/*.tmpl
var templateFS embed.FS

const (
	// DefaultIcon is shown for links without an icon.
	DefaultIcon = "🔗"
	// EmptyCategoryText is the placeholder of a declared category without links.
	EmptyCategoryText = "No links yet"
)

// Options configures the homepage.
type Options struct {
	Title              string
	IncludeEmpty       bool   // show declared categories that have no links
	UncategorizedLabel string // label of the implicit uncategorized section
}

// Page is a rendered homepage.
type Page struct {
	Body []byte
	ETag string // strong validator derived from Body
}

// Renderer renders homepages. It is safe for concurrent use.
type Renderer struct {
	opts  Options
	home  *template.Template
	admin []byte
	md    goldmark.Markdown
	pool  sync.Pool
}

// New parses the embedded templates.
func New(opts Options) (*Renderer, error) {
	if strings.TrimSpace(opts.Title) == "" {
		opts.Title = "Links"
	}

	home, err := template.New("home.html.tmpl").ParseFS(templateFS, "templates/home.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse homepage template: %w", err)
	}
	admin, err := templateFS.ReadFile("templates/admin.html")
	if err != nil {
		return nil, fmt.Errorf("read admin page: %w", err)
	}

	return &Renderer{
		opts:  opts,
		home:  home,
		admin: admin,
		md: goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		),
		pool: sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}, nil
}

// Admin returns the static admin page. It carries no data; the page loads
// the directory through the JSON API.
func (r *Renderer) Admin() []byte {
	return r.admin
}

type homeView struct {
	Title       string
	Sections    []sectionView
	HasIntranet bool
	EmptyText   string
}

type sectionView struct {
	Key   string
	Label string
	Links []linkView
}

type linkView struct {
	Name        string
	URL         string
	Intranet    string
	Icon        string
	Description template.HTML
}

// Homepage renders d grouped by category.
func (r *Renderer) Homepage(d domain.Directory) (Page, error) {
	sections := domain.Group(d, domain.GroupOptions{
		IncludeEmpty:       r.opts.IncludeEmpty,
		UncategorizedLabel: r.opts.UncategorizedLabel,
	})

	view := homeView{
		Title:     r.opts.Title,
		Sections:  make([]sectionView, 0, len(sections)),
		EmptyText: EmptyCategoryText,
	}
	for _, s := range sections {
		sv := sectionView{Key: s.Key, Label: s.Label, Links: make([]linkView, 0, len(s.Links))}
		for _, l := range s.Links {
			lv, err := r.link(l)
			if err != nil {
				return Page{}, err
			}
			if lv.Intranet != "" {
				view.HasIntranet = true
			}
			sv.Links = append(sv.Links, lv)
		}
		view.Sections = append(view.Sections, sv)
	}

	buf := r.pool.Get().(*bytes.Buffer)
	buf.Reset()
	defer r.pool.Put(buf)

	if err := r.home.Execute(buf, view); err != nil {
		return Page{}, fmt.Errorf("render homepage: %w", err)
	}

	body := bytes.Clone(buf.Bytes())
	return Page{Body: body, ETag: ETag(body)}, nil
}

func (r *Renderer) link(l domain.Link) (linkView, error) {
	icon := strings.TrimSpace(l.Icon)
	if icon == "" {
		icon = DefaultIcon
	}
	desc, err := r.Description(l.Description)
	if err != nil {
		return linkView{}, fmt.Errorf("render description of %q: %w", l.DisplayName(), err)
	}
	intranet := strings.TrimSpace(l.URLIntranet)
	if !httpURL(intranet) {
		// data-intranet is copied into href by script, outside template URL filtering.
		intranet = ""
	}
	return linkView{
		Name:        l.DisplayName(),
		URL:         l.URL,
		Intranet:    intranet,
		Icon:        icon,
		Description: desc,
	}, nil
}

// Description renders a link description as inline markdown. Raw HTML in
// the source is not passed through.
func (r *Renderer) Description(src string) (template.HTML, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	out := strings.TrimSpace(buf.String())
	// A single paragraph is unwrapped so the description stays inline.
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return template.HTML(out), nil // #nosec G203 -- goldmark escapes raw HTML unless WithUnsafe is set
}

func httpURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ETag returns a quoted strong entity tag for body.
func ETag(body []byte) string {
	sum := blake3.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}
