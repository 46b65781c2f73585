package homepage

// ServicesConfig is the root of services.yaml:
// - GroupName: [ - ServiceName: {href, icon, ...} ]
type ServicesConfig []map[string][]map[string]ServiceProps

// ServiceProps contains the service properties navdir maps to a link.
// Widget and monitoring settings are parsed but ignored.
type ServiceProps struct {
	Href        string         `yaml:"href"`
	Icon        string         `yaml:"icon,omitempty"`
	Description string         `yaml:"description,omitempty"`
	Target      string         `yaml:"target,omitempty"`
	Ping        string         `yaml:"ping,omitempty"`
	SiteMonitor string         `yaml:"siteMonitor,omitempty"`
	Widget      map[string]any `yaml:"widget,omitempty"`
}

// BookmarksConfig is the root of bookmarks.yaml:
// - GroupName: [ - BookmarkName: [ {abbr, href, ...} ] ]
// Homepage wraps each bookmark's properties in a one-element list.
type BookmarksConfig []map[string][]map[string][]BookmarkEntry

type BookmarkEntry struct {
	Icon        string `yaml:"icon,omitempty"`
	Abbr        string `yaml:"abbr,omitempty"`
	Href        string `yaml:"href"`
	Description string `yaml:"description,omitempty"`
}
