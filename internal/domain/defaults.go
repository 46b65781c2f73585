package domain

// Default returns the built-in seed directory used when the store holds no
// (usable) record. It is never persisted until an explicit write.
func Default() Directory {
	return Directory{
		Links: []Link{
			{Name: "GitHub", URL: "https://github.com", Icon: "🐙", Category: "dev", Description: "Code hosting"},
			{Name: "Go Packages", URL: "https://pkg.go.dev", Icon: "📦", Category: "dev", Description: "Go module documentation"},
			{Name: "Hacker News", URL: "https://news.ycombinator.com", Icon: "📰", Category: "reading"},
			{Name: "YouTube", URL: "https://www.youtube.com", Icon: "▶️", Category: "media"},
			{Name: "Translate", URL: "https://translate.google.com", Icon: "🌐", Category: "tools"},
			{
				Name:        "Router",
				URL:         "https://router.example.net",
				URLIntranet: "http://192.168.1.1",
				Icon:        "📡",
				Category:    "tools",
				Description: "Home router admin",
			},
		},
		Categories: Categories{
			{Key: "dev", Label: "Development"},
			{Key: "reading", Label: "Reading"},
			{Key: "media", Label: "Media"},
			{Key: "tools", Label: "Tools"},
		},
	}
}
