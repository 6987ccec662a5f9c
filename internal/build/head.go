package build

import (
	"fmt"
	"html"
	"strings"

	"github.com/modernist/Akkatecture-Documentation/internal/config"
	"github.com/modernist/Akkatecture-Documentation/internal/content"
)

// lessonHead builds the per-page head fragment handed to the document
// shell: description, open-graph metadata, canonical link. Front-matter
// values are attribute-escaped; the fragment itself is injected raw.
func lessonHead(lesson content.Lesson, cfg *config.Settings) string {
	var b strings.Builder

	if cfg.Site.Description != "" {
		fmt.Fprintf(&b, `<meta name="description" content="%s" />`, html.EscapeString(cfg.Site.Description))
	}

	fmt.Fprintf(&b, `<meta property="og:title" content="%s" />`, html.EscapeString(lesson.Meta.Title))
	fmt.Fprintf(&b, `<meta property="og:type" content="%s" />`, html.EscapeString(orDefault(lesson.Meta.Type, "article")))
	if lesson.Meta.Cover != "" {
		fmt.Fprintf(&b, `<meta property="og:image" content="%s" />`, html.EscapeString(lesson.Meta.Cover))
	}
	for _, tag := range lesson.Meta.Tags {
		fmt.Fprintf(&b, `<meta property="article:tag" content="%s" />`, html.EscapeString(tag))
	}

	if cfg.Site.BaseURL != "" {
		canonical := strings.TrimSuffix(cfg.Site.BaseURL, "/") + lesson.RoutePath()
		fmt.Fprintf(&b, `<link rel="canonical" href="%s" />`, html.EscapeString(canonical))
	}

	return b.String()
}

func indexHead(cfg *config.Settings) string {
	var b strings.Builder
	if cfg.Site.Description != "" {
		fmt.Fprintf(&b, `<meta name="description" content="%s" />`, html.EscapeString(cfg.Site.Description))
	}
	if cfg.Site.BaseURL != "" {
		fmt.Fprintf(&b, `<link rel="canonical" href="%s" />`, html.EscapeString(cfg.Site.BaseURL))
	}
	return b.String()
}

// searchInit is the post-body fragment wiring up the search widget.
// Returns empty when no API key is configured; the widget assets still
// load so the shell stays identical across environments.
func searchInit(cfg *config.Settings) string {
	if cfg.Search.APIKey == "" {
		return ""
	}
	return fmt.Sprintf(
		`<script type="text/javascript">docsearch({apiKey: %q, indexName: %q, inputSelector: "#search", debug: false});</script>`,
		cfg.Search.APIKey, cfg.Search.IndexName)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
