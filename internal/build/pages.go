package build

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/modernist/Akkatecture-Documentation/internal/config"
	"github.com/modernist/Akkatecture-Documentation/internal/content"
	"github.com/modernist/Akkatecture-Documentation/internal/core"
)

// Page is one finished document, ready to serve or write to disk.
type Page struct {
	Route string
	HTML  string
}

type Problem struct {
	Source string
	Err    error
}

var indexTemplate = template.Must(template.New("index").Parse(`<header class="site-header">
  <h1>{{.Title}}</h1>
  <p>{{.Description}}</p>
  <input type="search" id="search" placeholder="Search the docs" />
</header>
<main class="lesson-list">
  <ol>
{{- range .Lessons}}
    <li>
      <a href="{{.Route}}">{{.Title}}</a>
      {{- if .Category}}<span class="category">{{.Category}}</span>{{end}}
    </li>
{{- end}}
  </ol>
</main>`))

type indexEntry struct {
	Route    string
	Title    string
	Category string
}

func indexBody(lessons []content.Lesson, cfg *config.Settings) (string, error) {
	entries := make([]indexEntry, 0, len(lessons))
	for _, lesson := range lessons {
		entries = append(entries, indexEntry{
			Route:    lesson.RoutePath(),
			Title:    lesson.Meta.Title,
			Category: lesson.Meta.Category,
		})
	}

	var buf bytes.Buffer
	err := indexTemplate.Execute(&buf, map[string]any{
		"Title":       cfg.Site.Title,
		"Description": cfg.Site.Description,
		"Lessons":     entries,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// AssemblePages renders the index and every lesson through the document
// shell. A lesson that fails to render becomes a Problem, not an error;
// the rest of the site still assembles.
func AssemblePages(lessons []content.Lesson, cfg *config.Settings, mode core.Mode, inlineCSS string) ([]Page, []Problem) {
	shellFor := func(title string) core.Shell {
		return core.Shell{
			Title:        title,
			FaviconURL:   cfg.Site.Favicon,
			SearchCSSURL: cfg.Search.CSSURL,
			SearchJSURL:  cfg.Search.JSURL,
		}
	}

	postBody := searchInit(cfg)

	var pages []Page
	var problems []Problem

	body, err := indexBody(lessons, cfg)
	if err == nil {
		html, rerr := core.RenderDocument(core.Document{
			HeadHTML:     indexHead(cfg),
			BodyHTML:     body,
			PostBodyHTML: postBody,
		}, shellFor(cfg.Site.Title), mode, inlineCSS)
		if rerr != nil {
			problems = append(problems, Problem{Source: "index", Err: rerr})
		} else {
			pages = append(pages, Page{Route: "/", HTML: html})
		}
	} else {
		problems = append(problems, Problem{Source: "index", Err: err})
	}

	for _, lesson := range lessons {
		title := lesson.Meta.Title
		if title == "" {
			title = cfg.Site.Title
		} else if cfg.Site.Title != "" {
			title = fmt.Sprintf("%s | %s", title, cfg.Site.Title)
		}

		html, rerr := core.RenderDocument(core.Document{
			HeadHTML:     lessonHead(lesson, cfg),
			BodyHTML:     lesson.BodyHTML,
			PostBodyHTML: postBody,
		}, shellFor(title), mode, inlineCSS)
		if rerr != nil {
			problems = append(problems, Problem{Source: lesson.SourcePath, Err: rerr})
			continue
		}

		pages = append(pages, Page{Route: lesson.RoutePath(), HTML: html})
	}

	return pages, problems
}
