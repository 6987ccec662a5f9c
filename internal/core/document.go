package core

import (
	"fmt"
	"strings"
)

// Document carries the pre-rendered fragments supplied by the page
// assembly step. All three are opaque HTML and are injected verbatim.
type Document struct {
	HeadHTML     string
	BodyHTML     string
	PostBodyHTML string
}

// Shell is the fixed chrome every generated page shares.
type Shell struct {
	Title        string
	FaviconURL   string
	SearchCSSURL string
	SearchJSURL  string
}

func RenderDocument(doc Document, shell Shell, mode Mode, inlineCSS string) (string, error) {
	if shell.FaviconURL == "" {
		return "", fmt.Errorf("missing favicon url")
	}
	if shell.SearchCSSURL == "" || shell.SearchJSURL == "" {
		return "", fmt.Errorf("missing search widget urls")
	}

	title := shell.Title
	if title == "" {
		title = "Akkatecture"
	}
	if doc.HeadHTML != "" && strings.Contains(strings.ToLower(doc.HeadHTML), "<title") {
		title = ""
	}

	var head strings.Builder
	head.WriteString(`<meta charset="UTF-8" /><meta name="viewport" content="width=device-width, initial-scale=1.0" />`)
	if title != "" {
		fmt.Fprintf(&head, "<title>%s</title>", title)
	}
	fmt.Fprintf(&head, `<link rel="shortcut icon" href="%s" />`, shell.FaviconURL)
	fmt.Fprintf(&head, `<link rel="stylesheet" href="%s" />`, shell.SearchCSSURL)
	fmt.Fprintf(&head, `<script type="text/javascript" src="%s"></script>`, shell.SearchJSURL)
	if doc.HeadHTML != "" {
		head.WriteString(doc.HeadHTML)
	}
	if mode == ModeProd && inlineCSS != "" {
		fmt.Fprintf(&head, "<style>%s</style>", inlineCSS)
	}

	html := fmt.Sprintf(`<!doctype html>
<html lang="en">
  <head>
    %s
  </head>
  <body>
    <div id="app">%s</div>
%s  </body>
</html>
`, head.String(), doc.BodyHTML, postBodyBlock(doc.PostBodyHTML))

	return html, nil
}

func postBodyBlock(postBody string) string {
	if postBody == "" {
		return ""
	}
	return "    " + postBody + "\n"
}
