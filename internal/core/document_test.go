package core

import (
	"strings"
	"testing"
)

func testShell() Shell {
	return Shell{
		Title:        "Akkatecture",
		FaviconURL:   "https://akkatecture.net/favicon.ico",
		SearchCSSURL: "https://cdn.example.com/docsearch.min.css",
		SearchJSURL:  "https://cdn.example.com/docsearch.min.js",
	}
}

func TestRenderDocumentDevNeverInlinesCSS(t *testing.T) {
	html, err := RenderDocument(Document{BodyHTML: "<p>hello</p>"}, testShell(), ModeDev, "body { color: red }")
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}

	if strings.Contains(html, "<style>") {
		t.Errorf("dev document contains inline style element:\n%s", html)
	}
}

func TestRenderDocumentProdInlinesCSSOnce(t *testing.T) {
	css := "body { color: red }"
	html, err := RenderDocument(Document{BodyHTML: "<p>hello</p>"}, testShell(), ModeProd, css)
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}

	if got := strings.Count(html, "<style>"); got != 1 {
		t.Fatalf("expected exactly 1 inline style element, got %d", got)
	}

	if !strings.Contains(html, "<style>"+css+"</style>") {
		t.Errorf("inline style does not contain the exact stylesheet text:\n%s", html)
	}
}

func TestRenderDocumentProdWithoutCSSStillRenders(t *testing.T) {
	html, err := RenderDocument(Document{BodyHTML: "<p>hello</p>"}, testShell(), ModeProd, "")
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}

	if strings.Contains(html, "<style>") {
		t.Errorf("document contains inline style element despite missing css:\n%s", html)
	}

	if !strings.Contains(html, "<p>hello</p>") {
		t.Errorf("document is missing the body fragment:\n%s", html)
	}
}

func TestRenderDocumentFixedChrome(t *testing.T) {
	for _, mode := range []Mode{ModeDev, ModeProd} {
		t.Run(mode.String(), func(t *testing.T) {
			html, err := RenderDocument(Document{}, testShell(), mode, "body{}")
			if err != nil {
				t.Fatalf("RenderDocument() error = %v", err)
			}

			if got := strings.Count(html, `rel="shortcut icon"`); got != 1 {
				t.Errorf("expected exactly 1 favicon link, got %d", got)
			}
			if got := strings.Count(html, "docsearch.min.css"); got != 1 {
				t.Errorf("expected exactly 1 search stylesheet link, got %d", got)
			}
			if got := strings.Count(html, "docsearch.min.js"); got != 1 {
				t.Errorf("expected exactly 1 search script tag, got %d", got)
			}
		})
	}
}

func TestRenderDocumentFragmentsVerbatim(t *testing.T) {
	doc := Document{
		HeadHTML:     `<meta name="custom" content="a & b" />`,
		BodyHTML:     `<article><h1>Aggregates & Events</h1></article>`,
		PostBodyHTML: `<script>console.log("post");</script>`,
	}

	html, err := RenderDocument(doc, testShell(), ModeProd, "")
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}

	for _, fragment := range []string{doc.HeadHTML, doc.BodyHTML, doc.PostBodyHTML} {
		if !strings.Contains(html, fragment) {
			t.Errorf("fragment not found verbatim in document:\n%s", fragment)
		}
	}

	headEnd := strings.Index(html, "</head>")
	if strings.Index(html, doc.HeadHTML) > headEnd {
		t.Error("head fragment appears outside <head>")
	}
	if strings.Index(html, doc.BodyHTML) < headEnd {
		t.Error("body fragment appears before </head>")
	}
	if strings.Index(html, doc.PostBodyHTML) < strings.Index(html, doc.BodyHTML) {
		t.Error("post-body fragment appears before the body fragment")
	}
}

func TestRenderDocumentEmptyFragments(t *testing.T) {
	html, err := RenderDocument(Document{}, testShell(), ModeDev, "")
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}

	for _, tag := range []string{"<!doctype html>", "<head>", "</head>", "<body>", "</body>", "</html>"} {
		if !strings.Contains(html, tag) {
			t.Errorf("document is missing %s", tag)
		}
	}
}

func TestRenderDocumentTitleHandling(t *testing.T) {
	tests := []struct {
		name     string
		headHTML string
		wantOwn  bool
	}{
		{
			name:    "no head fragment uses shell title",
			wantOwn: true,
		},
		{
			name:     "head fragment with title suppresses shell title",
			headHTML: "<title>Custom</title>",
			wantOwn:  false,
		},
		{
			name:     "head fragment without title keeps shell title",
			headHTML: `<meta name="x" content="y" />`,
			wantOwn:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := RenderDocument(Document{HeadHTML: tt.headHTML}, testShell(), ModeDev, "")
			if err != nil {
				t.Fatalf("RenderDocument() error = %v", err)
			}

			hasOwn := strings.Contains(html, "<title>Akkatecture</title>")
			if hasOwn != tt.wantOwn {
				t.Errorf("shell title present = %v, want %v", hasOwn, tt.wantOwn)
			}
		})
	}
}

func TestRenderDocumentMissingChromeURLs(t *testing.T) {
	shell := testShell()
	shell.FaviconURL = ""

	if _, err := RenderDocument(Document{}, shell, ModeDev, ""); err == nil {
		t.Error("expected error for missing favicon url, got nil")
	}

	shell = testShell()
	shell.SearchJSURL = ""

	if _, err := RenderDocument(Document{}, shell, ModeDev, ""); err == nil {
		t.Error("expected error for missing search widget url, got nil")
	}
}
