package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/modernist/Akkatecture-Documentation/internal/cli"
)

const sampleConfig = `site:
  title: Akkatecture
  baseurl: https://akkatecture.net
  description: A cqrs and event sourcing framework, build with akka.net
  favicon: https://akkatecture.net/favicon.ico

content:
  dir: content

assets:
  publicdir: public
  stylesheet: public/styles/styles.css

output:
  dir: public_html

server:
  addr: ":8080"
`

const sampleStylesheet = `body {
  font-family: system-ui, sans-serif;
  max-width: 820px;
  margin: 0 auto;
  padding: 0 20px;
  line-height: 1.6;
}
`

const sampleLesson = `---
title: Getting Started
lesson: 1
date: %s
category: Walkthrough
type: lesson
tags: [introduction]
---

# Getting Started

Write your lessons as markdown files in the content directory. The
front matter above drives ordering, metadata and the page head.
`

// InitProject lays out a fresh site: config, content dir with one
// lesson, public dir with a stylesheet. Refuses a non-empty target.
func InitProject(projectDir string, out *cli.Output) error {
	out.PrintHeader("Docsite Init")

	if _, err := os.Stat(projectDir); err == nil {
		entries, rerr := os.ReadDir(projectDir)
		if rerr != nil {
			return fmt.Errorf("failed to read directory: %w", rerr)
		}
		if len(entries) > 0 {
			return fmt.Errorf("directory '%s' already exists and is not empty", projectDir)
		}
	}

	files := map[string]string{
		"site.yaml":                    sampleConfig,
		"public/styles/styles.css":     sampleStylesheet,
		"content/1-getting-started.md": fmt.Sprintf(sampleLesson, time.Now().Format("2006-01-02")),
	}

	for rel, body := range files {
		target := filepath.Join(projectDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", rel, err)
		}
		if err := os.WriteFile(target, []byte(body), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", rel, err)
		}
		out.PrintFile(target)
	}

	out.PrintDone("Initialization complete")
	return nil
}

// NewLesson scaffolds one lesson file with a filled-in front matter
// block. The ordinal continues from the highest one present.
func NewLesson(contentDir, title string, out *cli.Output) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", fmt.Errorf("lesson title must not be empty")
	}

	if err := os.MkdirAll(contentDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create content directory: %w", err)
	}

	next, err := nextOrdinal(contentDir)
	if err != nil {
		return "", err
	}

	slug := slugify(title)
	target := filepath.Join(contentDir, fmt.Sprintf("%d-%s.md", next, slug))
	if _, err := os.Stat(target); err == nil {
		return "", fmt.Errorf("lesson file %s already exists", target)
	}

	body := fmt.Sprintf(`---
title: %s
lesson: %d
date: %s
category: ""
type: lesson
tags: []
---

# %s
`, title, next, time.Now().Format("2006-01-02"), title)

	if err := os.WriteFile(target, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("failed to write lesson: %w", err)
	}

	out.PrintFile(target)
	return target, nil
}

// Doctor verifies the project layout and repairs what it safely can:
// an absent content dir is an error, an absent output dir is created.
func Doctor(projectDir, contentDir, outputDir string, out *cli.Output) error {
	out.PrintHeader("Docsite Doctor")

	contentPath := filepath.Join(projectDir, contentDir)
	if info, err := os.Stat(contentPath); err != nil || !info.IsDir() {
		return fmt.Errorf("content directory %s not found; run init first", contentPath)
	}
	out.PrintSuccess("content directory %s", contentPath)

	outputPath := filepath.Join(projectDir, outputDir)
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	out.PrintSuccess("output directory %s", outputPath)

	out.PrintDone("All checks passed")
	return nil
}

func nextOrdinal(contentDir string) (int, error) {
	entries, err := os.ReadDir(contentDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read content directory: %w", err)
	}

	highest := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		i := strings.IndexAny(name, "-_")
		if i <= 0 {
			continue
		}
		n := 0
		if _, serr := fmt.Sscanf(name[:i], "%d", &n); serr == nil && n > highest {
			highest = n
		}
	}
	return highest + 1, nil
}

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Join(strings.Fields(slug), "-")
	var b strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "lesson"
	}
	return b.String()
}
