package content

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/modernist/Akkatecture-Documentation/internal/core"
)

// Lesson is one rendered content page.
type Lesson struct {
	Slug       string
	SourcePath string
	Meta       FrontMatter
	BodyHTML   string
}

// Problem records a content file that could not be turned into a page.
// A problem never aborts a load; the file is skipped and reported.
type Problem struct {
	SourcePath string
	Err        error
}

// LoadDir reads every markdown file in dir, splits and parses front
// matter, renders the body, and returns lessons in reading order.
func LoadDir(dir string) ([]Lesson, []Problem, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, nil, core.ErrContentDirMissing
	}

	var lessons []Lesson
	var problems []Problem

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if !isMarkdown(path) {
			return nil
		}

		lesson, lerr := loadFile(path)
		if lerr != nil {
			problems = append(problems, Problem{SourcePath: path, Err: lerr})
			return nil
		}
		lessons = append(lessons, lesson)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if len(lessons) == 0 && len(problems) == 0 {
		return nil, nil, core.ErrNoLessons
	}

	sortLessons(lessons)
	return lessons, problems, nil
}

func loadFile(path string) (Lesson, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lesson{}, err
	}

	meta, body, err := SplitFrontMatter(data)
	if err != nil {
		return Lesson{}, err
	}

	fm, err := ParseFrontMatter(meta)
	if err != nil {
		return Lesson{}, err
	}

	bodyHTML, err := RenderMarkdown(body)
	if err != nil {
		return Lesson{}, err
	}

	return Lesson{
		Slug:       core.SlugForSource(path),
		SourcePath: path,
		Meta:       fm,
		BodyHTML:   bodyHTML,
	}, nil
}

func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// Reading order: chapter first, lesson ordinal within it, date as
// tiebreaker, slug last so the order is total and stable across builds.
func sortLessons(lessons []Lesson) {
	sort.SliceStable(lessons, func(i, j int) bool {
		a, b := lessons[i], lessons[j]
		if a.Meta.Chapter != b.Meta.Chapter {
			return a.Meta.Chapter < b.Meta.Chapter
		}
		if a.Meta.Lesson != b.Meta.Lesson {
			return a.Meta.Lesson < b.Meta.Lesson
		}
		ad, bd := a.Meta.ParsedDate(), b.Meta.ParsedDate()
		if !ad.Equal(bd) {
			return ad.Before(bd)
		}
		return a.Slug < b.Slug
	})
}

// RoutePath is the URL a lesson is served and exported under.
func (l Lesson) RoutePath() string {
	return core.NormalizePath("/" + l.Slug)
}
