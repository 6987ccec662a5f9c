package content

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// FrontMatter is the YAML block at the head of every lesson file.
type FrontMatter struct {
	Title    string   `yaml:"title"`
	Chapter  int      `yaml:"chapter"`
	Lesson   int      `yaml:"lesson"`
	Cover    string   `yaml:"cover"`
	Date     string   `yaml:"date"`
	Category string   `yaml:"category"`
	Type     string   `yaml:"type"`
	Tags     []string `yaml:"tags"`
}

var frontMatterDelim = []byte("---")

// SplitFrontMatter separates the leading YAML block from the markdown
// body. The block must start on the first line and be closed by a second
// "---" line.
func SplitFrontMatter(src []byte) (meta, body []byte, err error) {
	trimmed := bytes.TrimLeft(src, "\r\n")
	if !bytes.HasPrefix(trimmed, frontMatterDelim) {
		return nil, nil, fmt.Errorf("missing front matter block")
	}

	rest := trimmed[len(frontMatterDelim):]
	rest = bytes.TrimPrefix(rest, []byte("\r"))
	if !bytes.HasPrefix(rest, []byte("\n")) {
		return nil, nil, fmt.Errorf("missing front matter block")
	}
	rest = rest[1:]

	end := bytes.Index(rest, append([]byte("\n"), frontMatterDelim...))
	if end < 0 {
		return nil, nil, fmt.Errorf("unterminated front matter block")
	}

	meta = rest[:end+1]
	body = rest[end+1+len(frontMatterDelim):]
	body = bytes.TrimPrefix(body, []byte("\r"))
	body = bytes.TrimPrefix(body, []byte("\n"))
	return meta, body, nil
}

func ParseFrontMatter(meta []byte) (FrontMatter, error) {
	var fm FrontMatter
	if err := yaml.Unmarshal(meta, &fm); err != nil {
		return FrontMatter{}, fmt.Errorf("invalid front matter: %w", err)
	}
	return fm, nil
}

var dateFormats = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"02/01/2006",
}

// ParsedDate interprets the front-matter date field. A missing or
// unparseable date yields the zero time; ordering falls back to the
// lesson ordinal in that case.
func (fm FrontMatter) ParsedDate() time.Time {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, fm.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}
