package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Settings drives both the static build and the dev server. Values come
// from defaults, an optional site.yaml, and DOCSITE_* environment
// overrides, in that order.
type Settings struct {
	Site struct {
		Title       string // site-wide title, also the shell fallback <title>
		BaseURL     string // absolute base for canonical and og: urls
		Description string
		Favicon     string // favicon href placed in every document head
	}

	Content struct {
		Dir string // directory of markdown lesson files
	}

	Assets struct {
		PublicDir  string // files copied/served as-is
		Stylesheet string // css inlined into the head in production
	}

	Output struct {
		Dir string // static build target
	}

	Search struct {
		CSSURL    string // search widget stylesheet, loaded from its cdn
		JSURL     string // search widget script, loaded from its cdn
		IndexName string
		APIKey    string
	}

	Server struct {
		Addr string
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("site.title", "Akkatecture")
	v.SetDefault("site.baseurl", "https://akkatecture.net")
	v.SetDefault("site.description", "A cqrs and event sourcing framework, build with akka.net")
	v.SetDefault("site.favicon", "https://akkatecture.net/favicon.ico")

	v.SetDefault("content.dir", "content")
	v.SetDefault("assets.publicdir", "public")
	v.SetDefault("assets.stylesheet", "public/styles/styles.css")
	v.SetDefault("output.dir", "public_html")

	v.SetDefault("search.cssurl", "https://cdn.jsdelivr.net/npm/docsearch.js@2/dist/cdn/docsearch.min.css")
	v.SetDefault("search.jsurl", "https://cdn.jsdelivr.net/npm/docsearch.js@2/dist/cdn/docsearch.min.js")
	v.SetDefault("search.indexname", "akkatecture")
	v.SetDefault("search.apikey", "")

	v.SetDefault("server.addr", ":8080")
}

// Load reads settings from path. An absent file is not an error; the
// defaults stand. A present but unreadable or malformed file is.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("DOCSITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func validate(s *Settings) error {
	if s.Content.Dir == "" {
		return fmt.Errorf("content.dir must not be empty")
	}
	if s.Output.Dir == "" {
		return fmt.Errorf("output.dir must not be empty")
	}
	if s.Site.Favicon == "" {
		return fmt.Errorf("site.favicon must not be empty")
	}
	if s.Search.CSSURL == "" || s.Search.JSURL == "" {
		return fmt.Errorf("search widget urls must not be empty")
	}
	return nil
}
