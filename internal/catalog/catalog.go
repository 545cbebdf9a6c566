package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed default.toml
var defaultCatalog []byte

// ErrEmpty is returned when a catalog has nothing to put on a track.
var ErrEmpty = errors.New("catalog has no items")

type Brand struct {
	Name    string `toml:"name" yaml:"name" json:"name"`
	Tagline string `toml:"tagline" yaml:"tagline" json:"tagline"`
	CTA     string `toml:"cta" yaml:"cta" json:"cta"`
}

type About struct {
	Heading string `toml:"heading" yaml:"heading" json:"heading"`
	Body    string `toml:"body" yaml:"body" json:"body"`
}

// Service is one card of the services strip.
type Service struct {
	ID          string `toml:"id" yaml:"id" json:"id"`
	Title       string `toml:"title" yaml:"title" json:"title"`
	Description string `toml:"description" yaml:"description" json:"description"`
	Image       string `toml:"image" yaml:"image" json:"image"`
}

// Video is one showcase slot.
type Video struct {
	ID     string `toml:"id" yaml:"id" json:"id"`
	Title  string `toml:"title" yaml:"title" json:"title"`
	URL    string `toml:"url" yaml:"url" json:"url"`
	Poster string `toml:"poster" yaml:"poster" json:"poster,omitempty"`
}

type Partner struct {
	Name string `toml:"name" yaml:"name" json:"name"`
	Logo string `toml:"logo" yaml:"logo" json:"logo"`
}

// Catalog is the static content the carousels are built over. It is loaded
// once and treated as immutable for the rest of the session.
type Catalog struct {
	Brand    Brand     `toml:"brand" yaml:"brand" json:"brand"`
	About    About     `toml:"about" yaml:"about" json:"about"`
	Services []Service `toml:"services" yaml:"services" json:"services"`
	Videos   []Video   `toml:"videos" yaml:"videos" json:"videos"`
	Partners []Partner `toml:"partners" yaml:"partners" json:"partners"`
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	var c Catalog
	if err := toml.Unmarshal(defaultCatalog, &c); err != nil {
		return nil, fmt.Errorf("parsing built-in catalog: %w", err)
	}
	if err := c.normalize(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load returns the catalog at path layered over the built-in one. An empty
// path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	base, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return base, nil
	}
	override, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	base.Merge(override)
	if err := base.normalize(); err != nil {
		return nil, err
	}
	return base, nil
}

// LoadFile decodes a TOML or YAML catalog, chosen by extension. Sections the
// file leaves out stay empty.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	var c Catalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &c)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", filepath.Base(path), err)
	}
	return &c, nil
}

// Merge replaces every non-empty section of c with the one from o.
func (c *Catalog) Merge(o *Catalog) {
	if o == nil {
		return
	}
	if o.Brand != (Brand{}) {
		c.Brand = o.Brand
	}
	if o.About != (About{}) {
		c.About = o.About
	}
	if len(o.Services) > 0 {
		c.Services = o.Services
	}
	if len(o.Videos) > 0 {
		c.Videos = o.Videos
	}
	if len(o.Partners) > 0 {
		c.Partners = o.Partners
	}
}

// Service returns the service with the given id and its index.
func (c *Catalog) Service(id string) (Service, int, bool) {
	for i, s := range c.Services {
		if s.ID == id {
			return s, i, true
		}
	}
	return Service{}, -1, false
}

func (c *Catalog) normalize() error {
	if len(c.Services) == 0 || len(c.Videos) == 0 {
		return ErrEmpty
	}
	seen := make(map[string]bool)
	for i := range c.Services {
		s := &c.Services[i]
		if s.Title == "" {
			return fmt.Errorf("service %d has no title", i)
		}
		if s.ID == "" {
			s.ID = slug(s.Title)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate service id %q", s.ID)
		}
		seen[s.ID] = true
	}
	for i := range c.Videos {
		v := &c.Videos[i]
		if v.URL == "" {
			return fmt.Errorf("video %d has no url", i)
		}
		if v.ID == "" {
			v.ID = fmt.Sprintf("video-%d", i+1)
		}
		if v.Title == "" {
			v.Title = v.ID
		}
	}
	return nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slug(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
