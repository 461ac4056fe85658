// Package content describes the static copy of the landing page. The
// renderers only decide layout; every string and link comes from a Page.
package content

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidPage = errors.New("content: invalid page")

type NavLink struct {
	Href string `yaml:"href"`
	Text string `yaml:"text"`
}

// Anchor is the section id a link points at, without the leading '#'.
func (l NavLink) Anchor() string { return strings.TrimPrefix(l.Href, "#") }

type Hero struct {
	Title    string `yaml:"title"`
	Tagline  string `yaml:"tagline"`
	Intro    string `yaml:"intro"`
	CTAText  string `yaml:"cta_text"`
	CTAHref  string `yaml:"cta_href"`
	LogoPath string `yaml:"logo"`
}

type Feature struct {
	Icon        string `yaml:"icon"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	DelayMs     int    `yaml:"delay_ms"`
}

type Stat struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type About struct {
	Heading    string   `yaml:"heading"`
	Highlight  string   `yaml:"highlight"`
	Paragraphs []string `yaml:"paragraphs"`
	Stat       Stat     `yaml:"stat"`
}

type Contact struct {
	Label   string   `yaml:"label"`
	Href    string   `yaml:"href"`
	Icon    string   `yaml:"icon"`
	Colors  []string `yaml:"colors"`
	DelayMs int      `yaml:"delay_ms"`
}

type Section struct {
	Heading   string `yaml:"heading"`
	Highlight string `yaml:"highlight"`
	Subtitle  string `yaml:"subtitle"`
}

type Page struct {
	Brand      string    `yaml:"brand"`
	Nav        []NavLink `yaml:"nav"`
	Hero       Hero      `yaml:"hero"`
	Features   Section   `yaml:"features_section"`
	FeatureSet []Feature `yaml:"features"`
	About      About     `yaml:"about"`
	Contact    Section   `yaml:"contact_section"`
	Contacts   []Contact `yaml:"contacts"`
	Footer     string    `yaml:"footer"`
}

// Load reads a YAML page. Fields missing from the file keep the defaults.
func Load(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func Save(path string, p *Page) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (p *Page) Validate() error {
	if p.Brand == "" {
		return fmt.Errorf("%w: brand is empty", ErrInvalidPage)
	}
	for i, l := range p.Nav {
		if l.Href == "" || l.Text == "" {
			return fmt.Errorf("%w: nav link %d incomplete", ErrInvalidPage, i)
		}
	}
	for i, c := range p.Contacts {
		if c.Href == "" {
			return fmt.Errorf("%w: contact %q has no href", ErrInvalidPage, c.Label)
		}
		if c.DelayMs < 0 {
			return fmt.Errorf("%w: contact %d has negative delay", ErrInvalidPage, i)
		}
	}
	for i, f := range p.FeatureSet {
		if f.DelayMs < 0 {
			return fmt.Errorf("%w: feature %d has negative delay", ErrInvalidPage, i)
		}
	}
	return nil
}

// FooterText expands {year} and {brand} in the footer template.
func (p *Page) FooterText(year int) string {
	r := strings.NewReplacer("{year}", fmt.Sprint(year), "{brand}", p.Brand)
	return r.Replace(p.Footer)
}
