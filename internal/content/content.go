// Package content holds the static portfolio tables the presentation layer
// shows. Nothing in the animation core reads it.
package content

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var defaultPortfolio []byte

// Placeholder is shown in the preview when a project has no usable image.
const Placeholder = "[ no preview ]"

type Links struct {
	Live   string `yaml:"live,omitempty"`
	GitHub string `yaml:"github,omitempty"`
}

type Project struct {
	Title string   `yaml:"title"`
	Desc  string   `yaml:"desc"`
	Tech  []string `yaml:"tech"`
	Links Links    `yaml:"links"`
	Image string   `yaml:"image"`
}

type Category struct {
	Name     string    `yaml:"name"`
	Projects []Project `yaml:"projects"`
}

type SkillGroup struct {
	Category string   `yaml:"category"`
	Skills   []string `yaml:"skills"`
}

type Portfolio struct {
	Categories []Category   `yaml:"categories"`
	Skills     []SkillGroup `yaml:"skills"`
}

// Default returns the built-in portfolio.
func Default() *Portfolio {
	p, err := Parse(defaultPortfolio)
	if err != nil {
		panic(fmt.Sprintf("content: embedded portfolio is invalid: %v", err))
	}
	return p
}

func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("content: parse portfolio: %w", err)
	}
	return &p, nil
}

func Load(path string) (*Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Projects flattens every category in order.
func (p *Portfolio) Projects() []Project {
	var out []Project
	for _, c := range p.Categories {
		out = append(out, c.Projects...)
	}
	return out
}

// Lookup finds the project that uses image.
func (p *Portfolio) Lookup(image string) (Project, bool) {
	for _, c := range p.Categories {
		for _, pr := range c.Projects {
			if pr.Image == image {
				return pr, true
			}
		}
	}
	return Project{}, false
}

// PreviewLabel is the text the preview overlay shows for image, falling back
// to Placeholder for unknown or empty images.
func (p *Portfolio) PreviewLabel(image string) string {
	if image == "" {
		return Placeholder
	}
	pr, ok := p.Lookup(image)
	if !ok {
		return Placeholder
	}
	return pr.Title
}
