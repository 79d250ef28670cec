// Package catalog provides the static content of the app: motivation
// quotes, the tools menu, the onboarding tour and the home to-do list.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/BurntSushi/toml"
)

//go:embed content.toml
var defaultContent string

type Tool struct {
	Key     string `toml:"key"`
	Label   string `toml:"label"`
	Summary string `toml:"summary"`
	Body    string `toml:"body"` // markdown
}

// Step is one page of the onboarding tour. Highlight names the view the
// step introduces, if any.
type Step struct {
	Title     string `toml:"title"`
	Text      string `toml:"text"`
	Highlight string `toml:"highlight"`
}

type Todo struct {
	Text string `toml:"text"`
	Done bool   `toml:"done"`
}

type Catalog struct {
	Quotes []string `toml:"quotes"`
	Tools  []Tool   `toml:"tools"`
	Tour   []Step   `toml:"tour"`
	Todos  []Todo   `toml:"todos"`
}

// Load returns the built-in catalog.
func Load() (*Catalog, error) {
	return Parse(defaultContent)
}

// Parse decodes and validates TOML content.
func Parse(data string) (*Catalog, error) {
	var c Catalog
	if _, err := toml.Decode(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile reads a catalog from a TOML file.
func LoadFile(path string) (*Catalog, error) {
	var c Catalog
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return &c, nil
}

func (c *Catalog) Validate() error {
	if len(c.Quotes) == 0 {
		return errors.New("catalog has no quotes")
	}
	if len(c.Tour) == 0 {
		return errors.New("catalog has no tour steps")
	}
	seen := make(map[string]bool, len(c.Tools))
	for _, t := range c.Tools {
		if t.Key == "" {
			return fmt.Errorf("tool %q has no key", t.Label)
		}
		if seen[t.Key] {
			return fmt.Errorf("duplicate tool key %q", t.Key)
		}
		seen[t.Key] = true
	}
	return nil
}

// Quote returns quote n, wrapping around.
func (c *Catalog) Quote(n int) string {
	if n < 0 {
		n = -n
	}
	return c.Quotes[n%len(c.Quotes)]
}

func (c *Catalog) RandomQuote() string {
	return c.Quotes[rand.IntN(len(c.Quotes))]
}

// Tool looks up a tool by key.
func (c *Catalog) Tool(key string) (Tool, bool) {
	for _, t := range c.Tools {
		if t.Key == key {
			return t, true
		}
	}
	return Tool{}, false
}
