// Package guide holds the curated live-music catalog. The catalog is a
// static, build-time-embedded document; runtime code only ever reads it.
package guide

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed guide.yaml
var guideYAML []byte

type Band struct {
	Name        string   `yaml:"name"`
	Date        string   `yaml:"date"`
	Time        string   `yaml:"time"`
	Rating      int      `yaml:"rating"`
	Description string   `yaml:"description"`
	Vibe        string   `yaml:"vibe"`
	Tags        []string `yaml:"tags"`
}

type Category struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Bands []Band `yaml:"bands"`
}

type Guide struct {
	Categories []Category `yaml:"categories"`
}

var (
	loadOnce sync.Once
	loaded   *Guide
	loadErr  error
)

// Load parses the embedded catalog. The result is cached; the catalog
// cannot change while the process runs.
func Load() (*Guide, error) {
	loadOnce.Do(func() {
		var g Guide
		if err := yaml.Unmarshal(guideYAML, &g); err != nil {
			loadErr = fmt.Errorf("failed to parse embedded band guide: %v", err)
			return
		}
		loaded = &g
	})
	return loaded, loadErr
}
