package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/freegametools/scene"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "freegametools.yaml"

//go:embed default.yaml
var defaultYAML []byte

type Config struct {
	TickRate int            `yaml:"tick_rate"`
	Animator AnimatorConfig `yaml:"animator"`
	Editor   EditorConfig   `yaml:"editor"`
}

type AnimatorConfig struct {
	Window    [2]int            `yaml:"window"`
	Speed     int               `yaml:"speed"`
	Zoom      int               `yaml:"zoom"`
	StatusBar bool              `yaml:"status_bar"`
	Bindings  map[string]string `yaml:"bindings"`
}

type EditorConfig struct {
	Resolution [2]int            `yaml:"resolution"`
	Background string            `yaml:"background"`
	NudgeFast  int               `yaml:"nudge_fast"`
	StatusBar  bool              `yaml:"status_bar"`
	Bindings   map[string]string `yaml:"bindings"`
}

// Default returns the embedded configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded default.yaml: %v", err))
	}
	return cfg
}

// Load overlays the YAML file at path on the defaults. A bindings table in
// the file replaces the default table for that tool instead of merging into
// it. An empty path reads DefaultFile when it exists. On error the defaults
// are returned with it.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return cfg, nil
		}
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	var overlay struct {
		Animator struct {
			Bindings map[string]string `yaml:"bindings"`
		} `yaml:"animator"`
		Editor struct {
			Bindings map[string]string `yaml:"bindings"`
		} `yaml:"editor"`
	}
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return Default(), fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if overlay.Animator.Bindings != nil {
		cfg.Animator.Bindings = overlay.Animator.Bindings
	}
	if overlay.Editor.Bindings != nil {
		cfg.Editor.Bindings = overlay.Editor.Bindings
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every out-of-range value.
func (c Config) Validate() error {
	var errs []error
	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate %d must be positive", c.TickRate))
	}
	if c.Animator.Window[0] <= 0 || c.Animator.Window[1] <= 0 {
		errs = append(errs, fmt.Errorf("animator.window %v must be positive", c.Animator.Window))
	}
	if c.Animator.Speed < 0 {
		errs = append(errs, fmt.Errorf("animator.speed %d must not be negative", c.Animator.Speed))
	}
	if c.Animator.Zoom < 1 {
		errs = append(errs, fmt.Errorf("animator.zoom %d must be at least 1", c.Animator.Zoom))
	}
	if c.Editor.Resolution[0] <= 0 || c.Editor.Resolution[1] <= 0 {
		errs = append(errs, fmt.Errorf("editor.resolution %v must be positive", c.Editor.Resolution))
	}
	if _, err := scene.ParseColor(c.Editor.Background); err != nil {
		errs = append(errs, fmt.Errorf("editor.background: %w", err))
	}
	if c.Editor.NudgeFast < 1 {
		errs = append(errs, fmt.Errorf("editor.nudge_fast %d must be at least 1", c.Editor.NudgeFast))
	}
	errs = append(errs, sharedKeys("animator.bindings", c.Animator.Bindings)...)
	errs = append(errs, sharedKeys("editor.bindings", c.Editor.Bindings)...)
	return errors.Join(errs...)
}

// sharedKeys reports every key name bound to more than one command.
func sharedKeys(field string, bindings map[string]string) []error {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	seen := make(map[string]string, len(bindings))
	var errs []error
	for _, name := range names {
		key := keyName(bindings[name])
		if prev, ok := seen[key]; ok {
			errs = append(errs, fmt.Errorf("%s: %s and %s share key %s", field, prev, name, bindings[name]))
			continue
		}
		seen[key] = name
	}
	return errs
}

func keyName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) > 3 && strings.HasPrefix(s, "key") {
		s = s[3:]
	}
	return s
}
