package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/hubastard/xpanel/engine/geom"
	"github.com/hubastard/xpanel/engine/window"
)

// Vec is a 2D value written either as [x, y] or as {x: .., y: ..}.
type Vec geom.Vec2

func (v *Vec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var xy []float64
		if err := node.Decode(&xy); err != nil {
			return err
		}
		if len(xy) != 2 {
			return fmt.Errorf("line %d: expected [x, y], got %d values", node.Line, len(xy))
		}
		*v = Vec{X: xy[0], Y: xy[1]}
		return nil
	case yaml.MappingNode:
		var m struct {
			X float64 `yaml:"x"`
			Y float64 `yaml:"y"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		*v = Vec{X: m.X, Y: m.Y}
		return nil
	}
	return fmt.Errorf("line %d: expected [x, y] or {x, y}", node.Line)
}

// WindowConfig describes one capture window.
type WindowConfig struct {
	Name    string `yaml:"name"`
	ID      string `yaml:"id"`
	Pos     Vec    `yaml:"pos"`
	Size    Vec    `yaml:"size"`
	Command string `yaml:"command"` // toggle command created for the window
	Key     string `yaml:"key"`     // single character running Command
}

type DisplayConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

// Config is the sandbox configuration file.
type Config struct {
	Assets     string         `yaml:"assets"`
	Output     string         `yaml:"output"`
	Display    DisplayConfig  `yaml:"display"`
	Capture    Vec            `yaml:"capture"`
	Scratchpad bool           `yaml:"scratchpad"`
	Windows    []WindowConfig `yaml:"windows"`
}

func DefaultConfig() *Config {
	return &Config{
		Assets: "assets",
		Output: "output",
		Display: DisplayConfig{
			Title:  "xpanel sandbox",
			Width:  1600,
			Height: 900,
			VSync:  true,
		},
		Capture:    Vec{X: 1024, Y: 768},
		Scratchpad: true,
		Windows: []WindowConfig{
			{Name: "PFD", ID: "pfd", Pos: Vec{X: 0, Y: 384}, Size: Vec{X: 512, Y: 384}, Command: "xpanel/pfd/toggle", Key: "1"},
			{Name: "ND", ID: "nd", Pos: Vec{X: 512, Y: 384}, Size: Vec{X: 512, Y: 384}, Command: "xpanel/nd/toggle", Key: "2"},
			{Name: "ECAM", ID: "ecam", Pos: Vec{X: 0, Y: 0}, Size: Vec{X: 1024, Y: 384}, Command: "xpanel/ecam/toggle", Key: "3"},
		},
	}
}

// LoadConfig reads path over the defaults. A missing file yields the
// defaults. Unknown keys are errors.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every window shows a region inside the capture canvas.
func (c *Config) Validate() error {
	if c.Capture.X < 1 || c.Capture.Y < 1 {
		return fmt.Errorf("capture size %vx%v must be positive", c.Capture.X, c.Capture.Y)
	}
	if c.Display.Width < 1 || c.Display.Height < 1 {
		return fmt.Errorf("display size %dx%d must be positive", c.Display.Width, c.Display.Height)
	}
	canvas := geom.FromPosSize(geom.Vec2{}, geom.Vec2(c.Capture))
	seen := map[string]bool{}
	keys := map[string]string{}
	for i, w := range c.Windows {
		if w.Name == "" {
			return fmt.Errorf("windows[%d]: missing name", i)
		}
		if w.Size.X <= 0 || w.Size.Y <= 0 {
			return fmt.Errorf("window %q: size must be positive", w.Name)
		}
		r := geom.FromPosSize(geom.Vec2(w.Pos), geom.Vec2(w.Size))
		if r.Left < canvas.Left || r.Bottom < canvas.Bottom || r.Right > canvas.Right || r.Top > canvas.Top {
			return fmt.Errorf("window %q: region %+v outside the capture canvas", w.Name, r)
		}
		id := w.ID
		if id == "" {
			id = window.DeriveID(w.Name)
		}
		if seen[id] {
			return fmt.Errorf("window %q: duplicate id %q", w.Name, id)
		}
		seen[id] = true
		if w.Key != "" {
			if utf8.RuneCountInString(w.Key) != 1 {
				return fmt.Errorf("window %q: key %q must be a single character", w.Name, w.Key)
			}
			if w.Command == "" {
				return fmt.Errorf("window %q: key %q needs a command", w.Name, w.Key)
			}
			if other, ok := keys[w.Key]; ok {
				return fmt.Errorf("window %q: key %q already used by %q", w.Name, w.Key, other)
			}
			keys[w.Key] = w.Name
		}
	}
	return nil
}

// KeyCommands maps bound characters to command names.
func (c *Config) KeyCommands() map[rune]string {
	out := map[rune]string{}
	for _, w := range c.Windows {
		if w.Key != "" {
			r, _ := utf8.DecodeRuneInString(w.Key)
			out[r] = w.Command
		}
	}
	return out
}
