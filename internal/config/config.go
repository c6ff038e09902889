// Package config holds the knobs of a mesh build: which regions to leave
// out, which regions to inset (rescale and move), the antimeridian wrap
// threshold and the triangulator to use. Configurations are YAML files
// layered over Default.
package config

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/irfansharif/cartomesh/internal/geom"
	"github.com/irfansharif/cartomesh/internal/mesh"
	"github.com/irfansharif/cartomesh/internal/triangulate"
)

// Inset rescales one region about its bounding-box centre and then moves it.
type Inset struct {
	Region string     `yaml:"region"`
	Scale  float64    `yaml:"scale"`
	Offset [2]float64 `yaml:"offset"`
}

// OffsetPoint returns the inset's offset as a point.
func (in Inset) OffsetPoint() geom.Point { return geom.MakePoint(in.Offset[0], in.Offset[1]) }

// Config describes one mesh build. Zero-valued fields mean their Default
// value (see WithDefaults); a zero WrapThreshold is therefore
// mesh.DefaultWrapThreshold, and wraparound is turned off with +Inf (.inf in
// YAML).
type Config struct {
	Exclude       []string `yaml:"exclude"`        // region names left out of the mesh
	Insets        []Inset  `yaml:"insets"`         // applied in order, after wraparound
	WrapThreshold float64  `yaml:"wrap_threshold"` // x above this moves 360° west
	Triangulator  string   `yaml:"triangulator"`   // earclip or earcut
	Workers       int      `yaml:"workers"`        // concurrent region triangulations, 0 for no limit
	NameField     string   `yaml:"name_field"`     // attribute holding the region name
}

// Default returns a configuration with no exclusions and no insets.
func Default() Config {
	return Config{
		WrapThreshold: mesh.DefaultWrapThreshold,
		Triangulator:  "earclip",
		Workers:       runtime.GOMAXPROCS(0),
		NameField:     "NAME",
	}
}

// WithDefaults returns c with its zero-valued threshold, triangulator and
// name field filled in from Default.
func (c Config) WithDefaults() Config {
	d := Default()
	if c.WrapThreshold == 0 {
		c.WrapThreshold = d.WrapThreshold
	}
	if c.Triangulator == "" {
		c.Triangulator = d.Triangulator
	}
	if c.NameField == "" {
		c.NameField = d.NameField
	}
	return c
}

// USStates returns the settings for the census 1:20m state boundaries: the
// District of Columbia and Puerto Rico are dropped, Alaska is shrunk and moved
// south-east and Hawaii is moved next to the lower 48.
func USStates() Config {
	c := Default()
	c.Exclude = []string{"District of Columbia", "Puerto Rico"}
	c.Insets = []Inset{
		{Region: "Alaska", Scale: 0.4, Offset: [2]float64{20, -20}},
		{Region: "Hawaii", Scale: 1.0, Offset: [2]float64{25, 15}},
	}
	return c
}

// Preset returns a named configuration.
func Preset(name string) (Config, error) {
	switch name {
	case "", "default":
		return Default(), nil
	case "us-states":
		return USStates(), nil
	default:
		return Config{}, fmt.Errorf("unknown preset %q (want default or us-states)", name)
	}
}

// Load reads a YAML configuration from path, layered over base.
func Load(path string, base Config) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	c, err := Decode(f, base)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Decode reads a YAML configuration, layered over base. Unknown keys are
// rejected.
func Decode(r io.Reader, base Config) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, err
	}
	c := base
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&c); err != nil {
			return Config{}, fmt.Errorf("decoding config: %w", err)
		}
	}
	c = c.WithDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the configuration for values the pipeline cannot use.
func (c Config) Validate() error {
	if _, err := triangulate.ByName(c.Triangulator); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if math.IsNaN(c.WrapThreshold) {
		return fmt.Errorf("wrap_threshold must be a number")
	}
	excluded := c.ExcludeSet()
	seen := make(map[string]bool, len(c.Insets))
	for i, in := range c.Insets {
		switch {
		case in.Region == "":
			return fmt.Errorf("inset %d: missing region name", i)
		case seen[in.Region]:
			return fmt.Errorf("inset %d: region %q listed twice", i, in.Region)
		case excluded[in.Region]:
			return fmt.Errorf("inset %d: region %q is excluded", i, in.Region)
		case !(in.Scale > 0) || math.IsInf(in.Scale, 0):
			return fmt.Errorf("inset %d (%s): scale must be positive and finite, got %v", i, in.Region, in.Scale)
		}
		for _, o := range in.Offset {
			if math.IsNaN(o) || math.IsInf(o, 0) {
				return fmt.Errorf("inset %d (%s): offset must be finite, got %v", i, in.Region, in.Offset)
			}
		}
		seen[in.Region] = true
	}
	return nil
}

// ExcludeSet returns the excluded region names as a set.
func (c Config) ExcludeSet() map[string]bool {
	set := make(map[string]bool, len(c.Exclude))
	for _, name := range c.Exclude {
		set[name] = true
	}
	return set
}
