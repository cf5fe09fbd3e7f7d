package grid

import (
	"context"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	nt "grille/entity"
)

// Unit decides which store is authoritative for a gesture.
type Unit int

const (
	CellUnit Unit = iota
	FullRowUnit
	CellOrRowHeaderUnit
)

var unitNames = map[Unit]string{
	CellUnit:            "cell",
	FullRowUnit:         "full_row",
	CellOrRowHeaderUnit: "cell_or_row_header",
}

func (unit Unit) String() string {
	return unitNames[unit]
}

// UnmarshalYAML reads the unit by name.
func (unit *Unit) UnmarshalYAML(node *yaml.Node) (err error) {

	for val, name := range unitNames {
		if node.Value == name {
			*unit = val
			return
		}
	}
	return errors.Errorf("unknown selection unit %q", node.Value)
}

// MarshalYAML writes the unit by name.
func (unit Unit) MarshalYAML() (any, error) {
	return unit.String(), nil
}

// Mode limits how many units may be selected.
type Mode int

const (
	Extended Mode = iota
	Single
)

var modeNames = map[Mode]string{
	Extended: "extended",
	Single:   "single",
}

func (mode Mode) String() string {
	return modeNames[mode]
}

// UnmarshalYAML reads the mode by name.
func (mode *Mode) UnmarshalYAML(node *yaml.Node) (err error) {

	for val, name := range modeNames {
		if node.Value == name {
			*mode = val
			return
		}
	}
	return errors.Errorf("unknown selection mode %q", node.Value)
}

// MarshalYAML writes the mode by name.
func (mode Mode) MarshalYAML() (any, error) {
	return mode.String(), nil
}

const defaultRefreshRatio = 0.5

// Config is the yaml-facing part of a grid's settings.
type Config struct {
	Unit     Unit `yaml:"selection_unit"`
	Mode     Mode `yaml:"selection_mode"`
	ReadOnly bool `yaml:"read_only,omitempty"`
	// RefreshRatio is the share of materialized cells above which a selection change
	// repaints every materialized container instead of only the changed cells.
	RefreshRatio float64 `yaml:"refresh_ratio,omitempty"`
}

// Option configures a Grid.
type Option func(*Grid)

// WithConfig applies a loaded Config.
func WithConfig(cfg Config) Option {
	return func(g *Grid) {
		g.unit = cfg.Unit
		g.mode = cfg.Mode
		g.readOnly = cfg.ReadOnly
		if cfg.RefreshRatio > 0 {
			g.refreshRatio = cfg.RefreshRatio
		}
	}
}

// WithUnit sets the selection unit.
func WithUnit(unit Unit) Option {
	return func(g *Grid) { g.unit = unit }
}

// WithMode sets the selection mode.
func WithMode(mode Mode) Option {
	return func(g *Grid) { g.mode = mode }
}

// WithReadOnly disables editing for the whole grid.
func WithReadOnly(readOnly bool) Option {
	return func(g *Grid) { g.readOnly = readOnly }
}

// WithContainers attaches the virtualizing host.
func WithContainers(containers Containers) Option {
	return func(g *Grid) { g.containers = containers }
}

// WithLogger sets the logger and the context it logs with.
func WithLogger(ctx context.Context, lgr nt.Logger) Option {
	return func(g *Grid) {
		g.ctx = ctx
		g.logger = lgr
	}
}

// WithRefreshRatio overrides the repaint strategy threshold.
func WithRefreshRatio(ratio float64) Option {
	return func(g *Grid) {
		if ratio > 0 {
			g.refreshRatio = ratio
		}
	}
}
