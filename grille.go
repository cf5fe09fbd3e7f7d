// Package grille is a terminal table editor: a DuckDB-loaded table shown in a
// virtualized grid with cell and row selection and in-place row edits.
package grille

import (
	"github.com/pkg/errors"

	"grille/edible"
	nt "grille/entity"
	"grille/grid"
)

// Store specifies a backing datastore.
type Store interface {
	// Name returns the name of the data source
	Name() string
	// Fields returns the schema of the loaded table
	Fields() []nt.Field
	// Columns returns a column per field, used when none are configured
	Columns() []nt.Column
	// Collection reads rows for columns into an editable collection
	Collection(columns []nt.Column, opts ...edible.Option) (coll *edible.Collection, err error)
}

// Config is the application config.
type Config struct {
	DataFile    string                 `yaml:"data_file"`
	Table       string                 `yaml:"table"`
	LogPath     string                 `yaml:"log_path"`
	Placeholder nt.PlaceholderPosition `yaml:"placeholder"`
	Grid        grid.Config            `yaml:"grid"`
	Columns     []nt.Column            `yaml:"columns,omitempty"`
}

// Validate checks the required settings.
func (cfg *Config) Validate() (err error) {

	if cfg.DataFile == "" {
		return errors.New("data_file is required")
	}
	if cfg.Table == "" {
		cfg.Table = "grille"
	}
	if cfg.Grid.RefreshRatio < 0 {
		return errors.Errorf("refresh_ratio %v is negative", cfg.Grid.RefreshRatio)
	}
	return
}

// displayColumns returns the configured columns that are shown, or every field.
func displayColumns(cfg *Config, store Store) (columns []nt.Column) {

	configured := cfg.Columns
	if len(configured) == 0 {
		configured = store.Columns()
	}

	for _, col := range configured {
		if col.Hidden {
			continue
		}
		columns = append(columns, col)
	}
	return
}
