package entity

// Column describes one displayed column, in display order.
type Column struct {
	Field    string `yaml:"field"`
	Width    int    `yaml:"width"`
	Format   string `yaml:"format,omitempty"`
	ReadOnly bool   `yaml:"read_only,omitempty"`
	Hidden   bool   `yaml:"hidden,omitempty"`
}

// Field is a column of the backing store as reported by its schema.
type Field struct {
	Name string
	Type string
}
