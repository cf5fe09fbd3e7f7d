package entity

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// PlaceholderPosition is where a collection shows its add-new placeholder.
type PlaceholderPosition int

const (
	PlaceholderNone PlaceholderPosition = iota
	PlaceholderAtBeginning
	PlaceholderAtEnd
)

var placeholderNames = map[PlaceholderPosition]string{
	PlaceholderNone:        "none",
	PlaceholderAtBeginning: "beginning",
	PlaceholderAtEnd:       "end",
}

func (pos PlaceholderPosition) String() string {
	return placeholderNames[pos]
}

// UnmarshalYAML reads the position by name.
func (pos *PlaceholderPosition) UnmarshalYAML(node *yaml.Node) (err error) {

	for val, name := range placeholderNames {
		if node.Value == name {
			*pos = val
			return
		}
	}
	return errors.Errorf("unknown placeholder position %q", node.Value)
}

// MarshalYAML writes the position by name.
func (pos PlaceholderPosition) MarshalYAML() (any, error) {
	return pos.String(), nil
}
