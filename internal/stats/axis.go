package stats

import (
	"errors"
	"fmt"
)

// Axis selects the category dimension counts are grouped by.
type Axis int

const (
	AxisOperator Axis = iota
	AxisTrim
	AxisCarpetType
	AxisCarpetColour
	AxisSource
)

var ErrUnknownAxis = errors.New("unknown analysis type")

type axisDef struct {
	name     string
	label    string
	value    func(Record) string
	universe func(*Dataset) []string
}

var axisDefs = [...]axisDef{
	AxisOperator: {
		name:  "operator",
		label: "Operator",
		value: func(r Record) string {
			if r.OperatorName == "" {
				return NotAvailable
			}
			return r.OperatorName
		},
		universe: func(d *Dataset) []string { return d.Operators },
	},
	AxisTrim: {
		name:     "trim",
		label:    "Trim",
		value:    func(r Record) string { return r.Trim },
		universe: func(d *Dataset) []string { return d.Trims },
	},
	AxisCarpetType: {
		name:     "carpetType",
		label:    "Carpet Type",
		value:    func(r Record) string { return r.CarpetType },
		universe: func(d *Dataset) []string { return d.CarpetTypes },
	},
	AxisCarpetColour: {
		name:     "carpetColour",
		label:    "Carpet Colour",
		value:    func(r Record) string { return r.CarpetColour },
		universe: func(d *Dataset) []string { return d.CarpetColours },
	},
	AxisSource: {
		name:     "source",
		label:    "Sales Channel",
		value:    func(r Record) string { return r.SourceGroup },
		universe: func(d *Dataset) []string { return d.Sources },
	},
}

// Axes lists every axis in display order.
func Axes() []Axis {
	return []Axis{AxisOperator, AxisTrim, AxisCarpetType, AxisCarpetColour, AxisSource}
}

// AxisNames lists the wire names of every axis.
func AxisNames() []string {
	names := make([]string, len(axisDefs))
	for i, s := range axisDefs {
		names[i] = s.name
	}
	return names
}

// ParseAxis resolves a wire name such as "carpetColour".
func ParseAxis(name string) (Axis, error) {
	for i, s := range axisDefs {
		if s.name == name {
			return Axis(i), nil
		}
	}
	return AxisOperator, fmt.Errorf("%w: %q", ErrUnknownAxis, name)
}

func (a Axis) def() axisDef {
	if a < 0 || int(a) >= len(axisDefs) {
		return axisDefs[AxisOperator]
	}
	return axisDefs[a]
}

// String returns the wire name.
func (a Axis) String() string { return a.def().name }

// Label returns the chart axis caption.
func (a Axis) Label() string { return a.def().label }

// Value extracts the category value of a record along this axis.
func (a Axis) Value(r Record) string { return a.def().value(r) }

// Categories returns the dataset's category universe for this axis.
func (a Axis) Categories(d *Dataset) []string {
	if d == nil {
		return nil
	}
	return a.def().universe(d)
}

// Next cycles to the following axis.
func (a Axis) Next() Axis {
	return Axis((int(a) + 1) % len(axisDefs))
}

func (a Axis) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Axis) UnmarshalText(b []byte) error {
	v, err := ParseAxis(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
