// Package dataview models the table a host delivers with every update: the
// bound column metadata, the formatting objects and a single scalar value.
package dataview

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNoMeasure is returned by Measure when the view carries no finite
// numeric value.
var ErrNoMeasure = errors.New("dataview: no measure bound")

// DataView is the structured bundle handed over by the host.
type DataView struct {
	Metadata Metadata `yaml:"metadata" json:"metadata"`
	Single   *Single  `yaml:"single,omitempty" json:"single,omitempty"`
}

// Metadata holds the bound columns and the formatting objects.
type Metadata struct {
	Columns []Column `yaml:"columns" json:"columns"`
	Objects Objects  `yaml:"objects,omitempty" json:"objects,omitempty"`
}

// Column describes one bound field.
type Column struct {
	DisplayName string `yaml:"displayName" json:"displayName"`
	QueryName   string `yaml:"queryName,omitempty" json:"queryName,omitempty"`
}

// Single carries the scalar of a single-value view.
type Single struct {
	Value any `yaml:"value" json:"value"`
}

// Objects maps object names (e.g. "donut") to their property bags.
type Objects map[string]Object

// Object is one property bag of the formatting pane.
type Object map[string]any

// Property looks up objects[objectName][propertyName].
func (o Objects) Property(objectName, propertyName string) (any, bool) {
	if o == nil {
		return nil, false
	}
	obj, ok := o[objectName]
	if !ok || obj == nil {
		return nil, false
	}
	v, ok := obj[propertyName]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Measure returns the display name of the first column and the numeric
// single value.
func (dv *DataView) Measure() (string, float64, error) {
	if dv == nil || dv.Single == nil || len(dv.Metadata.Columns) == 0 {
		return "", 0, ErrNoMeasure
	}
	v, ok := ToFloat(dv.Single.Value)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return "", 0, ErrNoMeasure
	}
	return dv.Metadata.Columns[0].DisplayName, v, nil
}

// NewSingle builds a one-column view for value.
func NewSingle(displayName string, value float64, objects Objects) *DataView {
	return &DataView{
		Metadata: Metadata{
			Columns: []Column{{DisplayName: displayName}},
			Objects: objects,
		},
		Single: &Single{Value: value},
	}
}

// Decode reads a data view from YAML or JSON.
func Decode(r io.Reader) (*DataView, error) {
	var dv DataView
	if err := yaml.NewDecoder(r).Decode(&dv); err != nil {
		return nil, fmt.Errorf("decode data view: %w", err)
	}
	return &dv, nil
}

// LoadFile decodes the data view stored at path.
func LoadFile(path string) (*DataView, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// ToFloat converts the numeric kinds a decoder may produce to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
