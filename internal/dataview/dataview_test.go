package dataview

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasure(t *testing.T) {
	tests := []struct {
		name    string
		dv      *DataView
		want    float64
		wantErr bool
	}{
		{"nil view", nil, 0, true},
		{"no single", &DataView{Metadata: Metadata{Columns: []Column{{DisplayName: "A"}}}}, 0, true},
		{"no columns", &DataView{Single: &Single{Value: 0.5}}, 0, true},
		{"string value", &DataView{Metadata: Metadata{Columns: []Column{{DisplayName: "A"}}}, Single: &Single{Value: "x"}}, 0, true},
		{"int value", &DataView{Metadata: Metadata{Columns: []Column{{DisplayName: "A"}}}, Single: &Single{Value: 1}}, 1, false},
		{"float value", NewSingle("A", 0.25, nil), 0.25, false},
		{"nan value", NewSingle("A", math.NaN(), nil), 0, true},
		{"infinite value", NewSingle("A", math.Inf(1), nil), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, v, err := tt.dv.Measure()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoMeasure)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "A", name)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	const doc = `{
  "metadata": {
    "columns": [{"displayName": "Completion"}],
    "objects": {"donut": {"fontSize": 30, "outerLineColor": {"solid": {"color": "#ff0000"}}}}
  },
  "single": {"value": 0.4567}
}`
	dv, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	name, v, err := dv.Measure()
	require.NoError(t, err)
	assert.Equal(t, "Completion", name)
	assert.InDelta(t, 0.4567, v, 1e-12)

	size, ok := dv.Metadata.Objects.Property("donut", "fontSize")
	require.True(t, ok)
	assert.Equal(t, 30, size)

	_, ok = dv.Metadata.Objects.Property("donut", "missing")
	assert.False(t, ok)
	_, ok = dv.Metadata.Objects.Property("legend", "fontSize")
	assert.False(t, ok)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode(strings.NewReader("metadata: [unclosed"))
	assert.Error(t, err)
}

func TestDecodeNaNHasNoMeasure(t *testing.T) {
	dv, err := Decode(strings.NewReader("metadata:\n  columns:\n    - displayName: Sales\nsingle:\n  value: .nan\n"))
	require.NoError(t, err)

	_, _, err = dv.Measure()
	assert.ErrorIs(t, err, ErrNoMeasure)
}
