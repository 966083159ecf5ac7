package settings

// InstanceKind tells the formatting pane whether a property takes a constant,
// a rule, or either.
type InstanceKind int

const (
	KindConstant       InstanceKind = 1
	KindRule           InstanceKind = 2
	KindConstantOrRule InstanceKind = 3
)

func (k InstanceKind) String() string {
	switch k {
	case KindConstant:
		return "Constant"
	case KindRule:
		return "Rule"
	case KindConstantOrRule:
		return "ConstantOrRule"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the kind by name for yaml and json output.
func (k InstanceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// NumberRange bounds a numeric property.
type NumberRange struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// ValidValues describes the accepted input of one property.
type ValidValues struct {
	NumberRange NumberRange `yaml:"numberRange" json:"numberRange"`
}

// ObjectInstance is one entry of the formatting pane enumeration.
type ObjectInstance struct {
	ObjectName           string                  `yaml:"objectName" json:"objectName"`
	DisplayName          string                  `yaml:"displayName" json:"displayName"`
	Properties           map[string]any          `yaml:"properties" json:"properties"`
	PropertyInstanceKind map[string]InstanceKind `yaml:"propertyInstanceKind" json:"propertyInstanceKind"`
	ValidValues          map[string]ValidValues  `yaml:"validValues" json:"validValues"`
	Selector             any                     `yaml:"selector" json:"selector"`
}

// ruleColors lists the color properties that support conditional formatting.
var ruleColors = []string{
	PropFontColor,
	PropBackgroundColor,
	PropOuterLineColor,
	PropInnerLineColor,
}

// validRanges are the numeric bounds shown by the formatting pane.
var validRanges = map[string]NumberRange{
	PropOuterLineWidth:     {Min: 1, Max: 100},
	PropInnerLineWidth:     {Min: 1, Max: 100},
	PropAmendmentSize:      {Min: 1, Max: 100},
	PropFontSize:           {Min: 1, Max: 100},
	PropValueDecimalPlaces: {Min: 0, Max: 10},
}

// Range returns the valid range of prop, if it has one.
func Range(prop string) (NumberRange, bool) {
	r, ok := validRanges[prop]
	return r, ok
}

// EnumerateObjectInstances lists the configurable properties of objectName
// with their current values in d. Unknown object names yield an empty list.
func EnumerateObjectInstances(d Donut, objectName string) []ObjectInstance {
	instances := []ObjectInstance{}
	if objectName != ObjectName {
		return instances
	}

	kinds := make(map[string]InstanceKind, len(ruleColors))
	for _, p := range ruleColors {
		kinds[p] = KindConstantOrRule
	}
	valid := make(map[string]ValidValues, len(validRanges))
	for p, r := range validRanges {
		valid[p] = ValidValues{NumberRange: r}
	}

	return append(instances, ObjectInstance{
		ObjectName:           objectName,
		DisplayName:          objectName,
		Properties:           map[string]any(d.Object()),
		PropertyInstanceKind: kinds,
		ValidValues:          valid,
	})
}
