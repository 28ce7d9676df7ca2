// Package tool defines the static tool catalog: which tool ids exist, what
// inputs they take and which options they accept. The catalog is built once
// at startup and treated as read-only for the process lifetime.
package tool

// Arity describes how many input files a tool accepts.
type Arity int

const (
	// SingleFile tools operate on exactly one uploaded file.
	SingleFile Arity = iota
	// MultiFile tools operate on an ordered batch of files.
	MultiFile
)

// OptionType enumerates the value types an option may declare.
type OptionType int

const (
	String OptionType = iota
	Int
	Float
	Bool
	Enum
	JSON
)

func (t OptionType) String() string {
	switch t {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Enum:
		return "enum"
	case JSON:
		return "json"
	default:
		return "unknown"
	}
}

// OptionSpec declares one configuration field a tool accepts and how to
// validate and coerce it. Default must already be of the coerced Go type
// (string, int64, float64, bool, or any for JSON).
type OptionSpec struct {
	Name    string
	Type    OptionType
	Default any

	// Enum lists the allowed raw values for Enum options.
	Enum []string

	// Allowed, when set on an Int option, snaps any parsed value to the
	// nearest member instead of rejecting it. Ties round up.
	Allowed []int64

	// Min/Max, when set on Int or Float options, clamp the parsed value.
	Min, Max *float64

	// Aliases are historical form-field names resolved to Name.
	Aliases []string
}

// Descriptor is the static metadata for one tool.
type Descriptor struct {
	ID          string
	Title       string
	Category    string
	Description string
	Arity       Arity

	// MinInputs applies to MultiFile tools; zero means one file is enough.
	MinInputs int

	// Options is the ordered option schema.
	Options []OptionSpec
}

// MinFiles returns the smallest acceptable input count.
func (d Descriptor) MinFiles() int {
	if d.Arity == MultiFile && d.MinInputs > 1 {
		return d.MinInputs
	}
	return 1
}
