package table

import (
	"fmt"
)

// Kind is the declared type of a column. Values stored under a column must
// match its kind, otherwise Record validation fails with TypeMismatchError.
type Kind int

const (
	Any Kind = iota
	String
	Int
	Float
	Bool
)

func (k Kind) String() string {
	switch k {
	case Any:
		return "any"
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind returns the kind named by s ("string", "int", "float", "bool",
// "any").
func ParseKind(s string) (Kind, error) {
	switch s {
	case "any", "":
		return Any, nil
	case "string", "str":
		return String, nil
	case "int", "integer":
		return Int, nil
	case "float", "number":
		return Float, nil
	case "bool", "boolean":
		return Bool, nil
	}
	return Any, fmt.Errorf("unknown field kind '%s'", s)
}

// Check reports whether value is acceptable for the kind. Nil values are
// accepted for any kind, they represent an unset column.
func (k Kind) Check(value any) bool {
	if value == nil {
		return true
	}
	switch k {
	case Any:
		return true
	case String:
		_, ok := value.(string)
		return ok
	case Int:
		switch value.(type) {
		case int, int8, int16, int32, int64:
			return true
		}
		return false
	case Float:
		switch value.(type) {
		case float32, float64:
			return true
		}
		return false
	case Bool:
		_, ok := value.(bool)
		return ok
	}
	return false
}

// Field is a single column declaration. A table schema is an ordered list of
// fields, fixed at table creation time.
type Field struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Values carries a set of column changes by name, as accepted by
// Table.UpdateRow and Record.Update.
type Values map[string]any
