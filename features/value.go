package features

import "strconv"

type Kind uint8

const (
	Unknown Kind = iota
	Int
	String
	Bool
)

// Value is one slot of a feature vector. The zero Value is unknown.
type Value struct {
	Kind Kind
	I    int
	S    string
	B    bool
}

func IntValue(i int) Value       { return Value{Kind: Int, I: i} }
func StringValue(s string) Value { return Value{Kind: String, S: s} }
func BoolValue(b bool) Value     { return Value{Kind: Bool, B: b} }

func (v Value) Known() bool { return v.Kind != Unknown }

// Index returns the integer payload, if any.
func (v Value) Index() (int, bool) {
	if v.Kind != Int {
		return 0, false
	}
	return v.I, true
}

// String renders a known value; booleans as 1/0. Unknown renders as "".
func (v Value) String() string {
	switch v.Kind {
	case Int:
		return strconv.Itoa(v.I)
	case String:
		return v.S
	case Bool:
		if v.B {
			return "1"
		}
		return "0"
	}
	return ""
}
