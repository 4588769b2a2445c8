package core

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Nil is the absent value. There is exactly one, NIL, so identity checks
// are sound.
type Nil struct{}

// NIL is the process-wide Nil singleton.
var NIL = &Nil{}

func (n *Nil) Type() ValueType { return NIL_VALUE }
func (n *Nil) Inspect() string  { return "nil" }

// Boolean
type Boolean struct {
	Value bool
}

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

// NewBoolean returns the shared TRUE or FALSE.
func NewBoolean(v bool) *Boolean {
	if v {
		return TRUE
	}
	return FALSE
}

func (b *Boolean) Type() ValueType { return BOOLEAN_VALUE }
func (b *Boolean) Inspect() string  { return strconv.FormatBool(b.Value) }

// Integer is a 64-bit signed integer.
type Integer struct {
	Value int64
}

func NewInteger(v int64) *Integer { return &Integer{Value: v} }

func (i *Integer) Type() ValueType { return INTEGER_VALUE }
func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }

// Float is a 64-bit float. It never mixes with Integer in operators.
type Float struct {
	Value float64
}

func NewFloat(v float64) *Float { return &Float{Value: v} }

func (f *Float) Type() ValueType { return FLOAT_VALUE }
func (f *Float) Inspect() string  { return fmt.Sprintf("%f", f.Value) }

// String holds UTF-8 text. Indexing and length count characters (runes).
type String struct {
	Value string
}

func NewString(v string) *String { return &String{Value: v} }

func (s *String) Type() ValueType { return STRING_VALUE }
func (s *String) Inspect() string  { return strconv.Quote(s.Value) }

// Len returns the number of characters.
func (s *String) Len() int { return utf8.RuneCountInString(s.Value) }

// At returns the i-th character, or false when i is outside [0, Len()).
func (s *String) At(i int64) (string, bool) {
	if i < 0 {
		return "", false
	}
	var n int64
	for _, r := range s.Value {
		if n == i {
			return string(r), true
		}
		n++
	}
	return "", false
}
