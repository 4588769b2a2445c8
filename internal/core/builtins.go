package core

import (
	"bufio"
	"fmt"
	"io"

	"github.com/funvibe/palang/internal/config"
	"github.com/funvibe/palang/internal/diagnostics"
)

// Intrinsics are the functions every program starts with. They read and
// write through the streams given to NewIntrinsics.
type Intrinsics struct {
	in  *bufio.Reader
	out io.Writer
}

func NewIntrinsics(in io.Reader, out io.Writer) *Intrinsics {
	return &Intrinsics{in: bufio.NewReader(in), out: out}
}

// Globals returns a fresh dictionary binding every intrinsic name, plus nil.
func (b *Intrinsics) Globals() *Dictionary {
	d := NewDictionary()
	d.Set(config.PrintFuncName, NewFunction(config.PrintFuncName, b.print))
	d.Set(config.RangeFuncName, NewFunction(config.RangeFuncName, builtinRange))
	d.Set(config.InputFuncName, NewFunction(config.InputFuncName, b.input))
	d.Set(config.LenFuncName, NewFunction(config.LenFuncName, builtinLen))
	d.Set(config.NilName, NIL)
	return d
}

// print(value...) writes each argument's textual form with no separator
// and no trailing newline. Only nil, integers, floats and strings print.
func (b *Intrinsics) print(args *List, kwargs *Dictionary, this Value) (Value, error) {
	for _, msg := range args.Elements {
		var text string
		switch m := msg.(type) {
		case *Nil:
			text = "nil"
		case *Integer:
			text = fmt.Sprintf("%d", m.Value)
		case *Float:
			text = fmt.Sprintf("%f", m.Value)
		case *String:
			text = m.Value
		default:
			return nil, diagnostics.NewError(diagnostics.ErrR001,
				"print() cannot print the value. (Type:%s)", msg.Type())
		}
		if _, err := io.WriteString(b.out, text); err != nil {
			return nil, diagnostics.Wrap(diagnostics.ErrR009, err, "print() failed to write.")
		}
	}
	return NIL, nil
}

// input() reads one integer from standard input.
func (b *Intrinsics) input(args *List, kwargs *Dictionary, this Value) (Value, error) {
	var n int64
	if _, err := fmt.Fscan(b.in, &n); err != nil {
		return nil, diagnostics.Wrap(diagnostics.ErrR009, err, "input() could not read an integer.")
	}
	return NewInteger(n), nil
}

// range(start, end, step=1) lists the integers from start to end inclusive.
func builtinRange(args *List, kwargs *Dictionary, this Value) (Value, error) {
	start, err := Argument(args, kwargs, 0, "start", NIL)
	if err != nil {
		return nil, err
	}
	end, err := Argument(args, kwargs, 1, "end", NIL)
	if err != nil {
		return nil, err
	}
	step, err := Argument(args, kwargs, 2, "step", NewInteger(1))
	if err != nil {
		return nil, err
	}

	s, ok1 := start.(*Integer)
	e, ok2 := end.(*Integer)
	st, ok3 := step.(*Integer)
	if !ok1 || !ok2 || !ok3 {
		return nil, diagnostics.TypeMismatch(config.RangeFuncName)
	}
	if st.Value <= 0 {
		return nil, diagnostics.NewError(diagnostics.ErrR004, "step must be positive.")
	}

	l := NewList()
	for i := s.Value; i <= e.Value; i += st.Value {
		l.Append(NewInteger(i))
		// end-i cannot overflow as uint64 while i <= end
		if uint64(e.Value-i) < uint64(st.Value) {
			break
		}
	}
	return l, nil
}

// len(object) is the length operator as a free function.
func builtinLen(args *List, kwargs *Dictionary, this Value) (Value, error) {
	o, err := Argument(args, kwargs, 0, "object", NIL)
	if err != nil {
		return nil, err
	}
	return Length(o)
}
