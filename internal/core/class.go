package core

import (
	"fmt"
	"sort"
)

// Class holds default members and an operator table. The two are separate
// namespaces: a name may be bound in both without aliasing. Entries are
// only ever added or replaced.
type Class struct {
	Name      string
	members   map[string]Value
	operators map[string]*Function
}

func NewClass(name string) *Class {
	return &Class{
		Name:      name,
		members:   make(map[string]Value),
		operators: make(map[string]*Function),
	}
}

func (c *Class) Type() ValueType { return CLASS_VALUE }
func (c *Class) Inspect() string {
	if c.Name == "" {
		return "<class>"
	}
	return "<class " + c.Name + ">"
}

func (c *Class) SetMember(name string, v Value) {
	c.members[name] = orNil(v)
}

func (c *Class) Member(name string) (Value, bool) {
	v, ok := c.members[name]
	return v, ok
}

// SetOperator registers fn under an operator symbol or protocol name
// (constructor, getattr, setattr).
func (c *Class) SetOperator(name string, fn *Function) {
	c.operators[name] = fn
}

func (c *Class) Operator(name string) (*Function, bool) {
	fn, ok := c.operators[name]
	return fn, ok
}

func (c *Class) MemberNames() []string   { return sortedKeys(c.members) }
func (c *Class) OperatorNames() []string { return sortedKeys(c.operators) }

// Object is an instance bound to exactly one Class. The class is shared,
// never owned.
type Object struct {
	class   *Class
	members map[string]Value
}

// NewObject allocates an object of c without running its constructor.
// Use Construct for a class-call.
func NewObject(c *Class) *Object {
	return &Object{class: c, members: make(map[string]Value)}
}

func (o *Object) Type() ValueType { return OBJECT_VALUE }
func (o *Object) Inspect() string {
	return fmt.Sprintf("<%s object %p>", o.class.Name, o)
}

func (o *Object) Class() *Class { return o.class }

// OwnMember looks only at the object's own members.
func (o *Object) OwnMember(name string) (Value, bool) {
	v, ok := o.members[name]
	return v, ok
}

// Member resolves name on the object, then on its class. The boolean is
// false only when neither level binds the name; a member bound to nil is
// still present.
func (o *Object) Member(name string) (Value, bool) {
	if v, ok := o.members[name]; ok {
		return v, true
	}
	return o.class.Member(name)
}

func (o *Object) SetMember(name string, v Value) {
	o.members[name] = orNil(v)
}

func (o *Object) MemberNames() []string { return sortedKeys(o.members) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
