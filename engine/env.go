package engine

import (
	"maps"
	"strconv"
)

type ValueKind int

const (
	IntValue ValueKind = iota
	StringValue
)

// Value is what a variable can hold: an integer or a string.
type Value struct {
	Kind ValueKind
	Int  int64
	Str  string
}

func Int(n int64) Value  { return Value{Kind: IntValue, Int: n} }
func Str(s string) Value { return Value{Kind: StringValue, Str: s} }

// String renders the value the way print shows it.
func (v Value) String() string {
	if v.Kind == StringValue {
		return v.Str
	}
	return strconv.FormatInt(v.Int, 10)
}

// Literal renders the value as source text.
func (v Value) Literal() string {
	if v.Kind == StringValue {
		return "'" + v.Str + "'"
	}
	return strconv.FormatInt(v.Int, 10)
}

// Env is the variable environment shared by every command of one run.
type Env struct {
	vars map[string]Value
}

func NewEnv() *Env {
	return &Env{vars: make(map[string]Value)}
}

func (e *Env) Get(name string) (Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

func (e *Env) Set(name string, v Value) {
	e.vars[name] = v
}

func (e *Env) Len() int { return len(e.vars) }

// Snapshot returns a copy of the current bindings.
func (e *Env) Snapshot() map[string]Value {
	return maps.Clone(e.vars)
}
