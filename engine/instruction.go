package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Instruction is one of the closed set of statements the engine understands:
// Print or Assign.
type Instruction interface {
	fmt.Stringer
	instruction()
}

// Operand is either a literal value or a reference to a bound variable.
type Operand struct {
	Literal Value
	Ref     string // non-empty for variable references
}

func (o Operand) String() string {
	if o.Ref != "" {
		return o.Ref
	}
	return o.Literal.Literal()
}

// Print writes its argument as an output line. It never touches the
// environment.
type Print struct {
	Arg *Operand // nil prints an empty line
}

// Assign binds Name to Value in the environment.
type Assign struct {
	Name  string
	Value Operand
}

func (Print) instruction()  {}
func (Assign) instruction() {}

func (p Print) String() string {
	if p.Arg == nil {
		return "print()"
	}
	return "print(" + p.Arg.String() + ")"
}

func (a Assign) String() string {
	return a.Name + " = " + a.Value.String()
}

// Parse turns command text into an Instruction. Text that is neither a print
// call nor an assignment yields ErrUnknownInstruction.
func Parse(text string) (Instruction, error) {
	s := strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(s, "print("); ok {
		inner, ok := strings.CutSuffix(rest, ")")
		if !ok {
			return nil, fmt.Errorf("%w: unterminated print in %q", ErrUnknownInstruction, text)
		}
		inner = strings.TrimSpace(inner)
		if inner == "" {
			return Print{}, nil
		}
		op, err := parseOperand(inner)
		if err != nil {
			return nil, fmt.Errorf("%w in %q", err, text)
		}
		return Print{Arg: &op}, nil
	}

	name, value, found := strings.Cut(s, "=")
	if !found || strings.HasPrefix(value, "=") {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInstruction, text)
	}
	name = strings.TrimSpace(name)
	if !isIdentifier(name) {
		return nil, fmt.Errorf("%w: bad assignment target %q", ErrUnknownInstruction, name)
	}
	op, err := parseOperand(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("%w in %q", err, text)
	}
	return Assign{Name: name, Value: op}, nil
}

func parseOperand(s string) (Operand, error) {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		body := s[1 : len(s)-1]
		if strings.IndexByte(body, s[0]) >= 0 {
			return Operand{}, fmt.Errorf("%w: malformed string literal %s", ErrUnknownInstruction, s)
		}
		return Operand{Literal: Str(body)}, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Operand{Literal: Int(n)}, nil
	}
	if isIdentifier(s) {
		return Operand{Ref: s}, nil
	}
	return Operand{}, fmt.Errorf("%w: malformed operand %q", ErrUnknownInstruction, s)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
