package engine

import (
	"fmt"
	"io"
	"os"
)

// Report is what one Execute call leaves behind.
type Report struct {
	// Trace holds every command that was started, in order.
	Trace []string
	// Output holds the lines produced by print instructions.
	Output []string
	// Variables is the final environment.
	Variables map[string]Value
}

// Engine runs command sequences strictly in order against a fresh Env.
type Engine struct {
	out     io.Writer
	tracked []string
}

// New returns an engine writing its console trace to out (os.Stdout when nil).
// After every run the final value of each tracked name that was bound is reported.
func New(out io.Writer, tracked ...string) *Engine {
	if out == nil {
		out = os.Stdout
	}
	return &Engine{out: out, tracked: tracked}
}

// Execute parses and runs each command. The first command that cannot be
// parsed or evaluated aborts the run; the partial report is returned with the error.
func (e *Engine) Execute(commands []string) (*Report, error) {
	env := NewEnv()
	rep := &Report{Trace: make([]string, 0, len(commands))}

	for i, cmd := range commands {
		fmt.Fprintln(e.out, "Running:", cmd)
		rep.Trace = append(rep.Trace, cmd)

		inst, err := Parse(cmd)
		if err == nil {
			err = e.exec(inst, env, rep)
		}
		if err != nil {
			rep.Variables = env.Snapshot()
			return rep, fmt.Errorf("command %d %q: %w", i, cmd, err)
		}
	}

	rep.Variables = env.Snapshot()
	for _, name := range e.tracked {
		if v, ok := env.Get(name); ok {
			fmt.Fprintf(e.out, "Variable %s = %s\n", name, v)
		}
	}
	return rep, nil
}

func (e *Engine) exec(inst Instruction, env *Env, rep *Report) error {
	switch in := inst.(type) {
	case Print:
		line := ""
		if in.Arg != nil {
			v, err := resolve(*in.Arg, env)
			if err != nil {
				return err
			}
			line = v.String()
		}
		fmt.Fprintln(e.out, line)
		rep.Output = append(rep.Output, line)
	case Assign:
		v, err := resolve(in.Value, env)
		if err != nil {
			return err
		}
		env.Set(in.Name, v)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownInstruction, inst)
	}
	return nil
}

func resolve(op Operand, env *Env) (Value, error) {
	if op.Ref == "" {
		return op.Literal, nil
	}
	v, ok := env.Get(op.Ref)
	if !ok {
		return Value{}, fmt.Errorf("%w: %s", ErrUndefinedVariable, op.Ref)
	}
	return v, nil
}
