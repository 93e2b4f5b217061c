// Package script runs node logic written as expr-lang expressions. It is
// the external side of the node bridge: the engine hands each script the
// live node as its Native handle, and the expressions decide when to
// trigger outputs and finish.
//
// Three hooks may be scripted:
//
//	on_activate   evaluated when the node activates
//	on_input      evaluated for every input, with the pin bound to `pin`
//	on_cleanup    evaluated when the node finishes
//
// Expressions call back into the node through trigger, finish and log, read
// node properties with prop, and keep state across activations with get and
// set.
package script

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Hook names a scripted entry point.
type Hook string

const (
	OnActivate Hook = "on_activate"
	OnInput    Hook = "on_input"
	OnCleanup  Hook = "on_cleanup"
)

// Hooks lists every scriptable hook in evaluation order.
var Hooks = []Hook{OnActivate, OnInput, OnCleanup}

// Source holds the expression text per hook. Empty hooks are skipped.
type Source map[Hook]string

// Program is a compiled Source. It is immutable and may be shared by every
// node instance of the same graph.
type Program struct {
	programs map[Hook]*vm.Program
	source   Source
}

// Compile checks every hook expression against the script environment.
func Compile(src Source) (*Program, error) {
	p := &Program{programs: map[Hook]*vm.Program{}, source: src}
	template := newEnv(context.Background(), nil, nil, "").vars()
	for _, hook := range Hooks {
		text := src[hook]
		if text == "" {
			continue
		}
		prog, err := expr.Compile(text, expr.Env(template), expr.AsAny())
		if err != nil {
			return nil, &CompileError{Hook: hook, Expression: text, Err: err}
		}
		p.programs[hook] = prog
	}
	return p, nil
}

// Has reports whether hook has an expression.
func (p *Program) Has(hook Hook) bool {
	_, ok := p.programs[hook]
	return ok
}

func (p *Program) run(hook Hook, e *env) (any, error) {
	prog, ok := p.programs[hook]
	if !ok {
		return nil, nil
	}
	out, err := expr.Run(prog, e.vars())
	if err != nil {
		if e.failed != nil {
			err = fmt.Errorf("%v: %w", err, e.failed)
		}
		return nil, &RunError{Hook: hook, Expression: p.source[hook], Err: err}
	}
	return out, nil
}

// CompileError reports an expression that does not compile.
type CompileError struct {
	Hook       Hook
	Expression string
	Err        error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("script %s: compile %q: %v", e.Hook, e.Expression, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// RunError reports an expression that failed while running.
type RunError struct {
	Hook       Hook
	Expression string
	Err        error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("script %s: run %q: %v", e.Hook, e.Expression, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }
