package script

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
	"github.com/specialistvlad/flowgridgo/internal/node"
	"github.com/specialistvlad/flowgridgo/internal/pin"
)

// ErrNotBound is returned when a script calls back into a node before the
// engine handed it a Native handle.
var ErrNotBound = errors.New("script is not bound to a node")

// env is the per-evaluation expression environment.
type env struct {
	ctx    context.Context
	native node.Native
	logic  *Logic
	pin    string
	// failed keeps the last callback error so it survives the expression VM.
	failed error
}

func newEnv(ctx context.Context, native node.Native, logic *Logic, input string) *env {
	return &env{ctx: ctx, native: native, logic: logic, pin: input}
}

func (e *env) vars() map[string]any {
	return map[string]any{
		"pin":     e.pin,
		"trigger": e.trigger,
		"finish":  e.finish,
		"log":     e.log,
		"prop":    e.prop,
		"get":     e.get,
		"set":     e.set,
	}
}

// trigger(name, finish) fires an output of the node.
func (e *env) trigger(name string, finish bool) (bool, error) {
	if e.native == nil {
		return false, e.fail(ErrNotBound)
	}
	if err := e.native.TriggerOutput(e.ctx, pin.FromString(name), finish, pin.Default); err != nil {
		return false, e.fail(err)
	}
	return true, nil
}

// finish() ends the current activation.
func (e *env) finish() (bool, error) {
	if e.native == nil {
		return false, e.fail(ErrNotBound)
	}
	e.native.Finish(e.ctx)
	return true, nil
}

func (e *env) fail(err error) error {
	e.failed = err
	return err
}

func (e *env) log(msg any) bool {
	ctxlog.FromContext(e.ctx).Info(fmt.Sprint(msg), "source", "script")
	return true
}

func (e *env) prop(key string) any {
	if e.logic == nil {
		return nil
	}
	return e.logic.props[key]
}

func (e *env) get(key string) any {
	if e.logic == nil {
		return nil
	}
	return e.logic.store[key]
}

// set stores a value that survives across activations and returns it.
func (e *env) set(key string, value any) any {
	if e.logic != nil {
		e.logic.store[key] = value
	}
	return value
}
