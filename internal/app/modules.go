package app

import (
	"github.com/specialistvlad/flowgridgo/internal/nodetype"
	"github.com/specialistvlad/flowgridgo/modules/branch"
	"github.com/specialistvlad/flowgridgo/modules/counter"
	"github.com/specialistvlad/flowgridgo/modules/finish"
	"github.com/specialistvlad/flowgridgo/modules/predicate"
	"github.com/specialistvlad/flowgridgo/modules/print"
	"github.com/specialistvlad/flowgridgo/modules/script"
	"github.com/specialistvlad/flowgridgo/modules/sequence"
	"github.com/specialistvlad/flowgridgo/modules/start"
	"github.com/specialistvlad/flowgridgo/modules/trace"
)

// coreModules returns every node type module compiled into the flowgridgo
// binary. Print writes to the application's output.
func (a *App) coreModules() []nodetype.Module {
	return []nodetype.Module{
		&start.Module{},
		&finish.Module{},
		&print.Module{Out: a.outW},
		&branch.Module{},
		&predicate.Module{},
		&sequence.Module{},
		&counter.Module{},
		&script.Module{},
		&trace.Module{},
	}
}
