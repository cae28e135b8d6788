package parse

import (
	"fmt"

	"github.com/dekarrin/fishtap/automaton"
)

// runReduction drives builder through one production's entire reduction: a
// ReductionPrepare, then one builder call per bytecode instruction in order,
// finishing with Reduce. It is the reduction bytecode interpreter (dispatch
// over automaton.OpKind), kept deliberately separate from the driver's main
// loop so the same bytecode can be replayed, side-effect-free, by the
// recovery simulator.
//
// When actions is nil, OpSemAction instructions are skipped rather than
// dispatched: this is how the simulator probes shift/reduce feasibility
// without invoking host semantic actions against throwaway placeholder
// nodes.
func runReduction(tables *automaton.Tables, b *Builder, actions []ActionFunc, prod automaton.Production) {
	b.ReductionPrepare(prod.ReductionLength)

	for _, instr := range prod.Bytecode {
		switch instr.Kind {
		case automaton.OpPopStack:
			b.ReductionPop(instr.TreeAction)
		case automaton.OpAddVirtual:
			var virtual int
			if instr.Operand >= 0 && instr.Operand < len(tables.Virtuals) {
				virtual = tables.Virtuals[instr.Operand]
			}
			b.ReductionVirtual(virtual, instr.TreeAction)
		case automaton.OpSemAction:
			if actions != nil && instr.Operand >= 0 && instr.Operand < len(actions) {
				b.ReductionSemantic(actions[instr.Operand])
			}
		default:
			panic(fmt.Sprintf("fishtap: malformed production bytecode: unknown opcode %d", instr.Kind))
		}
	}

	headSymbol := 0
	if prod.Head >= 0 && prod.Head < len(tables.Variables) {
		headSymbol = tables.Variables[prod.Head]
	}
	b.Reduce(headSymbol, prod.HeadAction)
}
