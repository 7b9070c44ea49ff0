// Package core implements the four selectable cycle-accounting models: dart
// (single-instruction functional), zeus (four-stage in-order pipeline), and
// kronos/atlas (out-of-order history-window replay, in its two blocking
// variants).
package core

import (
	"github.com/bassosimone/rv64sim/pkg/exception"
	"github.com/bassosimone/rv64sim/pkg/exec"
	"github.com/bassosimone/rv64sim/pkg/isa"
	"github.com/bassosimone/rv64sim/pkg/mem"
	"github.com/bassosimone/rv64sim/pkg/stats"
)

// Dart executes one instruction at a time, counting a cycle per instruction
// and classifying each as an ALU op or a mem op. It is the simplest of the
// four models and the direct functional reference the pipelined cores must
// agree with.
type Dart struct {
	Regs  [32]uint64
	PC    uint64
	Bus   *mem.Bus
	Stats stats.Stats
}

// NewDart returns a Dart core with image loaded into RAM at offset 0, the
// program counter at RAMBase, and x2 (the stack pointer convention) at
// RAMEnd.
func NewDart(image []byte) *Dart {
	d := &Dart{Bus: mem.NewBus(image), PC: mem.RAMBase}
	d.Regs[2] = mem.RAMEnd
	return d
}

// step fetches, decodes, and executes one instruction, returning any
// exception raised along the way.
func (d *Dart) step() *exception.Exception {
	word, ex := d.Bus.Load(d.PC, mem.B32)
	if ex != nil {
		return ex
	}
	instr, ex := isa.Decode(uint32(word))
	if ex != nil {
		return ex
	}
	resolved := exec.Read(instr, &d.Regs)
	if exec.IsLd(resolved) || exec.IsSt(resolved) {
		d.Stats.MemOps++
	} else {
		d.Stats.ALUOps++
	}
	d.Regs[0] = 0
	next, ex := exec.Write(resolved, d.PC, &d.Regs, d.Bus)
	d.Regs[0] = 0
	if ex != nil {
		return ex
	}
	d.PC = next
	return nil
}

// Execute runs until a fatal exception terminates the core, returning it.
func (d *Dart) Execute() *exception.Exception {
	for {
		d.Stats.Cycles++
		if ex := d.step(); ex != nil && ex.IsFatal() {
			return ex
		}
	}
}
