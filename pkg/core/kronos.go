package core

import (
	"github.com/bassosimone/rv64sim/pkg/exception"
	"github.com/bassosimone/rv64sim/pkg/exec"
	"github.com/bassosimone/rv64sim/pkg/isa"
	"github.com/bassosimone/rv64sim/pkg/mem"
	"github.com/bassosimone/rv64sim/pkg/stats"
)

// Kronos executes functionally one instruction at a time, same as Dart, but
// additionally records a history entry per instruction. On a fatal exception
// it replays that history to reconstruct a cycle count, treating loads and
// stores as blocking (so two memory ops never reorder past each other, but
// aliasing between them is never tracked by address).
type Kronos struct {
	Regs  [32]uint64
	PC    uint64
	Bus   *mem.Bus
	Stats stats.Stats

	hist []histItem
}

// NewKronos returns a Kronos core with image loaded into RAM.
func NewKronos(image []byte) *Kronos {
	k := &Kronos{Bus: mem.NewBus(image), PC: mem.RAMBase}
	k.Regs[2] = mem.RAMEnd
	return k
}

func (k *Kronos) step() *exception.Exception {
	word, ex := k.Bus.Load(k.PC, mem.B32)
	if ex != nil {
		return ex
	}
	instr, ex := isa.Decode(uint32(word))
	if ex != nil {
		return ex
	}
	resolved := exec.Read(instr, &k.Regs)

	entry := histItem{srcRegs: exec.SrcRegs(instr), blocking: exec.IsLd(resolved) || exec.IsSt(resolved)}
	if rd, ok := exec.DstReg(instr); ok {
		entry.dstReg = &rd
	}

	if exec.IsLd(resolved) || exec.IsSt(resolved) {
		k.Stats.MemOps++
	} else {
		k.Stats.ALUOps++
	}
	k.Regs[0] = 0
	next, ex := exec.Write(resolved, k.PC, &k.Regs, k.Bus)
	k.Regs[0] = 0
	if ex != nil {
		return ex
	}
	k.PC = next
	k.hist = append(k.hist, entry)
	return nil
}

// Execute runs until a fatal exception terminates the core, then replays the
// recorded history to fill in Stats.Cycles and Stats.Stalls.
func (k *Kronos) Execute() *exception.Exception {
	for {
		if ex := k.step(); ex != nil && ex.IsFatal() {
			k.Stats.Cycles, k.Stats.Stalls = calcStats(k.hist)
			return ex
		}
	}
}
