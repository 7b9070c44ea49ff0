package core

import (
	"github.com/bassosimone/rv64sim/pkg/exception"
	"github.com/bassosimone/rv64sim/pkg/exec"
	"github.com/bassosimone/rv64sim/pkg/isa"
	"github.com/bassosimone/rv64sim/pkg/mem"
	"github.com/bassosimone/rv64sim/pkg/stats"
)

// Atlas is Kronos's counterpart: it shares the same functional execute loop
// and history-replay accounting phase, but tracks memory aliasing by address
// (so independent loads/stores may reorder) and instead treats only branches
// and jumps as blocking.
type Atlas struct {
	Regs  [32]uint64
	PC    uint64
	Bus   *mem.Bus
	Stats stats.Stats

	hist []histItem
}

// NewAtlas returns an Atlas core with image loaded into RAM.
func NewAtlas(image []byte) *Atlas {
	a := &Atlas{Bus: mem.NewBus(image), PC: mem.RAMBase}
	a.Regs[2] = mem.RAMEnd
	return a
}

func (a *Atlas) step() *exception.Exception {
	word, ex := a.Bus.Load(a.PC, mem.B32)
	if ex != nil {
		return ex
	}
	instr, ex := isa.Decode(uint32(word))
	if ex != nil {
		return ex
	}
	resolved := exec.Read(instr, &a.Regs)

	entry := histItem{srcRegs: exec.SrcRegs(instr), blocking: exec.IsBr(resolved) || exec.IsJmp(resolved)}
	if rd, ok := exec.DstReg(instr); ok {
		entry.dstReg = &rd
	}
	if addr, ok := exec.SrcMemAddr(resolved); ok {
		entry.srcMemAddr = &addr
	}
	if addr, ok := exec.DstMemAddr(resolved); ok {
		entry.dstMemAddr = &addr
	}

	if exec.IsLd(resolved) || exec.IsSt(resolved) {
		a.Stats.MemOps++
	} else {
		a.Stats.ALUOps++
	}
	a.Regs[0] = 0
	next, ex := exec.Write(resolved, a.PC, &a.Regs, a.Bus)
	a.Regs[0] = 0
	if ex != nil {
		return ex
	}
	a.PC = next
	a.hist = append(a.hist, entry)
	return nil
}

// Execute runs until a fatal exception terminates the core, then replays the
// recorded history to fill in Stats.Cycles and Stats.Stalls.
func (a *Atlas) Execute() *exception.Exception {
	for {
		if ex := a.step(); ex != nil && ex.IsFatal() {
			a.Stats.Cycles, a.Stats.Stalls = calcStats(a.hist)
			return ex
		}
	}
}
