package core

import (
	"github.com/bassosimone/rv64sim/pkg/exception"
	"github.com/bassosimone/rv64sim/pkg/exec"
	"github.com/bassosimone/rv64sim/pkg/isa"
	"github.com/bassosimone/rv64sim/pkg/mem"
	"github.com/bassosimone/rv64sim/pkg/stats"
)

// exLatch is the pending writeback: a destination register and the value to
// commit to it.
type exLatch struct {
	rd  uint64
	val uint64
}

// Zeus is the four-stage in-order pipeline: fetch, decode, execute/address,
// and a two-cycle load path (ld1 address-in-flight, ld2 data-in-flight). It
// shares the decoder and functional executor with Dart but reconstructs
// cycle-by-cycle timing instead of retiring one instruction per cycle.
//
// Pipeline latches hold the encoded 32-bit word, never a decoded value;
// decode happens where the word is consumed. The program counter advances
// once per cycle regardless of stalls, so branch and jump targets are
// computed against the advanced fetch pc, not the instruction's own address.
type Zeus struct {
	Regs  [32]uint64
	PC    uint64
	Bus   *mem.Bus
	Stats stats.Stats

	ifetch   *uint32
	idecode  *uint32
	ex       *exLatch
	branchPC *uint64
	ld1      *uint32
	ld2      *uint32
}

// NewZeus returns a Zeus core with image loaded into RAM, matching Dart's
// initial register and program-counter conventions.
func NewZeus(image []byte) *Zeus {
	z := &Zeus{Bus: mem.NewBus(image), PC: mem.RAMBase}
	z.Regs[2] = mem.RAMEnd
	return z
}

// aluOrJump computes a staged (rd, value) result for an ALU instruction or a
// jump, without committing it to the live register file — the pipeline's
// one-cycle writeback delay. For jumps it also returns the redirect target.
// exec.Write mutates its register array in place, so the effect runs against
// a value copy and only the (rd, value) pair survives.
func (z *Zeus) aluOrJump(instr isa.Instruction) (rd, val, next uint64) {
	scratch := z.Regs
	resolved := exec.Read(instr, &scratch)
	n, _ := exec.Write(resolved, z.PC, &scratch, z.Bus)
	rd, _ = exec.DstReg(instr)
	return rd, scratch[rd], n
}

// cycle runs one pipeline cycle in reverse stage order: writeback, execute,
// decode, fetch. Downstream latches free before upstream latches write, so a
// result committed in this cycle's writeback is visible to this cycle's
// execute. Returns the exception raised by a decode or bus access this cycle,
// if any.
func (z *Zeus) cycle() *exception.Exception {
	// 1. Writeback.
	if z.ex != nil {
		z.Regs[z.ex.rd] = z.ex.val
		z.ex = nil
	}
	if z.ld2 != nil {
		instr, ex := isa.Decode(*z.ld2)
		if ex != nil {
			return ex
		}
		resolved := exec.Read(instr, &z.Regs)
		if _, ex := exec.Write(resolved, z.PC, &z.Regs, z.Bus); ex != nil {
			return ex
		}
		z.ld2 = nil
	}
	if z.ld1 != nil && z.ld2 == nil {
		z.ld2 = z.ld1
		z.ld1 = nil
	}
	z.Regs[0] = 0
	if z.branchPC != nil {
		z.PC = *z.branchPC
		z.idecode = nil
		z.ifetch = nil
		z.branchPC = nil
	}

	// 2. Execute, only once idecode is occupied and both ex and ld1 are free.
	if z.idecode != nil && z.ex == nil && z.ld1 == nil {
		instr, ex := isa.Decode(*z.idecode)
		if ex != nil {
			return ex
		}
		switch {
		case exec.IsJmp(instr):
			rd, val, next := z.aluOrJump(instr)
			z.branchPC = &next
			z.ex = &exLatch{rd: rd, val: val}
			z.idecode = nil
		case exec.IsBr(instr):
			resolved := exec.Read(instr, &z.Regs)
			if exec.BranchTaken(resolved) {
				next := z.PC + resolved.Imm
				z.branchPC = &next
			}
			z.idecode = nil
		case exec.IsLd(instr):
			z.ld1 = z.idecode
			z.idecode = nil
			z.Stats.MemCycles++
		case exec.IsSt(instr):
			resolved := exec.Read(instr, &z.Regs)
			if _, ex := exec.Write(resolved, z.PC, &z.Regs, z.Bus); ex != nil {
				return ex
			}
			z.idecode = nil
			z.Stats.MemCycles++
		default:
			if z.stallOnLoadUse(instr) {
				z.Stats.StallCycles++
			} else {
				rd, val, _ := z.aluOrJump(instr)
				z.ex = &exLatch{rd: rd, val: val}
				z.idecode = nil
				z.Stats.ExecCycles++
			}
		}
	}

	// 3. Decode.
	if z.idecode == nil && z.ifetch != nil {
		z.idecode = z.ifetch
		z.ifetch = nil
	}

	// 4. Fetch.
	if z.ifetch == nil {
		word, ex := z.Bus.Load(z.PC, mem.B32)
		if ex != nil {
			return ex
		}
		w := uint32(word)
		z.ifetch = &w
	}

	z.PC += 4
	z.Stats.Cycles++
	return nil
}

// stallOnLoadUse reports whether instr reads the register a load in ld2 is
// about to write. The load's data arrives at the next writeback, so the
// dependent instruction must hold in idecode for one cycle.
func (z *Zeus) stallOnLoadUse(instr isa.Instruction) bool {
	if z.ld2 == nil {
		return false
	}
	ld, ex := isa.Decode(*z.ld2)
	if ex != nil {
		return false
	}
	ldRd, ok := exec.DstReg(ld)
	if !ok {
		return false
	}
	for _, src := range exec.SrcRegs(instr) {
		if src == ldRd {
			return true
		}
	}
	return false
}

// Execute runs cycles until a fatal exception terminates the core.
func (z *Zeus) Execute() *exception.Exception {
	for {
		z.Regs[0] = 0
		if ex := z.cycle(); ex != nil && ex.IsFatal() {
			return ex
		}
		z.Regs[0] = 0
	}
}
