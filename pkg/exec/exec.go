// Package exec implements the two-step executor contract (read, then write)
// over a decoded isa.Instruction, plus the dependency query accessors the
// pipeline cores use to reconstruct cycle counts.
package exec

import (
	"github.com/bassosimone/rv64sim/pkg/exception"
	"github.com/bassosimone/rv64sim/pkg/isa"
	"github.com/bassosimone/rv64sim/pkg/mem"
)

// Read substitutes the 64-bit contents of the referenced registers into the
// instruction's source slots, returning a resolved copy where Rs1/Rs2 hold
// values instead of indices. Register 0 always reads as zero.
func Read(instr isa.Instruction, regs *[32]uint64) isa.Instruction {
	resolved := instr
	switch instr.Op {
	case isa.Lui, isa.Auipc, isa.Jal:
		// no register sources
	case isa.Jalr, isa.Lb, isa.Lh, isa.Lw, isa.Lbu, isa.Lhu,
		isa.Addi, isa.Slti, isa.Sltiu, isa.Xori, isa.Ori, isa.Andi,
		isa.Slli, isa.Srli, isa.Srai,
		isa.Lwu, isa.Ld, isa.Addiw, isa.Slliw, isa.Srliw, isa.Sraiw:
		resolved.Rs1 = regs[instr.Rs1]
	default:
		resolved.Rs1 = regs[instr.Rs1]
		resolved.Rs2 = regs[instr.Rs2]
	}
	return resolved
}

// Write computes the side effects of a resolved instruction: the destination
// register (if any), the bus access (if a load or store), and the next
// program counter. regs[0] must be re-zeroed by the caller both before and
// after Write, matching the re-zero-around-effect idiom every core shares.
func Write(instr isa.Instruction, pc uint64, regs *[32]uint64, bus *mem.Bus) (uint64, *exception.Exception) {
	next := pc + 4

	switch instr.Op {
	case isa.Lui:
		regs[instr.Rd] = instr.Imm
	case isa.Auipc:
		regs[instr.Rd] = pc + instr.Imm
	case isa.Jal:
		regs[instr.Rd] = pc + 4
		next = pc + instr.Imm
	case isa.Jalr:
		regs[instr.Rd] = pc + 4
		next = (instr.Rs1 + instr.Imm) &^ 1
	case isa.Beq:
		if instr.Rs1 == instr.Rs2 {
			next = pc + instr.Imm
		}
	case isa.Bne:
		if instr.Rs1 != instr.Rs2 {
			next = pc + instr.Imm
		}
	case isa.Blt:
		if int64(instr.Rs1) < int64(instr.Rs2) {
			next = pc + instr.Imm
		}
	case isa.Bge:
		if int64(instr.Rs1) >= int64(instr.Rs2) {
			next = pc + instr.Imm
		}
	case isa.Bltu:
		if instr.Rs1 < instr.Rs2 {
			next = pc + instr.Imm
		}
	case isa.Bgeu:
		if instr.Rs1 >= instr.Rs2 {
			next = pc + instr.Imm
		}
	case isa.Lb:
		addr := instr.Rs1 + instr.Imm
		v, ex := bus.Load(addr, mem.B8)
		if ex != nil {
			return 0, ex
		}
		regs[instr.Rd] = uint64(int64(int8(v)))
	case isa.Lh:
		addr := instr.Rs1 + instr.Imm
		v, ex := bus.Load(addr, mem.B16)
		if ex != nil {
			return 0, ex
		}
		regs[instr.Rd] = uint64(int64(int16(v)))
	case isa.Lw:
		addr := instr.Rs1 + instr.Imm
		v, ex := bus.Load(addr, mem.B32)
		if ex != nil {
			return 0, ex
		}
		regs[instr.Rd] = uint64(int64(int32(v)))
	case isa.Lbu:
		addr := instr.Rs1 + instr.Imm
		v, ex := bus.Load(addr, mem.B8)
		if ex != nil {
			return 0, ex
		}
		regs[instr.Rd] = v
	case isa.Lhu:
		addr := instr.Rs1 + instr.Imm
		v, ex := bus.Load(addr, mem.B16)
		if ex != nil {
			return 0, ex
		}
		regs[instr.Rd] = v
	case isa.Sb:
		addr := instr.Rs1 + instr.Imm
		if ex := bus.Store(addr, mem.B8, instr.Rs2&0xff); ex != nil {
			return 0, ex
		}
	case isa.Sh:
		addr := instr.Rs1 + instr.Imm
		if ex := bus.Store(addr, mem.B16, instr.Rs2&0xffff); ex != nil {
			return 0, ex
		}
	case isa.Sw:
		addr := instr.Rs1 + instr.Imm
		if ex := bus.Store(addr, mem.B32, instr.Rs2&0xffffffff); ex != nil {
			return 0, ex
		}
	case isa.Addi:
		regs[instr.Rd] = instr.Rs1 + instr.Imm
	case isa.Slti:
		regs[instr.Rd] = boolToReg(int64(instr.Rs1) < int64(instr.Imm))
	case isa.Sltiu:
		regs[instr.Rd] = boolToReg(instr.Rs1 < instr.Imm)
	case isa.Xori:
		regs[instr.Rd] = instr.Rs1 ^ instr.Imm
	case isa.Ori:
		regs[instr.Rd] = instr.Rs1 | instr.Imm
	case isa.Andi:
		regs[instr.Rd] = instr.Rs1 & instr.Imm
	case isa.Slli:
		regs[instr.Rd] = instr.Rs1 << (instr.Imm & 0x1f)
	case isa.Srli:
		regs[instr.Rd] = instr.Rs1 >> (instr.Imm & 0x1f)
	case isa.Srai:
		regs[instr.Rd] = uint64(int64(instr.Rs1) >> (instr.Imm & 0x1f))
	case isa.Add:
		regs[instr.Rd] = instr.Rs1 + instr.Rs2
	case isa.Sub:
		regs[instr.Rd] = instr.Rs1 - instr.Rs2
	case isa.Sll:
		regs[instr.Rd] = instr.Rs1 << (instr.Rs2 & 0x1f)
	case isa.Slt:
		regs[instr.Rd] = boolToReg(int64(instr.Rs1) < int64(instr.Rs2))
	case isa.Sltu:
		regs[instr.Rd] = boolToReg(instr.Rs1 < instr.Rs2)
	case isa.Xor:
		regs[instr.Rd] = instr.Rs1 ^ instr.Rs2
	case isa.Srl:
		regs[instr.Rd] = instr.Rs1 >> (instr.Rs2 & 0x1f)
	case isa.Sra:
		regs[instr.Rd] = uint64(int64(instr.Rs1) >> (instr.Rs2 & 0x1f))
	case isa.Or:
		regs[instr.Rd] = instr.Rs1 | instr.Rs2
	case isa.And:
		regs[instr.Rd] = instr.Rs1 & instr.Rs2

	case isa.Lwu:
		addr := instr.Rs1 + instr.Imm
		v, ex := bus.Load(addr, mem.B32)
		if ex != nil {
			return 0, ex
		}
		regs[instr.Rd] = v
	case isa.Ld:
		addr := instr.Rs1 + instr.Imm
		v, ex := bus.Load(addr, mem.B64)
		if ex != nil {
			return 0, ex
		}
		regs[instr.Rd] = v
	case isa.Sd:
		addr := instr.Rs1 + instr.Imm
		if ex := bus.Store(addr, mem.B64, instr.Rs2); ex != nil {
			return 0, ex
		}
	case isa.Addiw:
		regs[instr.Rd] = signExtend32(uint32(instr.Rs1 + instr.Imm))
	case isa.Slliw:
		regs[instr.Rd] = signExtend32(uint32(instr.Rs1) << (instr.Imm & 0x1f))
	case isa.Srliw:
		regs[instr.Rd] = signExtend32(uint32(instr.Rs1) >> (instr.Imm & 0x1f))
	case isa.Sraiw:
		regs[instr.Rd] = uint64(int32(uint32(instr.Rs1)) >> (instr.Imm & 0x1f))
	case isa.Addw:
		regs[instr.Rd] = signExtend32(uint32(instr.Rs1 + instr.Rs2))
	case isa.Subw:
		regs[instr.Rd] = signExtend32(uint32(instr.Rs1 - instr.Rs2))
	case isa.Sllw:
		regs[instr.Rd] = signExtend32(uint32(instr.Rs1) << (instr.Rs2 & 0x1f))
	case isa.Srlw:
		regs[instr.Rd] = signExtend32(uint32(instr.Rs1) >> (instr.Rs2 & 0x1f))
	case isa.Sraw:
		regs[instr.Rd] = uint64(int32(uint32(instr.Rs1)) >> (instr.Rs2 & 0x1f))
	}

	return next, nil
}

func boolToReg(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// signExtend32 sign-extends a 32-bit word into 64 bits.
func signExtend32(v uint32) uint64 {
	return uint64(int64(int32(v)))
}
