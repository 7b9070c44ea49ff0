package exec

import "github.com/bassosimone/rv64sim/pkg/isa"

var noRegSrc = map[isa.Op]bool{isa.Lui: true, isa.Auipc: true, isa.Jal: true}

var oneRegSrc = map[isa.Op]bool{
	isa.Jalr: true, isa.Lb: true, isa.Lh: true, isa.Lw: true, isa.Lbu: true, isa.Lhu: true,
	isa.Addi: true, isa.Slti: true, isa.Sltiu: true, isa.Xori: true, isa.Ori: true, isa.Andi: true,
	isa.Slli: true, isa.Srli: true, isa.Srai: true,
	isa.Lwu: true, isa.Ld: true, isa.Addiw: true, isa.Slliw: true, isa.Srliw: true, isa.Sraiw: true,
}

var hasDst = map[isa.Op]bool{
	isa.Lui: true, isa.Auipc: true, isa.Jal: true, isa.Jalr: true,
	isa.Lb: true, isa.Lh: true, isa.Lw: true, isa.Lbu: true, isa.Lhu: true,
	isa.Addi: true, isa.Slti: true, isa.Sltiu: true, isa.Xori: true, isa.Ori: true, isa.Andi: true,
	isa.Slli: true, isa.Srli: true, isa.Srai: true,
	isa.Add: true, isa.Sub: true, isa.Sll: true, isa.Slt: true, isa.Sltu: true,
	isa.Xor: true, isa.Srl: true, isa.Sra: true, isa.Or: true, isa.And: true,
	isa.Lwu: true, isa.Ld: true, isa.Addiw: true, isa.Slliw: true, isa.Srliw: true, isa.Sraiw: true,
	isa.Addw: true, isa.Subw: true, isa.Sllw: true, isa.Srlw: true, isa.Sraw: true,
}

var loadOps = map[isa.Op]bool{
	isa.Lb: true, isa.Lh: true, isa.Lw: true, isa.Lbu: true, isa.Lhu: true,
	isa.Lwu: true, isa.Ld: true,
}

var storeOps = map[isa.Op]bool{
	isa.Sb: true, isa.Sh: true, isa.Sw: true, isa.Sd: true,
}

var branchOps = map[isa.Op]bool{
	isa.Beq: true, isa.Bne: true, isa.Blt: true, isa.Bge: true, isa.Bltu: true, isa.Bgeu: true,
}

var jumpOps = map[isa.Op]bool{isa.Jal: true, isa.Jalr: true}

// SrcRegs returns the set of source register indices read by instr. It
// operates on the pre-Read (index) form.
func SrcRegs(instr isa.Instruction) []uint64 {
	switch {
	case noRegSrc[instr.Op]:
		return nil
	case oneRegSrc[instr.Op]:
		return []uint64{instr.Rs1}
	default:
		return []uint64{instr.Rs1, instr.Rs2}
	}
}

// DstReg returns instr's destination register index, or ok=false if instr
// writes no register.
func DstReg(instr isa.Instruction) (uint64, bool) {
	return instr.Rd, hasDst[instr.Op]
}

// SrcMemAddr returns the load address of a resolved load instruction (Rs1
// must already hold a value, i.e. instr must have passed through Read).
func SrcMemAddr(instr isa.Instruction) (uint64, bool) {
	if !loadOps[instr.Op] {
		return 0, false
	}
	return instr.Rs1 + instr.Imm, true
}

// DstMemAddr returns the store address of a resolved store instruction.
func DstMemAddr(instr isa.Instruction) (uint64, bool) {
	if !storeOps[instr.Op] {
		return 0, false
	}
	return instr.Rs1 + instr.Imm, true
}

// BranchTaken reports whether a resolved conditional branch's condition
// holds (Rs1/Rs2 must already hold values, i.e. instr must have passed
// through Read). False for anything that is not a branch.
func BranchTaken(instr isa.Instruction) bool {
	switch instr.Op {
	case isa.Beq:
		return instr.Rs1 == instr.Rs2
	case isa.Bne:
		return instr.Rs1 != instr.Rs2
	case isa.Blt:
		return int64(instr.Rs1) < int64(instr.Rs2)
	case isa.Bge:
		return int64(instr.Rs1) >= int64(instr.Rs2)
	case isa.Bltu:
		return instr.Rs1 < instr.Rs2
	case isa.Bgeu:
		return instr.Rs1 >= instr.Rs2
	}
	return false
}

// IsLd reports whether instr is a load.
func IsLd(instr isa.Instruction) bool { return loadOps[instr.Op] }

// IsSt reports whether instr is a store.
func IsSt(instr isa.Instruction) bool { return storeOps[instr.Op] }

// IsBr reports whether instr is a conditional branch.
func IsBr(instr isa.Instruction) bool { return branchOps[instr.Op] }

// IsJmp reports whether instr is an unconditional jump (JAL/JALR).
func IsJmp(instr isa.Instruction) bool { return jumpOps[instr.Op] }
