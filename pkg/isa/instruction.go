// Package isa implements the base integer instruction set (Rv32i) and its
// 64-bit width extension (Rv64i): field/immediate extraction and decode into
// the tagged Instruction value that package exec executes for every core.
package isa

import "github.com/bassosimone/rv64sim/pkg/exception"

// Op tags a decoded instruction's variant. The first block is the Rv32i
// family (37 variants); the second is the Rv64i family (12 variants).
type Op int

const (
	Lui Op = iota
	Auipc
	Jal
	Jalr
	Beq
	Bne
	Blt
	Bge
	Bltu
	Bgeu
	Lb
	Lh
	Lw
	Lbu
	Lhu
	Sb
	Sh
	Sw
	Addi
	Slti
	Sltiu
	Xori
	Ori
	Andi
	Slli
	Srli
	Srai
	Add
	Sub
	Sll
	Slt
	Sltu
	Xor
	Srl
	Sra
	Or
	And

	Lwu
	Ld
	Sd
	Addiw
	Slliw
	Srliw
	Sraiw
	Addw
	Subw
	Sllw
	Srlw
	Sraw
)

var mnemonics = map[Op]string{
	Lui: "lui", Auipc: "auipc", Jal: "jal", Jalr: "jalr",
	Beq: "beq", Bne: "bne", Blt: "blt", Bge: "bge", Bltu: "bltu", Bgeu: "bgeu",
	Lb: "lb", Lh: "lh", Lw: "lw", Lbu: "lbu", Lhu: "lhu",
	Sb: "sb", Sh: "sh", Sw: "sw",
	Addi: "addi", Slti: "slti", Sltiu: "sltiu", Xori: "xori", Ori: "ori", Andi: "andi",
	Slli: "slli", Srli: "srli", Srai: "srai",
	Add: "add", Sub: "sub", Sll: "sll", Slt: "slt", Sltu: "sltu",
	Xor: "xor", Srl: "srl", Sra: "sra", Or: "or", And: "and",
	Lwu: "lwu", Ld: "ld", Sd: "sd",
	Addiw: "addiw", Slliw: "slliw", Srliw: "srliw", Sraiw: "sraiw",
	Addw: "addw", Subw: "subw", Sllw: "sllw", Srlw: "srlw", Sraw: "sraw",
}

func (o Op) String() string {
	if s, ok := mnemonics[o]; ok {
		return s
	}
	return "unknown"
}

// Instruction is a tagged decoded variant. Rd, Rs1, Rs2 hold register indices
// (0..31) immediately after decode; a call to Read replaces Rs1 and Rs2 with
// the 64-bit values held in those registers at read time. The same struct
// serves both forms, so query accessors that need addresses must run after
// Read. Imm holds the sign-extended immediate, or (for the three
// shift-immediate families) the shift amount already masked to 5 bits.
type Instruction struct {
	Op  Op
	Rd  uint64
	Rs1 uint64
	Rs2 uint64
	Imm uint64
}

// Decode tries the base integer family first, then the 64-bit extension,
// returning IllegalInstruction if neither recognizes the word.
func Decode(ins uint32) (Instruction, *exception.Exception) {
	if instr, ok := decodeRv32i(ins); ok {
		return instr, nil
	}
	if instr, ok := decodeRv64i(ins); ok {
		return instr, nil
	}
	return Instruction{}, exception.New(exception.IllegalInstruction, uint64(ins))
}

func decodeRv32i(ins uint32) (Instruction, bool) {
	op, f3, f7 := opcode(ins), funct3(ins), funct7(ins)
	rdv, rs1v, rs2v := rd(ins), rs1(ins), rs2(ins)

	switch {
	case op == 0b0110111:
		return Instruction{Op: Lui, Rd: rdv, Imm: uImm(ins)}, true
	case op == 0b0010111:
		return Instruction{Op: Auipc, Rd: rdv, Imm: uImm(ins)}, true
	case op == 0b1101111:
		return Instruction{Op: Jal, Rd: rdv, Imm: jImm(ins)}, true
	case op == 0b1100111 && f3 == 0b000:
		return Instruction{Op: Jalr, Rd: rdv, Rs1: rs1v, Imm: iImm(ins)}, true
	case op == 0b1100011:
		imm := bImm(ins)
		switch f3 {
		case 0b000:
			return Instruction{Op: Beq, Rs1: rs1v, Rs2: rs2v, Imm: imm}, true
		case 0b001:
			return Instruction{Op: Bne, Rs1: rs1v, Rs2: rs2v, Imm: imm}, true
		case 0b100:
			return Instruction{Op: Blt, Rs1: rs1v, Rs2: rs2v, Imm: imm}, true
		case 0b101:
			return Instruction{Op: Bge, Rs1: rs1v, Rs2: rs2v, Imm: imm}, true
		case 0b110:
			return Instruction{Op: Bltu, Rs1: rs1v, Rs2: rs2v, Imm: imm}, true
		case 0b111:
			return Instruction{Op: Bgeu, Rs1: rs1v, Rs2: rs2v, Imm: imm}, true
		}
	case op == 0b0000011:
		imm := iImm(ins)
		switch f3 {
		case 0b000:
			return Instruction{Op: Lb, Rd: rdv, Rs1: rs1v, Imm: imm}, true
		case 0b001:
			return Instruction{Op: Lh, Rd: rdv, Rs1: rs1v, Imm: imm}, true
		case 0b010:
			return Instruction{Op: Lw, Rd: rdv, Rs1: rs1v, Imm: imm}, true
		case 0b100:
			return Instruction{Op: Lbu, Rd: rdv, Rs1: rs1v, Imm: imm}, true
		case 0b101:
			return Instruction{Op: Lhu, Rd: rdv, Rs1: rs1v, Imm: imm}, true
		}
	case op == 0b0100011:
		imm := sImm(ins)
		switch f3 {
		case 0b000:
			return Instruction{Op: Sb, Rs1: rs1v, Rs2: rs2v, Imm: imm}, true
		case 0b001:
			return Instruction{Op: Sh, Rs1: rs1v, Rs2: rs2v, Imm: imm}, true
		case 0b010:
			return Instruction{Op: Sw, Rs1: rs1v, Rs2: rs2v, Imm: imm}, true
		}
	case op == 0b0010011:
		imm := iImm(ins)
		switch f3 {
		case 0b000:
			return Instruction{Op: Addi, Rd: rdv, Rs1: rs1v, Imm: imm}, true
		case 0b010:
			return Instruction{Op: Slti, Rd: rdv, Rs1: rs1v, Imm: imm}, true
		case 0b011:
			return Instruction{Op: Sltiu, Rd: rdv, Rs1: rs1v, Imm: imm}, true
		case 0b100:
			return Instruction{Op: Xori, Rd: rdv, Rs1: rs1v, Imm: imm}, true
		case 0b110:
			return Instruction{Op: Ori, Rd: rdv, Rs1: rs1v, Imm: imm}, true
		case 0b111:
			return Instruction{Op: Andi, Rd: rdv, Rs1: rs1v, Imm: imm}, true
		case 0b001:
			if f7 == 0b0000000 {
				return Instruction{Op: Slli, Rd: rdv, Rs1: rs1v, Imm: uint64(shiftImmShamt(ins))}, true
			}
		case 0b101:
			if f7 == 0b0000000 {
				return Instruction{Op: Srli, Rd: rdv, Rs1: rs1v, Imm: uint64(shiftImmShamt(ins))}, true
			}
			if f7 == 0b0100000 {
				return Instruction{Op: Srai, Rd: rdv, Rs1: rs1v, Imm: uint64(shiftImmShamt(ins))}, true
			}
		}
	case op == 0b0110011:
		switch {
		case f7 == 0b0000000 && f3 == 0b000:
			return Instruction{Op: Add, Rd: rdv, Rs1: rs1v, Rs2: rs2v}, true
		case f7 == 0b0100000 && f3 == 0b000:
			return Instruction{Op: Sub, Rd: rdv, Rs1: rs1v, Rs2: rs2v}, true
		case f7 == 0b0000000 && f3 == 0b001:
			return Instruction{Op: Sll, Rd: rdv, Rs1: rs1v, Rs2: rs2v}, true
		case f7 == 0b0000000 && f3 == 0b010:
			return Instruction{Op: Slt, Rd: rdv, Rs1: rs1v, Rs2: rs2v}, true
		case f7 == 0b0000000 && f3 == 0b011:
			return Instruction{Op: Sltu, Rd: rdv, Rs1: rs1v, Rs2: rs2v}, true
		case f7 == 0b0000000 && f3 == 0b100:
			return Instruction{Op: Xor, Rd: rdv, Rs1: rs1v, Rs2: rs2v}, true
		case f7 == 0b0000000 && f3 == 0b101:
			return Instruction{Op: Srl, Rd: rdv, Rs1: rs1v, Rs2: rs2v}, true
		case f7 == 0b0100000 && f3 == 0b101:
			return Instruction{Op: Sra, Rd: rdv, Rs1: rs1v, Rs2: rs2v}, true
		case f7 == 0b0000000 && f3 == 0b110:
			return Instruction{Op: Or, Rd: rdv, Rs1: rs1v, Rs2: rs2v}, true
		case f7 == 0b0000000 && f3 == 0b111:
			return Instruction{Op: And, Rd: rdv, Rs1: rs1v, Rs2: rs2v}, true
		}
	}
	return Instruction{}, false
}

func decodeRv64i(ins uint32) (Instruction, bool) {
	op, f3, f7 := opcode(ins), funct3(ins), funct7(ins)
	rdv, rs1v, rs2v := rd(ins), rs1(ins), rs2(ins)

	switch {
	case op == 0b0000011 && f3 == 0b110:
		return Instruction{Op: Lwu, Rd: rdv, Rs1: rs1v, Imm: iImm(ins)}, true
	case op == 0b0000011 && f3 == 0b011:
		return Instruction{Op: Ld, Rd: rdv, Rs1: rs1v, Imm: iImm(ins)}, true
	case op == 0b0100011 && f3 == 0b011:
		return Instruction{Op: Sd, Rs1: rs1v, Rs2: rs2v, Imm: sImm(ins)}, true
	case op == 0b0011011 && f3 == 0b000:
		return Instruction{Op: Addiw, Rd: rdv, Rs1: rs1v, Imm: iImm(ins)}, true
	case op == 0b0011011 && f3 == 0b001 && f7 == 0b0000000:
		return Instruction{Op: Slliw, Rd: rdv, Rs1: rs1v, Imm: uint64(shiftImmShamt(ins))}, true
	case op == 0b0011011 && f3 == 0b101 && f7 == 0b0000000:
		return Instruction{Op: Srliw, Rd: rdv, Rs1: rs1v, Imm: uint64(shiftImmShamt(ins))}, true
	case op == 0b0011011 && f3 == 0b101 && f7 == 0b0100000:
		return Instruction{Op: Sraiw, Rd: rdv, Rs1: rs1v, Imm: uint64(shiftImmShamt(ins))}, true
	case op == 0b0111011 && f3 == 0b000 && f7 == 0b0000000:
		return Instruction{Op: Addw, Rd: rdv, Rs1: rs1v, Rs2: rs2v}, true
	case op == 0b0111011 && f3 == 0b000 && f7 == 0b0100000:
		return Instruction{Op: Subw, Rd: rdv, Rs1: rs1v, Rs2: rs2v}, true
	case op == 0b0111011 && f3 == 0b001 && f7 == 0b0000000:
		return Instruction{Op: Sllw, Rd: rdv, Rs1: rs1v, Rs2: rs2v}, true
	case op == 0b0111011 && f3 == 0b101 && f7 == 0b0000000:
		return Instruction{Op: Srlw, Rd: rdv, Rs1: rs1v, Rs2: rs2v}, true
	case op == 0b0111011 && f3 == 0b101 && f7 == 0b0100000:
		return Instruction{Op: Sraw, Rd: rdv, Rs1: rs1v, Rs2: rs2v}, true
	}
	return Instruction{}, false
}
