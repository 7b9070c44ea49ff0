package core

// Minimal word-level encoders for the handful of instruction forms the
// end-to-end scenario tests need. Not a general assembler: just enough to
// build fixed test programs without hand-computing bit patterns inline.

func words(ws ...uint32) []byte {
	buf := make([]byte, len(ws)*4)
	for i, w := range ws {
		buf[i*4+0] = byte(w)
		buf[i*4+1] = byte(w >> 8)
		buf[i*4+2] = byte(w >> 16)
		buf[i*4+3] = byte(w >> 24)
	}
	return buf
}

const illegalWord = 0xFFFFFFFF

func encI(imm int32, rs1, funct3, rd, opcode uint32) uint32 {
	return uint32(imm)<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func encS(imm int32, rs2, rs1, funct3, opcode uint32) uint32 {
	u := uint32(imm)
	return (u&0xfe0)<<20 | rs2<<20 | rs1<<15 | funct3<<12 | (u&0x1f)<<7 | opcode
}

func encB(imm int32, rs2, rs1, funct3, opcode uint32) uint32 {
	u := uint32(imm)
	bit12 := (u >> 12) & 1
	bit11 := (u >> 11) & 1
	bits10to5 := (u >> 5) & 0x3f
	bits4to1 := (u >> 1) & 0xf
	return bit12<<31 | bits10to5<<25 | rs2<<20 | rs1<<15 | funct3<<12 | bits4to1<<8 | bit11<<7 | opcode
}

func encU(imm uint32, rd, opcode uint32) uint32 {
	return imm<<12 | rd<<7 | opcode
}

func encJ(imm int32, rd, opcode uint32) uint32 {
	u := uint32(imm)
	bit20 := (u >> 20) & 1
	bits10to1 := (u >> 1) & 0x3ff
	bit11 := (u >> 11) & 1
	bits19to12 := (u >> 12) & 0xff
	return bit20<<31 | bits10to1<<21 | bit11<<20 | bits19to12<<12 | rd<<7 | opcode
}

func addi(rd, rs1 uint32, imm int32) uint32 { return encI(imm, rs1, 0b000, rd, 0b0010011) }
func jal(rd uint32, imm int32) uint32       { return encJ(imm, rd, 0b1101111) }
func beq(rs1, rs2 uint32, imm int32) uint32 { return encB(imm, rs2, rs1, 0b000, 0b1100011) }
func sd(rs1, rs2 uint32, imm int32) uint32  { return encS(imm, rs2, rs1, 0b011, 0b0100011) }
func ld(rd, rs1 uint32, imm int32) uint32   { return encI(imm, rs1, 0b011, rd, 0b0000011) }
func lui(rd uint32, imm20 uint32) uint32    { return encU(imm20, rd, 0b0110111) }
func addw(rd, rs1, rs2 uint32) uint32 {
	return 0b0000000<<25 | rs2<<20 | rs1<<15 | 0b000<<12 | rd<<7 | 0b0111011
}
