// Package exception defines the closed set of architectural fault kinds
// raised by decode and by bus accesses.
package exception

import "fmt"

// Kind is one of the fourteen architectural exception variants.
type Kind int

// The exception kinds, in their architectural code order. EnvironmentCallFromMMode
// carries code 11, not 10 — code 10 is unused by this ISA.
const (
	InstructionAddrMisaligned Kind = iota
	InstructionAccessFault
	IllegalInstruction
	Breakpoint
	LoadAccessMisaligned
	LoadAccessFault
	StoreAMOAddrMisaligned
	StoreAMOAccessFault
	EnvironmentCallFromUMode
	EnvironmentCallFromSMode
	EnvironmentCallFromMMode
	InstructionPageFault
	LoadPageFault
	StoreAMOPageFault
)

var names = map[Kind]string{
	InstructionAddrMisaligned: "InstructionAddrMisaligned",
	InstructionAccessFault:    "InstructionAccessFault",
	IllegalInstruction:        "IllegalInstruction",
	Breakpoint:                "Breakpoint",
	LoadAccessMisaligned:      "LoadAccessMisaligned",
	LoadAccessFault:           "LoadAccessFault",
	StoreAMOAddrMisaligned:    "StoreAMOAddrMisaligned",
	StoreAMOAccessFault:       "StoreAMOAccessFault",
	EnvironmentCallFromUMode:  "EnvironmentCallFromUMode",
	EnvironmentCallFromSMode:  "EnvironmentCallFromSMode",
	EnvironmentCallFromMMode:  "EnvironmentCallFromMMode",
	InstructionPageFault:      "InstructionPageFault",
	LoadPageFault:             "LoadPageFault",
	StoreAMOPageFault:         "StoreAMOPageFault",
}

// codes maps a Kind to its fixed architectural code. Code 10 is intentionally
// absent.
var codes = map[Kind]uint64{
	InstructionAddrMisaligned: 0,
	InstructionAccessFault:    1,
	IllegalInstruction:        2,
	Breakpoint:                3,
	LoadAccessMisaligned:      4,
	LoadAccessFault:           5,
	StoreAMOAddrMisaligned:    6,
	StoreAMOAccessFault:       7,
	EnvironmentCallFromUMode:  8,
	EnvironmentCallFromSMode:  9,
	EnvironmentCallFromMMode:  11,
	InstructionPageFault:      12,
	LoadPageFault:             13,
	StoreAMOPageFault:         15,
}

// fatal is the set of kinds that terminate execution.
var fatal = map[Kind]bool{
	InstructionAddrMisaligned: true,
	InstructionAccessFault:    true,
	LoadAccessFault:           true,
	StoreAMOAddrMisaligned:    true,
	StoreAMOAccessFault:       true,
	IllegalInstruction:        true,
}

// Exception is a raised fault: a kind plus its 64-bit payload (the offending
// address, instruction word, or program counter, depending on kind).
type Exception struct {
	Kind    Kind
	Payload uint64
}

// New returns an Exception of the given kind carrying payload.
func New(kind Kind, payload uint64) *Exception {
	return &Exception{Kind: kind, Payload: payload}
}

// Error implements the error interface.
func (e *Exception) Error() string {
	return fmt.Sprintf("%s(0x%x)", e.Kind, e.Payload)
}

// Code returns the exception's fixed architectural code.
func (e *Exception) Code() uint64 {
	return codes[e.Kind]
}

// IsFatal reports whether this exception terminates execution.
func (e *Exception) IsFatal() bool {
	return fatal[e.Kind]
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "UnknownException"
}
