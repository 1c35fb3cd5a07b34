// Package machine implements the bitmachine virtual machine: a register
// interpreter whose program image is a flat sequence of 32-bit big-endian
// words, executing against an evolving address space of dynamically
// allocated integer arrays.
//
// Instruction format
//
// Every word is 32 bits wide. There are two instruction formats:
//
// 1. Standard (opcodes 0..12):
//
//     <Opcode:4><Unused:19><RegisterA:3><RegisterB:3><RegisterC:3>
//
// 2. Load-immediate (opcode 13):
//
//     <Opcode:4><RegisterA:3><Immediate:25>
//
// Array store
//
// Identifier 0 is permanently reserved for the array holding the code
// currently being executed (the "zero array"). All other identifiers are
// assigned by the ALLOC instruction and released by FREE. See store.go.
package machine

import "fmt"

// The following constants define the opcode values. Three bits select one
// of eight general-purpose registers; there is no instruction pointer or
// stack pointer register distinct from the eight.
const (
	OpCmov = uint32(iota) // conditional move
	OpAidx                // array index (read)
	OpAupd                // array update (write)
	OpAdd                 // addition modulo 2^32
	OpMul                 // multiplication modulo 2^32
	OpDiv                 // unsigned division, truncating
	OpNand                // bitwise NAND
	OpHalt                // stop the machine
	OpAlloc               // allocate a new array
	OpFree                // free an array
	OpOut                 // write one byte to stdout
	OpIn                  // read one byte from stdin
	OpLoadProgram         // replace the zero array and jump
	OpLoadImm             // load a 25-bit immediate into a register

	// opcodeCount is one past the highest opcode the instruction set
	// assigns; anything at or above this value is invalid.
	opcodeCount
)

var mnemonics = [opcodeCount]string{
	OpCmov:        "cmov",
	OpAidx:        "aidx",
	OpAupd:        "aupd",
	OpAdd:         "add",
	OpMul:         "mul",
	OpDiv:         "div",
	OpNand:        "nand",
	OpHalt:        "halt",
	OpAlloc:       "alloc",
	OpFree:        "free",
	OpOut:         "out",
	OpIn:          "in",
	OpLoadProgram: "loadpgm",
	OpLoadImm:     "loadimm",
}

// Mnemonic returns the instruction's name, or a placeholder for an
// opcode outside the assigned range. It is used only for tracing; it has
// no effect on dispatch.
func Mnemonic(op uint32) string {
	if op < opcodeCount {
		return mnemonics[op]
	}
	return fmt.Sprintf("op%d?", op)
}

// Decode decodes a 32-bit instruction word. For opcode 13 (load-immediate)
// b and c are always zero and imm holds the 25-bit zero-extended
// immediate; for every other opcode imm is always zero. Decode is pure
// and total: every uint32 input decodes to some (op, a, b, c, imm) tuple,
// even when op turns out to be invalid for dispatch.
func Decode(w uint32) (op, a, b, c, imm uint32) {
	op = (w >> 28) & 0xF
	if op == OpLoadImm {
		a = (w >> 25) & 0x7
		imm = w & 0x01FFFFFF
		return
	}
	a = (w >> 6) & 0x7
	b = (w >> 3) & 0x7
	c = w & 0x7
	return
}
