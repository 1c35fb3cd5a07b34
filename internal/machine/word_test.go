package machine

import "testing"

// encodeStandard builds a standard-form instruction word the same way
// Decode would need to split it apart: opcode in bits 28-31, A in bits
// 6-8, B in bits 3-5, C in bits 0-2.
func encodeStandard(op, a, b, c uint32) uint32 {
	return op<<28 | (a&7)<<6 | (b&7)<<3 | (c & 7)
}

// encodeLoadImm builds an opcode-13 load-immediate word: A in bits 25-27,
// a 25-bit immediate in bits 0-24.
func encodeLoadImm(a, imm uint32) uint32 {
	return OpLoadImm<<28 | (a&7)<<25 | (imm & 0x01FFFFFF)
}

func TestDecodeStandardRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		op      uint32
		a, b, c uint32
	}{
		{"halt", OpHalt, 0, 0, 0},
		{"add", OpAdd, 2, 0, 1},
		{"aidx", OpAidx, 4, 1, 3},
		{"aupd", OpAupd, 1, 3, 2},
		{"alloc", OpAlloc, 0, 1, 0},
		{"cmov all regs", OpCmov, 7, 6, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word := encodeStandard(tt.op, tt.a, tt.b, tt.c)
			op, a, b, c, imm := Decode(word)
			if op != tt.op || a != tt.a || b != tt.b || c != tt.c || imm != 0 {
				t.Fatalf("Decode(encodeStandard(%d,%d,%d,%d)) = (%d,%d,%d,%d,%d)",
					tt.op, tt.a, tt.b, tt.c, op, a, b, c, imm)
			}
		})
	}
}

func TestDecodeLoadImmediate(t *testing.T) {
	word := encodeLoadImm(5, 65)
	op, a, b, c, imm := Decode(word)
	if op != OpLoadImm || a != 5 || b != 0 || c != 0 || imm != 65 {
		t.Fatalf("Decode(loadimm r5, 65) = (%d,%d,%d,%d,%d)", op, a, b, c, imm)
	}
}

func TestDecodeLoadImmediateMasksTo25Bits(t *testing.T) {
	// Bits 25-27 belong to register A, so no encoding of opcode 13 can
	// produce an immediate greater than 0x01FFFFFF.
	word := uint32(0xDFFFFFFF)
	_, _, _, _, imm := Decode(word)
	if imm > 0x01FFFFFF {
		t.Fatalf("imm = 0x%x, exceeds 25 bits", imm)
	}
}

func TestDecodeIsTotal(t *testing.T) {
	// Every possible opcode nibble, including the unassigned ones (14, 15),
	// must decode without panicking.
	for op := uint32(0); op < 16; op++ {
		Decode(op << 28)
	}
}

func TestMnemonicUnknownOpcode(t *testing.T) {
	if got := Mnemonic(14); got == "" {
		t.Fatal("Mnemonic(14) returned empty string")
	}
	if got := Mnemonic(OpHalt); got != "halt" {
		t.Fatalf("Mnemonic(OpHalt) = %q, want %q", got, "halt")
	}
}
