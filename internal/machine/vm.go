package machine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// NumRegisters is the number of general-purpose registers. All three
// register fields of every instruction are 3 bits wide, so this is fixed
// at 8 by the instruction encoding.
const NumRegisters = 8

// VM is a single bitmachine instance: eight registers, a program counter,
// and an array store. The zero array (identifier 0 in Store) holds the
// code currently executing.
//
// VM is not safe for concurrent use; like a hardware register file, a
// single goroutine should own it for the duration of a run.
type VM struct {
	Regs  [NumRegisters]uint32
	PC    uint32
	Store *ArrayStore

	stdin  *bufio.Reader
	stdout *bufio.Writer
	logger *slog.Logger
	trace  bool
}

// New creates a VM whose zero array holds program, reading op 11 input
// from stdin and writing op 10 output to stdout. If trace is set, logger
// receives a per-instruction record at debug level; the VM logs nothing
// else.
func New(program []uint32, stdin io.Reader, stdout io.Writer, logger *slog.Logger, trace bool) *VM {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &VM{
		Store:  NewArrayStore(program),
		stdin:  bufio.NewReader(stdin),
		stdout: bufio.NewWriter(stdout),
		logger: logger,
		trace:  trace,
	}
}

// Shutdown releases the VM's array store. See ArrayStore.Shutdown.
func (vm *VM) Shutdown() {
	vm.Store.Shutdown()
}

// Run executes instructions from the zero array starting at the current
// program counter until the HALT instruction executes (returns nil) or a
// fault occurs (returns a non-nil error wrapping one of the machine
// package's fault sentinels).
func (vm *VM) Run() error {
	for {
		if err := vm.Step(); err != nil {
			if errors.Is(err, ErrHalted) {
				return nil
			}
			return err
		}
	}
}

// Step fetches, decodes, and dispatches exactly one instruction. On
// success the program counter has advanced: by one word, except for
// OpLoadProgram, which sets it directly from R[C].
func (vm *VM) Step() error {
	w, err := vm.Store.Read(0, vm.PC)
	if err != nil {
		return fmt.Errorf("fetch at pc=%d: %w", vm.PC, err)
	}

	op, a, b, c, imm := Decode(w)
	if vm.trace {
		vm.logger.Debug("exec",
			"pc", vm.PC, "op", Mnemonic(op), "a", a, "b", b, "c", c, "imm", imm,
			"regs", vm.Regs)
	}

	switch op {
	case OpCmov:
		if vm.Regs[c] != 0 {
			vm.Regs[a] = vm.Regs[b]
		}
		vm.PC++
	case OpAidx:
		v, err := vm.Store.Read(vm.Regs[b], vm.Regs[c])
		if err != nil {
			return fmt.Errorf("aidx at pc=%d: %w", vm.PC, err)
		}
		vm.Regs[a] = v
		vm.PC++
	case OpAupd:
		if err := vm.Store.Write(vm.Regs[a], vm.Regs[b], vm.Regs[c]); err != nil {
			return fmt.Errorf("aupd at pc=%d: %w", vm.PC, err)
		}
		vm.PC++
	case OpAdd:
		vm.Regs[a] = vm.Regs[b] + vm.Regs[c]
		vm.PC++
	case OpMul:
		vm.Regs[a] = vm.Regs[b] * vm.Regs[c]
		vm.PC++
	case OpDiv:
		if vm.Regs[c] == 0 {
			return fmt.Errorf("div at pc=%d: %w", vm.PC, ErrDivByZero)
		}
		vm.Regs[a] = vm.Regs[b] / vm.Regs[c]
		vm.PC++
	case OpNand:
		vm.Regs[a] = ^(vm.Regs[b] & vm.Regs[c])
		vm.PC++
	case OpHalt:
		return ErrHalted
	case OpAlloc:
		id, err := vm.Store.Allocate(vm.Regs[c])
		if err != nil {
			return fmt.Errorf("alloc at pc=%d: %w", vm.PC, err)
		}
		vm.Regs[b] = id
		vm.PC++
	case OpFree:
		if err := vm.Store.Free(vm.Regs[c]); err != nil {
			return fmt.Errorf("free at pc=%d: %w", vm.PC, err)
		}
		vm.PC++
	case OpOut:
		if err := vm.stdout.WriteByte(byte(vm.Regs[c] % 256)); err != nil {
			return fmt.Errorf("out at pc=%d: %w: %v", vm.PC, ErrIO, err)
		}
		if err := vm.stdout.Flush(); err != nil {
			return fmt.Errorf("out at pc=%d: %w: %v", vm.PC, ErrIO, err)
		}
		vm.PC++
	case OpIn:
		b0, err := vm.stdin.ReadByte()
		switch {
		case errors.Is(err, io.EOF):
			vm.Regs[c] = 0xFFFFFFFF
		case err != nil:
			return fmt.Errorf("in at pc=%d: %w: %v", vm.PC, ErrIO, err)
		default:
			vm.Regs[c] = uint32(b0)
		}
		vm.PC++
	case OpLoadProgram:
		if err := vm.Store.CloneIntoZero(vm.Regs[b]); err != nil {
			return fmt.Errorf("loadpgm at pc=%d: %w", vm.PC, err)
		}
		vm.PC = vm.Regs[c]
	case OpLoadImm:
		vm.Regs[a] = imm
		vm.PC++
	default:
		return fmt.Errorf("opcode %d at pc=%d: %w", op, vm.PC, ErrInvalidOp)
	}
	return nil
}
