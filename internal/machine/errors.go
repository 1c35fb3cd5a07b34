package machine

import "errors"

// The following sentinel errors correspond to the error kinds below: each
// one is wrapped with failure-specific context via fmt.Errorf("%w: ...")
// at the call site, and callers distinguish kinds with errors.Is.
var (
	// ErrHalted is not a fault: it unwinds Run when the HALT instruction
	// executes, ending the fetch-execute loop normally.
	ErrHalted = errors.New("machine: halted")

	// ErrInvalidInput covers malformed CLI invocation, an unreadable image
	// path, or a program image whose size isn't a multiple of 4.
	ErrInvalidInput = errors.New("machine: invalid input")

	// ErrIO covers an underlying read/write failure on the image file or
	// on the standard input/output streams used by the in/out instructions.
	ErrIO = errors.New("machine: i/o error")

	// ErrOutOfResources covers an allocate request the store cannot satisfy.
	ErrOutOfResources = errors.New("machine: out of resources")

	// ErrInvalidOp covers an opcode of 14 or greater reaching dispatch.
	ErrInvalidOp = errors.New("machine: invalid opcode")

	// ErrOutOfBounds covers an array index at or beyond an array's length,
	// including a fetch past the end of the zero array.
	ErrOutOfBounds = errors.New("machine: index out of bounds")

	// ErrBadID covers a reference to an identifier absent from the store,
	// or an attempt to free identifier 0.
	ErrBadID = errors.New("machine: unknown array identifier")

	// ErrDivByZero covers the DIV instruction with a zero divisor register.
	ErrDivByZero = errors.New("machine: division by zero")
)
