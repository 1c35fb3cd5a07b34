package machine

import (
	"fmt"
	"math"
)

// ArrayStore is the VM's address space: a mapping from 32-bit identifier
// to an owned array of 32-bit words. Identifier 0 always refers to the
// zero array, the code currently executing.
//
// A plain map gives expected O(1) lookup, insert, and delete on the
// 32-bit keys, satisfying the "expected-logarithmic or better" design
// requirement without the bookkeeping of a balanced tree; the reference
// C implementation this spec is drawn from uses a red-black tree for the
// same mapping; the map is internal to ArrayStore, and the choice is not
// visible through its methods.
//
// ArrayStore is not safe for concurrent use; the interpreter loop is the
// sole owner for the lifetime of a run.
type ArrayStore struct {
	arrays map[uint32][]uint32
	nextID uint32
}

// NewArrayStore creates a store whose zero array is a copy of program.
func NewArrayStore(program []uint32) *ArrayStore {
	zero := make([]uint32, len(program))
	copy(zero, program)
	return &ArrayStore{
		arrays: map[uint32][]uint32{0: zero},
		nextID: 1,
	}
}

// Allocate creates a new zero-filled array of length n words, assigns it
// a non-zero identifier not currently in use, and returns that
// identifier. n == 0 is legal and yields an empty array.
func (s *ArrayStore) Allocate(n uint32) (uint32, error) {
	used := uint64(len(s.arrays))
	if _, ok := s.arrays[0]; ok {
		used--
	}
	if used >= math.MaxUint32 {
		return 0, fmt.Errorf("no free array identifier remains: %w", ErrOutOfResources)
	}
	id := s.nextID
	if id == 0 {
		id = 1
	}
	for {
		if _, taken := s.arrays[id]; !taken {
			break
		}
		id++
		if id == 0 {
			id = 1
		}
	}
	s.arrays[id] = make([]uint32, n)
	s.nextID = id + 1
	return id, nil
}

// Free releases the array at id. Freeing identifier 0 or an identifier
// not currently present is a fault.
func (s *ArrayStore) Free(id uint32) error {
	if id == 0 {
		return fmt.Errorf("cannot free the zero array: %w", ErrBadID)
	}
	if _, ok := s.arrays[id]; !ok {
		return fmt.Errorf("free of unknown array %d: %w", id, ErrBadID)
	}
	delete(s.arrays, id)
	return nil
}

// Length returns the number of words in the array at id.
func (s *ArrayStore) Length(id uint32) (uint32, error) {
	arr, ok := s.arrays[id]
	if !ok {
		return 0, fmt.Errorf("length of unknown array %d: %w", id, ErrBadID)
	}
	return uint32(len(arr)), nil
}

// Read returns the word at index i in the array at id.
func (s *ArrayStore) Read(id, i uint32) (uint32, error) {
	arr, ok := s.arrays[id]
	if !ok {
		return 0, fmt.Errorf("read from unknown array %d: %w", id, ErrBadID)
	}
	if i >= uint32(len(arr)) {
		return 0, fmt.Errorf("read index %d of array %d, length %d: %w", i, id, len(arr), ErrOutOfBounds)
	}
	return arr[i], nil
}

// Write sets the word at index i in the array at id to v.
func (s *ArrayStore) Write(id, i, v uint32) error {
	arr, ok := s.arrays[id]
	if !ok {
		return fmt.Errorf("write to unknown array %d: %w", id, ErrBadID)
	}
	if i >= uint32(len(arr)) {
		return fmt.Errorf("write index %d of array %d, length %d: %w", i, id, len(arr), ErrOutOfBounds)
	}
	arr[i] = v
	return nil
}

// CloneIntoZero replaces the zero array with a fresh copy of the array
// at id, discarding the zero array's prior contents. The array at id is
// left untouched. If id is 0, this is a no-op: the zero array is not
// re-copied, only its identity is confirmed as already current.
func (s *ArrayStore) CloneIntoZero(id uint32) error {
	if id == 0 {
		return nil
	}
	src, ok := s.arrays[id]
	if !ok {
		return fmt.Errorf("loadpgm from unknown array %d: %w", id, ErrBadID)
	}
	cp := make([]uint32, len(src))
	copy(cp, src)
	s.arrays[0] = cp
	return nil
}

// Shutdown releases every array still held by the store, including the
// zero array. It is meant for callers embedding the VM as a library and
// running more than one program in the same process; it has no effect on
// spec-level semantics, since Go's garbage collector reclaims memory
// either way.
func (s *ArrayStore) Shutdown() {
	for id := range s.arrays {
		delete(s.arrays, id)
	}
}
