package machine

import (
	"encoding/binary"
	"fmt"
	"io"
)

// LoadProgram reads r to completion as a sequence of 4-byte big-endian
// words and returns them in order. It faults if the input's length isn't
// a multiple of 4, or on any underlying read error.
func LoadProgram(r io.Reader) ([]uint32, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading program image: %w: %v", ErrIO, err)
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("program image is %d bytes, not a multiple of 4: %w", len(data), ErrInvalidInput)
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(data[i*4 : i*4+4])
	}
	return words, nil
}
