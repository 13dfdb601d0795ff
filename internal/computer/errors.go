package computer

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/opcode"
)

// ErrUnknownOpcode is wrapped by every DecodeError.
var ErrUnknownOpcode = errors.New("unknown opcode")

// DecodeError is returned when the fetched word is not a valid instruction.
type DecodeError struct {
	Opcode  opcode.Opcode
	Address uint16 // address the word was fetched from
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unknown opcode 0x%04X at address 0x%03X", uint16(e.Opcode), e.Address)
}

// Unwrap returns ErrUnknownOpcode.
func (e *DecodeError) Unwrap() error {
	return ErrUnknownOpcode
}
