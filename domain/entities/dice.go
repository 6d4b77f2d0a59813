package entities

import (
	"errors"
	"fmt"
)

// Dice bounds accepted by /roll
const (
	DefaultDiceSides = 6
	MinDiceSides     = 2
	MaxDiceSides     = 100
)

var ErrInvalidDiceSides = errors.New("invalid dice sides")

// ValidateDiceSides rejects dice outside [MinDiceSides, MaxDiceSides]
func ValidateDiceSides(sides int) error {
	if sides < MinDiceSides {
		return fmt.Errorf("%w: dice must have at least %d sides", ErrInvalidDiceSides, MinDiceSides)
	}
	if sides > MaxDiceSides {
		return fmt.Errorf("%w: dice can't have more than %d sides", ErrInvalidDiceSides, MaxDiceSides)
	}
	return nil
}
