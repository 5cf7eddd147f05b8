package particle

import "fmt"

// Parity is an intrinsic parity quantum number, +1 or -1.
type Parity int8

const (
	// ParityPos is positive intrinsic parity.
	ParityPos Parity = 1
	// ParityNeg is negative intrinsic parity.
	ParityNeg Parity = -1
)

// Inverse returns the opposite parity.
func (p Parity) Inverse() Parity { return -p }

// Times returns the product of two parities.
func (p Parity) Times(q Parity) Parity { return p * q }

func (p Parity) String() string {
	if p == ParityPos {
		return "+"
	}
	return "-"
}

// ParseParity converts a "+"/"-" token into a Parity.
func ParseParity(s string) (Parity, error) {
	switch s {
	case "+":
		return ParityPos, nil
	case "-":
		return ParityNeg, nil
	}
	return 0, fmt.Errorf("invalid parity %q (want + or -)", s)
}
