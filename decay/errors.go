package decay

import "fmt"

// Violation classifies why a decay line was rejected.
type Violation string

const (
	ViolationCharge          Violation = "charge conservation"
	ViolationIsospin         Violation = "isospin"
	ViolationParity          Violation = "parity conservation"
	ViolationAngularMomentum Violation = "angular momentum"
	ViolationMissingDaughter Violation = "missing daughter"
	ViolationDaughterCount   Violation = "daughter count"
	ViolationThreshold       Violation = "pole mass below threshold"
)

// LoadError reports a malformed or duplicate decay-mode record. It aborts
// database construction; no partial tables survive.
type LoadError struct {
	Line int    // 1-based line number, 0 if not tied to a line
	Text string // raw line text
	Msg  string
}

func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("decay: %s (line %d: %q)", e.Msg, e.Line, e.Text)
	}
	return "decay: " + e.Msg
}

// InvalidDecayError reports a decay mode that violates a conservation law
// or has an unusable final state. Fatal for database construction.
type InvalidDecayError struct {
	Violation Violation
	Line      int
	Text      string
	Msg       string
}

func (e *InvalidDecayError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("decay: %s violates %s (line %d: %q)",
			e.Msg, e.Violation, e.Line, e.Text)
	}
	return fmt.Sprintf("decay: %s violates %s", e.Msg, e.Violation)
}

// MissingDecaysError reports an unstable species that ended up with an
// empty decay table.
type MissingDecaysError struct {
	Name string
}

func (e *MissingDecaysError) Error() string {
	return fmt.Sprintf("decay: no decay modes found for unstable particle %s", e.Name)
}
