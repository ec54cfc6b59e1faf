package frame

import (
	"errors"
	"fmt"
)

var (
	// ErrFullyConstrained is matched by *FullyConstrainedError
	ErrFullyConstrained = errors.New("structure fully restrained")

	// ErrSingularMatrix is matched by *SingularMatrixError
	ErrSingularMatrix = errors.New("structure unstable")

	// ErrInvalidStructure is matched by *ValidationError
	ErrInvalidStructure = errors.New("invalid structure")
)

// FullyConstrainedError reports that every degree of freedom is restrained,
// leaving no unknown displacement to solve for.
type FullyConstrainedError struct {
	DOF int // total number of degrees of freedom
}

func (e *FullyConstrainedError) Error() string {
	return fmt.Sprintf("structure fully restrained: all %d degrees of freedom are held by supports", e.DOF)
}

func (e *FullyConstrainedError) Is(target error) bool {
	return target == ErrFullyConstrained
}

// SingularMatrixError reports a free-DOF stiffness block that cannot be
// inverted: the structure lacks restraint or contains a mechanism.
type SingularMatrixError struct {
	FreeDOF   int     // size of the reduced system
	Condition float64 // condition number estimate (+Inf when exactly singular)
}

func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("structure unstable (singular stiffness matrix, %d free DOF, cond=%.3g): check the supports", e.FreeDOF, e.Condition)
}

func (e *SingularMatrixError) Is(target error) bool {
	return target == ErrSingularMatrix
}

// ValidationError represents a structure that breaks the snapshot contract
type ValidationError struct {
	msg string
	err error
}

func (e *ValidationError) Error() string {
	return e.msg
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidStructure
}

func invalidf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// DegenerateMemberSkipped describes a member left out of assembly because
// its length is zero. It is a diagnostic, not a failure.
type DegenerateMemberSkipped struct {
	MemberID string `json:"memberId" yaml:"memberId"`
	Reason   string `json:"reason" yaml:"reason"`
}

func (d DegenerateMemberSkipped) Error() string {
	return fmt.Sprintf("member %s skipped: %s", d.MemberID, d.Reason)
}
