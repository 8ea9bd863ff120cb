package minidb

import (
	"errors"
	"fmt"
)

const (
	DefaultTableName = "users"
)

var (
	// ErrTableFull is returned by an insert once the table reached its capacity,
	// it is the only failure an insert can hit when the table is used correctly
	ErrTableFull = errors.New("table full")
	// ErrStringTooLong is returned for a text field longer than its column
	ErrStringTooLong = errors.New("string is too long")
	// ErrContractViolation means a caller skipped a bounds check, for example
	// addressed a page beyond the maximum, it always points to a bug
	ErrContractViolation = errors.New("contract violation")

	ErrCorruptRow       = fmt.Errorf("%w: corrupt row", ErrContractViolation)
	ErrPageNotAllocated = fmt.Errorf("%w: page not allocated", ErrContractViolation)
)
