package minidb

import (
	"iter"
)

type StatementKind int

const (
	Insert StatementKind = iota + 1
	Select
)

func (k StatementKind) String() string {
	switch k {
	case Insert:
		return "INSERT"
	case Select:
		return "SELECT"
	default:
		return "UNKNOWN"
	}
}

type Statement struct {
	Kind StatementKind
	Row  Row // only used by insert
}

type StatementResult struct {
	Kind         StatementKind
	RowsAffected int
	Rows         iter.Seq2[Row, error]
}
