package minidb

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

var (
	errUnrecognizedStatementType = fmt.Errorf("unrecognised statement type")
)

// Database ties a parser to the single table it executes statements against.
// It holds no global state, every instance is fully independent.
type Database struct {
	parser Parser
	table  *Table
	logger *zap.Logger
}

func NewDatabase(logger *zap.Logger, aParser Parser, aTable *Table) *Database {
	return &Database{
		parser: aParser,
		table:  aTable,
		logger: logger,
	}
}

func (d *Database) Table() *Table {
	return d.table
}

// PrepareStatement parses a single input line into a Statement
func (d *Database) PrepareStatement(ctx context.Context, line string) (Statement, error) {
	stmt, err := d.parser.Parse(ctx, line)
	if err != nil {
		return Statement{}, err
	}
	return stmt, nil
}

func (d *Database) ExecuteStatement(ctx context.Context, stmt Statement) (StatementResult, error) {
	switch stmt.Kind {
	case Insert:
		return d.executeInsert(ctx, stmt)
	case Select:
		return d.executeSelect(ctx, stmt)
	}
	return StatementResult{}, errUnrecognizedStatementType
}

func (d *Database) executeInsert(ctx context.Context, stmt Statement) (StatementResult, error) {
	if err := d.table.Insert(ctx, stmt.Row); err != nil {
		return StatementResult{Kind: Insert}, err
	}
	return StatementResult{Kind: Insert, RowsAffected: 1}, nil
}

func (d *Database) executeSelect(ctx context.Context, stmt Statement) (StatementResult, error) {
	d.logger.Debug(
		"selecting rows",
		zap.String("table", d.table.Name),
		zap.Uint32("rows", d.table.NumRows()),
	)
	return StatementResult{
		Kind: Select,
		Rows: d.table.SelectAll(ctx),
	}, nil
}
