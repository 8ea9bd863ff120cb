package minidb

import (
	"context"
	"fmt"
	"iter"

	"go.uber.org/zap"
)

type Table struct {
	Name    string
	pager   PageStore
	numRows uint32
	logger  *zap.Logger
}

func NewTable(logger *zap.Logger, name string, pager PageStore) *Table {
	return &Table{
		Name:   name,
		pager:  pager,
		logger: logger,
	}
}

func (t *Table) NumRows() uint32 {
	return t.numRows
}

// Capacity is the maximum number of rows the table can ever hold,
// it only depends on the page store size, not on row values
func (t *Table) Capacity() uint32 {
	return t.pager.MaxPages() * RowsPerPage
}

func (t *Table) IsFull() bool {
	return t.numRows >= t.Capacity()
}

// Insert appends a row to the end of the table. Once the table is full,
// ErrTableFull is returned on every call without touching the page store.
func (t *Table) Insert(ctx context.Context, aRow Row) error {
	if t.IsFull() {
		return ErrTableFull
	}

	data, err := aRow.Marshal()
	if err != nil {
		return fmt.Errorf("marshal row: %w", err)
	}

	aCursor := t.End()
	aPage, err := t.pager.GetOrCreatePage(ctx, aCursor.PageIdx)
	if err != nil {
		return fmt.Errorf("get page: %w", err)
	}
	slot, err := aPage.RowSlot(aCursor.CellIdx)
	if err != nil {
		return err
	}

	copy(slot, data)
	t.numRows += 1

	if t.IsFull() {
		t.logger.Warn(
			"table is full",
			zap.String("table", t.Name),
			zap.Uint32("rows", t.numRows),
		)
	}

	return nil
}

// SelectAll returns all rows in insertion order. Rows are decoded lazily while
// iterating and every new iteration starts again from the first row. The row
// count is captured when an iteration starts.
func (t *Table) SelectAll(ctx context.Context) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		aCursor := t.Start()
		for !aCursor.EndOfTable {
			aRow, err := aCursor.fetchRow(ctx)
			if err != nil {
				yield(Row{}, err)
				return
			}
			if !yield(aRow, nil) {
				return
			}
			aCursor.Advance()
		}
	}
}

// rowLocation maps a row number to the page it lives in and its slot in that page
func rowLocation(rowNum uint32) (PageIndex, uint32) {
	return PageIndex(rowNum / RowsPerPage), rowNum % RowsPerPage
}
