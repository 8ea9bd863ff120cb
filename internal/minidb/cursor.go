package minidb

import (
	"context"
	"fmt"
)

type Cursor struct {
	Table      *Table
	RowNum     uint32
	PageIdx    PageIndex
	CellIdx    uint32
	EndOfTable bool

	numRows uint32 // row count when the cursor was created
}

// Start returns a cursor pointing at the first row
func (t *Table) Start() *Cursor {
	return t.cursorAt(0)
}

// End returns a cursor pointing one past the last row, where the next row goes
func (t *Table) End() *Cursor {
	return t.cursorAt(t.numRows)
}

func (t *Table) cursorAt(rowNum uint32) *Cursor {
	pageIdx, cellIdx := rowLocation(rowNum)
	return &Cursor{
		Table:      t,
		RowNum:     rowNum,
		PageIdx:    pageIdx,
		CellIdx:    cellIdx,
		EndOfTable: rowNum >= t.numRows,
		numRows:    t.numRows,
	}
}

func (c *Cursor) Advance() {
	c.RowNum += 1
	c.PageIdx, c.CellIdx = rowLocation(c.RowNum)
	c.EndOfTable = c.RowNum >= c.numRows
}

func (c *Cursor) fetchRow(ctx context.Context) (Row, error) {
	aPage, err := c.Table.pager.ReadPage(ctx, c.PageIdx)
	if err != nil {
		return Row{}, fmt.Errorf("fetch row %d: %w", c.RowNum, err)
	}
	slot, err := aPage.RowSlot(c.CellIdx)
	if err != nil {
		return Row{}, fmt.Errorf("fetch row %d: %w", c.RowNum, err)
	}

	var aRow Row
	if err := UnmarshalRow(slot, &aRow); err != nil {
		return Row{}, fmt.Errorf("fetch row %d: %w", c.RowNum, err)
	}
	return aRow, nil
}
