package minidb

import (
	"fmt"
)

const (
	PageSize    = 4096 // 4 kilobytes
	MaxPages    = 100
	RowsPerPage = PageSize / RowSize
)

type PageIndex uint32

// Page holds RowsPerPage encoded rows back to back, the few bytes left
// at the end of the page are never used
type Page struct {
	Index PageIndex
	Data  [PageSize]byte
}

func NewPage(pageIdx PageIndex) *Page {
	return &Page{Index: pageIdx}
}

// RowSlot returns the RowSize window of the page data backing the slot.
// The slice aliases the page so writes to it land in the page directly.
func (p *Page) RowSlot(slot uint32) ([]byte, error) {
	if slot >= RowsPerPage {
		return nil, fmt.Errorf("%w: slot %d out of range, page holds %d rows", ErrContractViolation, slot, RowsPerPage)
	}
	offset := slot * RowSize
	return p.Data[offset : offset+RowSize], nil
}
