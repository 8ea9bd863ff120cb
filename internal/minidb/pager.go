package minidb

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Pager owns all pages of a table. Pages are allocated lazily the first time
// a row is written into them and are never freed.
type Pager struct {
	maxPages   uint32
	totalPages uint32 // number of allocated pages

	// pages has a fixed length of maxPages, index = PageIndex,
	// nil entries are pages that have not been allocated yet
	pages []*Page

	logger *zap.Logger
}

func NewPager(logger *zap.Logger, maxPages uint32) *Pager {
	return &Pager{
		maxPages: maxPages,
		pages:    make([]*Page, maxPages),
		logger:   logger,
	}
}

func (p *Pager) MaxPages() uint32 {
	return p.maxPages
}

func (p *Pager) TotalPages() uint32 {
	return p.totalPages
}

// GetOrCreatePage returns the page at pageIdx, allocating it on first access.
// The returned page must not be retained past the current operation.
func (p *Pager) GetOrCreatePage(ctx context.Context, pageIdx PageIndex) (*Page, error) {
	if err := p.checkBounds(pageIdx); err != nil {
		return nil, err
	}

	if aPage := p.pages[pageIdx]; aPage != nil {
		return aPage, nil
	}

	aPage := NewPage(pageIdx)
	p.pages[pageIdx] = aPage
	p.totalPages += 1

	p.logger.Debug(
		"allocated page",
		zap.Uint32("page_index", uint32(pageIdx)),
		zap.Uint32("total_pages", p.totalPages),
	)

	return aPage, nil
}

// ReadPage returns an already allocated page, it never allocates
func (p *Pager) ReadPage(ctx context.Context, pageIdx PageIndex) (*Page, error) {
	if err := p.checkBounds(pageIdx); err != nil {
		return nil, err
	}

	aPage := p.pages[pageIdx]
	if aPage == nil {
		return nil, fmt.Errorf("%w: index %d", ErrPageNotAllocated, pageIdx)
	}
	return aPage, nil
}

func (p *Pager) checkBounds(pageIdx PageIndex) error {
	if uint32(pageIdx) >= p.maxPages {
		return fmt.Errorf("%w: page index %d reached limit of max pages %d", ErrContractViolation, pageIdx, p.maxPages)
	}
	return nil
}
