package minidb

import (
	"context"
)

type Parser interface {
	Parse(context.Context, string) (Statement, error)
}

type PageStore interface {
	GetOrCreatePage(context.Context, PageIndex) (*Page, error)
	ReadPage(context.Context, PageIndex) (*Page, error)
	MaxPages() uint32
}
