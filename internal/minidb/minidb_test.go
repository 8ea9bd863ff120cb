package minidb

import (
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/RichardKnop/minidb/internal/pkg/logging"
)

//go:generate mockery --name=PageStore --structname=MockPageStore --inpackage --case=snake --testonly
//go:generate mockery --name=Parser --structname=MockParser --inpackage --case=snake --testonly

var (
	gen = newDataGen(uint64(time.Now().Unix()))

	testLogger *zap.Logger
)

func init() {
	logConf := logging.DefaultConfig()

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "debug"
	}

	l, err := logging.ParseLevel(level)
	if err != nil {
		panic(err)
	}
	logConf.Level = zap.NewAtomicLevelAt(l)

	testLogger, err = logConf.Build()
	if err != nil {
		panic(err)
	}
}

type dataGen struct {
	*gofakeit.Faker
}

func newDataGen(seed uint64) *dataGen {
	g := dataGen{
		Faker: gofakeit.New(seed),
	}

	return &g
}

func (g *dataGen) Row() Row {
	return Row{
		ID:       g.Uint32(),
		Username: truncate(g.Username(), UsernameSize),
		Email:    truncate(g.Email(), EmailSize),
	}
}

func (g *dataGen) Rows(number int) []Row {
	rows := make([]Row, 0, number)
	for range number {
		rows = append(rows, g.Row())
	}
	return rows
}

// MaxRow returns a row with both text fields exactly at their maximum length
func (g *dataGen) MaxRow() Row {
	return Row{
		ID:       g.Uint32(),
		Username: g.LetterN(UsernameSize),
		Email:    g.LetterN(EmailSize),
	}
}

func truncate(s string, size int) string {
	if len(s) > size {
		return s[:size]
	}
	return s
}

func newTestTable(maxPages uint32) *Table {
	return NewTable(testLogger, DefaultTableName, NewPager(testLogger, maxPages))
}

func resetMock(aMock *mock.Mock) {
	aMock.ExpectedCalls = nil
	aMock.Calls = nil
}
