package parser

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/RichardKnop/minidb/internal/minidb"
)

var (
	ErrUnrecognizedCommand = errors.New("unrecognized command")
	ErrSyntax              = errors.New("syntax error")
	ErrInvalidID           = errors.New("invalid id")
	ErrNegativeID          = errors.New("id must be positive")
)

const insertKeyword = "insert"

// commandGrammar accepts either
//
//	insert <id> <username> <email>
//	select
//
//nolint:govet // participle grammar tags are not standard struct tags
type commandGrammar struct {
	Insert *insertGrammar `  @@`
	Select bool           `| @"select"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type insertGrammar struct {
	ID       string `"insert" @Word`
	Username string `@Word`
	Email    string `@Word`
}

// Arguments are whitespace separated, any other character is part of a word
var commandLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Word", Pattern: `[^\s]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var commandParser = participle.MustBuild[commandGrammar](
	participle.Lexer(commandLexer),
	participle.Elide("Whitespace"),
)

type Parser struct {
	grammar *participle.Parser[commandGrammar]
}

func New() *Parser {
	return &Parser{grammar: commandParser}
}

// Parse turns a single input line into a statement. Verbs are case sensitive,
// anything that is neither insert nor select is an unrecognized command.
func (p *Parser) Parse(ctx context.Context, line string) (minidb.Statement, error) {
	line = strings.TrimSpace(line)

	parsed, err := p.grammar.ParseString("", line)
	if err != nil {
		if firstWord(line) == insertKeyword {
			return minidb.Statement{}, fmt.Errorf("%w: %s", ErrSyntax, err)
		}
		return minidb.Statement{}, fmt.Errorf("%w: '%s'", ErrUnrecognizedCommand, line)
	}

	if parsed.Select {
		return minidb.Statement{Kind: minidb.Select}, nil
	}

	return parseInsert(parsed.Insert)
}

func parseInsert(anInsert *insertGrammar) (minidb.Statement, error) {
	id, err := parseID(anInsert.ID)
	if err != nil {
		return minidb.Statement{}, err
	}

	aRow := minidb.NewRow(id, anInsert.Username, anInsert.Email)
	if err := aRow.Validate(); err != nil {
		return minidb.Statement{}, err
	}

	return minidb.Statement{
		Kind: minidb.Insert,
		Row:  aRow,
	}, nil
}

func parseID(value string) (uint32, error) {
	// any negative number is rejected the same way, however large
	if digits, ok := strings.CutPrefix(value, "-"); ok && isDigits(digits) && strings.Trim(digits, "0") != "" {
		return 0, fmt.Errorf("%w: %s", ErrNegativeID, value)
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: '%s'", ErrInvalidID, value)
	}
	if id < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeID, id)
	}
	if id > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d does not fit into 32 bits", ErrInvalidID, id)
	}
	return uint32(id), nil
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func firstWord(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
