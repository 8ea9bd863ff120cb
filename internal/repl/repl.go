package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/RichardKnop/minidb/internal/minidb"
	"github.com/RichardKnop/minidb/internal/parser"
)

const (
	Prompt = "db > "

	// maxLineSize bounds the part of an input line kept in memory, the rest
	// of a longer line is discarded and the line is rejected
	maxLineSize = 1024 * 1024
)

const (
	replyExecuted      = "Executed."
	replyTableFull     = "Error: Table full."
	replySyntaxError   = "Syntax error. Could not parse statement."
	replyInvalidID     = "Error: Invalid ID."
	replyNegativeID    = "ID must be positive."
	replyStringTooLong = "String is too long."
)

type metaCommand int

const (
	Unknown metaCommand = iota + 1
	Exit
)

func isMetaCommand(inputBuffer string) bool {
	return len(inputBuffer) > 0 && inputBuffer[:1] == "."
}

func doMetaCommand(inputBuffer string) metaCommand {
	switch inputBuffer {
	case "exit":
		return Exit
	default:
		return Unknown
	}
}

// Session reads one command per line and writes one reply per command,
// every reply is preceded by the prompt
type Session struct {
	db     *minidb.Database
	logger *zap.Logger
}

func New(logger *zap.Logger, db *minidb.Database) *Session {
	return &Session{
		db:     db,
		logger: logger,
	}
}

// Run executes commands until .exit or the end of input, both of which are an
// orderly shutdown returning nil. Any other returned error means the session
// was aborted, replies written before that are still flushed.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) (err error) {
	w := bufio.NewWriter(out)
	defer func() {
		err = multierr.Append(err, w.Flush())
	}()

	reader := bufio.NewReader(in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := w.WriteString(Prompt); err != nil {
			return fmt.Errorf("write prompt: %w", err)
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("flush output: %w", err)
		}

		line, tooLong, err := readLine(reader)
		if errors.Is(err, io.EOF) {
			s.logger.Debug("end of input")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		inputBuffer := strings.TrimSpace(line)
		if tooLong {
			s.logger.Warn("input line too long", zap.Int("limit", maxLineSize))
			reply(w, overlongReply(inputBuffer))
			continue
		}
		s.logger.Debug("received command", zap.String("input", inputBuffer))

		if isMetaCommand(inputBuffer) {
			switch doMetaCommand(inputBuffer[1:]) {
			case Exit:
				s.logger.Debug("exit requested")
				return nil
			case Unknown:
				reply(w, unrecognized(inputBuffer))
			}
			continue
		}

		if err := s.execute(ctx, w, inputBuffer); err != nil {
			return err
		}
	}
}

// readLine returns the next line without its line ending. A line longer than
// maxLineSize is consumed in full but only its first maxLineSize bytes are
// returned, with tooLong set.
func readLine(r *bufio.Reader) (line string, tooLong bool, err error) {
	var buf []byte
	for {
		fragment, isPrefix, err := r.ReadLine()
		if err != nil {
			// last line without a trailing newline
			if errors.Is(err, io.EOF) && (len(buf) > 0 || tooLong) {
				return string(buf), tooLong, nil
			}
			return "", false, err
		}

		if room := maxLineSize - len(buf); len(fragment) > room {
			buf = append(buf, fragment[:room]...)
			tooLong = true
		} else {
			buf = append(buf, fragment...)
		}

		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

func (s *Session) execute(ctx context.Context, w io.Writer, inputBuffer string) error {
	stmt, err := s.db.PrepareStatement(ctx, inputBuffer)
	if err != nil {
		s.logger.Debug("could not prepare statement", zap.Error(err))
		reply(w, prepareErrorReply(inputBuffer, err))
		return nil
	}

	aResult, err := s.db.ExecuteStatement(ctx, stmt)
	if errors.Is(err, minidb.ErrTableFull) {
		reply(w, replyTableFull)
		return nil
	}
	if err != nil {
		return fmt.Errorf("execute %s: %w", stmt.Kind, err)
	}

	if stmt.Kind == minidb.Select {
		for aRow, err := range aResult.Rows {
			if err != nil {
				return fmt.Errorf("select: %w", err)
			}
			reply(w, aRow.String())
		}
	}
	reply(w, replyExecuted)

	return nil
}

func prepareErrorReply(inputBuffer string, err error) string {
	switch {
	case errors.Is(err, parser.ErrSyntax):
		return replySyntaxError
	case errors.Is(err, parser.ErrInvalidID):
		return replyInvalidID
	case errors.Is(err, parser.ErrNegativeID):
		return replyNegativeID
	case errors.Is(err, minidb.ErrStringTooLong):
		return replyStringTooLong
	default:
		return unrecognized(inputBuffer)
	}
}

// overlongReply answers a line that was cut at maxLineSize, it can never be a
// valid statement
func overlongReply(inputBuffer string) string {
	word := inputBuffer
	if i := strings.IndexFunc(inputBuffer, unicode.IsSpace); i >= 0 {
		word = inputBuffer[:i]
	}
	if word == "insert" {
		return replySyntaxError
	}
	return unrecognized(inputBuffer)
}

func unrecognized(inputBuffer string) string {
	return fmt.Sprintf("Unrecognized command '%s'.", inputBuffer)
}

// reply relies on bufio.Writer keeping the first write error,
// it surfaces on the next flush
func reply(w io.Writer, text string) {
	fmt.Fprintln(w, text)
}
