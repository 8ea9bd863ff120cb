package e2etests

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RichardKnop/minidb/internal/minidb"
	"github.com/RichardKnop/minidb/internal/parser"
	"github.com/RichardKnop/minidb/internal/pkg/logging"
	"github.com/RichardKnop/minidb/internal/repl"
)

// runScript drives a fresh database the way an external process driver would:
// it writes all commands, closes the input side and reads everything until the
// output is closed
func runScript(t *testing.T, commands []string) []string {
	t.Helper()

	logger, err := logging.New("warn")
	require.NoError(t, err)

	var (
		ctx       = context.Background()
		aPager    = minidb.NewPager(logger, minidb.MaxPages)
		aTable    = minidb.NewTable(logger, minidb.DefaultTableName, aPager)
		aDatabase = minidb.NewDatabase(logger, parser.New(), aTable)
		aSession  = repl.New(logger, aDatabase)

		stdinReader, stdinWriter   = io.Pipe()
		stdoutReader, stdoutWriter = io.Pipe()
		sessionErr                 = make(chan error, 1)
		writeErr                   = make(chan error, 1)
	)

	go func() {
		err := aSession.Run(ctx, stdinReader, stdoutWriter)
		// Unblock the writer in case the session stopped reading early
		stdinReader.Close()
		stdoutWriter.CloseWithError(err)
		sessionErr <- err
	}()

	go func() {
		for _, command := range commands {
			if _, err := io.WriteString(stdinWriter, command+"\n"); err != nil {
				writeErr <- err
				return
			}
		}
		writeErr <- stdinWriter.Close()
	}()

	rawOutput, err := io.ReadAll(stdoutReader)
	require.NoError(t, err)
	require.NoError(t, <-sessionErr)
	// Writes after .exit fail with io.ErrClosedPipe, that is expected
	if err := <-writeErr; err != nil {
		require.ErrorIs(t, err, io.ErrClosedPipe)
	}

	return strings.Split(string(rawOutput), "\n")
}
