package log

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lineRe = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] .+$`)

func newTestLogger(t *testing.T) (*Logger, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var console, sink bytes.Buffer
	zlog := zerolog.Nop()
	ctx := zlog.WithContext(context.Background())
	return New(ctx, &console, &sink), &console, &sink
}

func sinkLines(sink *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(sink.String(), "\n"), "\n")
}

func TestRunLogLineFormat(t *testing.T) {
	l, _, sink := newTestLogger(t)

	l.Info("indexing existing files")
	l.Warning("root folder /data/x not found, skipping")
	l.Error("copying g1.csv: permission denied")
	l.Success("harvest complete")

	lines := sinkLines(sink)
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Regexp(t, lineRe, line)
	}
	assert.True(t, strings.HasSuffix(lines[0], "] indexing existing files"))
}

func TestLogFileOperation(t *testing.T) {
	l, console, sink := newTestLogger(t)

	l.LogFileOperation(FileOperation{
		Name:        "g1.csv",
		Source:      "/data/A/site1/drishti_backup/g1.csv",
		Destination: "/archive/out/g1.csv",
	})
	l.LogFileOperation(FileOperation{
		Name:        "g1.csv",
		Source:      "/data/B/site9/drishti_backup/g1.csv",
		Destination: "/archive/out/duplicates/g1.csv",
		Duplicate:   true,
	})

	assert.Contains(t, console.String(), "Archived g1.csv")
	assert.Contains(t, console.String(), "Duplicate g1.csv")

	lines := sinkLines(sink)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "copied /data/A/site1/drishti_backup/g1.csv -> /archive/out/g1.csv")
	assert.Contains(t, lines[1], "-> /archive/out/duplicates/g1.csv")
}

func TestProgress(t *testing.T) {
	l, console, sink := newTestLogger(t)

	l.Progress(25)

	assert.Contains(t, console.String(), "processed 25 files")
	require.Len(t, sinkLines(sink), 1)
	assert.Regexp(t, lineRe, sinkLines(sink)[0])
}

func TestHeaderAndRoot(t *testing.T) {
	l, console, sink := newTestLogger(t)

	l.Header("harvesting CSV backups")
	l.StartRoot("/data/A")

	assert.Contains(t, console.String(), "csvharvest")
	assert.Contains(t, console.String(), "[scanning")
	assert.Contains(t, sink.String(), "] harvesting CSV backups")
	assert.Contains(t, sink.String(), "] scanning root /data/A")
}

func TestRunLogPath(t *testing.T) {
	start := time.Date(2026, 8, 23, 9, 30, 15, 0, time.Local)
	path := RunLogPath(start)

	assert.Equal(t, "csvharvest_20260823_093015.log", filepath.Base(path))
}

func TestNilSink(t *testing.T) {
	var console bytes.Buffer
	zlog := zerolog.Nop()
	ctx := zlog.WithContext(context.Background())
	l := New(ctx, &console, nil)

	// Must not panic without a run-log sink.
	l.Info("hello")
	l.Progress(1)
	require.NoError(t, l.Close())
}
