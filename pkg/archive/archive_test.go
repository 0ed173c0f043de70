package archive

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/breakthrough/pkg/game"
	"laptudirm.com/x/breakthrough/pkg/match"
	"laptudirm.com/x/breakthrough/pkg/tournament"
)

func testRecord() Record {
	start := time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.UTC)
	board := game.NewBoard().String()

	return Record{
		ID:        "20240506_070809-deadbeef",
		Player1:   "alpha",
		Player2:   "beta",
		Games:     3,
		Timestamp: start,
		Results: []tournament.GameResult{
			{
				Index: 1, First: "alpha", Second: "beta",
				Winner: "alpha", Loser: "beta", Reason: game.ByBreakthrough,
				Moves:     []string{"a2 to a3"},
				Boards:    []string{board, board},
				Timestamp: start,
				Duration:  1500 * time.Millisecond,
				MoveCount: 1,
			},
			{
				Index: 2, First: "beta", Second: "alpha",
				Draw: true, Reason: game.ByStalemate,
				Moves:     []string{},
				Boards:    []string{board},
				Timestamp: start.Add(time.Second),
				Duration:  time.Second,
			},
			{
				Index: 3, First: "alpha", Second: "beta",
				Incomplete: true, Reason: match.ByAgentError, Error: "agent beta: api down",
				Moves:     []string{},
				Boards:    []string{board},
				Timestamp: start.Add(2 * time.Second),
				Duration:  42 * time.Millisecond,
			},
		},
	}
}

func TestFileSinkRoundTrip(t *testing.T) {
	for _, format := range []string{FormatYAML, FormatJSON} {
		t.Run(format, func(t *testing.T) {
			sink := &FileSink{Dir: filepath.Join(t.TempDir(), "data"), Format: format}
			record := testRecord()

			require.NoError(t, sink.Write(context.Background(), record))

			path := sink.Path(record.ID)
			require.Equal(t, "tournament_20240506_070809-deadbeef."+format, filepath.Base(path))

			loaded, err := Load(path)
			require.NoError(t, err)
			require.Equal(t, record, loaded)
		})
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.txt")
	require.NoError(t, os.WriteFile(path, []byte("id: x"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestMarshalUnknownFormat(t *testing.T) {
	_, err := Marshal(testRecord(), "xml")
	require.Error(t, err)
}

func TestRedisSink(t *testing.T) {
	server := miniredis.RunT(t)
	ctx := context.Background()

	sink, err := NewRedisSink(ctx, "redis://"+server.Addr())
	require.NoError(t, err)
	defer sink.Close()

	record := testRecord()
	require.NoError(t, sink.Write(ctx, record))

	loaded, err := sink.Read(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, record, loaded)

	entries, err := sink.Client.LRange(ctx, ListKey, 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	_, err = sink.Read(ctx, "missing")
	require.ErrorIs(t, err, redis.Nil)
}

func TestNewRedisSinkUnreachable(t *testing.T) {
	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	_, err := NewRedisSink(context.Background(), "redis://"+addr)
	require.Error(t, err)

	_, err = NewRedisSink(context.Background(), "not a url")
	require.Error(t, err)
}

type failingSink struct{ err error }

func (sink failingSink) Write(context.Context, Record) error { return sink.err }

func TestMultiSink(t *testing.T) {
	dir := t.TempDir()
	first, second := errors.New("first"), errors.New("second")

	sinks := MultiSink{failingSink{first}, &FileSink{Dir: dir}, failingSink{second}}
	err := sinks.Write(context.Background(), testRecord())

	require.ErrorIs(t, err, first)
	require.ErrorIs(t, err, second)
	require.FileExists(t, filepath.Join(dir, "tournament_20240506_070809-deadbeef.yaml"))

	require.NoError(t, MultiSink{&FileSink{Dir: dir}}.Write(context.Background(), testRecord()))
}

func TestWriteSummary(t *testing.T) {
	record := testRecord()
	summary := tournament.ComputeStats([2]string{"alpha", "beta"}, record.Results)

	var b bytes.Buffer
	require.NoError(t, WriteSummary(&b, record, summary))

	out := b.String()
	require.Contains(t, out, "Tournament ID: 20240506_070809-deadbeef")
	require.Contains(t, out, "alpha wins: 1")
	require.Contains(t, out, "beta wins: 0")
	require.Contains(t, out, "Draws: 1")
	require.Contains(t, out, "Incomplete: 1")
	require.Contains(t, out, "Total games: 3")
	require.Contains(t, out, "Total duration: 2.54s")
	require.Regexp(t, `2\s+Draw\s+-\s+0\s+1\.00s`, out)
	require.Regexp(t, `3\s+Incomplete\s+-\s+0\s+0\.04s`, out)
}

func TestSummarySink(t *testing.T) {
	sink := &SummarySink{Dir: t.TempDir()}
	record := testRecord()

	require.NoError(t, sink.Write(context.Background(), record))

	data, err := os.ReadFile(sink.Path(record.ID))
	require.NoError(t, err)
	require.Contains(t, string(data), "alpha wins: 1")
	require.Equal(t, "tournament_20240506_070809-deadbeef_summary.txt", filepath.Base(sink.Path(record.ID)))
}
