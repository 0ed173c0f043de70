package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"laptudirm.com/x/breakthrough/pkg/archive"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := Root()
	root.SetArgs(args)
	root.SetOut(&out)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTournamentCommand(t *testing.T) {
	t.Setenv("REDIS_URL", "")

	dir := t.TempDir()
	dataDir, logDir := filepath.Join(dir, "data"), filepath.Join(dir, "logs")

	out, err := execute(t, "tournament",
		"--games", "3", "--concurrency", "2", "--seed", "42",
		"--name1", "alpha", "--name2", "beta",
		"--data-dir", dataDir, "--log-dir", logDir,
		"--env-file", filepath.Join(dir, "missing.env"),
	)
	require.NoError(t, err)
	require.Contains(t, out, "Total games: 3")

	archives, err := filepath.Glob(filepath.Join(dataDir, "tournament_*.yaml"))
	require.NoError(t, err)
	require.Len(t, archives, 1)

	record, err := archive.Load(archives[0])
	require.NoError(t, err)
	require.Equal(t, "alpha", record.Player1)
	require.Equal(t, "beta", record.Player2)
	require.Equal(t, 3, record.Games)
	require.Len(t, record.Results, 3)

	summaries, err := filepath.Glob(filepath.Join(logDir, "tournament_*_summary.txt"))
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	require.FileExists(t, filepath.Join(logDir, "breakthrough.log"))

	out, err = execute(t, "replay", archives[0])
	require.NoError(t, err)
	require.Contains(t, out, "alpha wins:")

	out, err = execute(t, "replay", archives[0], "2")
	require.NoError(t, err)
	require.Contains(t, out, "Game #2: beta vs alpha")
	require.Contains(t, out, "Starting position:")

	_, err = execute(t, "replay", archives[0], "4")
	require.Error(t, err)
}

func TestTournamentCommandRedis(t *testing.T) {
	server := miniredis.RunT(t)
	dir := t.TempDir()

	_, err := execute(t, "tournament",
		"--games", "1", "--format", "json",
		"--redis-url", "redis://"+server.Addr(),
		"--data-dir", filepath.Join(dir, "data"), "--log-dir", filepath.Join(dir, "logs"),
		"--env-file", filepath.Join(dir, "missing.env"),
	)
	require.NoError(t, err)

	entries, err := server.List(archive.ListKey)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	archives, err := filepath.Glob(filepath.Join(dir, "data", "tournament_*.json"))
	require.NoError(t, err)
	require.Len(t, archives, 1)

	record, err := archive.Load(archives[0])
	require.NoError(t, err)

	out, err := execute(t, "replay", "--redis-url", "redis://"+server.Addr(), record.ID)
	require.NoError(t, err)
	require.Contains(t, out, "Tournament ID: "+record.ID)
}

func TestTournamentCommandErrors(t *testing.T) {
	dir := t.TempDir()
	common := []string{
		"--data-dir", filepath.Join(dir, "data"), "--log-dir", filepath.Join(dir, "logs"),
		"--env-file", filepath.Join(dir, "missing.env"),
	}

	t.Setenv("OPENAI_API_KEY", "")

	_, err := execute(t, append([]string{"tournament", "--games", "-1"}, common...)...)
	require.Error(t, err)

	_, err = execute(t, append([]string{"tournament", "--format", "xml"}, common...)...)
	require.Error(t, err)

	_, err = execute(t, append([]string{"tournament", "--player1", "openai"}, common...)...)
	require.Error(t, err, "missing API key")

	_, err = execute(t, append([]string{"tournament", "--player1", "chess-engine"}, common...)...)
	require.Error(t, err)

	_, err = execute(t, append([]string{"tournament", "--name1", "same", "--name2", "same"}, common...)...)
	require.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.yaml")
	require.NoError(t, os.WriteFile(path, []byte("games: 10\ntimeout: 5s\nname1: file-alpha\nseed: 7\n"), 0644))

	cmd := Tournament()
	require.NoError(t, cmd.ParseFlags([]string{"--games", "4", "--config", path}))
	require.NoError(t, applyConfigFile(cmd.Flags(), path))

	opts, err := readTournamentFlags(cmd.Flags())
	require.NoError(t, err)

	require.Equal(t, 4, opts.Games, "command line flags take precedence")
	require.Equal(t, 5*time.Second, opts.Timeout)
	require.Equal(t, "file-alpha", opts.Agents[0].Name)
	require.Equal(t, "Random-Player2", opts.Agents[1].Name)
	require.Equal(t, uint64(7), opts.Agents[0].Seed)
	require.Equal(t, uint64(8), opts.Agents[1].Seed)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("openings: book.epd\n"), 0644))
	require.Error(t, applyConfigFile(Tournament().Flags(), bad))
}

func TestAPIsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OPENAI_API_KEY=sk-test\n"), 0600))
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	out, err := execute(t, "apis", "--env-file", path)
	require.NoError(t, err)
	require.Regexp(t, `openai.*configured`, out)
	require.Regexp(t, `anthropic.*missing key`, out)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	require.Equal(t, Version+"\n", out)
}
