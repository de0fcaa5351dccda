package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	var cmd *cobra.Command
	switch args[0] {
	case "gen":
		cmd = newGenCmd()
	case "run":
		cmd = newRunCmd()
	case "search":
		cmd = newSearchCmd()
	default:
		t.Fatalf("unknown subcommand %q", args[0])
	}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args[1:])
	require.NoError(t, cmd.Execute())
	return out.String()
}

// TestGenTable pins the table rendering byte for byte.
func TestGenTable(t *testing.T) {
	out := runCommand(t, "gen",
		"--step", "3", "--base", "10", "--ge", "-9", "--le", "9")
	g := goldie.New(t)
	g.Assert(t, "gen_table", []byte(out))
}

func TestGenDescending(t *testing.T) {
	out := runCommand(t, "gen", "--ge", "1", "--le", "3", "--desc")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "3", strings.Fields(lines[1])[0])
	assert.Equal(t, "1", strings.Fields(lines[3])[0])
}

func TestGenLimitZero(t *testing.T) {
	out := runCommand(t, "gen", "--ge", "0", "--le", "9", "--limit", "0")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 1) // header only
}

func TestGenCount(t *testing.T) {
	out := runCommand(t, "gen", "--step", "3", "--ge", "0", "--le", "10", "--count")
	assert.Equal(t, "4\n", out)
}

func TestRunRequest(t *testing.T) {
	doc := `step: 3
base: 10
where:
  - {op: ">=", value: -9}
  - {op: "<=", value: 9}
order: asc
`
	path := filepath.Join(t.TempDir(), "req.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out := runCommand(t, "run", path)
	g := goldie.New(t)
	g.Assert(t, "gen_table", []byte(out))
}

func TestRunRequestOffsetLimit(t *testing.T) {
	doc := `where:
  - {op: ">=", value: 0}
  - {op: "<=", value: 10}
offset: 2
limit: 2
order: asc
`
	path := filepath.Join(t.TempDir(), "req.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out := runCommand(t, "run", path)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2", strings.Fields(lines[1])[0])
	assert.Equal(t, "3", strings.Fields(lines[2])[0])
}

func TestRunRequestBadOperator(t *testing.T) {
	doc := "where:\n  - {op: \"!=\", value: 1}\n"
	path := filepath.Join(t.TempDir(), "req.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cmd := newRunCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{path})
	assert.Error(t, cmd.Execute())
}

func TestSearch(t *testing.T) {
	assert.Equal(t, "2\n", runCommand(t, "search", "abcabc", "bc"))
	assert.Equal(t, "5\n", runCommand(t, "search", "--reverse", "abcabc", "bc"))
	assert.Equal(t, "3\n", runCommand(t, "search", "--bytes", "abcabc", "ca"))
	assert.Equal(t, "0\n", runCommand(t, "search", "abcabc", "xyz"))
}
