package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&errOut)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestGenerateCommandText(t *testing.T) {
	out, _, err := runCLI(t, "generate", "--list", "cat,car", "--words", "2", "--rows", "5", "--cols", "5", "--fill")
	require.NoError(t, err)

	assert.Contains(t, out, ".....\n.....\n.CAT.\n.A...\n.R...\n")
	assert.Contains(t, out, "2/2 words placed, 4 crossings")
}

func TestGenerateCommandJSON(t *testing.T) {
	out, _, err := runCLI(t, "generate", "--list", "cat,car,tar", "--words", "3", "--rows", "7", "--cols", "7", "--json")
	require.NoError(t, err)

	var gen Generation
	require.NoError(t, json.Unmarshal([]byte(out), &gen))
	assert.Equal(t, 3, gen.RequestedWords)
	assert.Equal(t, 1, gen.PlacedCount)
	assert.Len(t, gen.Words, 3)
	assert.NotEmpty(t, gen.Crossings)
}

func TestGenerateCommandDeferAnchor(t *testing.T) {
	plain, _, err := runCLI(t, "generate", "--seed", "5", "--words", "4", "--rows", "9", "--cols", "9")
	require.NoError(t, err)
	deferred, _, err := runCLI(t, "generate", "--seed", "5", "--words", "4", "--rows", "9", "--cols", "9", "--defer-anchor")
	require.NoError(t, err)
	assert.Equal(t, plain, deferred, "rebuilding after generation yields the same grid")
}

func TestGenerateCommandUnplaceable(t *testing.T) {
	_, _, err := runCLI(t, "generate", "--list", "cat,dog", "--words", "2", "--rows", "2", "--cols", "2")
	assert.ErrorIs(t, err, ErrUnplaceable)
}

func TestVerboseLogging(t *testing.T) {
	_, stderr, err := runCLI(t, "-v", "generate", "--list", "cat,car", "--words", "2", "--rows", "5", "--cols", "5")
	require.NoError(t, err)
	assert.Contains(t, stderr, "anchor placed")
	assert.Contains(t, stderr, "puzzle generated")

	_, stderr, err = runCLI(t, "generate", "--list", "cat,car", "--words", "2", "--rows", "5", "--cols", "5")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "anchor placed", "debug lines need --verbose")
}
