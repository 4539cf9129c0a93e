package ctdiff

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareBytesKittenSitting(t *testing.T) {
	cfg, err := Configure(WithSecurityLevel(Fast))
	require.NoError(t, err)

	res, err := CompareBytes(cfg, []byte("kitten"), []byte("sitting"))
	require.NoError(t, err)
	assert.Equal(t, 3, res.EditDistance())
	assert.False(t, res.IsIdentical())
	assert.InDelta(t, 1-3.0/7.0, res.Similarity(), 1e-9)
}

func TestCompareTextLineSubstitution(t *testing.T) {
	cfg, err := Configure()
	require.NoError(t, err)

	res, err := CompareText(cfg, "foo\nbar\nbaz\n", "foo\nqux\nbaz\n")
	require.NoError(t, err)
	assert.Equal(t, 1, res.EditDistance())
	assert.Equal(t, 1, res.Statistics().Substitutions)
	assert.Equal(t, 2, res.Statistics().Keeps)
}

func TestCompareBytesRejectsOversizedInput(t *testing.T) {
	cfg, err := Configure(WithSecurityLevel(Maximum))
	require.NoError(t, err)

	oversized := make([]byte, 4097)
	for i := range oversized {
		oversized[i] = 'a'
	}
	_, err = CompareBytes(cfg, oversized, []byte("x"))
	require.Error(t, err)
	var ctErr *Error
	require.ErrorAs(t, err, &ctErr)
	assert.Equal(t, Security, ctErr.Kind)
}

func TestCompareBytesRejectsControlBytes(t *testing.T) {
	cfg, err := Configure()
	require.NoError(t, err)

	_, err = CompareBytes(cfg, []byte{0x01, 0x02}, []byte("ok"))
	require.Error(t, err)
	var ctErr *Error
	require.ErrorAs(t, err, &ctErr)
	assert.Equal(t, Security, ctErr.Kind)
}

func TestCompareFiles(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.txt")
	pathB := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(pathA, []byte("one\ntwo\n"), 0o644))
	require.NoError(t, os.WriteFile(pathB, []byte("one\nTWO\n"), 0o644))

	cfg, err := Configure()
	require.NoError(t, err)

	res, err := CompareFiles(cfg, pathA, pathB)
	require.NoError(t, err)
	assert.Equal(t, 1, res.EditDistance())
}

func TestCompareFilesMissingIsIoError(t *testing.T) {
	cfg, err := Configure()
	require.NoError(t, err)

	_, err = CompareFiles(cfg, "/nonexistent/a", "/nonexistent/b")
	require.Error(t, err)
	var ctErr *Error
	require.ErrorAs(t, err, &ctErr)
	assert.Equal(t, Io, ctErr.Kind)
}

func TestCompareFilesAsync(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.txt")
	pathB := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(pathA, []byte("abc"), 0o644))
	require.NoError(t, os.WriteFile(pathB, []byte("abd"), 0o644))

	cfg, err := Configure()
	require.NoError(t, err)

	ch := CompareFilesAsync(context.Background(), cfg, pathA, pathB)
	out := <-ch
	require.NoError(t, out.Err)
	assert.Equal(t, 1, out.Result.EditDistance())
}

func TestCompareFilesAsyncCanceled(t *testing.T) {
	cfg, err := Configure()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := CompareFilesAsync(ctx, cfg, "irrelevant-a", "irrelevant-b")
	out := <-ch
	require.Error(t, out.Err)
}
