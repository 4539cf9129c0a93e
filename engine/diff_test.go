package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanctl/ctdiff/security"
)

func classicLevenshtein(a, b []Token) int {
	n, m := len(a), len(b)
	prev := make([]int, m+1)
	cur := make([]int, m+1)
	for j := 0; j <= m; j++ {
		prev[j] = j
	}
	for i := 1; i <= n; i++ {
		cur[0] = i
		for j := 1; j <= m; j++ {
			cost := 1
			if a[i-1].Equal(b[j-1]) {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			best := del
			if ins < best {
				best = ins
			}
			if sub < best {
				best = sub
			}
			cur[j] = best
		}
		prev, cur = cur, prev
	}
	return prev[m]
}

// replayScript applies script to a, asserting it reconstructs b.
func replayScript(t *testing.T, script []Op, a, b []Token) {
	t.Helper()
	var out []Token
	for _, op := range script {
		switch op.Type {
		case Keep:
			out = append(out, a[op.AIndex])
		case Substitute:
			out = append(out, b[op.BIndex])
		case Insert:
			out = append(out, b[op.BIndex])
		case Delete:
			// consumes a[op.AIndex], contributes nothing to b
		}
	}
	require.Equal(t, len(b), len(out), "replayed length mismatch")
	for i := range b {
		assert.Truef(t, out[i].Equal(b[i]), "position %d: got %v want %v", i, out[i], b[i])
	}
}

func basicConfig(t *testing.T) *security.Config {
	t.Helper()
	cfg, err := security.NewConfig()
	require.NoError(t, err)
	return cfg
}

func strictConfig(t *testing.T, paddingSize, maxInputSize int) *security.Config {
	t.Helper()
	cfg, err := security.NewConfig(
		security.WithMaxInputSize(maxInputSize),
		security.WithPadding(paddingSize),
		security.WithTimingProtection(security.Strict),
	)
	require.NoError(t, err)
	return cfg
}

func lineTokens(lines ...string) []Token {
	var out []Token
	for _, l := range lines {
		out = append(out, LineToken(l))
	}
	return out
}

func byteTokens(s string) []Token {
	return BytesToTokens([]byte(s))
}

func TestRunKittenSitting(t *testing.T) {
	a, b := byteTokens("kitten"), byteTokens("sitting")
	cfg := basicConfig(t)
	res, err := Run(cfg, a, b)
	require.NoError(t, err)
	assert.Equal(t, 3, res.EditDistance)
	assert.Equal(t, 3, classicLevenshtein(a, b))
	replayScript(t, res.Script, a, b)
	assert.False(t, res.IsIdentical)
}

func TestRunHelloWorldHelloRust(t *testing.T) {
	a, b := byteTokens("hello world"), byteTokens("hello rust")
	cfg := basicConfig(t)
	res, err := Run(cfg, a, b)
	require.NoError(t, err)
	assert.Equal(t, classicLevenshtein(a, b), res.EditDistance)
	replayScript(t, res.Script, a, b)
}

func TestRunIdentical(t *testing.T) {
	a := byteTokens("abcdef")
	b := byteTokens("abcdef")
	cfg := basicConfig(t)
	res, err := Run(cfg, a, b)
	require.NoError(t, err)
	assert.Equal(t, 0, res.EditDistance)
	assert.True(t, res.IsIdentical)
	assert.Equal(t, len(a), res.Stats.Keeps)
	replayScript(t, res.Script, a, b)
}

func TestRunEmptyA(t *testing.T) {
	var a []Token
	b := byteTokens("abc")
	cfg := basicConfig(t)
	res, err := Run(cfg, a, b)
	require.NoError(t, err)
	assert.Equal(t, 3, res.EditDistance)
	assert.Equal(t, 3, res.Stats.Insertions)
	replayScript(t, res.Script, a, b)
}

func TestRunEmptyB(t *testing.T) {
	a := byteTokens("abc")
	var b []Token
	cfg := basicConfig(t)
	res, err := Run(cfg, a, b)
	require.NoError(t, err)
	assert.Equal(t, 3, res.EditDistance)
	assert.Equal(t, 3, res.Stats.Deletions)
	require.Len(t, res.Script, 3)
}

func TestRunBothEmpty(t *testing.T) {
	cfg := basicConfig(t)
	res, err := Run(cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.EditDistance)
	assert.True(t, res.IsIdentical)
	assert.Empty(t, res.Script)
}

func TestRunLineSubstitution(t *testing.T) {
	a := lineTokens("one\n", "two\n", "three\n")
	b := lineTokens("one\n", "TWO\n", "three\n")
	cfg := basicConfig(t)
	res, err := Run(cfg, a, b)
	require.NoError(t, err)
	assert.Equal(t, 1, res.EditDistance)
	assert.Equal(t, 1, res.Stats.Substitutions)
	assert.Equal(t, 2, res.Stats.Keeps)
	replayScript(t, res.Script, a, b)
}

func TestRunMaxEditDistanceCapped(t *testing.T) {
	a, b := byteTokens("kitten"), byteTokens("sitting")
	cfg, err := security.NewConfig(security.WithMaxEditDistance(1))
	require.NoError(t, err)
	res, err := Run(cfg, a, b)
	require.NoError(t, err)
	assert.True(t, res.CapExceeded)
	assert.Equal(t, 0, res.EditDistance)
	assert.Nil(t, res.Script)
	// Stats must not leak the true edit distance through op counts or
	// similarity once the cap trips.
	assert.Equal(t, Statistics{}, res.Stats)
}

func TestRunMaxInputSizeRejected(t *testing.T) {
	cfg, err := security.NewConfig(security.WithMaxInputSize(4))
	require.NoError(t, err)
	_, err = Run(cfg, byteTokens("abcde"), byteTokens("ab"))
	assert.Error(t, err)
}

func TestRunStrictModePadded(t *testing.T) {
	a, b := byteTokens("kitten"), byteTokens("sitting")
	cfg := strictConfig(t, 16, 16)
	res, err := Run(cfg, a, b)
	require.NoError(t, err)
	assert.Equal(t, 3, res.EditDistance)
	replayScript(t, res.Script, a, b)
}

func TestRunSwapSymmetry(t *testing.T) {
	cfg := basicConfig(t)
	a, b := byteTokens("kitten"), byteTokens("sitting")
	fwd, err := Run(cfg, a, b)
	require.NoError(t, err)
	rev, err := Run(cfg, b, a)
	require.NoError(t, err)
	assert.Equal(t, fwd.EditDistance, rev.EditDistance)
}
