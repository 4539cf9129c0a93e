package ctdiff

import (
	"golang.org/x/sync/errgroup"

	"github.com/tanctl/ctdiff/engine"
)

// TokenPair is one (A, B) input to CompareBatch.
type TokenPair struct {
	A, B []engine.Token
}

// CompareBatch runs CompareTokens over pairs concurrently, one
// goroutine per pair, implementing §5's concurrency model: "independent
// diffs may run in parallel on independent threads... no shared
// mutable state." Each goroutine owns its own matrix and result; cfg
// is read-only and shared, which is safe since security.Config is
// immutable after NewConfig/Configure returns.
//
// If any pair fails, CompareBatch returns the first error encountered
// and no partial results, matching §7's "all errors are terminal for
// the current diff; no partial result is returned" applied at the
// batch granularity.
func CompareBatch(cfg *Config, pairs []TokenPair) ([]*DiffResult, error) {
	results := make([]*DiffResult, len(pairs))
	var g errgroup.Group
	for i, pair := range pairs {
		i, pair := i, pair
		g.Go(func() error {
			res, err := CompareTokens(cfg, pair.A, pair.B)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
