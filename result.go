package ctdiff

import "github.com/tanctl/ctdiff/engine"

// Formatter renders a DiffResult to a caller-chosen shape (JSON, HTML,
// unified diff, git-style, summary...). Formatters are explicitly out
// of scope for this package (§1) — Format exists only as the
// injection point §6 describes ("format(format_tag) delegates to an
// external formatter").
type Formatter interface {
	Format(r *DiffResult) (string, error)
}

// DiffResult wraps the engine's result with the read-only accessor
// surface of §6.
type DiffResult struct {
	inner *engine.Result
}

// EditDistance returns the computed edit distance. Zero if CapExceeded
// is true (the numeric distance is withheld in that case, per §4.2/§9).
func (r *DiffResult) EditDistance() int { return r.inner.EditDistance }

// Similarity returns 1 - edit_distance/max(|A|,|B|,1). Zero value (not
// meaningful) when CapExceeded is true — similarity is invertible to
// the exact numeric distance, which the cap withholds.
func (r *DiffResult) Similarity() float64 { return r.inner.Stats.Similarity }

// IsIdentical reports whether A and B were equal.
func (r *DiffResult) IsIdentical() bool { return r.inner.IsIdentical }

// Statistics returns the derived op counts and similarity. Zero value
// when CapExceeded is true: the op counts sum to the true edit
// distance and similarity inverts to it, both of which the cap exists
// to withhold (§4.2/§4.3).
func (r *DiffResult) Statistics() engine.Statistics { return r.inner.Stats }

// Script returns the edit script. Empty (and EditDistance/IsIdentical
// meaningless) when CapExceeded is true.
func (r *DiffResult) Script() []engine.Op { return r.inner.Script }

// CapExceeded reports whether max_edit_distance was configured and
// exceeded; when true, only this flag is meaningful — EditDistance,
// Script, and Statistics are all left at their zero values.
func (r *DiffResult) CapExceeded() bool { return r.inner.CapExceeded }

// Format delegates rendering to an external Formatter (§6). The core
// never implements one itself.
func (r *DiffResult) Format(f Formatter) (string, error) {
	if f == nil {
		return "", &Error{Kind: Format, Message: "no formatter supplied"}
	}
	out, err := f.Format(r)
	if err != nil {
		return "", &Error{Kind: Format, Message: err.Error()}
	}
	return out, nil
}
