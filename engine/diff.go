package engine

import "github.com/tanctl/ctdiff/security"

// Run drives the constant-time diff engine end to end: admission,
// normalization (padding), matrix fill, backtrace, script trimming,
// and (if configured) memory scrubbing. a and b are the real,
// unpadded token sequences.
//
// Run corresponds to §4.3's state machine: Idle -> Validating ->
// Normalizing -> FillingMatrix -> Backtracing -> Scrubbing -> Idle.
// Run performs length admission itself (security.Admit) before any
// other work; byte-range validation (security.ValidateByteRange) works
// on raw bytes and is the caller's responsibility before tokenizing.
func Run(cfg *security.Config, a, b []Token) (*Result, error) {
	realLenA, realLenB := len(a), len(b)

	if err := security.Admit(cfg, realLenA, realLenB); err != nil {
		return nil, err
	}

	// Padding is only applied when the config asks for it (§4.2);
	// TargetLength's return value is meaningless to a caller running
	// unpadded, per its own doc comment. In unpadded (Basic) mode the
	// matrix's declared bounds are the real lengths, matching
	// security's documented contract for that mode.
	paddedA, paddedB := a, b
	if cfg.PadInputs {
		target := security.TargetLength(cfg, realLenA, realLenB)
		paddedA = padTokens(a, target)
		paddedB = padTokens(b, target)
	}

	n, m := len(paddedA), len(paddedB)

	var script []Op
	var editDistance int

	switch {
	case n == 0:
		// Both real and padded A are empty (§8 "Empty A" boundary).
		script = insertAll(b)
		editDistance = realLenB
	case m == 0:
		script = deleteAll(a)
		editDistance = realLenA
	default:
		cm := newCostMatrix(n+1, m+1, cfg.TimingProtection == security.Strict)
		fillMatrix(cm, paddedA, paddedB)
		editDistance = int(cm.get(realLenA, realLenB))
		steps := obliviousBacktrace(cm, paddedA, paddedB, realLenA, realLenB)
		script = reverseValidPrefix(steps)
		if cfg.MemoryProtection {
			cm.scrub()
		}
	}

	stats := statisticsFromScript(script)
	maxLen := realLenA
	if realLenB > maxLen {
		maxLen = realLenB
	}
	if maxLen == 0 {
		maxLen = 1
	}
	stats.Similarity = 1 - float64(editDistance)/float64(maxLen)

	result := &Result{
		EditDistance: editDistance,
		Script:       script,
		Stats:        stats,
		IsIdentical:  editDistance == 0,
	}

	if cfg.MaxEditDistanceSet && editDistance > cfg.MaxEditDistance {
		// §4.2/§4.3: a capped failure never surfaces the numeric distance,
		// and not just directly — Stats.Insertions+Deletions+Substitutions
		// sums to the true edit distance, and Stats.Similarity inverts to
		// it exactly since maxLen is public. Only the boolean flag is
		// meaningful in this branch; Stats is left at its zero value.
		return &Result{
			CapExceeded: true,
		}, nil
	}

	return result, nil
}

// padTokens extends tokens with PadToken up to target. It is a pure
// function of len(tokens) and target — both public — never of content.
func padTokens(tokens []Token, target int) []Token {
	if target <= len(tokens) {
		out := make([]Token, len(tokens))
		copy(out, tokens)
		return out
	}
	out := make([]Token, target)
	copy(out, tokens)
	for i := len(tokens); i < target; i++ {
		out[i] = PadToken
	}
	return out
}

func insertAll(b []Token) []Op {
	script := make([]Op, len(b))
	for i := range b {
		script[i] = Op{Type: Insert, BIndex: i}
	}
	return script
}

func deleteAll(a []Token) []Op {
	script := make([]Op, len(a))
	for i := range a {
		script[i] = Op{Type: Delete, AIndex: i}
	}
	return script
}
