package engine

import "github.com/tanctl/ctdiff/oblivious"

// backtraceStep is one fixed-time iteration's output: a candidate op,
// plus a validity flag recording whether the cursor (i,j) had not yet
// reached the origin when the step was taken.
type backtraceStep struct {
	op    Op
	valid uint32
}

// obliviousBacktrace walks from (realLenA, realLenB) — the real,
// public lengths, not (n,m) — back to (0,0), per §4.3: "the backtrace
// starts at (|A|, |B|)... this keeps matrix-fill work independent of
// the real lengths while the script remains size-correct."
//
// It runs exactly realLenA+realLenB iterations unconditionally,
// regardless of where the content-dependent path actually reaches the
// origin: once (i,j) hits (0,0) it is absorbing (every candidate move
// computed against a current cost of 0 resolves to a no-op that leaves
// i,j at 0,0), and iterations taken after that point are marked
// invalid rather than causing the loop to exit early. This mirrors
// §9's guidance that "found the end" must be an accumulator, never a
// control-flow abort. Trimming the invalid suffix happens once the
// fixed-time portion of the work is complete, using the already-public
// script length — see Run's use of this function.
//
// a and b are the padded token sequences the matrix was filled over
// (lengths n=len(a), m=len(b), both >= 1); cm is that filled matrix.
func obliviousBacktrace(cm *costMatrix, a, b []Token, realLenA, realLenB int) []backtraceStep {
	steps := make([]backtraceStep, realLenA+realLenB)

	i, j := realLenA, realLenB
	for t := range steps {
		atOrigin := oblivious.Eq(uint32(i), 0) & oblivious.Eq(uint32(j), 0)
		valid := 1 - atOrigin

		iM1 := oblivious.MaxInt(i-1, 0)
		jM1 := oblivious.MaxInt(j-1, 0)

		same := oblivious.VarLenEq(a[iM1].Bytes(), b[jM1].Bytes())
		cur := cm.get(i, j)
		diagCost := cm.get(iM1, jM1) + oblivious.Select(same, 0, 1)
		upCost := cm.get(iM1, j) + 1
		leftCost := cm.get(i, jM1) + 1

		// Priority order Substitute/Keep > Delete > Insert, per §4.3.
		// leftCost is computed above (and always will match cur when
		// neither diag nor up does, by construction of the matrix fill)
		// purely so every iteration touches all three neighbor costs
		// uniformly; the decision below never needs to test it
		// explicitly.
		// iPos/jPos guard the diagonal and up moves so that row 0 only
		// inserts and column 0 only deletes.
		iPos := 1 - oblivious.Eq(uint32(i), 0)
		jPos := 1 - oblivious.Eq(uint32(j), 0)
		isDiag := oblivious.Eq(cur, diagCost) & iPos & jPos
		isDel := oblivious.Eq(cur, upCost) & (1 - isDiag) & iPos

		newI := oblivious.SelectInt(isDiag, iM1, oblivious.SelectInt(isDel, iM1, i))
		newJ := oblivious.SelectInt(isDiag, jM1, oblivious.SelectInt(isDel, j, jM1))

		typeCode := oblivious.Select(isDiag,
			oblivious.Select(same, uint32(Keep), uint32(Substitute)),
			oblivious.Select(isDel, uint32(Delete), uint32(Insert)),
		)

		steps[t] = backtraceStep{
			op: Op{
				Type:   OpType(typeCode),
				AIndex: iM1,
				BIndex: jM1,
			},
			valid: valid,
		}

		_ = leftCost
		i, j = newI, newJ
	}

	return steps
}

// reverseValidPrefix returns the forward-order edit script: steps are
// produced walking backward from (realLenA,realLenB), so the valid
// entries form a contiguous prefix (origin is absorbing) that must be
// reversed. Scanning for the prefix length and reversing it operate
// purely on already-computed, public output — the script's own length
// is part of DiffResult, not a secret — so this step is allowed to be
// content-dependent in a way the fixed-iteration loop above is not.
func reverseValidPrefix(steps []backtraceStep) []Op {
	k := 0
	for k < len(steps) && steps[k].valid == 1 {
		k++
	}
	script := make([]Op, k)
	for idx := 0; idx < k; idx++ {
		script[idx] = steps[k-1-idx].op
	}
	return script
}
