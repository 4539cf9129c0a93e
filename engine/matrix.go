package engine

import "github.com/tanctl/ctdiff/oblivious"

// costMatrix holds the (n+1)x(m+1) cost matrix of §3/§4.3 as a flat
// row-major buffer. In Strict mode every read scans the full row of the
// requested cell through oblivious.Lookup32 instead of indexing the
// column directly, even though the column index driving a fill-time
// read is itself a public loop counter. The row is selected by direct
// indexing, and writes (set) index the buffer directly, in every mode.
type costMatrix struct {
	rows, cols int
	data       []uint32
	strict     bool
}

func newCostMatrix(rows, cols int, strict bool) *costMatrix {
	return &costMatrix{
		rows:   rows,
		cols:   cols,
		data:   make([]uint32, rows*cols),
		strict: strict,
	}
}

func (cm *costMatrix) set(i, j int, v uint32) {
	cm.data[i*cm.cols+j] = v
}

func (cm *costMatrix) get(i, j int) uint32 {
	rowStart := i * cm.cols
	if !cm.strict {
		return cm.data[rowStart+j]
	}
	return oblivious.Lookup32(cm.data[rowStart:rowStart+cm.cols], j)
}

// fillMatrix fills M per §4.3's recurrence with branch-free updates.
// a and b are the padded token sequences (n=len(a), m=len(b)); the loop
// bounds are the declared lengths of a and b, public per §1, and the
// loop body executes the same arithmetic for every cell regardless of
// token content — no cell is skipped, no early exit on equality.
func fillMatrix(cm *costMatrix, a, b []Token) {
	n, m := len(a), len(b)

	for i := 0; i <= n; i++ {
		cm.set(i, 0, uint32(i))
	}
	for j := 0; j <= m; j++ {
		cm.set(0, j, uint32(j))
	}

	for i := 1; i <= n; i++ {
		ai := a[i-1].Bytes()
		for j := 1; j <= m; j++ {
			same := oblivious.VarLenEq(ai, b[j-1].Bytes())
			subCost := cm.get(i-1, j-1) + oblivious.Select(same, 0, 1)
			delCost := cm.get(i-1, j) + 1
			insCost := cm.get(i, j-1) + 1
			cm.set(i, j, oblivious.Min(subCost, oblivious.Min(delCost, insCost)))
		}
	}
}

// scrub overwrites the matrix's backing storage with zeros. Go offers
// no portable volatile-store-with-compiler-fence primitive, so this is
// a best-effort analogue: a plain write loop followed by KeepAlive to
// discourage the compiler from treating the buffer as dead before the
// writes occur — see keepAlive in scrub.go for the limits of this.
func (cm *costMatrix) scrub() {
	for i := range cm.data {
		cm.data[i] = 0
	}
	keepAlive(cm.data)
}
