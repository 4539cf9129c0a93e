// Package oblivious implements a small catalog of branch-free primitives
// over fixed-width integers and byte slices.
//
// Every function here is a pure function of its inputs whose instruction
// count, memory-access pattern, and number of executed micro-operations
// depend only on the *lengths* of its arguments, never on their values.
// Callers building anything value-dependent on top of these primitives
// (a comparison, a minimum, a table lookup at a secret index) must route
// the decision through one of these functions rather than writing the
// natural `if`, because the natural `if` is exactly the side channel this
// package exists to close.
//
// Eq and BytesEq delegate to crypto/subtle instead of duplicating the
// arithmetic — crypto/subtle is precisely the "vetted library
// equivalent" the primitive catalog allows. The rest (select, min/max,
// lookup, row copy, lexicographic compare) are hand-rolled mask
// arithmetic.
package oblivious

import "crypto/subtle"

// Select returns a if cond is 1, b if cond is 0. cond must be 0 or 1;
// any other value is undefined. The computation touches both a and b
// regardless of cond.
func Select(cond, a, b uint32) uint32 {
	mask := -cond // 0xFFFFFFFF if cond==1, 0x00000000 if cond==0
	return (a & mask) | (b &^ mask)
}

// Select64 is Select for uint64 operands.
func Select64(cond uint32, a, b uint64) uint64 {
	mask := uint64(-int64(cond))
	return (a & mask) | (b &^ mask)
}

// SelectInt returns a if cond is 1, b if cond is 0, without ever
// branching on cond. It is realized in terms of Select64, the 64-bit
// form of the mask-based select used throughout this package.
func SelectInt(cond uint32, a, b int) int {
	return int(Select64(cond, uint64(a), uint64(b)))
}

// Eq returns 1 if x == y, 0 otherwise, computed without comparing via a
// conditional branch. Delegates to crypto/subtle.ConstantTimeEq, the
// "vetted library equivalent" §4.1 names explicitly.
func Eq(x, y uint32) uint32 {
	return uint32(subtle.ConstantTimeEq(int32(x), int32(y)))
}

// eqBit is the single-bit-width equality building block Le is composed
// from.
func eqBit(x, y uint32) uint32 {
	return Eq(x, y)
}

// Lt returns 1 if x < y, 0 otherwise. Both operands are treated as
// unsigned 32-bit quantities.
func Lt(x, y uint32) uint32 {
	// Borrow-based comparison: x < y iff x - y borrows out of bit 31.
	return uint32((uint64(x) - uint64(y)) >> 63)
}

// Le returns 1 if x <= y, 0 otherwise.
func Le(x, y uint32) uint32 {
	return Lt(x, y) | eqBit(x, y)
}

// Min returns the smaller of x and y via Select, never via a branch.
func Min(x, y uint32) uint32 {
	return Select(Lt(x, y), x, y)
}

// Max returns the larger of x and y via Select.
func Max(x, y uint32) uint32 {
	return Select(Lt(x, y), y, x)
}

// ltInt returns 1 if x < y as signed integers, 0 otherwise: the sign of
// x - y, corrected for overflow when x and y differ in sign.
func ltInt(x, y int) uint32 {
	x64, y64 := int64(x), int64(y)
	d := x64 - y64
	return uint32(uint64(d^((x64^y64)&(d^x64))) >> 63)
}

// MinInt is Min for plain (signed) ints. The engine's matrix costs are
// uint32 and use Min; the backtrace uses MaxInt to clamp indices at 0.
func MinInt(x, y int) int {
	return SelectInt(ltInt(x, y), x, y)
}

// MaxInt is Max for plain (signed) ints.
func MaxInt(x, y int) int {
	return SelectInt(ltInt(x, y), y, x)
}

// BytesEq returns 1 iff the first n bytes of a and b are equal. It
// XOR-accumulates across all n positions; it never returns early on the
// first mismatch. Delegates to crypto/subtle.ConstantTimeCompare, which
// implements exactly this accumulate-don't-branch contract for
// equal-length byte slices.
//
// a and b must each have length >= n; BytesEq only reads the first n
// bytes of each; excess bytes are not inspected and do not affect the
// result.
func BytesEq(a, b []byte, n int) uint32 {
	if n == 0 {
		return 1
	}
	return uint32(subtle.ConstantTimeCompare(a[:n], b[:n]))
}

// MemcmpLex lexicographically compares a[:nA] and b[:nB], returning -1,
// 0, or 1. It examines min(nA, nB) bytes — all of them, with no
// short-circuit on the first mismatch — and then folds in the length
// difference, per §4.1.
func MemcmpLex(a []byte, nA int, b []byte, nB int) int {
	n := nA
	if nB < n {
		n = nB
	}

	// firstDiff tracks the byte-index of the first mismatch (or n, if
	// none), and sign tracks its direction. Both accumulate across every
	// byte position; neither is set via a conditional break.
	firstDiffIdx := n
	sign := 0
	for i := 0; i < n; i++ {
		isMismatch := uint32(1) - Eq(uint32(a[i]), uint32(b[i]))
		isEarlier := Lt(uint32(i), uint32(firstDiffIdx))
		take := isMismatch & isEarlier
		firstDiffIdx = SelectInt(take, i, firstDiffIdx)
		s := SelectInt(Lt(uint32(a[i]), uint32(b[i])), -1, 1)
		sign = SelectInt(take, s, sign)
	}

	// If the shared prefix has no mismatch, the lengths (public) decide:
	// the shorter sequence is lexicographically smaller, matched lengths
	// compare equal.
	lenSign := 0
	switch {
	case nA < nB:
		lenSign = -1
	case nA > nB:
		lenSign = 1
	}
	return SelectInt(Lt(uint32(firstDiffIdx), uint32(n)), sign, lenSign)
}

// Lookup32 returns table[secretIndex] while touching every element of
// table, so the memory-access pattern does not depend on secretIndex.
// secretIndex must be in [0, len(table)); behavior is defined only for
// that range, but Lookup32 still scans the full table regardless, per
// §4.1: "for i in 0..len: result = select(eq(i, secretIndex), table[i],
// result)".
func Lookup32(table []uint32, secretIndex int) uint32 {
	var result uint32
	for i := range table {
		result = Select(Eq(uint32(i), uint32(secretIndex)), table[i], result)
	}
	return result
}

// LookupByte is Lookup32 for a byte-valued table.
func LookupByte(table []byte, secretIndex int) byte {
	var result uint32
	for i := range table {
		result = Select(Eq(uint32(i), uint32(secretIndex)), uint32(table[i]), result)
	}
	return byte(result)
}

// VarLenEq reports whether a and b are equal, including the case where
// they have different lengths. It extends MemcmpLex's technique to
// equality: it always inspects min(len(a),len(b)) bytes in full via
// BytesEq, then folds in a length-equality check, rather than ever
// comparing a and b directly with the built-in == (which, for
// differently-sized or misaligned operands, is not a documented
// constant-time primitive).
func VarLenEq(a, b []byte) uint32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	lenEq := Eq(uint32(len(a)), uint32(len(b)))
	byteEq := BytesEq(a, b, n)
	return lenEq & byteEq
}

// CmovRow conditionally copies the first n bytes of src into dst. It
// always reads and writes all n positions of both slices, regardless of
// cond, so the number of bytes touched never reveals whether the copy
// "actually" happened.
func CmovRow(dst, src []byte, cond uint32, n int) {
	for i := 0; i < n; i++ {
		dst[i] = byte(Select(cond, uint32(src[i]), uint32(dst[i])))
	}
}
