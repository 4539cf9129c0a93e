package security

import "github.com/tanctl/ctdiff/oblivious"

// allowedByteTable classifies every possible byte value as admissible
// (1) or not (0) for ValidateByteRange's binary-mode sanity check: all
// of 0x09 (tab), 0x0A (LF), 0x0D (CR), printable ASCII 0x20-0x7E, and
// every byte with the high bit set (0x80-0xFF, opaque to this check —
// validation only rejects the C0 control-character range that has no
// business appearing in a diffable byte stream).
var allowedByteTable = buildAllowedByteTable()

func buildAllowedByteTable() [256]byte {
	var t [256]byte
	for i := 0x20; i <= 0x7E; i++ {
		t[i] = 1
	}
	t[0x09] = 1
	t[0x0A] = 1
	t[0x0D] = 1
	for i := 0x80; i <= 0xFF; i++ {
		t[i] = 1
	}
	return t
}

// ValidateByteRange performs the validate_inputs byte-range sanity
// check (§3) without branching on the content of data: for every byte,
// the admissibility lookup scans the full 256-entry table via
// oblivious.LookupByte rather than indexing allowedByteTable[b]
// directly, because indexing at a content-derived (secret) position is
// exactly the cache-timing channel §1 is concerned with. The verdict
// accumulates across the whole buffer with no early exit, so the error
// message (if any) cannot be correlated with which byte, or how many
// bytes, failed — only "validation failed" at a given declared length.
func ValidateByteRange(c *Config, data []byte) error {
	if !c.ValidateInputs {
		return nil
	}

	table := allowedByteTable[:]
	ok := uint32(1)
	for _, b := range data {
		admitted := oblivious.LookupByte(table, int(b))
		ok &= uint32(admitted)
	}
	if ok != 1 {
		return securityErrorf("input failed byte-range validation (length %d)", len(data))
	}
	return nil
}
