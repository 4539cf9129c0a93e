package engine

import "runtime"

// keepAlive wraps runtime.KeepAlive: Go provides no volatile-store or
// compiler-fence primitive, so a scrub loop's writes are only as
// durable as the compiler's willingness not to treat the buffer as
// dead before the writes are observed. KeepAlive is the closest
// stdlib-backed approximation; it is not a cryptographic guarantee.
func keepAlive(buf []uint32) {
	runtime.KeepAlive(buf)
}
