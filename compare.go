package ctdiff

import (
	"context"
	"os"

	"github.com/tanctl/ctdiff/engine"
	"github.com/tanctl/ctdiff/security"
)

// CompareTokens is compare_tokens(Config, A, B) of §6: a pure function
// of its inputs, with no I/O and no tokenization.
func CompareTokens(cfg *Config, a, b []engine.Token) (*DiffResult, error) {
	res, err := engine.Run(cfg.sec, a, b)
	if err != nil {
		return nil, wrapEngineErr(err)
	}
	return &DiffResult{inner: res}, nil
}

// CompareBytes is compare_bytes(Config, []byte, []byte): validates
// byte range per the configured SecurityConfig, splits both inputs
// into one ByteToken per byte, and calls CompareTokens.
func CompareBytes(cfg *Config, a, b []byte) (*DiffResult, error) {
	if err := security.ValidateByteRange(cfg.sec, a); err != nil {
		return nil, wrapEngineErr(err)
	}
	if err := security.ValidateByteRange(cfg.sec, b); err != nil {
		return nil, wrapEngineErr(err)
	}
	return CompareTokens(cfg, engine.BytesToTokens(a), engine.BytesToTokens(b))
}

// CompareText is compare_text(Config, string, string): validates byte
// range, splits both inputs into one LineToken per line (terminator
// included, §9 Open Question 3), and calls CompareTokens.
func CompareText(cfg *Config, a, b string) (*DiffResult, error) {
	if err := security.ValidateByteRange(cfg.sec, []byte(a)); err != nil {
		return nil, wrapEngineErr(err)
	}
	if err := security.ValidateByteRange(cfg.sec, []byte(b)); err != nil {
		return nil, wrapEngineErr(err)
	}
	return CompareTokens(cfg, engine.LinesToTokens(a), engine.LinesToTokens(b))
}

// CompareFiles is compare_files(Config, path, path): reads both files
// as text and calls CompareText. Read failures are reported as Io
// errors; files larger than cfg.MaxFileSize are rejected as
// ResourceLimit before being read into memory.
func CompareFiles(cfg *Config, pathA, pathB string) (*DiffResult, error) {
	a, err := readFileWithLimit(pathA, cfg.MaxFileSize)
	if err != nil {
		return nil, err
	}
	b, err := readFileWithLimit(pathB, cfg.MaxFileSize)
	if err != nil {
		return nil, err
	}
	return CompareText(cfg, string(a), string(b))
}

func readFileWithLimit(path string, limit int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, ioErrorf("stat %s: %s", path, err.Error())
	}
	if limit > 0 && info.Size() > limit {
		return nil, resourceLimitErrorf("%s exceeds configured max file size %d bytes", path, limit)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ioErrorf("read %s: %s", path, err.Error())
	}
	return data, nil
}

// FileCompareResult is the result of one leg of CompareFilesAsync.
type FileCompareResult struct {
	Result *DiffResult
	Err    error
}

// CompareFilesAsync is compare_files_async(...): runs CompareFiles on
// its own goroutine and reports the result on the returned channel,
// which is always sent to exactly once and then closed. ctx is
// checked before the (potentially slow) file reads begin and again
// after the diff has run, before the result is delivered; it is not
// threaded into the file reads or the engine itself.
func CompareFilesAsync(ctx context.Context, cfg *Config, pathA, pathB string) <-chan FileCompareResult {
	out := make(chan FileCompareResult, 1)
	go func() {
		defer close(out)
		if err := ctx.Err(); err != nil {
			out <- FileCompareResult{Err: ioErrorf("canceled before read: %s", err.Error())}
			return
		}
		res, err := CompareFiles(cfg, pathA, pathB)
		if err != nil {
			out <- FileCompareResult{Err: err}
			return
		}
		if err := ctx.Err(); err != nil {
			out <- FileCompareResult{Err: ioErrorf("canceled before result delivery: %s", err.Error())}
			return
		}
		out <- FileCompareResult{Result: res}
	}()
	return out
}
