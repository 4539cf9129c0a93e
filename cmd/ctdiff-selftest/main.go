// Command ctdiff-selftest runs the statistical timing self-test §4.1 and
// §8 require the implementation to ship, not merely describe: a
// Welch's t-test comparing mean latency across input classes that must
// not be distinguishable from wall-clock alone.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/tanctl/ctdiff/engine"
	"github.com/tanctl/ctdiff/oblivious"
	"github.com/tanctl/ctdiff/security"
)

func main() {
	trials := flag.Int("trials", 10000, "trials per comparison (§8 requires >= 10^4)")
	size := flag.Int("size", 512, "token count per input")
	alpha := flag.Float64("alpha", 0.01, "significance level")
	flag.Parse()

	cfg, err := security.NewConfig(
		security.WithMaxInputSize(*size),
		security.WithPadding(*size),
		security.WithTimingProtection(security.Strict),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	exitCode := 0

	report := oblivious.TimingSelfTest("identical-vs-different", *trials, *alpha,
		identicalTrial(cfg, *size),
		differentTrial(cfg, *size),
	)
	fmt.Println(report.String())
	if !report.Indistinguishable {
		exitCode = 1
	}

	report2 := oblivious.TimingSelfTest("early-diff-vs-late-diff", *trials, *alpha,
		earlyDiffTrial(cfg, *size),
		lateDiffTrial(cfg, *size),
	)
	fmt.Println(report2.String())
	if !report2.Indistinguishable {
		exitCode = 1
	}

	os.Exit(exitCode)
}

func randomTokens(size int, seed int64) []engine.Token {
	r := rand.New(rand.NewSource(seed))
	buf := make([]byte, size)
	r.Read(buf)
	return engine.BytesToTokens(buf)
}

func identicalTrial(cfg *security.Config, size int) func(trial int) {
	return func(trial int) {
		a := randomTokens(size, int64(trial))
		_, _ = engine.Run(cfg, a, a)
	}
}

func differentTrial(cfg *security.Config, size int) func(trial int) {
	return func(trial int) {
		a := randomTokens(size, int64(trial)*2)
		b := randomTokens(size, int64(trial)*2+1)
		_, _ = engine.Run(cfg, a, b)
	}
}

func earlyDiffTrial(cfg *security.Config, size int) func(trial int) {
	return func(trial int) {
		a := randomTokens(size, int64(trial))
		b := append([]engine.Token(nil), a...)
		b[0] = engine.ByteToken(byte(trial) + 1)
		_, _ = engine.Run(cfg, a, b)
	}
}

func lateDiffTrial(cfg *security.Config, size int) func(trial int) {
	return func(trial int) {
		a := randomTokens(size, int64(trial))
		b := append([]engine.Token(nil), a...)
		b[len(b)-1] = engine.ByteToken(byte(trial) + 1)
		_, _ = engine.Run(cfg, a, b)
	}
}
