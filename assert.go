package simplify

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
)

// Logger receives low-frequency diagnostic traces from the simplifier. A
// nil Logger costs nothing, standing in for the debug trace macros that
// are compiled out of release builds in the reference library.
type Logger interface {
	Tracef(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Tracef(string, ...any) {}

func loggerOrNoop(l Logger) Logger {
	if l == nil {
		return noopLogger{}
	}
	return l
}

func debugLevel() int {
	level, _ := strconv.Atoi(os.Getenv("MESHSIMPLIFY_DEBUG_LEVEL"))
	return level
}

// assertf checks a caller precondition or internal invariant. It is a
// no-op unless MESHSIMPLIFY_DEBUG_LEVEL is set to 1 or higher: a development safety
// net, not part of the public error contract.
func assertf(ok bool, format string, args ...any) {
	if debugLevel() < 1 {
		return
	}
	if !ok {
		red := color.New(color.FgRed).SprintFunc()
		panic(red("assertion failed: " + fmt.Sprintf(format, args...)))
	}
}
