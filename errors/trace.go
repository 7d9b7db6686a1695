package errors

import (
	"fmt"
	"path"
	"runtime"
	"strings"
)

// modulePath filters this package's own frames out of a captured trace so
// GetTrace points at the caller that constructed the error, not at New
// or a CodeError.Error method.
const modulePath = "github.com/tristanseifert/lichtenstein-node/errors."

// getFrame walks the call stack and returns "file#line" for the first
// frame outside this package, or "" if none is found.
func getFrame() string {
	pc := make([]uintptr, 20)
	n := runtime.Callers(2, pc)
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pc[:n])
	for {
		frame, more := frames.Next()
		if strings.Contains(frame.Function, modulePath) {
			if !more {
				return ""
			}
			continue
		}
		return fmt.Sprintf("%s#%d", filterPath(frame.File), frame.Line)
	}
}

// filterPath trims a source path down to the portion after the module's
// vendor/module-cache root, so traces stay readable across machines.
func filterPath(pathname string) string {
	pathname = strings.ReplaceAll(pathname, "\\", "/")

	const modCache = "/pkg/mod/"
	if i := strings.LastIndex(pathname, modCache); i != -1 {
		pathname = pathname[i+len(modCache):]
	}

	const vendor = "/vendor/"
	if i := strings.LastIndex(pathname, vendor); i != -1 {
		pathname = pathname[i+len(vendor):]
	}

	return path.Clean(pathname)
}
