// Command lichtensteind runs a Lichtenstein fabric node client: it
// discovers and is adopted by a controller, maintains a control-plane TLS
// session and a realtime DTLS session, and serves the client API described
// in spec.md §6.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
