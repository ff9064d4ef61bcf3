// Command kbmask computes the update mask between two versions of a
// knowledge base and optionally sends the update to a server.
//
//	kbmask mask --baseline kb.json --edited kb-edited.json
//	kbmask send --baseline kb.json --edited kb-edited.json --grpc-addr localhost:50051
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
