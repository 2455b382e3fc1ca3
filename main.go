// ════════════════════════════════════════════════════════════════════════════════════════════════
// Core-to-Core Latency Benchmark - Main Entry Point
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Core-to-Core Latency Benchmark
// Component: Process Entry
//
// Description:
//   Parses the command line, runs one pinned handshake benchmark and prints its report.
//   The responder thread is not joined: os.Exit reclaims it.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"os"

	"corelat/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
