// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: constants.go — Benchmark tunables and process exit codes
//
// Purpose:
//   - Defines the default target iteration count, the per-round op weight and the
//     GOMAXPROCS floor of a run.
//   - Defines exit codes shared by the CLI error paths.
//
// ⚠️ No runtime logic here — all values must be compile-time resolvable
// ─────────────────────────────────────────────────────────────────────────────

package constants

// ─────────────────────────────── Handshake ─────────────────────────────────

const (
	// DefaultIterations is the target value of s1 for a run that is not
	// overridden by configuration. At ~50-200 ns per round-trip this keeps a
	// cross-core run in the tens of seconds.
	DefaultIterations uint64 = 500_000_000

	// OpsPerRound counts one s1 increment plus the matching s2 increment.
	OpsPerRound uint64 = 2

	// MinProcs is the GOMAXPROCS floor during a run: one P per spinning role.
	MinProcs = 2
)

// ─────────────────────────────── Exit Codes ────────────────────────────────

const (
	// ExitOK is returned after a report has been written.
	ExitOK = 0

	// ExitAffinity is returned when the OS rejects a pinning request.
	ExitAffinity = 1

	// ExitUsage is returned for missing, surplus or unparsable arguments.
	ExitUsage = 2
)
