// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: report.go — Run report rendering
//
// Purpose:
//   - Renders a bench.Result to stdout in a fixed line order, or as one JSON object.
//
// Text layout:
//   duration = <ns> ns
//   ns per op = <ns>
//   ops/sec = <rate>
//   S1 = <s1>, S2 = <s2>
//
//   An empty run replaces the first three lines with "no operations completed".
// ─────────────────────────────────────────────────────────────────────────────

package report

import (
	"fmt"
	"io"
	"strconv"

	"corelat/bench"

	"github.com/sugawarayuuta/sonnet"
)

// Format selects the report encoding.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
)

// NoOps is printed instead of rates when a run completed zero operations.
const NoOps = "no operations completed"

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case Text, JSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q (want %q or %q)", s, Text, JSON)
}

// Write renders r to w in format f.
func Write(w io.Writer, r bench.Result, f Format) error {
	switch f {
	case Text, "":
		return WriteText(w, r)
	case JSON:
		return WriteJSON(w, r)
	}
	return fmt.Errorf("unknown report format %q", f)
}

// WriteText renders the fixed-order text report.
func WriteText(w io.Writer, r bench.Result) error {
	var b []byte
	if r.Empty() {
		b = append(b, NoOps...)
		b = append(b, '\n')
	} else {
		b = append(b, "duration = "...)
		b = strconv.AppendInt(b, r.Elapsed.Nanoseconds(), 10)
		b = append(b, " ns\nns per op = "...)
		b = strconv.AppendFloat(b, r.NsPerOp(), 'f', 2, 64)
		b = append(b, "\nops/sec = "...)
		b = strconv.AppendFloat(b, r.OpsPerSec(), 'f', 0, 64)
		b = append(b, '\n')
	}
	b = append(b, "S1 = "...)
	b = strconv.AppendUint(b, r.S1, 10)
	b = append(b, ", S2 = "...)
	b = strconv.AppendUint(b, r.S2, 10)
	b = append(b, '\n')

	_, err := w.Write(b)
	return err
}

// document is the JSON shape of a report. Rate fields are omitted for an empty run.
type document struct {
	Outcome    string   `json:"outcome"`
	DurationNs int64    `json:"duration_ns"`
	Ops        uint64   `json:"ops"`
	NsPerOp    *float64 `json:"ns_per_op,omitempty"`
	OpsPerSec  *float64 `json:"ops_per_sec,omitempty"`
	S1         uint64   `json:"s1"`
	S2         uint64   `json:"s2"`
	Message    string   `json:"message,omitempty"`
}

// WriteJSON renders r as a single JSON object followed by a newline.
func WriteJSON(w io.Writer, r bench.Result) error {
	doc := document{
		Outcome:    r.Outcome.String(),
		DurationNs: r.Elapsed.Nanoseconds(),
		Ops:        r.Ops(),
		S1:         r.S1,
		S2:         r.S2,
	}
	if r.Empty() {
		doc.Message = NoOps
	} else {
		nsPerOp, opsPerSec := r.NsPerOp(), r.OpsPerSec()
		doc.NsPerOp = &nsPerOp
		doc.OpsPerSec = &opsPerSec
	}

	out, err := sonnet.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = w.Write(append(out, '\n'))
	return err
}
