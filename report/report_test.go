package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"corelat/bench"
	"corelat/handshake"

	"github.com/sugawarayuuta/sonnet"
)

func TestWriteText_FixedOrder(t *testing.T) {
	r := bench.Result{Outcome: handshake.Completed, Elapsed: 4000 * time.Nanosecond, S1: 1000, S2: 1000}

	var buf bytes.Buffer
	if err := WriteText(&buf, r); err != nil {
		t.Fatal(err)
	}

	want := "duration = 4000 ns\n" +
		"ns per op = 2.00\n" +
		"ops/sec = 500000000\n" +
		"S1 = 1000, S2 = 1000\n"
	if got := buf.String(); got != want {
		t.Fatalf("text report:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteText_EmptyRunPrintsSentinel(t *testing.T) {
	r := bench.Result{Outcome: handshake.TimedOut, Elapsed: time.Microsecond}

	var buf bytes.Buffer
	if err := WriteText(&buf, r); err != nil {
		t.Fatal(err)
	}
	want := NoOps + "\nS1 = 0, S2 = 0\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWriteJSON_Fields(t *testing.T) {
	r := bench.Result{Outcome: handshake.TimedOut, Elapsed: 1000 * time.Nanosecond, S1: 5, S2: 4}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, r); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Fatal("missing trailing newline")
	}

	var got map[string]any
	if err := sonnet.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if got["outcome"] != "timed out" {
		t.Errorf("outcome = %v", got["outcome"])
	}
	if got["ops"] != float64(10) || got["s1"] != float64(5) || got["s2"] != float64(4) {
		t.Errorf("counters = %v", got)
	}
	if got["ns_per_op"] != float64(100) {
		t.Errorf("ns_per_op = %v, want 100", got["ns_per_op"])
	}
	if _, ok := got["message"]; ok {
		t.Errorf("non-empty run carries message %v", got["message"])
	}
}

func TestWriteJSON_EmptyRunOmitsRates(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, bench.Result{Outcome: handshake.TimedOut}); err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := sonnet.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if _, ok := got["ns_per_op"]; ok {
		t.Error("empty run reports ns_per_op")
	}
	if _, ok := got["ops_per_sec"]; ok {
		t.Error("empty run reports ops_per_sec")
	}
	if got["message"] != NoOps {
		t.Errorf("message = %v, want %q", got["message"], NoOps)
	}
}

func TestParseFormat(t *testing.T) {
	for _, ok := range []string{"text", "json"} {
		if _, err := ParseFormat(ok); err != nil {
			t.Errorf("ParseFormat(%q): %v", ok, err)
		}
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("ParseFormat(yaml) succeeded")
	}
}

func TestWrite_Dispatches(t *testing.T) {
	r := bench.Result{Elapsed: time.Second, S1: 1, S2: 1}

	var text, js bytes.Buffer
	if err := Write(&text, r, Text); err != nil {
		t.Fatal(err)
	}
	if err := Write(&js, r, JSON); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(text.String(), "duration = ") {
		t.Errorf("text = %q", text.String())
	}
	if !strings.HasPrefix(js.String(), "{") {
		t.Errorf("json = %q", js.String())
	}
	if err := Write(&text, r, Format("xml")); err == nil {
		t.Error("Write accepted unknown format")
	}
}
