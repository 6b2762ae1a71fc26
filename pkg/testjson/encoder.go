package testjson

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Encoder writes events as newline-delimited JSON.
type Encoder struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewEncoder returns an Encoder writing to w. Call Flush when done.
func NewEncoder(w io.Writer) *Encoder {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	return &Encoder{w: bw, enc: enc}
}

// Encode writes one event.
func (e *Encoder) Encode(ev TestEvent) error {
	return e.enc.Encode(ev)
}

// Flush writes any buffered events to the underlying writer.
func (e *Encoder) Flush() error {
	return e.w.Flush()
}

// WriteAll encodes events and flushes.
func WriteAll(w io.Writer, events []TestEvent) error {
	enc := NewEncoder(w)
	for _, ev := range events {
		if err := enc.Encode(ev); err != nil {
			return err
		}
	}
	return enc.Flush()
}

// TestName rewrites a free-form description the way go test names subtests:
// spaces become underscores and slashes would nest, so they are escaped.
func TestName(parts ...string) string {
	r := strings.NewReplacer(" ", "_", "/", "∕", "\n", "_", "\t", "_")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = r.Replace(strings.TrimSpace(p))
	}
	return strings.Join(out, "/")
}

// Namer makes names unique within one scope the way go test does for
// subtests: an empty name becomes "#00", and repeats get "#01", "#02", ...
// The zero value is ready to use.
type Namer struct {
	next map[string]int
	used map[string]bool
}

// Unique returns name, suffixed if needed so it was not returned before.
func (n *Namer) Unique(name string) string {
	if n.used == nil {
		n.next = make(map[string]int)
		n.used = make(map[string]bool)
	}
	for count := n.next[name]; ; count++ {
		candidate := name
		if name == "" || count > 0 {
			candidate = fmt.Sprintf("%s#%02d", name, count)
		}
		if !n.used[candidate] {
			n.next[name] = count + 1
			n.used[candidate] = true
			return candidate
		}
	}
}
