package crypto

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
)

// Trace holds the state snapshots of one block encryption: [0] the input,
// [1] after the initial AddRoundKey, [2..10] after rounds 1-9 and [11] after
// the final round.
type Trace [TraceLen]State

// Label names the trace entry at index i.
func (t *Trace) Label(i int) string {
	if i == 0 {
		return "input"
	}
	return "round " + strconv.Itoa(i-1)
}

// Ciphertext returns the last trace entry.
func (t *Trace) Ciphertext() State {
	return t[TraceLen-1]
}

func (t Trace) MarshalJSON() ([]byte, error) {
	out := make([]string, TraceLen)
	for i := range t {
		out[i] = t[i].String()
	}
	return json.Marshal(out)
}

func (t *Trace) UnmarshalJSON(data []byte) error {
	var in []string
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if len(in) != TraceLen {
		return fmt.Errorf("trace has %d entries, want %d: %w", len(in), TraceLen, ErrInvalidLength)
	}
	for i, s := range in {
		b, err := hex.DecodeString(s)
		if err != nil {
			return fmt.Errorf("trace entry %d: %w", i, err)
		}
		if t[i], err = StateFromBytes(b); err != nil {
			return fmt.Errorf("trace entry %d: %w", i, err)
		}
	}
	return nil
}

// Recorder is an Observer that collects snapshots into a Trace.
// The zero value is ready to use for a single encryption.
type Recorder struct {
	trace Trace
	n     int
}

func (r *Recorder) Observe(s Snapshot) {
	if r.n >= TraceLen {
		panic(fmt.Sprintf("trace overflow: more than %d snapshots", TraceLen))
	}
	r.trace[r.n] = s.State
	r.n++
}

// Len returns the number of snapshots recorded so far.
func (r *Recorder) Len() int {
	return r.n
}

// Trace returns the recorded trace. It panics if the trace is incomplete.
func (r *Recorder) Trace() Trace {
	if r.n != TraceLen {
		panic(fmt.Sprintf("incomplete trace: %d of %d snapshots", r.n, TraceLen))
	}
	return r.trace
}
