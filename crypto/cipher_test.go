package crypto

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestEncryptKnownAnswers(t *testing.T) {
	tests := []struct {
		name, key, pt, ct string
	}{
		{
			name: "zero key zero block",
			key:  "00000000000000000000000000000000",
			pt:   "00000000000000000000000000000000",
			ct:   "66e94bd4ef8a2c3b884cfa59ca342b2e",
		},
		{
			name: "fips197 c.1",
			key:  "000102030405060708090a0b0c0d0e0f",
			pt:   "00112233445566778899aabbccddeeff",
			ct:   "69c4e0d86a7b0430d8cdb78070b4c55a",
		},
		{
			name: "fips197 b",
			key:  "2b7e151628aed2a6abf7158809cf4f3c",
			pt:   "3243f6a8885a308d313198a2e0370734",
			ct:   "3925841d02dc09fbdc118597196a0b32",
		},
		{
			name: "sp800-38a ecb block 2",
			key:  "2b7e151628aed2a6abf7158809cf4f3c",
			pt:   "ae2d8a571e03ac9c9eb76fac45af8e51",
			ct:   "f5d3d58503b9699de785895a96fdbaaf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched := ExpandKey(mustKey(t, tt.key))
			pt := mustState(t, tt.pt)

			require.Equal(t, tt.ct, Encrypt(&sched, pt).String())

			ct, trace := EncryptWithTrace(&sched, pt)
			require.Equal(t, tt.ct, ct.String())
			require.Len(t, trace, TraceLen)
			require.Equal(t, pt, trace[0])
			require.Equal(t, ct, trace[TraceLen-1])
			require.Equal(t, ct, trace.Ciphertext())
		})
	}
}

func TestEncryptWithTraceRoundStates(t *testing.T) {
	tests := []struct {
		name, key, pt string
		want          [TraceLen]string
	}{
		{
			name: "fips197 c.1",
			key:  "000102030405060708090a0b0c0d0e0f",
			pt:   "00112233445566778899aabbccddeeff",
			want: [TraceLen]string{
				"00112233445566778899aabbccddeeff",
				"00102030405060708090a0b0c0d0e0f0",
				"89d810e8855ace682d1843d8cb128fe4",
				"4915598f55e5d7a0daca94fa1f0a63f7",
				"fa636a2825b339c940668a3157244d17",
				"247240236966b3fa6ed2753288425b6c",
				"c81677bc9b7ac93b25027992b0261996",
				"c62fe109f75eedc3cc79395d84f9cf5d",
				"d1876c0f79c4300ab45594add66ff41f",
				"fde3bad205e5d0d73547964ef1fe37f1",
				"bd6e7c3df2b5779e0b61216e8b10b689",
				"69c4e0d86a7b0430d8cdb78070b4c55a",
			},
		},
		{
			name: "fips197 b",
			key:  "2b7e151628aed2a6abf7158809cf4f3c",
			pt:   "3243f6a8885a308d313198a2e0370734",
			want: [TraceLen]string{
				"3243f6a8885a308d313198a2e0370734",
				"193de3bea0f4e22b9ac68d2ae9f84808",
				"a49c7ff2689f352b6b5bea43026a5049",
				"aa8f5f0361dde3ef82d24ad26832469a",
				"486c4eee671d9d0d4de3b138d65f58e7",
				"e0927fe8c86363c0d9b1355085b8be01",
				"f1006f55c1924cef7cc88b325db5d50c",
				"260e2e173d41b77de86472a9fdd28b25",
				"5a4142b11949dc1fa3e019657a8c040c",
				"ea835cf00445332d655d98ad8596b0c5",
				"eb40f21e592e38848ba113e71bc342d2",
				"3925841d02dc09fbdc118597196a0b32",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched := ExpandKey(mustKey(t, tt.key))
			_, trace := EncryptWithTrace(&sched, mustState(t, tt.pt))

			var got [TraceLen]string
			for i := range trace {
				got[i] = trace[i].String()
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("trace mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncryptDeterministic(t *testing.T) {
	sched := ExpandKey(mustKey(t, "0f1571c947d9e8590cb7add6af7f6798"))
	pt := mustState(t, "0123456789abcdeffedcba9876543210")

	ct1, tr1 := EncryptWithTrace(&sched, pt)
	ct2, tr2 := EncryptWithTrace(&sched, pt)
	require.Equal(t, ct1, ct2)
	if diff := cmp.Diff(tr1, tr2); diff != "" {
		t.Fatalf("trace not deterministic (-first +second):\n%s", diff)
	}
}

func TestEncryptObservedStages(t *testing.T) {
	sched := ExpandKey(Key{})
	var snaps []Snapshot
	ct := EncryptObserved(&sched, State{}, ObserverFunc(func(s Snapshot) {
		snaps = append(snaps, s)
	}))

	require.Len(t, snaps, TraceLen)
	require.Equal(t, StageInput, snaps[0].Stage)
	require.Equal(t, -1, snaps[0].Round)
	require.Equal(t, StageKeyMixed, snaps[1].Stage)
	require.Equal(t, 0, snaps[1].Round)
	for r := 1; r < Rounds; r++ {
		require.Equal(t, StageRound, snaps[r+1].Stage)
		require.Equal(t, r, snaps[r+1].Round)
	}
	require.Equal(t, StageFinal, snaps[TraceLen-1].Stage)
	require.Equal(t, Rounds, snaps[TraceLen-1].Round)
	require.Equal(t, ct, snaps[TraceLen-1].State)
}

func TestEncryptDoesNotMutateInput(t *testing.T) {
	sched := ExpandKey(Key{})
	pt := mustState(t, "00112233445566778899aabbccddeeff")
	orig := pt
	Encrypt(&sched, pt)
	require.Equal(t, orig, pt)
}

func TestEncryptConcurrent(t *testing.T) {
	want := make(map[int]State)
	for i := range 32 {
		sched := ExpandKey(Key{byte(i)})
		want[i] = Encrypt(&sched, State{byte(i), 0xff})
	}

	got := make([]State, 32)
	var eg errgroup.Group
	for i := range 32 {
		eg.Go(func() error {
			sched := ExpandKey(Key{byte(i)})
			ct, trace := EncryptWithTrace(&sched, State{byte(i), 0xff})
			if ct != trace.Ciphertext() {
				return fmt.Errorf("block %d: trace does not end in ciphertext", i)
			}
			got[i] = ct
			return nil
		})
	}
	require.NoError(t, eg.Wait())
	for i := range 32 {
		require.Equalf(t, want[i], got[i], "block %d", i)
	}
}

func TestTraceLabels(t *testing.T) {
	var trace Trace
	require.Equal(t, "input", trace.Label(0))
	require.Equal(t, "round 0", trace.Label(1))
	require.Equal(t, "round 10", trace.Label(TraceLen-1))
}

func TestTraceJSON(t *testing.T) {
	sched := ExpandKey(Key{})
	_, trace := EncryptWithTrace(&sched, State{})

	data, err := json.Marshal(trace)
	require.NoError(t, err)

	var hexes []string
	require.NoError(t, json.Unmarshal(data, &hexes))
	require.Len(t, hexes, TraceLen)
	require.Equal(t, "66e94bd4ef8a2c3b884cfa59ca342b2e", hexes[TraceLen-1])

	var back Trace
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, trace, back)

	require.ErrorIs(t, json.Unmarshal([]byte(`["00"]`), &back), ErrInvalidLength)
}

func TestRecorderInvariants(t *testing.T) {
	var rec Recorder
	require.Panics(t, func() { rec.Trace() })

	for range TraceLen {
		rec.Observe(Snapshot{})
	}
	require.Equal(t, TraceLen, rec.Len())
	require.NotPanics(t, func() { rec.Trace() })
	require.Panics(t, func() { rec.Observe(Snapshot{}) })
}

func TestStateFromBytes(t *testing.T) {
	for _, n := range []int{0, 8, 15, 17} {
		_, err := StateFromBytes(make([]byte, n))
		require.ErrorIs(t, err, ErrInvalidLength)
	}
	s, err := StateFromBytes(make([]byte, BlockSize))
	require.NoError(t, err)
	require.Equal(t, State{}, s)
}
