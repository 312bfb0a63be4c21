package crypto

// Stage identifies the step of the cipher that produced a Snapshot.
type Stage uint8

const (
	StageInput Stage = iota
	StageKeyMixed
	StageRound
	StageFinal
)

func (s Stage) String() string {
	switch s {
	case StageInput:
		return "input"
	case StageKeyMixed:
		return "key-mixed"
	case StageRound:
		return "round"
	case StageFinal:
		return "final"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the state after one traced step.
type Snapshot struct {
	Stage Stage
	// Round is the round whose AddRoundKey was last applied, or -1 for StageInput.
	Round int
	State State
}

// Observer receives a Snapshot after each traced step of EncryptObserved.
type Observer interface {
	Observe(Snapshot)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Snapshot)

func (f ObserverFunc) Observe(s Snapshot) { f(s) }

type nopObserver struct{}

func (nopObserver) Observe(Snapshot) {}

// Encrypt encrypts one block under sched.
func Encrypt(sched *Schedule, in State) State {
	return EncryptObserved(sched, in, nopObserver{})
}

// EncryptObserved encrypts one block under sched, reporting the state to obs
// after loading the input, after the initial AddRoundKey and after each of the
// ten rounds.
func EncryptObserved(sched *Schedule, in State, obs Observer) State {
	state := in
	obs.Observe(Snapshot{Stage: StageInput, Round: -1, State: state})

	AddRoundKey(&state, sched, 0)
	obs.Observe(Snapshot{Stage: StageKeyMixed, Round: 0, State: state})

	for r := 1; r < Rounds; r++ {
		SubBytes(&state)
		ShiftRows(&state)
		MixColumns(&state)
		AddRoundKey(&state, sched, r)
		obs.Observe(Snapshot{Stage: StageRound, Round: r, State: state})
	}

	// Final round (no MixColumns).
	SubBytes(&state)
	ShiftRows(&state)
	AddRoundKey(&state, sched, Rounds)
	obs.Observe(Snapshot{Stage: StageFinal, Round: Rounds, State: state})

	return state
}

// EncryptWithTrace encrypts one block and returns the ciphertext with the
// full trace. The last trace entry equals the ciphertext.
func EncryptWithTrace(sched *Schedule, in State) (State, Trace) {
	var rec Recorder
	out := EncryptObserved(sched, in, &rec)
	return out, rec.Trace()
}
