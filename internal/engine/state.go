package engine

// State is the run state of one conversion call. Transitions are
// strictly forward: Idle → Loading → Transforming → Writing → Done,
// with any phase able to move to Failed. A failed run produces no
// output.
type State string

const (
	StateIdle         State = "idle"
	StateLoading      State = "loading"
	StateTransforming State = "transforming"
	StateWriting      State = "writing"
	StateDone         State = "done"
	StateFailed       State = "failed"
)
