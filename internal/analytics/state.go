package analytics

import "context"

// Phase is the stage of an analytics load.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// LoadState is the discriminated result of loading analytics:
// Loading, Ready(Snapshot) or Failed(Failure).
type LoadState struct {
	Phase    Phase
	Snapshot *Snapshot
	Failure  FailureKind
	Err      error
}

// Loading is the state before a fetch has resolved.
func Loading() LoadState { return LoadState{Phase: PhaseLoading} }

// Ready wraps a successfully fetched snapshot.
func Ready(s *Snapshot) LoadState { return LoadState{Phase: PhaseReady, Snapshot: s} }

// Failed records why a fetch produced nothing.
func Failed(err error) LoadState {
	return LoadState{Phase: PhaseFailed, Failure: KindOf(err), Err: err}
}

// Load runs one fetch and folds the outcome into a LoadState. It never
// returns an error: every outcome is a renderable state.
func Load(ctx context.Context, f Fetcher) LoadState {
	snap, err := f.Fetch(ctx)
	if err != nil {
		return Failed(err)
	}
	return Ready(snap)
}
