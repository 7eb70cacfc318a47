package client

import (
	"github.com/statesmith/corestate/query"
	"github.com/statesmith/corestate/store"
)

// Kind tags which way a Step failed to complete, naming the data it needs
// next.
type Kind int

const (
	KindDone Kind = iota
	KindFetchKey
	KindFetchNext
	KindFetchPrev
)

// StepResult is the outcome of one Step: either the caller's function
// completed (Done, carrying its return value), or it hit a hole in the
// partial store and Execute needs to fetch Key (FetchKey/FetchNext) or the
// greatest-known-key query (FetchPrev with a nil Key) before retrying.
type StepResult[T any] struct {
	Kind  Kind
	Value T
	Key   []byte
}

// Step runs fn once against s, translating a *store.MissingKeyError,
// *store.MissingNextError, or *store.MissingPrevError into the
// corresponding StepResult so Execute knows what to fetch next. Any other
// error propagates unchanged — it is a genuine application failure, not a
// proof gap.
func Step[T any](s store.Store, fn func(store.Store) (T, error)) (StepResult[T], error) {
	value, err := fn(s)
	if err == nil {
		return StepResult[T]{Kind: KindDone, Value: value}, nil
	}

	switch e := err.(type) {
	case *store.MissingKeyError:
		return StepResult[T]{Kind: KindFetchKey, Key: e.Key}, nil
	case *store.MissingNextError:
		return StepResult[T]{Kind: KindFetchNext, Key: e.Key}, nil
	case *store.MissingPrevError:
		return StepResult[T]{Kind: KindFetchPrev, Key: e.Key}, nil
	default:
		return StepResult[T]{}, err
	}
}

// Execute drives Step to completion against transport: each time Step
// reports a missing key, it issues the corresponding raw query, merges the
// response into the accumulated store via JoinStore, and retries. It
// returns ErrNoProgress if the same query would be issued twice in one
// execution — a fetch that doesn't unblock the next Step means the
// transport cannot supply the data this call needs, and retrying forever
// would never terminate.
func Execute[T any](transport Transport, initial store.Store, fn func(store.Store) (T, error)) (T, store.Store, error) {
	current := initial
	seen := make(map[string]struct{})

	for {
		result, err := Step(current, fn)
		if err != nil {
			var zero T
			return zero, current, err
		}

		var q query.Query
		switch result.Kind {
		case KindDone:
			return result.Value, current, nil
		case KindFetchKey:
			q = query.RawKey(result.Key)
		case KindFetchNext:
			q = query.RawNext(result.Key)
		case KindFetchPrev:
			q = query.RawPrev(result.Key)
		}

		queryBytes := string(query.Encode(q))
		if _, dup := seen[queryBytes]; dup {
			var zero T
			return zero, current, ErrNoProgress
		}
		seen[queryBytes] = struct{}{}

		response, err := transport.Query(q)
		if err != nil {
			var zero T
			return zero, current, err
		}

		current, err = JoinStore(current, response)
		if err != nil {
			var zero T
			return zero, current, err
		}
	}
}
