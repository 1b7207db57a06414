package shuffle

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"tableflip.dev/kioku/pkg/store"
)

// Shuffle draws (or clears) the persisted ordering seed for a
// collection. Only the seed is stored; the order is re-derived from it
// on every view.
type Shuffle struct {
	Collection  string
	Clear       bool
	Seed        uint32
	HasSeed     bool
	Persistence store.Persistence
}

func (s *Shuffle) Do(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("can not shuffle, no persistence")
	}
	if s.Collection == "" {
		return errors.New("collection required")
	}

	st, err := s.Persistence.State(s.Collection)
	if err != nil {
		return err
	}

	if s.Clear {
		st.ClearShuffle()
		if err := s.Persistence.SetState(s.Collection, st); err != nil {
			return err
		}
		fmt.Printf("%s: natural order restored\n", s.Collection)
		return nil
	}

	seed := s.Seed
	if !s.HasSeed {
		seed = rand.Uint32()
	}
	st.Shuffle(seed)
	if err := s.Persistence.SetState(s.Collection, st); err != nil {
		return err
	}
	fmt.Printf("%s: shuffled with seed %d\n", s.Collection, seed)
	return nil
}
