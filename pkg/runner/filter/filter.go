package filter

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/kioku/pkg/state"
	"tableflip.dev/kioku/pkg/store"
)

// Filter updates the persisted study filter for a collection.
type Filter struct {
	Collection  string
	SkipLearned bool
	FocusOnly   bool
	Clear       bool
	Persistence store.Persistence
}

func (f *Filter) Do(ctx context.Context) error {
	if f.Persistence == nil {
		return errors.New("can not filter, no persistence")
	}
	if f.Collection == "" {
		return errors.New("collection required")
	}

	st, err := f.Persistence.State(f.Collection)
	if err != nil {
		return err
	}

	if f.Clear {
		st.StudyFilter = ""
	} else {
		st.SetFlags(state.Flags{SkipLearned: f.SkipLearned, FocusOnly: f.FocusOnly})
	}
	if err := f.Persistence.SetState(f.Collection, st); err != nil {
		return err
	}

	if st.StudyFilter == "" {
		fmt.Printf("%s: filter cleared\n", f.Collection)
	} else {
		fmt.Printf("%s: filter set to %s\n", f.Collection, st.StudyFilter)
	}
	return nil
}
