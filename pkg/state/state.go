// Package state models the persisted per-collection view settings: the
// shuffle seed and the study filter. The derived view itself is never
// stored; only this record survives across sessions.
package state

import (
	"encoding/json"
	"strings"
)

// State is the persisted view record for one collection. IsShuffled
// mirrors OrderHash != nil; writers keep the two in sync and readers
// may call Normalize to repair records edited by hand.
type State struct {
	OrderHash   *uint32 `json:"order_hash_int"`
	IsShuffled  bool    `json:"isShuffled"`
	StudyFilter string  `json:"studyFilter,omitempty"`
}

// UnmarshalJSON upgrades records written before the studyFilter string
// existed, when the two filter toggles were stored as booleans.
func (s *State) UnmarshalJSON(data []byte) error {
	type plain State
	aux := struct {
		*plain
		LegacySkip  bool `json:"skipLearned"`
		LegacyFocus bool `json:"focusOnly"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if s.StudyFilter == "" && (aux.LegacySkip || aux.LegacyFocus) {
		s.SetFlags(Flags{SkipLearned: aux.LegacySkip, FocusOnly: aux.LegacyFocus})
	}
	s.Normalize()
	return nil
}

// Normalize re-establishes the IsShuffled mirror invariant.
func (s *State) Normalize() {
	s.IsShuffled = s.OrderHash != nil
}

// Shuffle records seed as the active ordering.
func (s *State) Shuffle(seed uint32) {
	s.OrderHash = &seed
	s.IsShuffled = true
}

// ClearShuffle restores natural ordering.
func (s *State) ClearShuffle() {
	s.OrderHash = nil
	s.IsShuffled = false
}

// Flags describe the study filter in effect. The two flags are separate
// toggles in the record even though the UI treats them as a three-state
// selector; both may be set at once and both rules then apply.
type Flags struct {
	SkipLearned bool
	FocusOnly   bool
}

// Flags parses the persisted StudyFilter string.
func (s State) Flags() Flags {
	return ParseFilter(s.StudyFilter)
}

// SetFlags serialises flags back into the StudyFilter string.
func (s *State) SetFlags(f Flags) {
	tokens := make([]string, 0, 2)
	if f.SkipLearned {
		tokens = append(tokens, "skipLearned")
	}
	if f.FocusOnly {
		tokens = append(tokens, "focusOnly")
	}
	s.StudyFilter = strings.Join(tokens, ",")
}

// ParseFilter interprets a study filter token string. Tokens may be
// separated by commas, pipes, or spaces. Both the current spellings
// (skipLearned, focusOnly) and the legacy tag spellings (learned,
// focus) are accepted; unknown tokens are ignored.
func ParseFilter(raw string) Flags {
	var f Flags
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '|' || r == ' '
	})
	for _, token := range tokens {
		switch strings.ToLower(strings.TrimSpace(token)) {
		case "skiplearned", "skip-learned", "learned":
			f.SkipLearned = true
		case "focusonly", "focus-only", "focus":
			f.FocusOnly = true
		}
	}
	return f
}
