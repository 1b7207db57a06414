package progress

import (
	"tableflip.dev/kioku/pkg/card"
	"tableflip.dev/kioku/pkg/state"
)

// Visible reports whether a card should be displayed under the study
// filter. Rules apply in order and short-circuit:
//
//  1. cards without a study key always pass (nothing to correlate),
//  2. SkipLearned excludes cards whose key is tagged learned,
//  3. FocusOnly excludes cards whose key is not tagged focus.
//
// The two flags are a three-state selector in the UI, but both may be
// set at once here and both rules then apply.
func Visible(c card.Card, t Tracker, f state.Flags) bool {
	if !f.SkipLearned && !f.FocusOnly {
		return true
	}
	if t == nil {
		return true
	}
	key := t.Key(c)
	if key == "" {
		return true
	}
	if f.SkipLearned && t.Learned(key) {
		return false
	}
	if f.FocusOnly && !t.Focus(key) {
		return false
	}
	return true
}
