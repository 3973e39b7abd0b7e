package results

import (
	"fmt"

	"github.com/pable/go-cs-metrics/internal/character"
	"github.com/pable/go-cs-metrics/internal/optsettings"
	"github.com/pable/go-cs-metrics/internal/scoring"
)

// Heap is the bounded, score-sorted candidate list (C7, §4.7). Items are
// kept in descending rank order (best first); once Len reaches
// Settings.MaxResults, WorstScore is the last entry's RankScore and anything
// that cannot beat it is rejected before the expensive scoring pass runs.
type Heap struct {
	settings *optsettings.Settings
	randomID string
	counter  int

	Items      []*character.Character
	WorstScore float64
	Changed    bool
}

// NewHeap returns an empty heap. randomID is embedded in every assigned
// Character.ID to disambiguate counters across concurrent searches (§4.7
// step 3, the "(randomId)" suffix).
func NewHeap(s *optsettings.Settings, randomID string) *Heap {
	return &Heap{settings: s, randomID: randomID}
}

// Insert runs the full §4.7 accept-or-reject pipeline for a validated
// candidate: cheap reject on WorstScore, update_attributes with rounding
// enabled, finalize, assign an id, then insert by rank. Returns true iff c
// was kept in the heap.
func (h *Heap) Insert(c *character.Character) bool {
	if !c.Valid {
		return false
	}
	full := h.settings.MaxResults > 0 && len(h.Items) >= h.settings.MaxResults
	if full && c.RankScore < h.WorstScore {
		return false
	}

	scoring.UpdateAttributes(c, false)
	Finalize(c)

	c.ID = fmt.Sprintf("%d (%s)", h.counter, h.randomID)
	h.counter++

	pos := len(h.Items)
	for pos > 0 && compare(h.Items[pos-1], c, h.settings.RankBy) > 0 {
		pos--
	}

	if h.settings.MaxResults > 0 && pos >= h.settings.MaxResults {
		return false
	}

	h.Items = append(h.Items, nil)
	copy(h.Items[pos+1:], h.Items[pos:])
	h.Items[pos] = c

	if h.settings.MaxResults > 0 && len(h.Items) > h.settings.MaxResults {
		h.Items = h.Items[:h.settings.MaxResults]
	}
	if h.settings.MaxResults > 0 && len(h.Items) == h.settings.MaxResults {
		h.WorstScore = h.Items[len(h.Items)-1].RankScore
	}

	h.Changed = true
	return true
}

// Len reports the current number of kept candidates.
func (h *Heap) Len() int {
	return len(h.Items)
}

// Compare exposes the heap's §4.7 total order for callers outside this
// package (the infusion strategies use it to break exact-score ties).
func Compare(a, b *character.Character, rankBy optsettings.RankBy) int {
	return compare(a, b, rankBy)
}

// compare returns positive when b strictly outranks a under rankBy's total
// order (§4.7): primary key descending, then the documented tiebreak
// (Damage ties break on Survivability; Survivability/Healing ties break on
// Damage). Equal on every key returns 0, so an exact tie keeps the
// earlier-inserted item first.
func compare(a, b *character.Character, rankBy optsettings.RankBy) int {
	if a.RankScore != b.RankScore {
		if b.RankScore > a.RankScore {
			return 1
		}
		return -1
	}

	s := a.Settings
	switch rankBy {
	case optsettings.RankDamage:
		as, bs := a.Get(s.Attr("Survivability")), b.Get(s.Attr("Survivability"))
		if bs > as {
			return 1
		}
		if bs < as {
			return -1
		}
	case optsettings.RankSurvivability, optsettings.RankHealing:
		ad, bd := a.Get(s.Attr("Damage")), b.Get(s.Attr("Damage"))
		if bd > ad {
			return 1
		}
		if bd < ad {
			return -1
		}
	}
	return 0
}
