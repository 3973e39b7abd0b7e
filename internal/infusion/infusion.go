// Package infusion implements the infusion allocation strategies (C6, §4.6):
// given a fully-built, infusion-free candidate at a search leaf, produce one
// or more infused variants and hand each to the result heap.
package infusion

import (
	"github.com/pable/go-cs-metrics/internal/character"
	"github.com/pable/go-cs-metrics/internal/optsettings"
	"github.com/pable/go-cs-metrics/internal/results"
	"github.com/pable/go-cs-metrics/internal/scoring"
)

// Apply runs base's configured infusion strategy, evaluating and inserting
// every resulting variant into heap. base itself is never mutated; each
// strategy works from its own clone.
func Apply(base *character.Character, cache *scoring.CondiCache, heap *results.Heap) {
	s := base.Settings
	switch s.InfusionMode {
	case optsettings.InfusionNone:
		applyNone(base, cache, heap)
	case optsettings.InfusionPrimary:
		applyPrimary(base, cache, heap)
	case optsettings.InfusionFew:
		applyFew(base, cache, heap)
	case optsettings.InfusionSecondary:
		applySecondary(base, cache, heap, false)
	case optsettings.InfusionSecondaryNoDuplicates:
		applySecondary(base, cache, heap, true)
	}
}

// evaluateAndInsert runs the fast scoring pass, the cheap usefulness guard,
// then the heap's own accept/reject pipeline. Returns whether c was kept.
func evaluateAndInsert(c *character.Character, cache *scoring.CondiCache, heap *results.Heap) bool {
	if !scoring.UpdateAttributesFast(c, cache, false) {
		return false
	}
	if !testInfusionUsefulness(c, heap) {
		return false
	}
	return heap.Insert(c)
}

// testInfusionUsefulness is the cheap pre-insertion guard (§4.6): once the
// heap is at capacity, a candidate whose score is below the current worst
// score is dropped. heap.Insert applies the same check ahead of its
// update_attributes/finalize pass; here it also keeps such a split from
// becoming the best candidate in SecondaryNoDuplicates mode.
func testInfusionUsefulness(c *character.Character, heap *results.Heap) bool {
	if heap == nil {
		return true
	}
	s := c.Settings
	if s.MaxResults > 0 && heap.Len() >= s.MaxResults && c.RankScore < heap.WorstScore {
		return false
	}
	return true
}

// applyNone evaluates base with zero infusions applied.
func applyNone(base *character.Character, cache *scoring.CondiCache, heap *results.Heap) {
	c := base.Clone()
	evaluateAndInsert(c, cache, heap)
}

// applyPrimary puts every available infusion into the configured primary
// attribute.
func applyPrimary(base *character.Character, cache *scoring.CondiCache, heap *results.Heap) {
	s := base.Settings
	if s.MaxInfusions <= 0 || s.PrimaryAttr == "" {
		applyNone(base, cache, heap)
		return
	}
	c := base.Clone()
	c.AddInfusion(s.PrimaryAttrIdx, s.PrimaryAttr, s.MaxInfusions)
	evaluateAndInsert(c, cache, heap)
}

// applyFew tries a small, fixed set of representative splits — all-primary,
// all-secondary, and an even split — instead of enumerating every
// combination. Cheaper than Secondary mode for a search that still wants to
// consider using both attributes.
func applyFew(base *character.Character, cache *scoring.CondiCache, heap *results.Heap) {
	s := base.Settings
	if s.MaxInfusions <= 0 {
		applyNone(base, cache, heap)
		return
	}

	applyPrimary(base, cache, heap)

	if s.SecondaryAttr != "" {
		c := base.Clone()
		c.AddInfusion(s.SecondaryAttrIdx, s.SecondaryAttr, s.MaxInfusions)
		evaluateAndInsert(c, cache, heap)

		half := s.MaxInfusions / 2
		if half > 0 {
			c := base.Clone()
			c.AddInfusion(s.PrimaryAttrIdx, s.PrimaryAttr, s.MaxInfusions-half)
			c.AddInfusion(s.SecondaryAttrIdx, s.SecondaryAttr, half)
			evaluateAndInsert(c, cache, heap)
		}
	}
}

// applySecondary enumerates every primary/secondary split allowed by
// PrimaryMaxInfusions and SecondaryMaxInfusions. When noDuplicates is true,
// only the single best-scoring split is kept; otherwise every split whose
// score doesn't exactly repeat the score of the last inserted split is
// inserted (§4.6: "enumerate all splits with dedup-by-equal-score").
func applySecondary(base *character.Character, cache *scoring.CondiCache, heap *results.Heap, noDuplicates bool) {
	s := base.Settings
	if s.MaxInfusions <= 0 || s.SecondaryAttr == "" {
		applyPrimary(base, cache, heap)
		return
	}

	primaryMax := s.PrimaryMaxInfusions
	if primaryMax <= 0 || primaryMax > s.MaxInfusions {
		primaryMax = s.MaxInfusions
	}
	secondaryMax := s.SecondaryMaxInfusions
	if secondaryMax <= 0 || secondaryMax > s.MaxInfusions {
		secondaryMax = s.MaxInfusions
	}

	lowPrimary := s.MaxInfusions - secondaryMax
	if lowPrimary < 0 {
		lowPrimary = 0
	}
	highPrimary := primaryMax
	if highPrimary > s.MaxInfusions {
		highPrimary = s.MaxInfusions
	}

	var best *character.Character
	havePrev := false
	var prevScore float64

	for primaryCount := highPrimary; primaryCount >= lowPrimary; primaryCount-- {
		secondaryCount := s.MaxInfusions - primaryCount
		if secondaryCount < 0 || secondaryCount > secondaryMax {
			continue
		}

		c := base.Clone()
		if primaryCount > 0 {
			c.AddInfusion(s.PrimaryAttrIdx, s.PrimaryAttr, primaryCount)
		}
		if secondaryCount > 0 {
			c.AddInfusion(s.SecondaryAttrIdx, s.SecondaryAttr, secondaryCount)
		}

		if !scoring.UpdateAttributesFast(c, cache, false) {
			continue
		}
		if !testInfusionUsefulness(c, heap) {
			continue
		}

		if noDuplicates {
			if best == nil || results.Compare(best, c, s.RankBy) > 0 {
				best = c
			}
			continue
		}

		if havePrev && c.RankScore == prevScore {
			continue
		}
		havePrev = true
		prevScore = c.RankScore
		heap.Insert(c)
	}

	if noDuplicates && best != nil {
		heap.Insert(best)
	}
}
