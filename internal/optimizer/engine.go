// Package optimizer implements the search engine (C8): an iterative,
// explicit-stack depth-first enumeration of every gear assignment the
// settings document allows, pruned by the configured symmetry checks and
// cooperatively yielding progress snapshots back to its caller (§4.8).
package optimizer

import (
	"time"

	"github.com/pable/go-cs-metrics/internal/character"
	"github.com/pable/go-cs-metrics/internal/infusion"
	"github.com/pable/go-cs-metrics/internal/optlog"
	"github.com/pable/go-cs-metrics/internal/optsettings"
	"github.com/pable/go-cs-metrics/internal/results"
	"github.com/pable/go-cs-metrics/internal/scoring"
)

// yieldIterations and yieldInterval bound how long a single Step call runs
// before returning control to the caller (§5: "yields a Progress snapshot
// every 1000 iterations if wall-clock exceeds 90ms since the last yield").
const (
	yieldIterations = 1000
	yieldInterval   = 90 * time.Millisecond
)

// Progress is the snapshot Step returns: whether the result heap changed
// since the previous call, the cumulative (approximate, once a branch is
// pruned) number of leaf evaluations, and — only when Changed — a copy of
// the heap's current contents.
type Progress struct {
	Changed         bool
	CalculationRuns uint64
	NewList         []*character.Character
}

// Engine holds the full suspendable state of one search: the DFS position
// (gear prefix, per-depth cursor, per-depth cumulative gear stats) and the
// result heap candidates are fed into. Holds no external resources across a
// yield, so a caller may suspend indefinitely between Step calls.
type Engine struct {
	settings *optsettings.Settings
	heap     *results.Heap
	cache    *scoring.CondiCache

	cursor    []int       // cursor[d]: next affix index to try at depth d
	gear      []int       // committed affix index per filled slot, len == depth
	gearStats [][]float64 // gearStats[d]: cumulative stats from gear[0:d], len == depth+1

	depth    int
	finished bool

	// emptySpace marks a search with no reachable leaf at all (§7
	// EmptySearchSpace): no slots, or some slot with no eligible affixes.
	// Not a construction error — the engine is still built, and the first
	// Step call reports the terminal empty-success Progress rather than
	// running any DFS iterations.
	emptySpace   bool
	emptyYielded bool

	calculationRuns uint64
	lastYield       time.Time
}

// NewEngine constructs a search over s. An empty search space (no slots, or
// a slot with no eligible affixes) is not a construction failure: the
// returned Engine reports it as a single terminal Progress on the first
// Step call (§7 EmptySearchSpace, seed scenario 1).
func NewEngine(s *optsettings.Settings, randomID string) (*Engine, error) {
	empty := len(s.Slots) == 0
	if !empty {
		for _, affixes := range s.AffixesArray {
			if len(affixes) == 0 {
				empty = true
				break
			}
		}
	}

	e := &Engine{
		settings:   s,
		heap:       results.NewHeap(s, randomID),
		cache:      scoring.NewCondiCache(),
		cursor:     make([]int, len(s.Slots)),
		gear:       make([]int, 0, len(s.Slots)),
		gearStats:  [][]float64{make([]float64, s.Registry.Len())},
		lastYield:  time.Now(),
		emptySpace: empty,
	}
	return e, nil
}

// Heap exposes the engine's result heap, read after Finished (or
// incrementally, between Step calls, for a live-updating caller).
func (e *Engine) Heap() *results.Heap { return e.heap }

// Finished reports whether the search has enumerated every reachable gear
// assignment.
func (e *Engine) Finished() bool { return e.finished }

// CalculationRuns is the running total of leaf evaluations, including the
// approximated count for subtrees a symmetry check pruned outright.
func (e *Engine) CalculationRuns() uint64 { return e.calculationRuns }

// Step resumes the DFS from wherever it last suspended and runs it until
// either the whole search space has been enumerated or a yield point is
// reached. Safe to call again after a non-final Progress to continue; a
// call after Finished is a no-op that reports no change.
func (e *Engine) Step() Progress {
	if e.emptySpace {
		if e.emptyYielded {
			return Progress{CalculationRuns: 0}
		}
		e.emptyYielded = true
		e.finished = true
		return Progress{Changed: true, CalculationRuns: 0, NewList: []*character.Character{}}
	}

	if e.finished {
		return Progress{CalculationRuns: e.calculationRuns}
	}

	s := e.settings
	iterations := 0
	changed := false

	for {
		iterations++

		switch {
		case e.depth == len(s.Slots):
			e.evaluateLeaf()
			e.calculationRuns++
			if e.heap.Changed {
				changed = true
				e.heap.Changed = false
			}
			e.backtrack()

		case e.cursor[e.depth] >= len(s.AffixesArray[e.depth]):
			if e.depth == 0 {
				e.finished = true
			} else {
				e.backtrack()
			}

		default:
			idx := e.cursor[e.depth]
			if e.prunedAt(idx) {
				e.calculationRuns += s.RunsAfterThisSlot[e.depth+1]
				e.cursor[e.depth]++
			} else {
				e.descend(idx)
			}
		}

		if e.finished {
			break
		}
		if iterations >= yieldIterations && time.Since(e.lastYield) > yieldInterval {
			break
		}
	}

	e.lastYield = time.Now()
	optlog.Debug("search yield", "iterations", iterations, "calculationRuns", e.calculationRuns, "kept", e.heap.Len())

	var newList []*character.Character
	if changed {
		newList = append([]*character.Character(nil), e.heap.Items...)
	}
	return Progress{Changed: changed, CalculationRuns: e.calculationRuns, NewList: newList}
}

// Run drives Step to completion, discarding intermediate progress
// snapshots. Intended for non-interactive callers (tests, batch runs)
// that only want the final heap.
func (e *Engine) Run() *results.Heap {
	for !e.finished {
		e.Step()
	}
	return e.heap
}

// descend commits affix idx at the current depth, pushes the cumulative
// gear-stats layer, and advances depth.
func (e *Engine) descend(idx int) {
	s := e.settings
	e.gear = append(e.gear, idx)

	prev := e.gearStats[e.depth]
	next := make([]float64, len(prev))
	copy(next, prev)
	for _, b := range s.AffixesArray[e.depth][idx].Bonuses {
		next[b.AttrIdx] += b.Bonus
	}
	e.gearStats = append(e.gearStats, next)

	e.depth++
	if e.depth < len(e.cursor) {
		e.cursor[e.depth] = 0
	}
}

// backtrack pops the current depth and advances the parent's cursor past
// the branch just exhausted.
func (e *Engine) backtrack() {
	e.depth--
	e.gear = e.gear[:e.depth]
	e.gearStats = e.gearStats[:e.depth+1]
	e.cursor[e.depth]++
}

// prunedAt reports whether choosing idx at the current depth would violate
// a symmetry check that becomes active at the resulting (deeper) gear
// prefix length (§4.8 step 3).
func (e *Engine) prunedAt(idx int) bool {
	s := e.settings
	newDepth := e.depth + 1
	for _, c := range s.SymmetryChecks() {
		if c.AtSlotsFilled != newDepth || !c.Active(s, newDepth) {
			continue
		}
		if e.valueAt(c.A, idx) > e.valueAt(c.B, idx) {
			return true
		}
	}
	return false
}

// valueAt returns the committed affix index at slot, or pendingIdx if slot
// is the depth currently being decided (not yet committed to e.gear).
func (e *Engine) valueAt(slot, pendingIdx int) int {
	if slot == e.depth {
		return pendingIdx
	}
	return e.gear[slot]
}

// evaluateLeaf builds the Character for the current complete gear
// assignment and runs it through the configured infusion strategy, which
// evaluates and inserts every resulting variant into the heap.
func (e *Engine) evaluateLeaf() {
	c := character.New(e.settings, e.gear, e.gearStats[e.depth])
	infusion.Apply(c, e.cache, e.heap)
}
