package scoring

// CondiCache memoizes condition-DPS score by (Expertise, Condition Damage)
// pair (C5). Populated only during the fast-evaluation path (§4.4); never
// read during the noRounding finalization pass (§3 Lifecycle).
//
// The source's key, Expertise + ConditionDamage*10000, collides once
// Expertise reaches 10000 (§9 open question). This cache widens the key
// instead of asserting the precondition: both inputs are scaled to integer
// hundredths before being packed into a uint64, which has room for
// attribute magnitudes far beyond anything reachable in practice.
type CondiCache struct {
	entries map[uint64]float64
}

// NewCondiCache returns an empty cache.
func NewCondiCache() *CondiCache {
	return &CondiCache{entries: make(map[uint64]float64)}
}

// Key packs (expertise, conditionDamage) into the cache's lookup key.
func Key(expertise, conditionDamage float64) uint64 {
	e := uint64(expertise*100 + 0.5)
	d := uint64(conditionDamage*100 + 0.5)
	return e*1_000_000_000 + d
}

// Get returns the cached score for key and whether it was present.
func (c *CondiCache) Get(key uint64) (float64, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Put stores score under key.
func (c *CondiCache) Put(key uint64, score float64) {
	c.entries[key] = score
}

// Len reports the number of memoized entries, exposed for tests and bench
// instrumentation.
func (c *CondiCache) Len() int {
	return len(c.entries)
}
