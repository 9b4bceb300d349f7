package style

// ScaleCache memoizes constructed scales for the duration of one style
// pass, so resolving thousands of features against the same rule builds
// each scale once. Entries are keyed by the rule's structural fingerprint.
//
// Styling runs on a single goroutine (one pass at a time over the current
// result set), so the cache is unsynchronized. Clear must be called at the
// start of every full pass: fingerprint keying already defends against
// in-place rule edits, clearing additionally bounds the cache to the rules
// of the current pass.
type ScaleCache struct {
	entries map[uint64]Scale
}

// NewScaleCache returns an empty scale cache.
func NewScaleCache() *ScaleCache {
	return &ScaleCache{entries: make(map[uint64]Scale)}
}

func (c *ScaleCache) get(key uint64) (Scale, bool) {
	s, ok := c.entries[key]
	return s, ok
}

func (c *ScaleCache) put(key uint64, s Scale) {
	c.entries[key] = s
}

// Clear drops all cached scales.
func (c *ScaleCache) Clear() {
	clear(c.entries)
}

// Len returns the number of cached scales.
func (c *ScaleCache) Len() int {
	return len(c.entries)
}
