package types

// CacheKey addresses exactly one resolved decision
type CacheKey struct {
	Source     Source
	Permission Permission
	EntityID   string
}

// DecisionCache memoizes resolved decisions for one principal instance.
// It is not synchronized: the contract binds one principal instance to one
// goroutine, and entries never outlive the instance.
// The zero value is ready to use.
type DecisionCache struct {
	decisions map[CacheKey]Decision
}

// Lookup returns the memoized decision for the key, if any
func (c *DecisionCache) Lookup(key CacheKey) (Decision, bool) {
	d, ok := c.decisions[key]
	return d, ok
}

// Store memoizes a decision. A stored entry is never recomputed, only
// dropped by Reset.
func (c *DecisionCache) Store(key CacheKey, d Decision) {
	if c.decisions == nil {
		c.decisions = make(map[CacheKey]Decision)
	}
	c.decisions[key] = d
}

// Reset drops all memoized decisions
func (c *DecisionCache) Reset() {
	c.decisions = nil
}

// Len returns the number of memoized decisions
func (c *DecisionCache) Len() int {
	return len(c.decisions)
}
