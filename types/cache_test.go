package types_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/supremind/olp/types"
)

var _ = Describe("decision cache", func() {
	key := CacheKey{Source: SourceUser, Permission: "report.view", EntityID: "42"}

	It("is usable as a zero value", func() {
		var c DecisionCache

		_, ok := c.Lookup(key)
		Expect(ok).To(BeFalse())
		Expect(c.Len()).To(BeZero())

		c.Store(key, Denied)
		d, ok := c.Lookup(key)
		Expect(ok).To(BeTrue())
		Expect(d).To(Equal(Denied))
		Expect(c.Len()).To(Equal(1))
	})

	It("distinguishes sources, permissions, and entities", func() {
		var c DecisionCache
		c.Store(key, Granted)

		_, ok := c.Lookup(CacheKey{Source: SourceGroup, Permission: "report.view", EntityID: "42"})
		Expect(ok).To(BeFalse())
		_, ok = c.Lookup(CacheKey{Source: SourceUser, Permission: "report.change", EntityID: "42"})
		Expect(ok).To(BeFalse())
		_, ok = c.Lookup(CacheKey{Source: SourceUser, Permission: "report.view", EntityID: "43"})
		Expect(ok).To(BeFalse())
	})

	It("memoizes every decision value, no opinion included", func() {
		var c DecisionCache
		c.Store(key, NoOpinion)

		d, ok := c.Lookup(key)
		Expect(ok).To(BeTrue())
		Expect(d).To(Equal(NoOpinion))
	})

	It("drops everything on reset", func() {
		var c DecisionCache
		c.Store(key, Granted)
		c.Reset()

		_, ok := c.Lookup(key)
		Expect(ok).To(BeFalse())
		Expect(c.Len()).To(BeZero())
	})

	It("is scoped to one user instance", func() {
		u1 := &User{Name: "alan"}
		u2 := &User{Name: "alan"}

		u1.DecisionCache().Store(key, Granted)
		Expect(u1.DecisionCache().Len()).To(Equal(1))
		Expect(u2.DecisionCache().Len()).To(BeZero())
	})
})
