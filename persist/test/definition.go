// Package test provides reusable test cases for persister implementations
package test

import (
	"context"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/supremind/olp/types"
)

// DefinitionPersisterTestCases registers the conformance cases every
// DefinitionPersister implementation should pass
func DefinitionPersisterTestCases(ctx context.Context, name string, p types.DefinitionPersister) bool {
	return Describe(name, func() {
		inserts := []types.Permission{
			"report.view",
			"report.add",
			"report.delete",
		}
		removes := []types.Permission{
			"report.add",
		}

		changes := make([]types.DefinitionChange, 0, len(inserts)+len(removes))
		for _, perm := range inserts {
			changes = append(changes, types.DefinitionChange{Permission: perm, Method: types.PersistInsert})
		}
		for _, perm := range removes {
			changes = append(changes, types.DefinitionChange{Permission: perm, Method: types.PersistDelete})
		}

		It("persists and streams definitions", func() {
			w, e := p.Watch(ctx)
			Expect(e).To(Succeed())

			go func() {
				defer GinkgoRecover()

				for _, perm := range inserts {
					Expect(p.Insert(perm)).To(Succeed())
				}

				// duplicates change nothing and announce nothing
				Expect(p.Insert(inserts[0])).To(Succeed())

				for _, perm := range removes {
					Expect(p.Remove(perm)).To(Succeed())
				}
				Expect(p.Remove(removes[0])).To(Succeed())
			}()

			for _, change := range changes {
				var got types.DefinitionChange
				Eventually(w).Should(Receive(&got))
				Expect(got).To(Equal(change))
			}

			Consistently(w).ShouldNot(Receive())

			Expect(p.List()).To(ConsistOf(
				types.Permission("report.view"),
				types.Permission("report.delete"),
			))
		})
	})
}
