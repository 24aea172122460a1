package test

import (
	"context"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/supremind/olp/types"
)

// GrantPersisterTestCases registers the conformance cases every
// GrantPersister implementation should pass
func GrantPersisterTestCases(ctx context.Context, name string, p types.GrantPersister) bool {
	return Describe(name, func() {
		inserts := []types.GrantPolicy{
			{Holder: types.UserRef("alan"), Permission: "report.view"},
			{Holder: types.UserRef("alan"), Permission: "report.change"},
			{Holder: types.GroupRef("staff"), Permission: "report.view"},
		}
		removes := []types.GrantPolicy{
			{Holder: types.UserRef("alan"), Permission: "report.change"},
		}

		changes := make([]types.GrantChange, 0, len(inserts)+len(removes))
		for _, policy := range inserts {
			changes = append(changes, types.GrantChange{GrantPolicy: policy, Method: types.PersistInsert})
		}
		for _, policy := range removes {
			changes = append(changes, types.GrantChange{GrantPolicy: policy, Method: types.PersistDelete})
		}

		It("persists and streams grant polices", func() {
			w, e := p.Watch(ctx)
			Expect(e).To(Succeed())

			go func() {
				defer GinkgoRecover()

				for _, policy := range inserts {
					Expect(p.Insert(policy.Holder, policy.Permission)).To(Succeed())
				}

				// duplicates change nothing and announce nothing
				Expect(p.Insert(inserts[0].Holder, inserts[0].Permission)).To(Succeed())

				for _, policy := range removes {
					Expect(p.Remove(policy.Holder, policy.Permission)).To(Succeed())
				}
				Expect(p.Remove(removes[0].Holder, removes[0].Permission)).To(Succeed())
			}()

			for _, change := range changes {
				var got types.GrantChange
				Eventually(w).Should(Receive(&got))
				Expect(got).To(Equal(change))
			}

			Consistently(w).ShouldNot(Receive())

			Expect(p.List()).To(ConsistOf(
				types.GrantPolicy{Holder: types.UserRef("alan"), Permission: "report.view"},
				types.GrantPolicy{Holder: types.GroupRef("staff"), Permission: "report.view"},
			))
		})
	})
}
