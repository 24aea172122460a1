package types_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	. "github.com/supremind/olp/types"
)

var _ = Describe("decision", func() {
	It("defaults to no opinion", func() {
		var d Decision
		Expect(d).To(Equal(NoOpinion))
	})

	DescribeTable("string representation",
		func(d Decision, s string) {
			Expect(d.String()).To(Equal(s))
		},
		Entry("no opinion", NoOpinion, "no opinion"),
		Entry("granted", Granted, "granted"),
		Entry("denied", Denied, "denied"),
	)

	DescribeTable("maps verdicts",
		func(allowed bool, d Decision) {
			Expect(DecisionOf(allowed)).To(Equal(d))
		},
		Entry("allow", true, Granted),
		Entry("deny", false, Denied),
	)
})
