package engine_test

import (
	"log"
	"os"
	"testing"

	"github.com/go-logr/stdr"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/supremind/olp/internal/catalog"
	"github.com/supremind/olp/internal/engine"
	. "github.com/supremind/olp/internal/testdata"
	. "github.com/supremind/olp/types"
)

func TestEngine(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "engine test suit")
}

var logger = stdr.New(log.New(os.Stderr, "", log.LstdFlags|log.Lshortfile))

// a catalog where alan holds every report permission directly, bob holds
// them all through the staff group, and carol holds nothing
func reportCatalog() Catalog {
	c := catalog.NewInMemory()
	for _, perm := range ReportPermissions {
		Expect(c.Define(perm)).To(Succeed())
		Expect(c.Grant(UserRef("alan"), perm)).To(Succeed())
		Expect(c.Grant(GroupRef("staff"), perm)).To(Succeed())
	}
	return c
}

var _ = Describe("object-level decisions", func() {
	var authz Authorizer
	var alan, bob, carol *User

	BeforeEach(func() {
		authz = engine.New(reportCatalog(), false, logger)
		alan = &User{Name: "alan"}
		bob = &User{Name: "bob", Memberships: []Group{"staff"}}
		carol = &User{Name: "carol"}
	})

	It("answers object-level questions only", func() {
		Expect(authz.Decide(alan, "report.view", nil)).To(BeFalse())
	})

	Context("inactive principals", func() {
		It("denies everything upfront", func() {
			ivy := &User{Name: "ivy", Inactive: true, Super: true}
			ent := &GatedEntity{PlainEntity: PlainEntity{Ident: "1", EntKind: "report"}}

			Expect(authz.Decide(ivy, "report.view", ent)).To(BeFalse())
			Expect(ent.UserCalls).To(BeZero())
			Expect(ent.GroupCalls).To(BeZero())
			Expect(ivy.DecisionCache().Len()).To(BeZero())
		})

		It("has no permissions at all", func() {
			ivy := &User{Name: "ivy", Inactive: true}
			ent := &PlainEntity{Ident: "1", EntKind: "report"}

			Expect(authz.Permissions(ivy, ent)).To(BeEmpty())
		})
	})

	Context("superusers in default policy mode", func() {
		It("bypasses gates and cache entirely", func() {
			sue := &User{Name: "sue", Super: true}
			ent := &GatedEntity{
				PlainEntity: PlainEntity{Ident: "1", EntKind: "report"},
				UserFn:      func(Principal, string) Decision { return Denied },
				GroupFn:     func([]Group, string) Decision { return Denied },
			}

			Expect(authz.Decide(sue, "report.delete", ent)).To(BeTrue())
			Expect(ent.UserCalls).To(BeZero())
			Expect(ent.GroupCalls).To(BeZero())
			Expect(sue.DecisionCache().Len()).To(BeZero())
		})

		It("grants regardless of model-level grants", func() {
			sue := &User{Name: "sue", Super: true}
			ent := &PlainEntity{Ident: "1", EntKind: "report"}

			// sue was never granted anything in the catalog
			Expect(authz.Decide(sue, "report.delete", ent)).To(BeTrue())
		})

		It("holds the full universe on any entity", func() {
			sue := &User{Name: "sue", Super: true}
			ent := &PlainEntity{Ident: "1", EntKind: "report"}

			Expect(authz.Permissions(sue, ent)).To(HaveLen(len(ReportPermissions)))
		})
	})

	Context("model-level prerequisite", func() {
		It("denies without consulting gates", func() {
			ent := &GatedEntity{
				PlainEntity: PlainEntity{Ident: "1", EntKind: "report"},
				UserFn:      func(Principal, string) Decision { return Granted },
				GroupFn:     func([]Group, string) Decision { return Granted },
			}

			Expect(authz.Decide(carol, "report.view", ent)).To(BeFalse())
			Expect(ent.UserCalls).To(BeZero())
			Expect(ent.GroupCalls).To(BeZero())
		})

		It("treats unknown permissions as never grantable", func() {
			ent := &PlainEntity{Ident: "1", EntKind: "report"}

			Expect(authz.Decide(alan, "report.export", ent)).To(BeFalse())
			Expect(authz.Decide(alan, "malformed", ent)).To(BeFalse())
		})
	})

	Context("gate resolution", func() {
		It("grants by default when no gate has an opinion", func() {
			ent := &PlainEntity{Ident: "1", EntKind: "report"}

			Expect(authz.Decide(alan, "report.view", ent)).To(BeTrue())
			Expect(authz.Decide(bob, "report.view", ent)).To(BeTrue())
		})

		It("lets a user gate decide per instance", func() {
			ent := OwnerGated("report", "1", "alan", "delete")

			Expect(authz.Decide(alan, "report.delete", ent)).To(BeTrue())
			Expect(authz.Decide(carol, "report.delete", ent)).To(BeFalse())
		})

		It("short-circuits the group source on a user grant", func() {
			ent := &GatedEntity{
				PlainEntity: PlainEntity{Ident: "1", EntKind: "report"},
				UserFn:      func(Principal, string) Decision { return Granted },
				GroupFn:     func([]Group, string) Decision { return Denied },
			}

			Expect(authz.Decide(bob, "report.view", ent)).To(BeTrue())
			Expect(ent.GroupCalls).To(BeZero())
			// only the user source decision is cached
			Expect(bob.DecisionCache().Len()).To(Equal(1))
		})

		It("consults the group source after a user denial", func() {
			ent := &GatedEntity{
				PlainEntity: PlainEntity{Ident: "1", EntKind: "report"},
				UserFn:      func(Principal, string) Decision { return Denied },
				GroupFn: func(groups []Group, _ string) Decision {
					for _, g := range groups {
						if g == "staff" {
							return Granted
						}
					}
					return Denied
				},
			}

			Expect(authz.Decide(bob, "report.change", ent)).To(BeTrue())
			Expect(ent.UserCalls).To(Equal(1))
			Expect(ent.GroupCalls).To(Equal(1))
		})

		It("denies on one explicit denial beside no opinion", func() {
			userDenies := &GatedEntity{
				PlainEntity: PlainEntity{Ident: "1", EntKind: "report"},
				UserFn:      func(Principal, string) Decision { return Denied },
			}
			groupDenies := &GatedEntity{
				PlainEntity: PlainEntity{Ident: "2", EntKind: "report"},
				GroupFn:     func([]Group, string) Decision { return Denied },
			}

			Expect(authz.Decide(alan, "report.view", userDenies)).To(BeFalse())
			Expect(authz.Decide(alan, "report.view", groupDenies)).To(BeFalse())
		})
	})

	Context("decision cache", func() {
		It("invokes a gate at most once per key", func() {
			ent := &GatedEntity{
				PlainEntity: PlainEntity{Ident: "1", EntKind: "report"},
				UserFn:      func(Principal, string) Decision { return Granted },
			}

			Expect(authz.Decide(alan, "report.view", ent)).To(BeTrue())
			Expect(authz.Decide(alan, "report.view", ent)).To(BeTrue())
			Expect(ent.UserCalls).To(Equal(1))
		})

		It("recomputes for a reloaded principal", func() {
			ent := &GatedEntity{
				PlainEntity: PlainEntity{Ident: "1", EntKind: "report"},
				UserFn:      func(Principal, string) Decision { return Granted },
			}

			Expect(authz.Decide(alan, "report.view", ent)).To(BeTrue())

			reloaded := &User{Name: "alan"}
			Expect(authz.Decide(reloaded, "report.view", ent)).To(BeTrue())
			Expect(ent.UserCalls).To(Equal(2))
		})

		It("recomputes after an explicit clear", func() {
			ent := &GatedEntity{
				PlainEntity: PlainEntity{Ident: "1", EntKind: "report"},
				UserFn:      func(Principal, string) Decision { return Granted },
			}

			Expect(authz.Decide(alan, "report.view", ent)).To(BeTrue())
			authz.ClearCache(alan)
			Expect(authz.Decide(alan, "report.view", ent)).To(BeTrue())
			Expect(ent.UserCalls).To(Equal(2))
		})

		It("memoizes denials and no opinions too", func() {
			ent := &GatedEntity{
				PlainEntity: PlainEntity{Ident: "1", EntKind: "report"},
				UserFn:      func(Principal, string) Decision { return Denied },
			}

			Expect(authz.Decide(alan, "report.view", ent)).To(BeFalse())
			Expect(authz.Decide(alan, "report.view", ent)).To(BeFalse())
			Expect(ent.UserCalls).To(Equal(1))
			// user denial and group no-opinion are both cached
			Expect(alan.DecisionCache().Len()).To(Equal(2))
		})
	})

	Context("aggregated permission sets", func() {
		It("excludes only what a gate denies", func() {
			ent := &GatedEntity{
				PlainEntity: PlainEntity{Ident: "1", EntKind: "report"},
				UserFn: func(_ Principal, action string) Decision {
					if action == "delete" {
						return Denied
					}
					return NoOpinion
				},
			}

			perms, e := authz.Permissions(alan, ent)
			Expect(e).To(Succeed())
			Expect(perms).To(HaveLen(3))
			Expect(perms).NotTo(HaveKey(Permission("report.delete")))
		})

		It("filters by source", func() {
			ent := &GatedEntity{
				PlainEntity: PlainEntity{Ident: "1", EntKind: "report"},
				UserFn: func(_ Principal, action string) Decision {
					if action == "delete" {
						return Granted
					}
					return Denied
				},
				GroupFn: func(_ []Group, action string) Decision {
					if action == "change" {
						return Granted
					}
					return Denied
				},
			}

			userPerms, e := authz.UserPermissions(bob, ent)
			Expect(e).To(Succeed())
			Expect(userPerms).To(HaveKey(Permission("report.delete")))
			Expect(userPerms).NotTo(HaveKey(Permission("report.change")))

			authz.ClearCache(bob)
			groupPerms, e := authz.GroupPermissions(bob, ent)
			Expect(e).To(Succeed())
			Expect(groupPerms).To(HaveKey(Permission("report.change")))
			Expect(groupPerms).NotTo(HaveKey(Permission("report.delete")))
		})

		It("returns the no-opinion default through a single source", func() {
			ent := &PlainEntity{Ident: "1", EntKind: "report"}

			perms, e := authz.UserPermissions(alan, ent)
			Expect(e).To(Succeed())
			Expect(perms).To(HaveLen(len(ReportPermissions)))
		})

		It("is empty without an entity", func() {
			Expect(authz.Permissions(alan, nil)).To(BeEmpty())
		})
	})
})

var _ = Describe("universal policy mode", func() {
	It("subjects superusers to instance-level gates", func() {
		authz := engine.New(reportCatalog(), true, logger)
		sue := &User{Name: "sue", Super: true}
		ent := &GatedEntity{
			PlainEntity: PlainEntity{Ident: "1", EntKind: "report"},
			UserFn:      func(Principal, string) Decision { return Denied },
		}

		Expect(authz.Decide(sue, "report.view", ent)).To(BeFalse())
		Expect(ent.UserCalls).To(Equal(1))
	})

	It("keeps the no-opinion default for superusers", func() {
		authz := engine.New(reportCatalog(), true, logger)
		sue := &User{Name: "sue", Super: true}
		ent := &PlainEntity{Ident: "1", EntKind: "report"}

		// model-level grants still cover superusers, so no opinion from
		// both sources falls back to granted
		Expect(authz.Decide(sue, "report.view", ent)).To(BeTrue())
	})
})

var _ = Describe("preset policies", func() {
	It("grants ahead of resolution", func() {
		trusted := func(_ Authorizer, p Principal, _ Permission, _ Entity) bool {
			return p.ID() == "root"
		}
		authz := engine.New(reportCatalog(), false, logger, trusted)

		root := &User{Name: "root"}
		ent := &GatedEntity{
			PlainEntity: PlainEntity{Ident: "1", EntKind: "report"},
			UserFn:      func(Principal, string) Decision { return Denied },
		}

		Expect(authz.Decide(root, "report.delete", ent)).To(BeTrue())
		Expect(ent.UserCalls).To(BeZero())

		carol := &User{Name: "carol"}
		Expect(authz.Decide(carol, "report.delete", ent)).To(BeFalse())
	})
})
