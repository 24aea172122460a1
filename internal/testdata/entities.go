// Package testdata holds shared fixtures for engine and catalog tests
package testdata

import "github.com/supremind/olp/types"

// ReportPermissions is the permission universe of the "report" kind
var ReportPermissions = []types.Permission{
	"report.view",
	"report.add",
	"report.change",
	"report.delete",
}

// PlainEntity has no gates at all: every instance-level question about it
// resolves to no opinion
type PlainEntity struct {
	Ident   string
	EntKind string
}

func (e *PlainEntity) ID() string {
	return e.Ident
}

func (e *PlainEntity) Kind() string {
	return e.EntKind
}

var (
	_ types.Entity    = (*GatedEntity)(nil)
	_ types.UserGate  = (*GatedEntity)(nil)
	_ types.GroupGate = (*GatedEntity)(nil)
)

// GatedEntity delegates its gates to function fields, so tests can script
// and observe instance-level verdicts. A nil function reports no opinion.
type GatedEntity struct {
	PlainEntity
	UserFn  func(p types.Principal, action string) types.Decision
	GroupFn func(groups []types.Group, action string) types.Decision

	UserCalls  int
	GroupCalls int
}

func (e *GatedEntity) UserCan(p types.Principal, action string) types.Decision {
	e.UserCalls++
	if e.UserFn == nil {
		return types.NoOpinion
	}
	return e.UserFn(p, action)
}

func (e *GatedEntity) GroupCan(groups []types.Group, action string) types.Decision {
	e.GroupCalls++
	if e.GroupFn == nil {
		return types.NoOpinion
	}
	return e.GroupFn(groups, action)
}

// OwnerGated grants an action only to its owning user, denying everyone
// else, with no group opinion
func OwnerGated(kind, id, owner, action string) *GatedEntity {
	return &GatedEntity{
		PlainEntity: PlainEntity{Ident: id, EntKind: kind},
		UserFn: func(p types.Principal, act string) types.Decision {
			if act != action {
				return types.NoOpinion
			}
			return types.DecisionOf(p.ID() == owner)
		},
	}
}
