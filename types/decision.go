package types

// Decision is the outcome of one instance-level access resolution.
// NoOpinion is the zero value: an entity without a gate for the requested
// action has no opinion, which is not a denial.
type Decision uint8

const (
	NoOpinion Decision = iota
	Granted
	Denied
)

func (d Decision) String() string {
	switch d {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	}
	return "no opinion"
}

// DecisionOf maps a plain allow/deny verdict to a Decision
func DecisionOf(allowed bool) Decision {
	if allowed {
		return Granted
	}
	return Denied
}

// Source is the origin of a candidate grant: the principal itself, or its
// group memberships
type Source string

// possible grant sources
const (
	SourceUser  Source = "user"
	SourceGroup Source = "group"
)
