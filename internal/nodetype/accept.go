package nodetype

import "slices"

// AcceptResult is the outcome of asking a node whether an add-on may become
// its child.
type AcceptResult int

const (
	Accept AcceptResult = iota
	Reject
	// TentativeAccept attaches the add-on but marks the decision as one that
	// must be re-checked when the composition changes.
	TentativeAccept
)

func (r AcceptResult) String() string {
	switch r {
	case Accept:
		return "Accept"
	case Reject:
		return "Reject"
	case TentativeAccept:
		return "TentativeAccept"
	default:
		return "AcceptResult(?)"
	}
}

// Allows reports whether the result permits attaching.
func (r AcceptResult) Allows() bool {
	return r == Accept || r == TentativeAccept
}

// Combine merges two verdicts: any Reject wins, then any Accept, otherwise
// the result stays tentative.
func Combine(a, b AcceptResult) AcceptResult {
	switch {
	case a == Reject || b == Reject:
		return Reject
	case a == Accept || b == Accept:
		return Accept
	default:
		return TentativeAccept
	}
}

// CheckAcceptChild decides whether candidate may be attached under parent.
// The parent is the authority: the candidate can only narrow the verdict to
// Reject, never overturn a parent Reject.
func CheckAcceptChild(parent, candidate *Definition) AcceptResult {
	if parent == nil || candidate == nil || !candidate.IsAddOn() {
		return Reject
	}

	if caps := parent.Traits.AddOnCapabilities; len(caps) > 0 {
		if !slices.ContainsFunc(caps, candidate.Implements) {
			return Reject
		}
	}

	parentVerdict := Accept
	if parent.Traits.AcceptAddOn != nil {
		parentVerdict = parent.Traits.AcceptAddOn(parent, candidate)
	}
	if parentVerdict == Reject {
		return Reject
	}

	childVerdict := TentativeAccept
	if candidate.Traits.AcceptParent != nil {
		childVerdict = candidate.Traits.AcceptParent(candidate, parent)
	}
	return Combine(parentVerdict, childVerdict)
}
