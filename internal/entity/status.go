package entity

// ContactStatus is the lifecycle state of a contact. The values double as the
// wire tokens: they serialize as lowercase snake_case and other services
// (HTTP clients, the LLM tool server) depend on that exact form.
type ContactStatus string

const (
	StatusLead     ContactStatus = "lead"
	StatusCustomer ContactStatus = "customer"
	StatusPartner  ContactStatus = "partner"
	StatusInvestor ContactStatus = "investor"
	StatusOther    ContactStatus = "other"
)

// AllStatuses lists every status in declaration order.
var AllStatuses = []ContactStatus{
	StatusLead,
	StatusCustomer,
	StatusPartner,
	StatusInvestor,
	StatusOther,
}

// IsValid reports whether s is one of the known statuses.
func (s ContactStatus) IsValid() bool {
	switch s {
	case StatusLead, StatusCustomer, StatusPartner, StatusInvestor, StatusOther:
		return true
	}
	return false
}

// CanTransitionTo implements the contact lifecycle state machine:
//
//   - same status is always allowed (no-op)
//   - any status can become Other, and Other can become anything
//   - Lead is the entry point and can go anywhere
//   - Customer, Partner and Investor are mutually reachable, and each may
//     fall back to Lead (churn / relationship ended)
//
// Anything not listed is rejected.
func (s ContactStatus) CanTransitionTo(next ContactStatus) bool {
	if s == next {
		return true
	}
	if next == StatusOther || s == StatusOther {
		return true
	}
	if s == StatusLead {
		return true
	}

	switch s {
	case StatusCustomer:
		return next == StatusLead || next == StatusPartner || next == StatusInvestor
	case StatusPartner:
		return next == StatusLead || next == StatusCustomer || next == StatusInvestor
	case StatusInvestor:
		return next == StatusLead || next == StatusCustomer || next == StatusPartner
	}

	// Unknown pairs fail closed.
	return false
}

// TransitionExplanation returns a human-readable explanation for a transition.
// It is a pure function of (s, next).
func (s ContactStatus) TransitionExplanation(next ContactStatus) string {
	if s.CanTransitionTo(next) {
		return "Transition allowed"
	}

	switch {
	case s == StatusCustomer && next == StatusLead:
		return "Use 'churned' workflow instead of direct status change"
	case s == StatusPartner && next == StatusLead:
		return "Use 'end partnership' workflow instead"
	case s == StatusInvestor && next == StatusLead:
		return "Use 'investor exit' workflow instead"
	}
	return "This status transition is not allowed by business rules"
}
