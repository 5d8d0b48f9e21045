package delink

import "github.com/de-tools/gcp-janitor/pkg/models/domain"

// Classify maps label presence and billable-resource presence onto a risk
// tier and a delink decision. Total over the 2x2 input space: labeled
// projects are never candidates, unlabeled projects with resources are
// flagged HIGH for manual review, and only unlabeled empty projects become
// LOW-risk candidates.
func Classify(hasLabels, resourcePresence bool) (domain.RiskTier, domain.Decision) {
	switch {
	case hasLabels:
		return domain.RiskHigh, domain.DecisionSkip
	case resourcePresence:
		return domain.RiskHigh, domain.DecisionSkip
	default:
		return domain.RiskLow, domain.DecisionCandidate
	}
}
