package domain

type RiskTier string

const (
	RiskLow  RiskTier = "LOW"
	RiskHigh RiskTier = "HIGH"
)

type Decision string

const (
	DecisionCandidate Decision = "CANDIDATE"
	DecisionSkip      Decision = "SKIP"
)

// ResourcePresence holds per-category resource counts for a project. Counts
// stop at the first non-empty category; Checked lists the categories that
// were actually queried.
type ResourcePresence struct {
	Instances    int
	Disks        int
	Buckets      int
	SQLInstances int
	Clusters     int
	Checked      []string
}

func (p ResourcePresence) Any() bool {
	return p.Instances > 0 || p.Disks > 0 || p.Buckets > 0 || p.SQLInstances > 0 || p.Clusters > 0
}

// DelinkCandidate is the classification trace for one project in the delink
// flow. Candidates with Decision == DecisionCandidate are eligible for
// billing disassociation.
type DelinkCandidate struct {
	Project          ProjectInfo
	HasLabels        bool
	ResourcePresence bool
	Resources        ResourcePresence
	RiskTier         RiskTier
	Decision         Decision
	// Err holds the classified error message when inspection failed; such
	// projects are always SKIP.
	Err string
}

// DelinkOutcome is the audit record for one processed candidate.
type DelinkOutcome struct {
	ProjectID string
	Attempted bool
	Succeeded bool
	DryRun    bool
	Confirmed bool
	Err       string
}
