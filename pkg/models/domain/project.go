package domain

import "time"

// Project is a billing-enabled project discovered under a billing account.
// Snapshot taken once per run; identity is ID.
type Project struct {
	ID             string
	BillingEnabled bool
}

// ProjectInfo carries the project metadata used by the delink flow.
type ProjectInfo struct {
	ID         string
	Name       string
	CreateTime time.Time
	State      string
	Labels     map[string]string
}

func (p ProjectInfo) HasLabels() bool {
	return len(p.Labels) > 0
}
