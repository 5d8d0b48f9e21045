package delink

import (
	"context"

	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	"github.com/de-tools/gcp-janitor/pkg/services/projects"
	"github.com/rs/zerolog"
)

// Auditor builds the classification trace for every project under the
// billing account. Inspection runs sequentially: the delink flow is
// deliberately slow and observable, and the candidate list is capped by
// MaxDelinkProjects anyway.
type Auditor struct {
	explorer projects.Explorer
	cfg      domain.ScanConfig
}

func NewAuditor(explorer projects.Explorer, cfg domain.ScanConfig) *Auditor {
	return &Auditor{explorer: explorer, cfg: cfg}
}

// BuildCandidates produces one DelinkCandidate per inspected project.
// Labeled projects short-circuit to SKIP without resource presence checks.
// A project whose inspection fails is recorded with the classified error
// and decision SKIP; it never aborts the remaining projects.
func (a *Auditor) BuildCandidates(ctx context.Context, projectSet []domain.Project) []domain.DelinkCandidate {
	log := zerolog.Ctx(ctx)

	if len(projectSet) > a.cfg.MaxDelinkProjects {
		log.Warn().
			Int("projects", len(projectSet)).
			Int("cap", a.cfg.MaxDelinkProjects).
			Msg("project set exceeds delink cap, inspecting the first portion only")
		projectSet = projectSet[:a.cfg.MaxDelinkProjects]
	}

	candidates := make([]domain.DelinkCandidate, 0, len(projectSet))
	for _, project := range projectSet {
		candidates = append(candidates, a.inspect(ctx, project.ID))
	}

	var eligible int
	for _, c := range candidates {
		if c.Decision == domain.DecisionCandidate {
			eligible++
		}
	}
	log.Info().
		Int("inspected", len(candidates)).
		Int("candidates", eligible).
		Msg("delink audit complete")

	return candidates
}

func (a *Auditor) inspect(ctx context.Context, projectID string) domain.DelinkCandidate {
	log := zerolog.Ctx(ctx)

	info, err := a.explorer.GetProjectInfo(ctx, projectID)
	if err != nil {
		log.Warn().Str("project", projectID).Err(err).Msg("project inspection failed, skipping")
		return domain.DelinkCandidate{
			Project:  domain.ProjectInfo{ID: projectID},
			RiskTier: domain.RiskHigh,
			Decision: domain.DecisionSkip,
			Err:      err.Error(),
		}
	}

	candidate := domain.DelinkCandidate{
		Project:   info,
		HasLabels: info.HasLabels(),
	}

	if candidate.HasLabels {
		// Labeled projects are owned; no need to burn five list calls.
		candidate.RiskTier, candidate.Decision = Classify(true, false)
		return candidate
	}

	presence, err := a.explorer.CheckResourcePresence(ctx, projectID)
	if err != nil {
		log.Warn().Str("project", projectID).Err(err).Msg("presence check failed, skipping")
		candidate.RiskTier = domain.RiskHigh
		candidate.Decision = domain.DecisionSkip
		candidate.Err = err.Error()
		return candidate
	}

	candidate.Resources = presence
	candidate.ResourcePresence = presence.Any()
	candidate.RiskTier, candidate.Decision = Classify(false, candidate.ResourcePresence)
	return candidate
}
