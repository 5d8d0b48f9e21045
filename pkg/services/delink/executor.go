package delink

import (
	"context"
	"time"

	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Confirmation is the operator's answer for one candidate.
type Confirmation int

const (
	ConfirmYes Confirmation = iota
	ConfirmNo
	ConfirmSkipAll
)

// Confirmer asks the operator whether one candidate may be delinked. The
// executor's logic stays testable without a live terminal.
type Confirmer interface {
	Confirm(ctx context.Context, c domain.DelinkCandidate) (Confirmation, error)
}

// BillingUpdater performs the single mutating operation of the whole tool.
type BillingUpdater interface {
	DisableBilling(ctx context.Context, projectID string) error
}

// Executor processes candidates strictly sequentially: mutations are not
// parallelized so the blast radius stays controlled, and confirmation is a
// synchronous operator interaction anyway.
type Executor struct {
	updater   BillingUpdater
	confirmer Confirmer
	cfg       domain.ScanConfig
	sleep     func(time.Duration)
}

func NewExecutor(updater BillingUpdater, confirmer Confirmer, cfg domain.ScanConfig) *Executor {
	return &Executor{
		updater:   updater,
		confirmer: confirmer,
		cfg:       cfg,
		sleep:     time.Sleep,
	}
}

// Execute walks candidates with Decision == CANDIDATE in order and returns
// one outcome per processed candidate. In dry-run mode (the default) the
// billing API is never called. A failed mutation is recorded on its outcome
// and never blocks the remaining candidates. No rollback: re-enabling
// billing is an explicit operator action.
func (e *Executor) Execute(ctx context.Context, candidates []domain.DelinkCandidate) []domain.DelinkOutcome {
	log := zerolog.Ctx(ctx)

	var outcomes []domain.DelinkOutcome
	var mutated int
	skipAll := false

	for _, candidate := range candidates {
		if candidate.Decision != domain.DecisionCandidate {
			continue
		}
		projectID := candidate.Project.ID

		if skipAll {
			outcomes = append(outcomes, domain.DelinkOutcome{ProjectID: projectID, DryRun: e.cfg.DryRun})
			continue
		}

		// Confirmed is only set when the operator explicitly answered yes.
		confirmed := false
		if e.cfg.RequireConfirmation {
			answer, err := e.confirmer.Confirm(ctx, candidate)
			if err != nil {
				outcomes = append(outcomes, domain.DelinkOutcome{
					ProjectID: projectID,
					DryRun:    e.cfg.DryRun,
					Err:       "confirmation failed: " + err.Error(),
				})
				continue
			}
			switch answer {
			case ConfirmSkipAll:
				log.Info().Str("project", projectID).Msg("operator skipped all remaining candidates")
				skipAll = true
				outcomes = append(outcomes, domain.DelinkOutcome{ProjectID: projectID, DryRun: e.cfg.DryRun})
				continue
			case ConfirmNo:
				log.Info().Str("project", projectID).Msg("operator declined")
				outcomes = append(outcomes, domain.DelinkOutcome{ProjectID: projectID, DryRun: e.cfg.DryRun})
				continue
			}
			confirmed = true
		}

		if e.cfg.DryRun {
			log.Info().Str("project", projectID).Msg("dry run: would disable billing")
			outcomes = append(outcomes, domain.DelinkOutcome{
				ProjectID: projectID,
				Attempted: true,
				Succeeded: true,
				DryRun:    true,
				Confirmed: confirmed,
			})
			continue
		}

		if mutated > 0 {
			// Pace consecutive live mutations.
			e.sleep(time.Second)
		}

		outcome := domain.DelinkOutcome{ProjectID: projectID, Attempted: true, Confirmed: confirmed}
		if err := e.updater.DisableBilling(ctx, projectID); err != nil {
			log.Error().Str("project", projectID).Err(err).Msg("billing disable failed")
			outcome.Err = err.Error()
		} else {
			log.Info().Str("project", projectID).Msg("billing disabled")
			outcome.Succeeded = true
		}
		mutated++
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}
