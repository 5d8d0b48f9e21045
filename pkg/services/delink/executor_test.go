package delink

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUpdater struct{ mock.Mock }

func (m *mockUpdater) DisableBilling(ctx context.Context, projectID string) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

// scriptedConfirmer replays a fixed sequence of answers.
type scriptedConfirmer struct {
	answers []Confirmation
	asked   int
}

func (s *scriptedConfirmer) Confirm(_ context.Context, _ domain.DelinkCandidate) (Confirmation, error) {
	if s.asked >= len(s.answers) {
		return ConfirmNo, errors.New("unexpected confirmation request")
	}
	answer := s.answers[s.asked]
	s.asked++
	return answer, nil
}

func candidate(projectID string) domain.DelinkCandidate {
	return domain.DelinkCandidate{
		Project:  domain.ProjectInfo{ID: projectID},
		RiskTier: domain.RiskLow,
		Decision: domain.DecisionCandidate,
	}
}

func executorConfig(dryRun, confirm bool) domain.ScanConfig {
	return domain.ScanConfig{
		BillingAccountID:    "01ABCD-234567-89EFGH",
		DryRun:              dryRun,
		RequireConfirmation: confirm,
		MaxDelinkProjects:   100,
	}
}

func TestExecutor_DryRunNeverMutates(t *testing.T) {
	updater := &mockUpdater{}

	e := NewExecutor(updater, nil, executorConfig(true, false))
	outcomes := e.Execute(context.Background(), []domain.DelinkCandidate{
		candidate("p1"), candidate("p2"), candidate("p3"),
	})

	require.Len(t, outcomes, 3)
	for _, o := range outcomes {
		assert.True(t, o.Attempted)
		assert.True(t, o.Succeeded)
		assert.True(t, o.DryRun)
		assert.Empty(t, o.Err)
	}
	updater.AssertNotCalled(t, "DisableBilling", mock.Anything, mock.Anything)
}

func TestExecutor_SkipsNonCandidates(t *testing.T) {
	updater := &mockUpdater{}
	skip := candidate("labeled")
	skip.Decision = domain.DecisionSkip
	skip.RiskTier = domain.RiskHigh

	e := NewExecutor(updater, nil, executorConfig(true, false))
	outcomes := e.Execute(context.Background(), []domain.DelinkCandidate{skip, candidate("p1")})

	require.Len(t, outcomes, 1)
	assert.Equal(t, "p1", outcomes[0].ProjectID)
}

func TestExecutor_LiveMode(t *testing.T) {
	t.Run("mutation called once per confirmed candidate", func(t *testing.T) {
		updater := &mockUpdater{}
		updater.On("DisableBilling", mock.Anything, "p1").Return(nil)
		updater.On("DisableBilling", mock.Anything, "p2").Return(nil)

		var slept time.Duration
		e := NewExecutor(updater, nil, executorConfig(false, false))
		e.sleep = func(d time.Duration) { slept += d }

		outcomes := e.Execute(context.Background(), []domain.DelinkCandidate{candidate("p1"), candidate("p2")})

		require.Len(t, outcomes, 2)
		for _, o := range outcomes {
			assert.True(t, o.Attempted)
			assert.True(t, o.Succeeded)
			assert.False(t, o.DryRun)
		}
		// One pause between two consecutive live mutations.
		assert.Equal(t, time.Second, slept)
		updater.AssertExpectations(t)
	})

	t.Run("failure recorded, remaining candidates still processed", func(t *testing.T) {
		updater := &mockUpdater{}
		updater.On("DisableBilling", mock.Anything, "p1").Return(errors.New("permission denied"))
		updater.On("DisableBilling", mock.Anything, "p2").Return(nil)

		e := NewExecutor(updater, nil, executorConfig(false, false))
		e.sleep = func(time.Duration) {}

		outcomes := e.Execute(context.Background(), []domain.DelinkCandidate{candidate("p1"), candidate("p2")})

		require.Len(t, outcomes, 2)
		assert.True(t, outcomes[0].Attempted)
		assert.False(t, outcomes[0].Succeeded)
		assert.Contains(t, outcomes[0].Err, "permission denied")
		assert.True(t, outcomes[1].Succeeded)
		updater.AssertExpectations(t)
	})
}

func TestExecutor_Confirmation(t *testing.T) {
	t.Run("declined candidate is not attempted", func(t *testing.T) {
		updater := &mockUpdater{}
		confirmer := &scriptedConfirmer{answers: []Confirmation{ConfirmNo, ConfirmYes}}

		e := NewExecutor(updater, confirmer, executorConfig(true, true))
		outcomes := e.Execute(context.Background(), []domain.DelinkCandidate{candidate("p1"), candidate("p2")})

		require.Len(t, outcomes, 2)
		assert.False(t, outcomes[0].Attempted)
		assert.False(t, outcomes[0].Confirmed)
		assert.True(t, outcomes[1].Attempted)
		assert.True(t, outcomes[1].Confirmed)
	})

	t.Run("skip-all short-circuits remaining prompts", func(t *testing.T) {
		updater := &mockUpdater{}
		confirmer := &scriptedConfirmer{answers: []Confirmation{ConfirmYes, ConfirmSkipAll}}

		e := NewExecutor(updater, confirmer, executorConfig(true, true))
		outcomes := e.Execute(context.Background(), []domain.DelinkCandidate{
			candidate("p1"), candidate("p2"), candidate("p3"), candidate("p4"),
		})

		require.Len(t, outcomes, 4)
		assert.True(t, outcomes[0].Attempted)
		for _, o := range outcomes[1:] {
			assert.False(t, o.Attempted, "%s should have been skipped", o.ProjectID)
		}
		// p3 and p4 never reached the confirmer.
		assert.Equal(t, 2, confirmer.asked)
	})
}

func TestTerminalConfirmer(t *testing.T) {
	c := domain.DelinkCandidate{Project: domain.ProjectInfo{ID: "p1"}}

	t.Run("answers", func(t *testing.T) {
		for input, want := range map[string]Confirmation{
			"y\n":    ConfirmYes,
			"YES\n":  ConfirmYes,
			"n\n":    ConfirmNo,
			"\n":     ConfirmNo,
			"s\n":    ConfirmSkipAll,
			"skip\n": ConfirmSkipAll,
		} {
			var out strings.Builder
			confirmer := NewTerminalConfirmer(strings.NewReader(input), &out)
			answer, err := confirmer.Confirm(context.Background(), c)
			require.NoError(t, err)
			assert.Equal(t, want, answer, "input %q", input)
			assert.Contains(t, out.String(), "p1")
		}
	})

	t.Run("reprompts on garbage", func(t *testing.T) {
		var out strings.Builder
		confirmer := NewTerminalConfirmer(strings.NewReader("maybe\ny\n"), &out)
		answer, err := confirmer.Confirm(context.Background(), c)
		require.NoError(t, err)
		assert.Equal(t, ConfirmYes, answer)
		assert.Contains(t, out.String(), "Please answer")
	})
}
