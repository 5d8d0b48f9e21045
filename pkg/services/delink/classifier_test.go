package delink

import (
	"testing"

	"github.com/de-tools/gcp-janitor/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassify_TruthTable(t *testing.T) {
	t.Run("labeled projects are never candidates", func(t *testing.T) {
		for _, presence := range []bool{false, true} {
			_, decision := Classify(true, presence)
			assert.Equal(t, domain.DecisionSkip, decision)
		}
	})

	t.Run("unlabeled and empty is a low-risk candidate", func(t *testing.T) {
		tier, decision := Classify(false, false)
		assert.Equal(t, domain.RiskLow, tier)
		assert.Equal(t, domain.DecisionCandidate, decision)
	})

	t.Run("unlabeled with resources is high risk, manual review", func(t *testing.T) {
		tier, decision := Classify(false, true)
		assert.Equal(t, domain.RiskHigh, tier)
		assert.Equal(t, domain.DecisionSkip, decision)
	})
}
