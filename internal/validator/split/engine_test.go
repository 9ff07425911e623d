package split_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabsplit/internal/domain"
	"tabsplit/internal/validator/split"
)

func participants(ids ...string) []domain.Participant {
	out := make([]domain.Participant, len(ids))
	for i, id := range ids {
		out[i] = domain.Participant{Identifier: id}
	}
	return out
}

func evenPlan() *domain.SplitPlan {
	return &domain.SplitPlan{
		Summary:  "even three-way split",
		Currency: "USD",
		Total:    90.00,
		Payer:    "alice",
		Participants: []domain.ParticipantShare{
			{Identifier: "alice", Paid: 90.00, Owes: 30.00},
			{Identifier: "bob", Paid: 0, Owes: 30.00},
			{Identifier: "carol", Paid: 0, Owes: 30.00},
		},
	}
}

func TestCheck_BalancedPlanPasses(t *testing.T) {
	plan := evenPlan()
	report := split.Check(plan, participants("alice", "bob", "carol"))

	assert.False(t, report.HasCritical)
	assert.False(t, report.HasWarning)
	assert.NoError(t, report.Err())
}

func TestCheck_SumMismatchIsCritical(t *testing.T) {
	plan := evenPlan()
	plan.Participants[2].Owes = 25.00 // sum drops to 85 against a 90 total

	report := split.Check(plan, participants("alice", "bob", "carol"))
	require.True(t, report.HasCritical)

	err := report.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvariantViolation))
}

func TestCheck_SumWithinToleranceTolerated(t *testing.T) {
	plan := &domain.SplitPlan{
		Currency: "USD",
		Total:    100.00,
		Payer:    "a",
		Participants: []domain.ParticipantShare{
			{Identifier: "a", Owes: 33.33},
			{Identifier: "b", Owes: 33.33},
			{Identifier: "c", Owes: 33.33},
		},
	}

	// 99.99 vs 100.00 is off by a cent, at the edge of tolerance.
	report := split.Check(plan, participants("a", "b", "c"))
	assert.False(t, report.HasCritical)
	assert.NoError(t, report.Err())
}

func TestCheck_UnroundedAmountIsWarningNotError(t *testing.T) {
	plan := evenPlan()
	plan.Participants[0].Owes = 30.004
	plan.Participants[1].Owes = 29.996

	report := split.Check(plan, participants("alice", "bob", "carol"))
	assert.True(t, report.HasWarning)
	assert.False(t, report.HasCritical)
	assert.NoError(t, report.Err())
}

func TestCheck_MissingParticipantIsWarning(t *testing.T) {
	plan := evenPlan()

	report := split.Check(plan, participants("alice", "bob", "carol", "dave"))
	assert.True(t, report.HasWarning)
	assert.NoError(t, report.Err())

	var found bool
	for _, r := range report.Results {
		if r.RuleKey == "split.participant_coverage" && !r.Passed {
			found = true
			assert.Equal(t, "dave", r.ExpectedValue)
		}
	}
	assert.True(t, found, "expected a failed coverage result for dave")
}

func TestCheck_ItemizedPlanWithProportionalTip(t *testing.T) {
	// 32.00 subtotal plus a 15% tip: shared items land on exact cents and the
	// per-person owes reconcile against the 36.80 total.
	plan := &domain.SplitPlan{
		Summary:  "itemized split with shared drinks",
		Currency: "USD",
		Total:    36.80,
		Payer:    "carol",
		Participants: []domain.ParticipantShare{
			{Identifier: "carol", Paid: 36.80, Owes: 14.95, Comment: "taco and water"},
			{Identifier: "bob", Paid: 0, Owes: 12.65, Comment: "taco and half the coke"},
			{Identifier: "alice", Paid: 0, Owes: 9.20, Comment: "cake and half the coke"},
		},
	}

	report := split.Check(plan, participants("carol", "bob", "alice"))
	assert.False(t, report.HasCritical)
	assert.False(t, report.HasWarning)
	assert.NoError(t, report.Err())
}

func TestNormalize_RoundsAllAmounts(t *testing.T) {
	plan := &domain.SplitPlan{
		Total: 90.0000001,
		Participants: []domain.ParticipantShare{
			{Identifier: "a", Paid: 90.006, Owes: 29.99999},
			{Identifier: "b", Paid: 0, Owes: 30.0000001},
			{Identifier: "c", Paid: 0, Owes: 30.004999},
		},
	}

	split.Normalize(plan)

	assert.Equal(t, 90.00, plan.Total)
	assert.Equal(t, 30.00, plan.Participants[0].Owes)
	assert.Equal(t, 30.00, plan.Participants[1].Owes)
	assert.Equal(t, 30.00, plan.Participants[2].Owes)
	assert.Equal(t, 90.01, plan.Participants[0].Paid)
}

func TestNormalizeThenCheck_ModelDriftWithinCent(t *testing.T) {
	plan := &domain.SplitPlan{
		Currency: "EUR",
		Total:    47.70,
		Payer:    "sam",
		Participants: []domain.ParticipantShare{
			{Identifier: "sam", Paid: 47.70, Owes: 23.850000000000001},
			{Identifier: "lee", Paid: 0, Owes: 23.849999999999998},
		},
	}

	split.Normalize(plan)
	report := split.Check(plan, participants("sam", "lee"))

	assert.False(t, report.HasCritical)
	assert.False(t, report.HasWarning)
}
