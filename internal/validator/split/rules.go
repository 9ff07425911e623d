// Package split validates the arithmetic of decoded split plans. The model
// owns the attribution; this package owns the numbers.
package split

import (
	"fmt"
	"math"

	"tabsplit/internal/domain"
)

// Result is the outcome of one rule against one field.
type Result struct {
	RuleKey       string `json:"rule_key"`
	Passed        bool   `json:"passed"`
	FieldPath     string `json:"field_path"`
	ExpectedValue string `json:"expected_value"`
	ActualValue   string `json:"actual_value"`
	Message       string `json:"message"`
}

// Rule checks one arithmetic property of a plan.
type Rule struct {
	Key      string
	Name     string
	Critical bool // a critical failure is an invariant violation, not a warning
	validate func(plan *domain.SplitPlan, participants []domain.Participant) []Result
}

func (r *Rule) Validate(plan *domain.SplitPlan, participants []domain.Participant) []Result {
	return r.validate(plan, participants)
}

func fmtf(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func ruleResult(passed bool, key, fieldPath, expected, actual, name string) Result {
	msg := fmt.Sprintf("%s: %s matches", name, fieldPath)
	if !passed {
		msg = fmt.Sprintf("%s: %s mismatch (expected %s, got %s)", name, fieldPath, expected, actual)
	}
	return Result{
		RuleKey: key, Passed: passed, FieldPath: fieldPath,
		ExpectedValue: expected, ActualValue: actual, Message: msg,
	}
}

// Rules returns all built-in plan rules.
func Rules() []*Rule {
	return []*Rule{
		{
			Key: "split.sum_of_owes", Name: "Sum of owes equals total", Critical: true,
			validate: func(plan *domain.SplitPlan, _ []domain.Participant) []Result {
				sum := domain.Round2(plan.OwesSum())
				passed := math.Abs(sum-plan.Total) <= domain.SumTolerance
				return []Result{ruleResult(passed, "split.sum_of_owes", "participants[].owes",
					fmtf(plan.Total), fmtf(sum), "Sum of owes equals total")}
			},
		},
		{
			Key: "split.two_decimal_places", Name: "Amounts rounded to two decimals",
			validate: func(plan *domain.SplitPlan, _ []domain.Participant) []Result {
				results := make([]Result, 0, len(plan.Participants)*2)
				for i := range plan.Participants {
					share := &plan.Participants[i]
					for field, v := range map[string]float64{"owes": share.Owes, "paid": share.Paid} {
						fp := fmt.Sprintf("participants[%d].%s", i, field)
						passed := v == domain.Round2(v)
						results = append(results, ruleResult(passed, "split.two_decimal_places", fp,
							fmtf(domain.Round2(v)), fmt.Sprintf("%v", v), "Amounts rounded to two decimals"))
					}
				}
				return results
			},
		},
		{
			Key: "split.participant_coverage", Name: "Plan covers every supplied participant",
			validate: func(plan *domain.SplitPlan, participants []domain.Participant) []Result {
				inPlan := make(map[string]bool, len(plan.Participants))
				for i := range plan.Participants {
					inPlan[plan.Participants[i].Identifier] = true
				}
				results := make([]Result, 0, len(participants))
				for i := range participants {
					id := participants[i].Identifier
					fp := fmt.Sprintf("participants[%d]", i)
					results = append(results, ruleResult(inPlan[id], "split.participant_coverage", fp,
						id, id, "Plan covers every supplied participant"))
				}
				return results
			},
		},
	}
}
