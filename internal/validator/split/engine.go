package split

import (
	"errors"
	"fmt"

	"tabsplit/internal/domain"
)

// Report is the outcome of running all rules against one plan.
type Report struct {
	Results     []Result
	HasWarning  bool
	HasCritical bool
}

// Normalize rounds every monetary amount in the plan to two decimal places,
// in place. Run before Check so sub-cent drift from the model does not trip
// the rounding rule.
func Normalize(plan *domain.SplitPlan) {
	plan.Total = domain.Round2(plan.Total)
	for i := range plan.Participants {
		plan.Participants[i].Owes = domain.Round2(plan.Participants[i].Owes)
		plan.Participants[i].Paid = domain.Round2(plan.Participants[i].Paid)
	}
}

// Check runs all built-in rules against a plan.
func Check(plan *domain.SplitPlan, participants []domain.Participant) *Report {
	report := &Report{}
	for _, rule := range Rules() {
		for _, result := range rule.Validate(plan, participants) {
			report.Results = append(report.Results, result)
			if result.Passed {
				continue
			}
			if rule.Critical {
				report.HasCritical = true
			} else {
				report.HasWarning = true
			}
		}
	}
	return report
}

// Err converts a report into an invariant violation error, or nil. Only
// critical failures are errors; warnings stay advisory.
func (r *Report) Err() error {
	if !r.HasCritical {
		return nil
	}
	var details error
	for i := range r.Results {
		if !r.Results[i].Passed {
			details = errors.Join(details, errors.New(r.Results[i].Message))
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrInvariantViolation, details)
}
