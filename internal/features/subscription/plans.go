package subscription

import "github.com/mo-amir99/langswap-server-go/pkg/types"

const monthlyDurationDays = 30

// Plan is a purchasable subscription option.
type Plan struct {
	Type         types.PlanType `json:"planType"`
	Name         string         `json:"name"`
	Price        types.Money    `json:"price"`
	Currency     string         `json:"currency"`
	DurationDays *int           `json:"durationDays"`
}

var plans = []Plan{
	{Type: types.PlanMonthly, Name: "Monthly Premium", Price: types.MustMoney("5.99"), Currency: "USD", DurationDays: intPtr(monthlyDurationDays)},
	{Type: types.PlanLifetime, Name: "Lifetime Premium", Price: types.MustMoney("49.99"), Currency: "USD"},
}

// Plans returns the plan table.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

// LookupPlan finds a plan by type.
func LookupPlan(planType types.PlanType) (Plan, bool) {
	for _, p := range plans {
		if p.Type == planType {
			return p, true
		}
	}
	return Plan{}, false
}

func intPtr(v int) *int { return &v }
