package domain

import "time"

// AdSet é o snapshot de um conjunto de anúncios
type AdSet struct {
	ID               string         `json:"id"`
	CampaignID       string         `json:"campaign_id"`
	AccountID        string         `json:"account_id"`
	Name             string         `json:"name"`
	Status           string         `json:"status"`
	EffectiveStatus  string         `json:"effective_status"`
	OptimizationGoal string         `json:"optimization_goal,omitempty"`
	BillingEvent     string         `json:"billing_event,omitempty"`
	BidAmount        *int64         `json:"bid_amount,omitempty"`
	DailyBudget      *int64         `json:"daily_budget,omitempty"`
	LifetimeBudget   *int64         `json:"lifetime_budget,omitempty"`
	Targeting        map[string]any `json:"targeting,omitempty"`
	StartTime        *time.Time     `json:"start_time,omitempty"`
	EndTime          *time.Time     `json:"end_time,omitempty"`
	Metrics          Metrics        `json:"metrics"`
}

func (a *AdSet) EntityType() EntityType { return EntityAdSet }

func (a *AdSet) NaturalID() string { return a.ID }

func (a *AdSet) SetMetrics(m Metrics) { a.Metrics = m }
