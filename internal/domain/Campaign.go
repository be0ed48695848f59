package domain

import "time"

// Campaign é o snapshot de uma campanha. Orçamentos ficam na menor unidade da moeda.
type Campaign struct {
	ID              string     `json:"id"`
	AccountID       string     `json:"account_id"`
	Name            string     `json:"name"`
	Objective       string     `json:"objective"`
	Status          string     `json:"status"`
	EffectiveStatus string     `json:"effective_status"`
	BuyingType      string     `json:"buying_type,omitempty"`
	DailyBudget     *int64     `json:"daily_budget,omitempty"`
	LifetimeBudget  *int64     `json:"lifetime_budget,omitempty"`
	BudgetRemaining *int64     `json:"budget_remaining,omitempty"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	StopTime        *time.Time `json:"stop_time,omitempty"`
	CreatedTime     *time.Time `json:"created_time,omitempty"`
	UpdatedTime     *time.Time `json:"updated_time,omitempty"`
	Metrics         Metrics    `json:"metrics"`
}

func (c *Campaign) EntityType() EntityType { return EntityCampaign }

func (c *Campaign) NaturalID() string { return c.ID }

func (c *Campaign) SetMetrics(m Metrics) { c.Metrics = m }
