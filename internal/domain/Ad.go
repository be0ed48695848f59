package domain

import "time"

// Ad é o snapshot de um anúncio
type Ad struct {
	ID              string     `json:"id"`
	AdSetID         string     `json:"adset_id"`
	CampaignID      string     `json:"campaign_id"`
	AccountID       string     `json:"account_id"`
	Name            string     `json:"name"`
	Status          string     `json:"status"`
	EffectiveStatus string     `json:"effective_status"`
	CreativeID      string     `json:"creative_id,omitempty"`
	CreativeName    string     `json:"creative_name,omitempty"`
	CreatedTime     *time.Time `json:"created_time,omitempty"`
	UpdatedTime     *time.Time `json:"updated_time,omitempty"`
	Metrics         Metrics    `json:"metrics"`
}

func (a *Ad) EntityType() EntityType { return EntityAd }

func (a *Ad) NaturalID() string { return a.ID }

func (a *Ad) SetMetrics(m Metrics) { a.Metrics = m }
