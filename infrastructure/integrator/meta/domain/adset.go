package metadomain

type AdSet struct {
	ID               string         `json:"id"`
	CampaignID       string         `json:"campaign_id"`
	AccountID        string         `json:"account_id"`
	Name             string         `json:"name"`
	Status           string         `json:"status"`
	EffectiveStatus  string         `json:"effective_status"`
	OptimizationGoal string         `json:"optimization_goal"`
	BillingEvent     string         `json:"billing_event"`
	BidAmount        string         `json:"bid_amount"`
	DailyBudget      string         `json:"daily_budget"`
	LifetimeBudget   string         `json:"lifetime_budget"`
	Targeting        map[string]any `json:"targeting"`
	StartTime        string         `json:"start_time"`
	EndTime          string         `json:"end_time"`
}

var AdSetFields = []string{
	"id", "campaign_id", "account_id", "name", "status", "effective_status",
	"optimization_goal", "billing_event", "bid_amount", "daily_budget", "lifetime_budget",
	"targeting", "start_time", "end_time",
}
