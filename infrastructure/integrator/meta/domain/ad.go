package metadomain

type AdCreative struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Ad struct {
	ID              string      `json:"id"`
	AdSetID         string      `json:"adset_id"`
	CampaignID      string      `json:"campaign_id"`
	AccountID       string      `json:"account_id"`
	Name            string      `json:"name"`
	Status          string      `json:"status"`
	EffectiveStatus string      `json:"effective_status"`
	Creative        *AdCreative `json:"creative,omitempty"`
	CreatedTime     string      `json:"created_time"`
	UpdatedTime     string      `json:"updated_time"`
}

var AdFields = []string{
	"id", "adset_id", "campaign_id", "account_id", "name", "status", "effective_status",
	"creative{id,name}", "created_time", "updated_time",
}
