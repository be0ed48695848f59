package metadomain

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// Paging só traz Next quando existe uma próxima página
type Paging struct {
	Cursors  Cursors `json:"cursors"`
	Next     string  `json:"next,omitempty"`
	Previous string  `json:"previous,omitempty"`
}

// NextCursor retorna o cursor da próxima página ou vazio na última
func (p Paging) NextCursor() string {
	if p.Next == "" {
		return ""
	}
	return p.Cursors.After
}

// ListResponse é o envelope de qualquer listagem paginada da Graph API
type ListResponse[T any] struct {
	Data   []T    `json:"data"`
	Paging Paging `json:"paging"`
}

type Campaign struct {
	ID              string `json:"id"`
	AccountID       string `json:"account_id"`
	Name            string `json:"name"`
	Objective       string `json:"objective"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status"`
	BuyingType      string `json:"buying_type"`
	DailyBudget     string `json:"daily_budget"`
	LifetimeBudget  string `json:"lifetime_budget"`
	BudgetRemaining string `json:"budget_remaining"`
	StartTime       string `json:"start_time"`
	StopTime        string `json:"stop_time"`
	CreatedTime     string `json:"created_time"`
	UpdatedTime     string `json:"updated_time"`
}

var CampaignFields = []string{
	"id", "account_id", "name", "objective", "status", "effective_status", "buying_type",
	"daily_budget", "lifetime_budget", "budget_remaining", "start_time", "stop_time",
	"created_time", "updated_time",
}
