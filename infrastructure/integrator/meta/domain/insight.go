package metadomain

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// Insight é uma linha crua de /{id}/insights. A API devolve números como string.
type Insight struct {
	Impressions    string   `json:"impressions"`
	Clicks         string   `json:"clicks"`
	Reach          string   `json:"reach"`
	Spend          string   `json:"spend"`
	Frequency      string   `json:"frequency"`
	CTR            string   `json:"ctr"`
	CPC            string   `json:"cpc"`
	CPM            string   `json:"cpm"`
	Objective      string   `json:"objective"`
	Actions        []Action `json:"actions"`
	CostPerActions []Action `json:"cost_per_action_type"`
	DateStart      string   `json:"date_start"`
	DateStop       string   `json:"date_stop"`
}

// Conjuntos de campos usados pela cascata de insights, do mais completo ao mínimo
var (
	InsightFieldsFull = []string{
		"impressions", "clicks", "reach", "spend", "frequency", "ctr", "cpc", "cpm",
		"objective", "actions", "cost_per_action_type",
	}
	InsightFieldsReduced = []string{
		"impressions", "clicks", "reach", "spend", "actions", "cost_per_action_type",
	}
	InsightFieldsBasic = []string{
		"impressions", "clicks", "reach", "spend",
	}
	InsightFieldsMinimal = []string{
		"impressions", "clicks", "spend",
	}
)
