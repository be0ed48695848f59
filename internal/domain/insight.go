package domain

import (
	"github.com/vfg2006/traffic-sync-worker/pkg/utils"
)

// InsightsSource indica qual tentativa da cascata de insights produziu as métricas
type InsightsSource string

const (
	InsightsSourceFull      InsightsSource = "full"
	InsightsSourceReduced30 InsightsSource = "reduced_30d"
	InsightsSourceReduced7  InsightsSource = "reduced_7d"
	InsightsSourceMinimal7  InsightsSource = "minimal_7d"
	InsightsSourceNone      InsightsSource = "none"
)

// InsightsRef identifica a entidade cujas métricas serão consultadas
type InsightsRef struct {
	Type EntityType
	ID   string
}

// InsightsQuery é uma consulta de insights já resolvida (campos e período)
type InsightsQuery struct {
	Ref    InsightsRef
	Fields []string
	Range  DateRange
}

// InsightsRecord é o registro de métricas já validado na fronteira com o Meta
type InsightsRecord struct {
	Impressions   int64
	Clicks        int64
	Reach         int64
	Spend         float64
	Frequency     float64
	CTR           float64
	CPC           float64
	CPM           float64
	Objective     string
	Actions       map[string]float64
	CostPerAction map[string]float64
	DateStart     string
	DateStop      string
	Source        InsightsSource
}

func (r *InsightsRecord) IsEmpty() bool {
	if r == nil {
		return true
	}
	return r.Impressions == 0 && r.Clicks == 0 && r.Reach == 0 && r.Spend == 0 && len(r.Actions) == 0
}

// Metrics é o bloco de métricas persistido junto de cada entidade
type Metrics struct {
	Impressions       int64              `json:"impressions"`
	Clicks            int64              `json:"clicks"`
	Reach             int64              `json:"reach"`
	Spend             float64            `json:"spend"`
	Frequency         float64            `json:"frequency"`
	Conversions       map[string]float64 `json:"conversions"`
	CostPerConversion map[string]float64 `json:"cost_per_conversion"`
	CTR               float64            `json:"ctr"`
	CPC               float64            `json:"cpc"`
	CPM               float64            `json:"cpm"`
	Result            float64            `json:"result"`
	CostPerResult     float64            `json:"cost_per_result"`
	DateStart         string             `json:"date_start,omitempty"`
	DateStop          string             `json:"date_stop,omitempty"`
	Source            InsightsSource     `json:"source"`
}

// EmptyMetrics é usado quando nenhuma tentativa da cascata retornou dados
func EmptyMetrics() Metrics {
	return Metrics{
		Conversions:       map[string]float64{},
		CostPerConversion: map[string]float64{},
		Source:            InsightsSourceNone,
	}
}

// NewMetrics monta o bloco de métricas a partir do registro de insights,
// calculando os custos derivados que a API não retornou
func NewMetrics(record *InsightsRecord) Metrics {
	if record == nil {
		return EmptyMetrics()
	}

	metrics := Metrics{
		Impressions:       record.Impressions,
		Clicks:            record.Clicks,
		Reach:             record.Reach,
		Spend:             utils.RoundWithTwoDecimalPlace(record.Spend),
		Frequency:         record.Frequency,
		Conversions:       copyFloatMap(record.Actions),
		CostPerConversion: copyFloatMap(record.CostPerAction),
		CTR:               record.CTR,
		CPC:               record.CPC,
		CPM:               record.CPM,
		DateStart:         record.DateStart,
		DateStop:          record.DateStop,
		Source:            record.Source,
	}

	if metrics.CTR == 0 && metrics.Impressions > 0 {
		metrics.CTR = utils.RoundWithTwoDecimalPlace(float64(metrics.Clicks) / float64(metrics.Impressions) * 100)
	}
	if metrics.CPC == 0 && metrics.Clicks > 0 {
		metrics.CPC = utils.RoundWithTwoDecimalPlace(record.Spend / float64(metrics.Clicks))
	}
	if metrics.CPM == 0 && metrics.Impressions > 0 {
		metrics.CPM = utils.RoundWithTwoDecimalPlace(record.Spend / float64(metrics.Impressions) * 1000)
	}
	if metrics.Frequency == 0 && metrics.Reach > 0 {
		metrics.Frequency = utils.RoundWithTwoDecimalPlace(float64(metrics.Impressions) / float64(metrics.Reach))
	}

	if actionType, ok := ObjectiveToActionType[record.Objective]; ok {
		metrics.Result = record.Actions[actionType]
		metrics.CostPerResult = utils.RoundWithTwoDecimalPlace(record.CostPerAction[actionType])
		if metrics.CostPerResult == 0 && metrics.Result > 0 {
			metrics.CostPerResult = utils.RoundWithTwoDecimalPlace(record.Spend / metrics.Result)
		}
	}

	if metrics.Source == "" {
		metrics.Source = InsightsSourceFull
	}

	return metrics
}

// Mapeamento de "objective" -> "action_type" usado como resultado
var ObjectiveToActionType = map[string]string{
	"LINK_CLICKS":           "link_click",
	"POST_ENGAGEMENT":       "post_engagement",
	"PAGE_LIKES":            "like",
	"VIDEO_VIEWS":           "video_view",
	"LEAD_GENERATION":       "lead",
	"CONVERSIONS":           "offsite_conversion",
	"APP_INSTALLS":          "app_install",
	"PRODUCT_CATALOG_SALES": "offsite_conversion.fb_pixel_purchase",
	"MESSAGES":              "onsite_conversion.messaging_first_reply",
	"OUTCOME_ENGAGEMENT":    "onsite_conversion.messaging_conversation_started_7d",
	"OUTCOME_LEADS":         "lead",
	"OUTCOME_SALES":         "offsite_conversion.fb_pixel_purchase",
	"OUTCOME_TRAFFIC":       "link_click",
}

func copyFloatMap(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
