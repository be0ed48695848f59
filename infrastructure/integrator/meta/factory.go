package meta

import (
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/traffic-sync-worker/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

// Formato de data/hora usado pela Graph API (ex: 2024-03-01T10:00:00-0300)
const metaTimeLayout = "2006-01-02T15:04:05-0700"

func FactoryAccountSnapshot(raw *metadomain.AdAccount) *domain.AccountSnapshot {
	if raw == nil || (raw.ID == "" && raw.AccountID == "") {
		return nil
	}

	id := raw.AccountID
	if id == "" {
		id = trimAccountPrefix(raw.ID)
	}

	account := &domain.AccountSnapshot{
		ID:          id,
		Name:        raw.Name,
		Currency:    raw.Currency,
		Timezone:    raw.TimezoneName,
		Status:      domain.AdAccountStatus(raw.AccountStatus),
		AmountSpent: parseInt(raw.AmountSpent, "amount_spent"),
		Balance:     parseInt(raw.Balance, "balance"),
		SpendCap:    parseOptionalInt(raw.SpendCap, "spend_cap"),
		Metrics:     domain.EmptyMetrics(),
	}

	// spend_cap "0" significa sem limite
	if account.SpendCap != nil && *account.SpendCap == 0 {
		account.SpendCap = nil
	}

	if raw.Business != nil {
		account.BusinessID = raw.Business.ID
		account.BusinessName = raw.Business.Name
	}

	return account
}

func FactoryCampaign(raw *metadomain.Campaign, accountID string) *domain.Campaign {
	if raw == nil || raw.ID == "" {
		logrus.WithField("account_id", accountID).Warn("meta: skipping campaign without id")
		return nil
	}

	if raw.AccountID != "" {
		accountID = raw.AccountID
	}

	return &domain.Campaign{
		ID:              raw.ID,
		AccountID:       trimAccountPrefix(accountID),
		Name:            raw.Name,
		Objective:       raw.Objective,
		Status:          raw.Status,
		EffectiveStatus: raw.EffectiveStatus,
		BuyingType:      raw.BuyingType,
		DailyBudget:     parseOptionalInt(raw.DailyBudget, "daily_budget"),
		LifetimeBudget:  parseOptionalInt(raw.LifetimeBudget, "lifetime_budget"),
		BudgetRemaining: parseOptionalInt(raw.BudgetRemaining, "budget_remaining"),
		StartTime:       parseTime(raw.StartTime, "start_time"),
		StopTime:        parseTime(raw.StopTime, "stop_time"),
		CreatedTime:     parseTime(raw.CreatedTime, "created_time"),
		UpdatedTime:     parseTime(raw.UpdatedTime, "updated_time"),
		Metrics:         domain.EmptyMetrics(),
	}
}

func FactoryAdSet(raw *metadomain.AdSet, campaignID string) *domain.AdSet {
	if raw == nil || raw.ID == "" {
		logrus.WithField("campaign_id", campaignID).Warn("meta: skipping ad set without id")
		return nil
	}

	if raw.CampaignID != "" {
		campaignID = raw.CampaignID
	}

	return &domain.AdSet{
		ID:               raw.ID,
		CampaignID:       campaignID,
		AccountID:        trimAccountPrefix(raw.AccountID),
		Name:             raw.Name,
		Status:           raw.Status,
		EffectiveStatus:  raw.EffectiveStatus,
		OptimizationGoal: raw.OptimizationGoal,
		BillingEvent:     raw.BillingEvent,
		BidAmount:        parseOptionalInt(raw.BidAmount, "bid_amount"),
		DailyBudget:      parseOptionalInt(raw.DailyBudget, "daily_budget"),
		LifetimeBudget:   parseOptionalInt(raw.LifetimeBudget, "lifetime_budget"),
		Targeting:        raw.Targeting,
		StartTime:        parseTime(raw.StartTime, "start_time"),
		EndTime:          parseTime(raw.EndTime, "end_time"),
		Metrics:          domain.EmptyMetrics(),
	}
}

func FactoryAd(raw *metadomain.Ad, adSetID string) *domain.Ad {
	if raw == nil || raw.ID == "" {
		logrus.WithField("adset_id", adSetID).Warn("meta: skipping ad without id")
		return nil
	}

	if raw.AdSetID != "" {
		adSetID = raw.AdSetID
	}

	ad := &domain.Ad{
		ID:              raw.ID,
		AdSetID:         adSetID,
		CampaignID:      raw.CampaignID,
		AccountID:       trimAccountPrefix(raw.AccountID),
		Name:            raw.Name,
		Status:          raw.Status,
		EffectiveStatus: raw.EffectiveStatus,
		CreatedTime:     parseTime(raw.CreatedTime, "created_time"),
		UpdatedTime:     parseTime(raw.UpdatedTime, "updated_time"),
		Metrics:         domain.EmptyMetrics(),
	}

	if raw.Creative != nil {
		ad.CreativeID = raw.Creative.ID
		ad.CreativeName = raw.Creative.Name
	}

	return ad
}

// FactoryInsightsRecord converte uma linha crua de insights. Valores que não
// puderem ser convertidos ficam zerados.
func FactoryInsightsRecord(raw *metadomain.Insight) *domain.InsightsRecord {
	return &domain.InsightsRecord{
		Impressions:   parseInt(raw.Impressions, "impressions"),
		Clicks:        parseInt(raw.Clicks, "clicks"),
		Reach:         parseInt(raw.Reach, "reach"),
		Spend:         parseFloat(raw.Spend, "spend"),
		Frequency:     parseFloat(raw.Frequency, "frequency"),
		CTR:           parseFloat(raw.CTR, "ctr"),
		CPC:           parseFloat(raw.CPC, "cpc"),
		CPM:           parseFloat(raw.CPM, "cpm"),
		Objective:     raw.Objective,
		Actions:       factoryActions(raw.Actions),
		CostPerAction: factoryActions(raw.CostPerActions),
		DateStart:     raw.DateStart,
		DateStop:      raw.DateStop,
	}
}

func factoryActions(actions []metadomain.Action) map[string]float64 {
	result := make(map[string]float64, len(actions))

	for i := range actions {
		action := actions[i]

		actionValue, err := strconv.ParseFloat(action.Value, 64)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"action_type":  action.ActionType,
				"action_value": action.Value,
				"error":        err.Error(),
			}).Warn("insights: error converting action value to float")
			continue
		}

		result[action.ActionType] = actionValue
	}

	return result
}

func parseInt(value, field string) int64 {
	if value == "" {
		return 0
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"field": field,
			"value": value,
			"error": err.Error(),
		}).Warn("meta: error converting value to integer")
		return 0
	}

	return n
}

func parseOptionalInt(value, field string) *int64 {
	if value == "" {
		return nil
	}

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"field": field,
			"value": value,
			"error": err.Error(),
		}).Warn("meta: error converting value to integer")
		return nil
	}

	return &n
}

func parseFloat(value, field string) float64 {
	if value == "" {
		return 0
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"field": field,
			"value": value,
			"error": err.Error(),
		}).Warn("insights: error converting value to float")
		return 0
	}

	return f
}

func parseTime(value, field string) *time.Time {
	if value == "" {
		return nil
	}

	t, err := time.Parse(metaTimeLayout, value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"field": field,
			"value": value,
			"error": err.Error(),
		}).Warn("meta: error parsing time")
		return nil
	}

	return &t
}
