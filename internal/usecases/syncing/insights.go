package syncing

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

// Períodos usados pelas tentativas reduzidas da cascata
const (
	reducedRangeDays = 30
	minimalRangeDays = 7
)

// InsightFields agrupa os conjuntos de campos de cada tentativa da cascata
type InsightFields struct {
	Full    []string
	Reduced []string
	Basic   []string
	Minimal []string
}

type insightsAttempt struct {
	source domain.InsightsSource
	fields []string
	period domain.DateRange
}

// InsightsResolver busca as métricas de uma entidade reduzindo campos e período
// a cada falha, até encontrar dados ou esgotar as tentativas
type InsightsResolver struct {
	source  AdsSource
	fetcher *Fetcher
	fields  InsightFields
}

func NewInsightsResolver(source AdsSource, fetcher *Fetcher, fields InsightFields) *InsightsResolver {
	return &InsightsResolver{
		source:  source,
		fetcher: fetcher,
		fields:  fields,
	}
}

// Resolve retorna o primeiro registro não vazio da cascata. Retorna nil, nil
// quando nenhuma tentativa trouxe dados. Rate limit esgotado é devolvido ao chamador.
func (r *InsightsResolver) Resolve(ctx context.Context, ref domain.InsightsRef, period domain.DateRange) (*domain.InsightsRecord, error) {
	for _, attempt := range r.plan(period) {
		query := domain.InsightsQuery{Ref: ref, Fields: attempt.fields, Range: attempt.period}

		record, _, err := Fetch(ctx, r.fetcher, "insights:"+string(attempt.source), func(ctx context.Context) (*domain.InsightsRecord, error) {
			return r.source.GetInsights(ctx, query)
		})
		if err != nil {
			if !isSkippable(err) {
				return nil, err
			}

			logrus.WithFields(logrus.Fields{
				"entity_type": ref.Type,
				"entity_id":   ref.ID,
				"attempt":     attempt.source,
				"range":       attempt.period.String(),
				"error":       err.Error(),
			}).Warn("insights: attempt failed, falling back")
			continue
		}

		if record.IsEmpty() {
			logrus.WithFields(logrus.Fields{
				"entity_type": ref.Type,
				"entity_id":   ref.ID,
				"attempt":     attempt.source,
			}).Debug("insights: attempt returned no data")
			continue
		}

		record.Source = attempt.source
		return record, nil
	}

	logrus.WithFields(logrus.Fields{
		"entity_type": ref.Type,
		"entity_id":   ref.ID,
	}).Info("insights: no metrics after all attempts")

	return nil, nil
}

func (r *InsightsResolver) plan(period domain.DateRange) []insightsAttempt {
	attempts := []insightsAttempt{
		{source: domain.InsightsSourceFull, fields: r.fields.Full, period: period},
	}

	if period.Days() > reducedRangeDays {
		attempts = append(attempts, insightsAttempt{
			source: domain.InsightsSourceReduced30,
			fields: r.fields.Reduced,
			period: period.LastDays(reducedRangeDays),
		})
	}

	lastWeek := period.LastDays(minimalRangeDays)

	return append(attempts,
		insightsAttempt{source: domain.InsightsSourceReduced7, fields: r.fields.Basic, period: lastWeek},
		insightsAttempt{source: domain.InsightsSourceMinimal7, fields: r.fields.Minimal, period: lastWeek},
	)
}

// isContextError indica cancelamento ou prazo estourado
func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
