package domain

import (
	"fmt"
	"time"
)

// Timeframe é o período nomeado solicitado no gatilho da sincronização
type Timeframe string

const (
	TimeframeLast7Days   Timeframe = "last_7d"
	TimeframeLast14Days  Timeframe = "last_14d"
	TimeframeLast30Days  Timeframe = "last_30d"
	TimeframeLast90Days  Timeframe = "last_90d"
	TimeframeLast180Days Timeframe = "last_180d"
	TimeframeThisMonth   Timeframe = "this_month"
	TimeframeLastMonth   Timeframe = "last_month"
	TimeframeMaximum     Timeframe = "maximum"
)

// A Graph API limita consultas de insights aos últimos 37 meses
const maximumLookbackMonths = 37

var timeframeDays = map[Timeframe]int{
	TimeframeLast7Days:   7,
	TimeframeLast14Days:  14,
	TimeframeLast30Days:  30,
	TimeframeLast90Days:  90,
	TimeframeLast180Days: 180,
}

func (t Timeframe) IsValid() bool {
	switch t {
	case TimeframeThisMonth, TimeframeLastMonth, TimeframeMaximum:
		return true
	}
	_, ok := timeframeDays[t]
	return ok
}

// Resolve converte o período nomeado em datas concretas, terminando ontem
func (t Timeframe) Resolve(now time.Time) (DateRange, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday := today.AddDate(0, 0, -1)

	if days, ok := timeframeDays[t]; ok {
		return DateRange{Since: today.AddDate(0, 0, -days), Until: yesterday}, nil
	}

	switch t {
	case TimeframeThisMonth:
		firstDay := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return DateRange{Since: firstDay, Until: today}, nil
	case TimeframeLastMonth:
		firstDay := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return DateRange{Since: firstDay.AddDate(0, -1, 0), Until: firstDay.AddDate(0, 0, -1)}, nil
	case TimeframeMaximum:
		return DateRange{Since: today.AddDate(0, -maximumLookbackMonths, 0), Until: yesterday}, nil
	}

	return DateRange{}, fmt.Errorf("invalid timeframe %q", t)
}

// DateRange é um intervalo fechado de datas (sem horário)
type DateRange struct {
	Since time.Time
	Until time.Time
}

// Days retorna a quantidade de dias de calendário do intervalo, incluindo as duas pontas
func (d DateRange) Days() int {
	since, until := calendarDate(d.Since), calendarDate(d.Until)
	if until.Before(since) {
		return 0
	}
	return int(until.Sub(since)/(24*time.Hour)) + 1
}

// calendarDate leva a data civil para UTC, onde todo dia tem 24 horas
func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// LastDays retorna os últimos n dias do intervalo, sem ultrapassar o início original
func (d DateRange) LastDays(n int) DateRange {
	since := d.Until.AddDate(0, 0, -(n - 1))
	if since.Before(d.Since) {
		since = d.Since
	}
	return DateRange{Since: since, Until: d.Until}
}

func (d DateRange) String() string {
	return fmt.Sprintf("%s..%s", d.Since.Format(time.DateOnly), d.Until.Format(time.DateOnly))
}
