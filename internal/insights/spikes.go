package insights

import (
	"math"
	"time"

	"github.com/theirongolddev/wisespend/internal/model"
	"github.com/theirongolddev/wisespend/internal/pipeline"
)

// spikeDays is the flat divisor for the month's average daily spend.
const spikeDays = 30

// SpikeReport lists unusually large expenses this month and the costliest day.
type SpikeReport struct {
	Threshold        int64               `json:"threshold"`
	Spikes           []model.Transaction `json:"spikes"`
	MostExpensiveDay *model.DaySpend     `json:"mostExpensiveDay,omitempty"`
}

// DetectSpikes finds current-month expenses above twice the average daily
// spend, where the average is the month total over 30 days. Days tied for
// most expensive resolve to the earliest.
func DetectSpikes(txs []model.Transaction, now time.Time) SpikeReport {
	var month []model.Transaction
	var total int64
	for _, tx := range txs {
		if tx.IsExpense() && pipeline.SameMonth(tx.CreatedAt, now) {
			month = append(month, tx)
			total += tx.Amount
		}
	}
	if len(month) == 0 {
		return SpikeReport{}
	}

	limit := 2 * float64(total) / spikeDays
	report := SpikeReport{Threshold: int64(math.Round(limit))}

	byDay := make(map[string]int64)
	for _, tx := range month {
		if float64(tx.Amount) > limit {
			report.Spikes = append(report.Spikes, tx)
		}
		byDay[pipeline.YMD(tx.CreatedAt.In(now.Location()))] += tx.Amount
	}

	var best *model.DaySpend
	for ymd, sum := range byDay {
		if best == nil || sum > best.Total || (sum == best.Total && ymd < best.YMD) {
			d, _ := time.ParseInLocation("2006-01-02", ymd, now.Location())
			best = &model.DaySpend{Date: d, YMD: ymd, Total: sum}
		}
	}
	report.MostExpensiveDay = best
	return report
}
