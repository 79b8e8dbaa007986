package records

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfitDistribution splits a month's profit between the two partners. The
// shares are stored as computed at write time and are never recomputed on
// read, so editing the profit or percentages without recomputing them lets
// the shares drift.
type ProfitDistribution struct {
	ID                 uuid.UUID       `json:"id"`
	Month              string          `json:"month"`
	Year               int             `json:"year"`
	TotalProfit        decimal.Decimal `json:"total_profit"`
	Partner1Percentage decimal.Decimal `json:"partner1_percentage"`
	Partner2Percentage decimal.Decimal `json:"partner2_percentage"`
	Partner1Share      decimal.Decimal `json:"partner1_share"`
	Partner2Share      decimal.Decimal `json:"partner2_share"`
	Distributed        bool            `json:"distributed"`
	DistributionDate   Date            `json:"distribution_date"`
	CreatedAt          time.Time       `json:"created_at"`
}

func (p ProfitDistribution) RowID() uuid.UUID { return p.ID }
func (ProfitDistribution) Table() string      { return TableProfitDistributions }

// Period renders the distribution period as "<month> <year>".
func (p ProfitDistribution) Period() string {
	return p.Month + " " + strconv.Itoa(p.Year)
}
