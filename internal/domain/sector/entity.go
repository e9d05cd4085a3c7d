package sector

import (
	"time"

	"github.com/shopspring/decimal"
)

// Class splits sectors into the revenue pool and everything else.
// Revenue sectors share the revenue slice of the payout, general
// sectors share the remainder.
type Class string

const (
	ClassRevenue Class = "revenue"
	ClassGeneral Class = "general"
)

// DefaultSectorName is assigned to employees whose import row carries
// no sector. It is created lazily on first use.
const DefaultSectorName = "Não informado"

type Sector struct {
	ID        string
	Name      string
	Class     Class
	BaseValue decimal.Decimal
	Active    bool
	// Participates gates the sector's employees into the quarterly
	// computation. Deactivating a sector always clears it.
	Participates bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	EmployeeCount *int
}
