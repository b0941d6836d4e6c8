package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentPeriod string
type PaymentMethod string
type PaymentStatus string

const (
	PeriodDaily   PaymentPeriod = "daily"
	PeriodWeekly  PaymentPeriod = "weekly"
	PeriodMonthly PaymentPeriod = "monthly"
	PeriodYearly  PaymentPeriod = "yearly"

	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "bank_transfer"
	MethodQRCode   PaymentMethod = "qr_code"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// LevyPayment is the central fact record of the levy domain. Rows are
// created only by levy recording, mutated only through status
// transitions (pending -> paid/failed), and never deleted from the
// compliance path. Only rows with status paid count toward compliance
// and revenue aggregates.
type LevyPayment struct {
	ID                   string        `gorm:"primarykey;type:varchar(36)" json:"id"`
	TraderID             string        `gorm:"type:varchar(36);not null;index" json:"trader_id"`
	GoodBoyID            string        `gorm:"type:varchar(36);not null;index" json:"good_boy_id"`
	MarketID             string        `gorm:"type:varchar(36);not null;index" json:"market_id"`
	ChairmanID           *string       `gorm:"type:varchar(36);index" json:"chairman_id,omitempty"`
	Amount               float64       `gorm:"not null" json:"amount"`
	Period               PaymentPeriod `gorm:"type:varchar(20);not null" json:"period"`
	PaymentMethod        PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentStatus        PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"payment_status"`
	PaymentDate          time.Time     `gorm:"not null;index" json:"payment_date"`
	TransactionReference string        `gorm:"type:varchar(100);uniqueIndex;not null" json:"transaction_reference"`
	HasIncentive         bool          `gorm:"default:false" json:"has_incentive"`
	IncentiveAmount      float64       `gorm:"default:0" json:"incentive_amount"`
	Notes                string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`

	Trader   Trader    `gorm:"foreignKey:TraderID" json:"trader,omitempty"`
	GoodBoy  GoodBoy   `gorm:"foreignKey:GoodBoyID" json:"good_boy,omitempty"`
	Market   Market    `gorm:"foreignKey:MarketID" json:"market,omitempty"`
	Chairman *Chairman `gorm:"foreignKey:ChairmanID" json:"chairman,omitempty"`
}

func (LevyPayment) TableName() string {
	return "levy_payments"
}

func (p *LevyPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
