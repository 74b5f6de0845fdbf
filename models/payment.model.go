package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment status values. The three terminal spellings (completed, paid) are
// applied by different call sites: the gateway callback writes "completed",
// the result endpoint writes "paid". Both mean a settled payment.
const (
	PaymentStatusCreated   = "created"
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusPaid      = "paid"
	PaymentStatusFailed    = "failed"
	PaymentStatusSuccess   = "success"
)

// Payment is one payment attempt against the Chapa gateway. The UID doubles
// as the tx_ref sent to the gateway. There is no foreign key to a quiz
// attempt or category; payments are correlated to users only.
type Payment struct {
	gorm.Model
	UID      string  `gorm:"type:varchar(36);uniqueIndex;not null" json:"uid"`
	UserID   uint    `gorm:"index" json:"user_id"`
	Amount   float64 `gorm:"not null" json:"amount"`
	Currency string  `gorm:"type:varchar(25);default:'ETB'" json:"currency"`

	Email     string `gorm:"type:varchar(100)" json:"email"`
	FirstName string `gorm:"type:varchar(50)" json:"first_name"`
	LastName  string `gorm:"type:varchar(50)" json:"last_name"`

	PaymentTitle string `gorm:"type:varchar(255);default:'Payment'" json:"payment_title"`
	Status       string `gorm:"type:varchar(50);default:'created'" json:"status"`

	// PaymentReference is the gateway-assigned tx_ref echoed back on
	// initialization, used to key verification calls.
	PaymentReference string         `gorm:"type:varchar(100);index" json:"payment_reference"`
	CheckoutURL      string         `gorm:"type:text" json:"checkout_url"`
	CallbackURL      string         `gorm:"type:text" json:"callback_url"`
	ResponseDump     datatypes.JSON `json:"response_dump"`

	IsDeleted bool `gorm:"default:false" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}
