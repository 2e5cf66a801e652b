package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentOption selects which ledger sub-record accompanies a payment.
type PaymentOption string

const (
	OptionFullPayment PaymentOption = "full_payment"
	OptionPaymentPlan PaymentOption = "payment_plan"
)

// Valid reports whether the option is a known enum value. Unknown options are
// rejected before any row is written.
func (o PaymentOption) Valid() bool {
	return o == OptionFullPayment || o == OptionPaymentPlan
}

// InstallmentStatusPending is the initial state of an installment plan.
const InstallmentStatusPending = "pending"

// Payment records one payment attempt against an application. The applicant
// and course fields are denormalized snapshots taken at payment time. Card
// fields are stored as opaque strings.
type Payment struct {
	ID             int64           `db:"id" json:"id"`
	ApplicationID  string          `db:"application_id" json:"application_id"`
	FullName       string          `db:"full_name" json:"full_name"`
	Email          string          `db:"email" json:"email"`
	CourseID       string          `db:"course_id" json:"course_id"`
	CourseName     string          `db:"course_name" json:"course_name"`
	Fee            decimal.Decimal `db:"fee" json:"fee"`
	PaymentMethod  string          `db:"payment_method" json:"payment_method"`
	PaymentOption  PaymentOption   `db:"payment_option" json:"payment_option"`
	CardNumber     string          `db:"card_number" json:"-"`
	ExpirationDate string          `db:"expiration_date" json:"-"`
	CVV            string          `db:"cvv" json:"-"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

// InstallmentPlan is the two-part schedule created for payment_plan payments.
// The two amounts always sum to the course fee.
type InstallmentPlan struct {
	ID                int64           `db:"id" json:"id"`
	PaymentID         int64           `db:"payment_id" json:"payment_id"`
	FirstInstallment  decimal.Decimal `db:"first_installment" json:"first_installment"`
	SecondInstallment decimal.Decimal `db:"second_installment" json:"second_installment"`
	Status            string          `db:"status" json:"status"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
}

// FullPaymentRecord accompanies full_payment payments.
type FullPaymentRecord struct {
	ID        int64           `db:"id" json:"id"`
	PaymentID int64           `db:"payment_id" json:"payment_id"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// EnrolledCourse is a course a payer has paid toward, matched on the
// denormalized applicant name.
type EnrolledCourse struct {
	CourseID   string `db:"course_id" json:"course_id"`
	CourseName string `db:"course_name" json:"course_name"`
}
