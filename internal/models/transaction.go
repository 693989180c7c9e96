package models

import "time"

type Transaction struct {
	ID                int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Amount            string    `json:"amount" db:"amount" gorm:"not null"`
	RoutinePeriodType string    `json:"routinePeriodType" db:"routine_period_type" gorm:"not null"`
	DoneAt            string    `json:"doneAt" db:"done_at" gorm:"not null"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// TransactionParty is a counterparty of a transaction. It has no endpoint yet,
// only its table.
type TransactionParty struct {
	ID          int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" db:"name" gorm:"size:255;not null"`
	ContactInfo string    `json:"contactInfo" db:"contact_info" gorm:"size:255;not null"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

func (TransactionParty) TableName() string {
	return "transaction_parties"
}
