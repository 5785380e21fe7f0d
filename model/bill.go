// model/bill.go
package model

import "time"

type BillType string

const (
	BillBook BillType = "book"
	BillRoom BillType = "room"
)

func ValidBillType(t BillType) bool {
	return t == BillBook || t == BillRoom
}

// Bill is the fee record settled when a borrow or room booking closes.
// RequestID points at a borrow request for book bills and at a room
// booking request for room bills. The overdue and damage parts are only
// present when they apply; TotalFee is always the settled amount.
type Bill struct {
	ID             string    `bson:"id" json:"id"`
	RequestID      string    `bson:"borrowRequestId" json:"borrowRequestId"`
	Type           BillType  `bson:"type" json:"type"`
	OverdueDays    *int      `bson:"overdueDays,omitempty" json:"overdueDays,omitempty"`
	OverdueFee     *float64  `bson:"overdueFee,omitempty" json:"overdueFee,omitempty"`
	DamageFee      *float64  `bson:"damageFee,omitempty" json:"damageFee,omitempty"`
	TotalFee       float64   `bson:"totalFee" json:"totalFee"`
	AmountReceived float64   `bson:"amountReceived" json:"amountReceived"`
	ChangeGiven    float64   `bson:"changeGiven" json:"changeGiven"`
	Date           time.Time `bson:"date" json:"date"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}
