// model/request.go
package model

import "time"

type BorrowStatus string

const (
	BorrowPending   BorrowStatus = "pending"
	BorrowApproved  BorrowStatus = "approved"
	BorrowRejected  BorrowStatus = "rejected"
	BorrowCancelled BorrowStatus = "cancelled"
)

func ValidBorrowStatus(s BorrowStatus) bool {
	switch s {
	case BorrowPending, BorrowApproved, BorrowRejected, BorrowCancelled:
		return true
	}
	return false
}

// BorrowRequest is pending with a nil BookCopyID between creation and
// copy allocation. Once bound, the copy id never changes; it is only
// released back to available when the request ends in rejection or
// cancellation.
type BorrowRequest struct {
	ID          string       `bson:"id" json:"id"`
	UserID      string       `bson:"user_id" json:"user_id"`
	BookID      string       `bson:"book_id" json:"book_id"`
	BookCopyID  *string      `bson:"book_copy_id" json:"book_copy_id"`
	Status      BorrowStatus `bson:"status" json:"status"`
	RequestDate time.Time    `bson:"request_date" json:"request_date"`
	ReceiveDate *time.Time   `bson:"receive_date" json:"receive_date,omitempty"`
	DueDate     *time.Time   `bson:"due_date" json:"due_date,omitempty"`
	ReturnDate  *time.Time   `bson:"return_date" json:"return_date,omitempty"`
}

type ReturnStatus string

const (
	ReturnProcessing ReturnStatus = "processing"
	ReturnCompleted  ReturnStatus = "completed"
	ReturnOverdue    ReturnStatus = "overdue"
)

func ValidReturnStatus(s ReturnStatus) bool {
	switch s {
	case ReturnProcessing, ReturnCompleted, ReturnOverdue:
		return true
	}
	return false
}

type ReturnRequest struct {
	ID              string       `bson:"id" json:"id"`
	BorrowRequestID string       `bson:"borrow_request_id" json:"borrow_request_id"`
	Status          ReturnStatus `bson:"status" json:"status"`
	ReturnDate      *time.Time   `bson:"return_date" json:"return_date,omitempty"`
	ReturnImage     string       `bson:"return_image" json:"return_image,omitempty"`
	Condition       string       `bson:"condition" json:"condition,omitempty"`
	CreatedAt       time.Time    `bson:"create_at" json:"create_at"`
}

type RequestKind string

const (
	KindBorrow RequestKind = "borrow"
	KindReturn RequestKind = "return"
	KindRoom   RequestKind = "room"
)

// RequestRef tags a raw request id with the kind of request it refers
// to, so the history query works with resolved refs instead of guessing
// what an id means.
type RequestRef struct {
	Kind RequestKind
	ID   string
}

// StatusHistory is append-only; entries are never updated or removed.
type StatusHistory struct {
	RequestID   string      `bson:"requestId" json:"requestId"`
	RequestType RequestKind `bson:"requestType" json:"requestType"`
	OldStatus   string      `bson:"oldStatus" json:"oldStatus"`
	NewStatus   string      `bson:"newStatus" json:"newStatus"`
	ChangedBy   string      `bson:"changedBy" json:"changedBy"`
	Reason      string      `bson:"reason" json:"reason"`
	ChangeTime  time.Time   `bson:"changeTime" json:"changeTime"`
}

type RoomBookingStatus string

const (
	RoomPending   RoomBookingStatus = "pending"
	RoomApproved  RoomBookingStatus = "approved"
	RoomPaid      RoomBookingStatus = "paid"
	RoomUsing     RoomBookingStatus = "using"
	RoomFinished  RoomBookingStatus = "finished"
	RoomRejected  RoomBookingStatus = "rejected"
	RoomCancelled RoomBookingStatus = "cancelled"
)

func ValidRoomBookingStatus(s RoomBookingStatus) bool {
	switch s {
	case RoomPending, RoomApproved, RoomPaid, RoomUsing,
		RoomFinished, RoomRejected, RoomCancelled:
		return true
	}
	return false
}

type RoomBookingRequest struct {
	ID           string            `bson:"id" json:"id"`
	UserID       string            `bson:"user_id" json:"user_id"`
	RoomID       string            `bson:"room_id" json:"room_id"`
	StartTime    time.Time         `bson:"start_time" json:"start_time"`
	EndTime      time.Time         `bson:"end_time" json:"end_time"`
	Status       RoomBookingStatus `bson:"status" json:"status"`
	Purpose      string            `bson:"purpose" json:"purpose"`
	RequestTime  time.Time         `bson:"request_time" json:"request_time"`
	PricePerHour float64           `bson:"price_per_hour" json:"price_per_hour"`
}
