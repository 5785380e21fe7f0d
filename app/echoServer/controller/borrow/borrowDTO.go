package borrowctrl

import "time"

type CreateBorrowReq struct {
	UserID      string     `json:"user_id" validate:"required"`
	BookID      string     `json:"book_id" validate:"required"`
	RequestDate *time.Time `json:"request_date"`
	ReceiveDate *time.Time `json:"receive_date"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateStatusReq struct {
	NewStatus string `json:"newStatus" validate:"required,borrowstatus"`
	ChangedBy string `json:"changedBy" validate:"required"`
	Reason    string `json:"reason"`
}
