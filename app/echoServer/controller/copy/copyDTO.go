package copyctrl

type UpdateStatusReq struct {
	Status         string  `json:"status" validate:"required,copystatus"`
	DamageEvidence *string `json:"damage_evidence"`
}

type UpdateCopyReq struct {
	ShelfID        *int64  `json:"shelf_id"`
	Status         *string `json:"status" validate:"omitempty,copystatus"`
	DamageEvidence *string `json:"damage_evidence"`
}

type BulkUpdateShelfReq struct {
	IDs     []string `json:"ids" validate:"required,min=1,dive,required"`
	ShelfID int64    `json:"shelf_id" validate:"required"`
}
