package book

type CreateBookReq struct {
	Image         string  `json:"image"`
	Title         string  `json:"title" validate:"required"`
	Author        string  `json:"author" validate:"required"`
	Publisher     string  `json:"publisher"`
	PublishYear   int     `json:"publish_year"`
	CategoryID    string  `json:"category_id" validate:"required"`
	TotalQuantity int     `json:"total_quantity" validate:"required,gt=0"`
	Description   *string `json:"description"`
}

type IncreaseQuantityReq struct {
	Add int `json:"add" validate:"required,gt=0"`
}
