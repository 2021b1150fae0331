package feedback

type CreateFeedbackRequest struct {
	OrderID int64  `json:"order_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}
