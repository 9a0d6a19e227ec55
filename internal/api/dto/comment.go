package dto

type CommentDTO struct {
	ID        string `json:"id"`
	MessageID string `json:"messageId"`
	UserID    string `json:"userId"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

type CreateCommentDTO struct {
	UserID string `json:"userId" binding:"omitempty,max=64"`
	Text   string `json:"text" binding:"required"`
}
