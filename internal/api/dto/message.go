package dto

type MessageDTO struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	Text         string `json:"text"`
	Tags         string `json:"tags"`
	Coords       Coords `json:"coords"`
	Address      string `json:"address"`
	AddressBase  string `json:"addressBase"`
	Likes        int    `json:"likes"`
	Dislikes     int    `json:"dislikes"`
	Shares       int    `json:"shares"`
	Edited       bool   `json:"edited"`
	Timestamp    int64  `json:"timestamp"`
	CommentCount int64  `json:"commentCount"`
}

// MessageDetailDTO 消息详情, 带查询用户的状态
type MessageDetailDTO struct {
	MessageDTO
	Comments    []*CommentDTO `json:"comments"`
	IsSavedByMe *bool         `json:"isSavedByMe,omitempty"`
	UserVote    *string       `json:"userVote,omitempty"`
}

type CreateMessageDTO struct {
	UserID      string  `json:"userId" binding:"omitempty,max=64"`
	Text        string  `json:"text" binding:"required"`
	Coords      *Coords `json:"coords" binding:"required"`
	Tags        string  `json:"tags" binding:"omitempty,max=255"`
	Address     string  `json:"address" binding:"omitempty,max=255"`
	AddressBase string  `json:"addressBase" binding:"omitempty,max=255"`
}

type UpdateMessageDTO struct {
	UserID string `json:"userId"`
	Text   string `json:"text"`
}

// OwnerDTO 删除类操作携带的用户标识
type OwnerDTO struct {
	UserID string `json:"userId"`
}

// MessageListQuery 四个边界都给出时才按范围过滤
type MessageListQuery struct {
	MinX *float64 `form:"min_x"`
	MaxX *float64 `form:"max_x"`
	MinY *float64 `form:"min_y"`
	MaxY *float64 `form:"max_y"`
}

type AddressQuery struct {
	Address     string `form:"address"`
	AddressBase string `form:"address_base"`
}

type VoteDTO struct {
	Type   string `json:"type" binding:"required"`
	UserID string `json:"userId" binding:"omitempty,max=64"`
}

type VoteResultDTO struct {
	Likes    int     `json:"likes"`
	Dislikes int     `json:"dislikes"`
	UserVote *string `json:"userVote"`
}

type SaveMessageDTO struct {
	UserID string `json:"userId" binding:"required,max=64"`
}

type SaveResultDTO struct {
	Saved bool `json:"saved"`
}
