package model

type Vote struct {
	ID        uint64 `gorm:"primaryKey"`
	MessageID string `gorm:"type:varchar(64);not null;uniqueIndex:uk_vote_message_user,priority:1" json:"messageId"`
	UserID    string `gorm:"type:varchar(64);not null;uniqueIndex:uk_vote_message_user,priority:2" json:"userId"`
	VoteType  string `gorm:"type:varchar(8);not null" json:"voteType"` // up | down
}

func (Vote) TableName() string {
	return "votes"
}
