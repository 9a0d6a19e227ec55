package dto

// UserProfileDTO 用户资料
type UserProfileDTO struct {
	ID                 string  `json:"id"`
	ProfileImg         string  `json:"profileImg"`
	Bio                string  `json:"bio"`
	Points             int64   `json:"points"`
	TotalDistance      float64 `json:"totalDistance"`
	WalkingDistance    float64 `json:"walkingDistance"`
	WheelchairDistance float64 `json:"wheelchairDistance"`
	VehicleDistance    float64 `json:"vehicleDistance"`
	CreatedAt          int64   `json:"createdAt,omitempty"`
}

// UpdateProfileDTO 只更新出现的字段
type UpdateProfileDTO struct {
	ProfileImg *string `json:"profileImg"`
	Bio        *string `json:"bio" binding:"omitempty,max=1200"`
}

type AvatarDTO struct {
	ProfileImg string `json:"profileImg"`
}

// UserPathDTO :user_id 路径参数
type UserPathDTO struct {
	UserID string `uri:"user_id" validate:"required,max=64"`
}
