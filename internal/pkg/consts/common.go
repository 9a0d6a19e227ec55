package consts

const (
	ModeWalking    = "walking"
	ModeWheelchair = "wheelchair"
	ModeVehicle    = "vehicle"
	// legacy clients send the routing profile name
	ModePedestrian = "pedestrian"
)

const (
	VoteUp   = "up"
	VoteDown = "down"
)

const (
	MessageIDPrefix = "msg_"
	CommentIDPrefix = "cmt_"
)

const (
	MessageTextMaxRunes = 140
	CommentTextMaxRunes = 200
	BioMaxRunes         = 300
	TagsMaxRunes        = 60
)

const (
	UserListLimit       = 50
	MessageListLimit    = 100
	TrajectoryListLimit = 100
	RecentRouteLimit    = 5
	RecentActivityEach  = 5
	RecentActivityLimit = 10
)

const (
	ActivityTypeMessage = "message"
	ActivityTypeComment = "comment"
)

const (
	AvatarMaxBytes  = 5 << 20
	AvatarSize      = 256
	AvatarObjectDir = "avatars/"
)
