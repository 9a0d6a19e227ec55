package service

import (
	"Balgil/internal/api/dto"
	"Balgil/internal/model"
	"Balgil/internal/pkg/util"
	"time"

	"github.com/jinzhu/copier"
)

var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: int64(0),
			Fn: func(src interface{}) (interface{}, error) {
				return util.UnixMilli(src.(time.Time)), nil
			},
		},
	},
}

func toUserDTO(user *model.User) *dto.UserProfileDTO {
	out := &dto.UserProfileDTO{}
	_ = copier.CopyWithOption(out, user, copyOption)
	return out
}

func toMessageDTO(msg *model.Message, commentCount int64) *dto.MessageDTO {
	out := &dto.MessageDTO{}
	_ = copier.CopyWithOption(out, msg, copyOption)
	out.Coords = dto.Coords{msg.CoordX, msg.CoordY}
	out.CommentCount = commentCount
	return out
}

func toCommentDTO(c *model.Comment) *dto.CommentDTO {
	out := &dto.CommentDTO{}
	_ = copier.CopyWithOption(out, c, copyOption)
	return out
}

func toRouteDTO(r *model.Route) *dto.RouteDTO {
	out := &dto.RouteDTO{}
	_ = copier.CopyWithOption(out, r, copyOption)
	out.StartCoords = dto.Coords{r.StartLon, r.StartLat}
	out.EndCoords = dto.Coords{r.EndLon, r.EndLat}
	out.Points = r.PointsJSON
	if out.Points == nil {
		out.Points = [][2]float64{}
	}
	return out
}

func toRouteDTOs(routes []*model.Route) []*dto.RouteDTO {
	out := make([]*dto.RouteDTO, 0, len(routes))
	for _, r := range routes {
		out = append(out, toRouteDTO(r))
	}
	return out
}

func toCommentDTOs(comments []*model.Comment) []*dto.CommentDTO {
	out := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentDTO(c))
	}
	return out
}
