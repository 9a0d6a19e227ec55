package service

import (
	"Balgil/internal/pkg/util"
	"Balgil/internal/pkg/vote"
	"errors"
)

const (
	BadRequest          = 400
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	PayloadTooLarge     = 413
	InternalServerError = 500
	ServiceUnavailable  = 503
)

var (
	ErrParamInvalid       = errors.New("invalid parameter")
	ErrMessageNotFound    = errors.New("message not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrNotOwner           = errors.New("only the author can do this")
	ErrVoteTypeInvalid    = vote.ErrInvalidType
	ErrActionDuplicate    = errors.New("already done")
	ErrCoordsInvalid      = util.ErrCoordsInvalid
	ErrTrajectoryInvalid  = errors.New("points must be an array of [lon, lat] pairs")
	ErrBoundsInvalid      = errors.New("bounds must be minLon,minLat,maxLon,maxLat")
	ErrFileNotSupported   = errors.New("unsupported image type")
	ErrFileTooLarge       = errors.New("image is too large")
	ErrStorageUnavailable = errors.New("object storage is not configured")
	UnExpectedError       = errors.New("unexpected error, please retry later")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrMessageNotFound:    NotFound,
	ErrCommentNotFound:    NotFound,
	ErrNotOwner:           Forbidden,
	ErrVoteTypeInvalid:    BadRequest,
	ErrActionDuplicate:    Conflict,
	ErrCoordsInvalid:      BadRequest,
	ErrTrajectoryInvalid:  BadRequest,
	ErrBoundsInvalid:      BadRequest,
	ErrFileNotSupported:   BadRequest,
	ErrFileTooLarge:       PayloadTooLarge,
	ErrStorageUnavailable: ServiceUnavailable,
	UnExpectedError:       InternalServerError,
}

// StatusOf resolves wrapped errors against ErrorMap
func StatusOf(err error) (int, bool) {
	for target, code := range ErrorMap {
		if errors.Is(err, target) {
			return code, true
		}
	}
	return InternalServerError, false
}
