package repository

import (
	"Balgil/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	EnsureUser(ctx context.Context, id string) error
	UpsertProfile(ctx context.Context, id string, profileImg, bio *string) (*model.User, error)
	UpdateStats(ctx context.Context, id string, stats *UserStats) error
}

// UserStats 仪表盘回写的缓存字段
type UserStats struct {
	Points             int64
	TotalDistance      float64
	WalkingDistance    float64
	WheelchairDistance float64
	VehicleDistance    float64
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

// GetUserByID 不存在时返回 nil, nil
func (s *UserRepoImpl) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).Where("id = ?", id).First(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(result.Error, "get user %s", id)
	}
	return user, nil
}

func (s *UserRepoImpl) EnsureUser(ctx context.Context, id string) error {
	return ensureUser(s.db.WithContext(ctx), id)
}

func ensureUser(tx *gorm.DB, id string) error {
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.User{ID: id}).Error
	return errors.Wrapf(err, "ensure user %s", id)
}

// UpsertProfile 仅更新非 nil 字段, 用户不存在时先创建
func (s *UserRepoImpl) UpsertProfile(ctx context.Context, id string, profileImg, bio *string) (*model.User, error) {
	user := &model.User{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUser(tx, id); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if profileImg != nil {
			updates["profile_img"] = *profileImg
		}
		if bio != nil {
			updates["bio"] = *bio
		}
		if len(updates) > 0 {
			if err := tx.Model(&model.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return errors.Wrapf(err, "update profile %s", id)
			}
		}
		return tx.Where("id = ?", id).First(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateStats 用户行不存在时不做任何事
func (s *UserRepoImpl) UpdateStats(ctx context.Context, id string, stats *UserStats) error {
	err := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"points":              stats.Points,
		"total_distance":      stats.TotalDistance,
		"walking_distance":    stats.WalkingDistance,
		"wheelchair_distance": stats.WheelchairDistance,
		"vehicle_distance":    stats.VehicleDistance,
	}).Error
	return errors.Wrapf(err, "update stats %s", id)
}
