package repository

import (
	"vidshare/internal/model"

	"gorm.io/gorm"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func identityQuery(db *gorm.DB, identity model.Identity, videoID int64) *gorm.DB {
	if identity.IsGuest() {
		return db.Where("guest_id = ? AND video_id = ?", identity.GuestID(), videoID)
	}
	return db.Where("user_id = ? AND video_id = ?", identity.UserID(), videoID)
}

// Find 查找某身份对某视频的点赞记录
func (r *LikeRepository) Find(identity model.Identity, videoID int64) (*model.Like, error) {
	var like model.Like
	err := identityQuery(r.db, identity, videoID).First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// Create 为某身份创建点赞记录，用户引用和访客标识只会设置其一。
// 并发下的重复插入由联合唯一索引拦截，返回 gorm.ErrDuplicatedKey。
func (r *LikeRepository) Create(identity model.Identity, videoID int64) (*model.Like, error) {
	like := &model.Like{VideoID: videoID}
	if identity.IsGuest() {
		guestID := identity.GuestID()
		like.GuestID = &guestID
	} else {
		userID := identity.UserID()
		like.UserID = &userID
	}

	if err := r.db.Create(like).Error; err != nil {
		return nil, err
	}
	return like, nil
}

// Delete 删除某身份对某视频的点赞记录，返回是否确有删除
func (r *LikeRepository) Delete(identity model.Identity, videoID int64) (bool, error) {
	result := identityQuery(r.db, identity, videoID).Delete(&model.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists 查询某身份是否点赞过某视频
func (r *LikeRepository) Exists(identity model.Identity, videoID int64) (bool, error) {
	var count int64
	err := identityQuery(r.db.Model(&model.Like{}), identity, videoID).Count(&count).Error
	return count > 0, err
}

// CountByVideo 统计视频的点赞总数
func (r *LikeRepository) CountByVideo(videoID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}
