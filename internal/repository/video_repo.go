package repository

import (
	"strings"

	"vidshare/internal/model"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// GetByID 根据 ID 获取视频
func (r *VideoRepository) GetByID(id int64) (*model.Video, error) {
	var video model.Video
	if err := r.db.Where("id = ?", id).First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDWithRelations 根据 ID 获取视频（含分类与上传者）
func (r *VideoRepository) GetByIDWithRelations(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Preload("Category").Preload("User").Where("id = ?", id).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// Create 创建视频记录
func (r *VideoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// Update 更新视频字段
func (r *VideoRepository) Update(id int64, updates map[string]interface{}) (*model.Video, error) {
	result := r.db.Model(&model.Video{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

// Delete 删除视频记录，点赞由外键级联删除
func (r *VideoRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Video{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List 视频列表查询：分页、按分类筛选、标题子串搜索（大小写不敏感），
// 始终按创建时间倒序。LOWER + LIKE 在 postgres 和 sqlite 下行为一致。
func (r *VideoRepository) List(skip, limit int, categoryID *int64, search string) ([]model.Video, int64, error) {
	query := r.db.Model(&model.Video{})

	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var videos []model.Video
	err := query.Preload("Category").Order("created_at DESC").
		Offset(skip).Limit(limit).Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

// ListByUser 获取某个用户的全部视频（删除用户时清理文件用）
func (r *VideoRepository) ListByUser(userID int64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Where("user_id = ?", userID).Find(&videos).Error
	return videos, err
}

// ListRelated 获取同分类下的相关视频（排除自身），按创建时间倒序
func (r *VideoRepository) ListRelated(categoryID, excludeID int64, limit int) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Where("category_id = ? AND id != ?", categoryID, excludeID).
		Order("created_at DESC").Limit(limit).Find(&videos).Error
	return videos, err
}

// GetByIDs 批量查询视频（保序由调用方处理）
func (r *VideoRepository) GetByIDs(ids []int64) ([]model.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var videos []model.Video
	err := r.db.Preload("Category").Where("id IN ?", ids).Find(&videos).Error
	return videos, err
}

// IncrementViews 播放量 +1
func (r *VideoRepository) IncrementViews(id int64) error {
	return r.db.Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}
