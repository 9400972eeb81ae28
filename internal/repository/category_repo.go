package repository

import (
	"vidshare/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List 按名称升序返回全部分类
func (r *CategoryRepository) List() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// GetByID 根据 ID 查询分类
func (r *CategoryRepository) GetByID(id int64) (*model.Category, error) {
	var category model.Category
	if err := r.db.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ExistsByName 检查分类名是否已被占用，excludeID 用于改名时排除自身
func (r *CategoryRepository) ExistsByName(name string, excludeID int64) (bool, error) {
	query := r.db.Model(&model.Category{}).Where("name = ?", name)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// Create 创建分类
func (r *CategoryRepository) Create(category *model.Category) error {
	return r.db.Create(category).Error
}

// UpdateName 重命名分类
func (r *CategoryRepository) UpdateName(id int64, name string) error {
	result := r.db.Model(&model.Category{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除分类，引用检查由服务层完成
func (r *CategoryRepository) Delete(id int64) error {
	result := r.db.Delete(&model.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountVideos 统计引用该分类的视频数量
func (r *CategoryRepository) CountVideos(id int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Video{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}
