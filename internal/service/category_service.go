package service

import (
	"errors"
	"strings"

	"vidshare/internal/api/dto"
	"vidshare/internal/model"
	"vidshare/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound  = errors.New("分类不存在")
	ErrCategoryNameTaken = errors.New("该分类名称已存在")
	ErrCategoryInUse     = errors.New("分类下仍有视频，无法删除")
)

type CategoryService struct {
	categoryRepo *repository.CategoryRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List 按名称升序返回全部分类
func (s *CategoryService) List() ([]dto.CategoryInfo, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}

	infos := make([]dto.CategoryInfo, 0, len(categories))
	for _, c := range categories {
		infos = append(infos, dto.CategoryInfo{ID: c.ID, Name: c.Name})
	}
	return infos, nil
}

// Create 创建分类，名称重复时拒绝
func (s *CategoryService) Create(name string) (*dto.CategoryInfo, error) {
	name = strings.TrimSpace(name)

	exists, err := s.categoryRepo.ExistsByName(name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategoryNameTaken
	}

	category := &model.Category{Name: name}
	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryNameTaken
		}
		return nil, err
	}

	return &dto.CategoryInfo{ID: category.ID, Name: category.Name}, nil
}

// Rename 重命名分类，与其他分类重名时拒绝
func (s *CategoryService) Rename(id int64, name string) (*dto.CategoryInfo, error) {
	name = strings.TrimSpace(name)

	if _, err := s.categoryRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	exists, err := s.categoryRepo.ExistsByName(name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategoryNameTaken
	}

	if err := s.categoryRepo.UpdateName(id, name); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryNameTaken
		}
		return nil, err
	}

	return &dto.CategoryInfo{ID: id, Name: name}, nil
}

// Delete 删除分类，分类下仍有视频时拒绝（引用保护，不做级联）
func (s *CategoryService) Delete(id int64) error {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	count, err := s.categoryRepo.CountVideos(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	return s.categoryRepo.Delete(id)
}
