package service

import (
	"errors"

	"vidshare/internal/api/dto"
	"vidshare/internal/model"
	"vidshare/internal/repository"
	"vidshare/pkg/utils"

	"gorm.io/gorm"
)

var (
	ErrUsernameExists = errors.New("用户名已存在")
	ErrEmailExists    = errors.New("邮箱已被占用")
	ErrInvalidRole    = errors.New("非法的用户角色")
)

type UserService struct {
	userRepo *repository.UserRepository
	videos   *VideoService
}

func NewUserService(userRepo *repository.UserRepository, videos *VideoService) *UserService {
	return &UserService{userRepo: userRepo, videos: videos}
}

// Create 管理开通账号（管理接口与 CLI 共用）
func (s *UserService) Create(username, email, password string, role model.Role) (*dto.UserInfo, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	exists, err := s.userRepo.ExistsByUsername(username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	exists, err = s.userRepo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}

	return toUserInfo(user), nil
}

// List 分页查询用户
func (s *UserService) List(page, pageSize int) (*dto.UserListData, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	skip := (page - 1) * pageSize
	users, total, err := s.userRepo.List(skip, pageSize)
	if err != nil {
		return nil, err
	}

	infos := make([]dto.UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, *toUserInfo(&users[i]))
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.UserListData{
		Users:      infos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Delete 删除用户：先清理其视频的存储文件，行数据由外键级联删除。
// 用户删除对其内容是破坏性的（连带视频和点赞一并消失）。
func (s *UserService) Delete(id int64) error {
	if _, err := s.userRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.videos.CleanupUserFiles(id); err != nil {
		return err
	}

	return s.userRepo.Delete(id)
}
