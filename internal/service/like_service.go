package service

import (
	"errors"

	"vidshare/internal/api/dto"
	"vidshare/internal/model"
	"vidshare/internal/repository"

	"gorm.io/gorm"
)

type LikeService struct {
	likeRepo  *repository.LikeRepository
	videoRepo *repository.VideoRepository
}

func NewLikeService(likeRepo *repository.LikeRepository, videoRepo *repository.VideoRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo, videoRepo: videoRepo}
}

// Toggle 切换某身份对某视频的点赞状态：已点赞则取消，未点赞则新增，
// 返回新状态和该视频的最新点赞总数。
func (s *LikeService) Toggle(identity model.Identity, videoID int64) (*dto.LikeToggleData, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	existing, err := s.likeRepo.Find(identity, videoID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var liked bool
	if existing != nil {
		if _, err := s.likeRepo.Delete(identity, videoID); err != nil {
			return nil, err
		}
		liked = false
	} else {
		_, err := s.likeRepo.Create(identity, videoID)
		switch {
		case err == nil:
			liked = true
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// 同一身份并发重复点赞被唯一索引拦截，结果等同于已点赞
			liked = true
		default:
			return nil, err
		}
	}

	count, err := s.likeRepo.CountByVideo(videoID)
	if err != nil {
		return nil, err
	}

	return &dto.LikeToggleData{Liked: liked, Count: count}, nil
}

// Status 查询某身份对某视频的点赞状态与总数，空身份只返回总数
func (s *LikeService) Status(identity model.Identity, videoID int64) (*dto.LikeToggleData, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	var liked bool
	if !identity.IsZero() {
		var err error
		liked, err = s.likeRepo.Exists(identity, videoID)
		if err != nil {
			return nil, err
		}
	}

	count, err := s.likeRepo.CountByVideo(videoID)
	if err != nil {
		return nil, err
	}

	return &dto.LikeToggleData{Liked: liked, Count: count}, nil
}
