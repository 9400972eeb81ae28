package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"vidshare/internal/api/dto"
	"vidshare/internal/infra/storage"
	"vidshare/internal/model"
	"vidshare/internal/repository"
	"vidshare/pkg/logger"
	"vidshare/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrVideoNotFound    = errors.New("视频不存在")
	ErrVideoFileMissing = errors.New("缺少视频文件")
)

const (
	// 公开列表与管理后台列表的固定页大小
	PublicPageSize = 6
	AdminPageSize  = 9

	relatedLimit  = 8
	uploadTimeout = 5 * time.Minute
)

type VideoService struct {
	videoRepo    *repository.VideoRepository
	categoryRepo *repository.CategoryRepository
	likeRepo     *repository.LikeRepository
	store        storage.Storage
	search       *SearchService // 可为 nil，搜索走数据库
}

func NewVideoService(
	videoRepo *repository.VideoRepository,
	categoryRepo *repository.CategoryRepository,
	likeRepo *repository.LikeRepository,
	store storage.Storage,
	search *SearchService,
) *VideoService {
	return &VideoService{
		videoRepo:    videoRepo,
		categoryRepo: categoryRepo,
		likeRepo:     likeRepo,
		store:        store,
		search:       search,
	}
}

// List 公开视频列表：每页 6 条，可按分类筛选、按标题搜索，
// 始终按创建时间倒序，越界页码返回空页而不是报错。
func (s *VideoService) List(page int, categoryID *int64, query string) (*dto.VideoListData, error) {
	if page < 1 {
		page = 1
	}

	if categoryID != nil {
		if _, err := s.categoryRepo.GetByID(*categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	skip := (page - 1) * PublicPageSize
	videos, total, err := s.videoRepo.List(skip, PublicPageSize, categoryID, query)
	if err != nil {
		return nil, err
	}

	return buildVideoListData(videos, total, page, PublicPageSize), nil
}

// AdminList 管理后台视频列表：每页 9 条，不做筛选
func (s *VideoService) AdminList(page int) (*dto.VideoListData, error) {
	if page < 1 {
		page = 1
	}

	skip := (page - 1) * AdminPageSize
	videos, total, err := s.videoRepo.List(skip, AdminPageSize, nil, "")
	if err != nil {
		return nil, err
	}

	return buildVideoListData(videos, total, page, AdminPageSize), nil
}

// Detail 视频详情：每次访问播放量 +1，附带当前身份的点赞状态、
// 点赞总数和同分类下最多 8 条相关视频。
func (s *VideoService) Detail(videoID int64, identity model.Identity) (*dto.VideoDetailData, error) {
	video, err := s.videoRepo.GetByIDWithRelations(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if err := s.videoRepo.IncrementViews(videoID); err != nil {
		logger.Warn("Increment views failed", zap.Int64("video_id", videoID), zap.Error(err))
	} else {
		video.Views++
	}

	var liked bool
	if !identity.IsZero() {
		liked, err = s.likeRepo.Exists(identity, videoID)
		if err != nil {
			return nil, err
		}
	}

	likeCount, err := s.likeRepo.CountByVideo(videoID)
	if err != nil {
		return nil, err
	}

	related, err := s.videoRepo.ListRelated(video.CategoryID, videoID, relatedLimit)
	if err != nil {
		return nil, err
	}

	relatedInfos := make([]dto.VideoInfo, 0, len(related))
	for i := range related {
		relatedInfos = append(relatedInfos, *toVideoInfo(&related[i]))
	}

	return &dto.VideoDetailData{
		Video:     *toVideoInfo(video),
		Liked:     liked,
		LikeCount: likeCount,
		Related:   relatedInfos,
	}, nil
}

// Upload 上传视频：先落文件再写记录，记录写入失败时回收已保存的文件
func (s *VideoService) Upload(userID int64, req *dto.VideoUploadRequest, videoFile, thumbFile *multipart.FileHeader) (*dto.VideoInfo, error) {
	if videoFile == nil {
		return nil, ErrVideoFileMissing
	}

	if _, err := s.categoryRepo.GetByID(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()

	videoName, err := s.saveUpload(ctx, storage.KindVideo, videoFile)
	if err != nil {
		return nil, fmt.Errorf("保存视频文件失败: %w", err)
	}

	video := &model.Video{
		Title:        req.Title,
		Description:  req.Description,
		Filename:     videoName,
		OriginalName: videoFile.Filename,
		CategoryID:   req.CategoryID,
		UserID:       userID,
	}

	if thumbFile != nil {
		thumbName, err := s.saveUpload(ctx, storage.KindThumbnail, thumbFile)
		if err != nil {
			s.removeStored(storage.KindVideo, videoName)
			return nil, fmt.Errorf("保存封面文件失败: %w", err)
		}
		video.Thumbnail = &thumbName
	}

	if err := s.videoRepo.Create(video); err != nil {
		s.removeStored(storage.KindVideo, videoName)
		if video.Thumbnail != nil {
			s.removeStored(storage.KindThumbnail, *video.Thumbnail)
		}
		return nil, err
	}

	s.syncSearchIndex(video)

	return toVideoInfo(video), nil
}

// Update 编辑视频：元数据按需更新，替换文件时先存新文件、
// 更新记录后再尽力删除旧文件，删除失败只记警告（旧文件成为孤儿）。
func (s *VideoService) Update(videoID int64, req *dto.VideoUpdateRequest, videoFile, thumbFile *multipart.FileHeader) (*dto.VideoInfo, error) {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		updates["category_id"] = *req.CategoryID
	}

	ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
	defer cancel()

	var oldVideoName, oldThumbName string

	if videoFile != nil {
		newName, err := s.saveUpload(ctx, storage.KindVideo, videoFile)
		if err != nil {
			return nil, fmt.Errorf("保存视频文件失败: %w", err)
		}
		oldVideoName = video.Filename
		updates["filename"] = newName
		updates["original_name"] = videoFile.Filename
	}

	if thumbFile != nil {
		newName, err := s.saveUpload(ctx, storage.KindThumbnail, thumbFile)
		if err != nil {
			return nil, fmt.Errorf("保存封面文件失败: %w", err)
		}
		if video.Thumbnail != nil {
			oldThumbName = *video.Thumbnail
		}
		updates["thumbnail"] = newName
	}

	updated := video
	if len(updates) > 0 {
		updated, err = s.videoRepo.Update(videoID, updates)
		if err != nil {
			return nil, err
		}
	}

	// 记录已指向新文件，旧文件删除失败不影响本次操作
	if oldVideoName != "" {
		s.removeStored(storage.KindVideo, oldVideoName)
	}
	if oldThumbName != "" {
		s.removeStored(storage.KindThumbnail, oldThumbName)
	}

	s.syncSearchIndex(updated)

	return toVideoInfo(updated), nil
}

// Delete 删除视频：先尽力删除存储文件，再删记录（点赞级联删除）
func (s *VideoService) Delete(videoID int64) error {
	video, err := s.videoRepo.GetByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return err
	}

	s.removeStored(storage.KindVideo, video.Filename)
	if video.Thumbnail != nil {
		s.removeStored(storage.KindThumbnail, *video.Thumbnail)
	}

	if err := s.videoRepo.Delete(videoID); err != nil {
		return err
	}

	if s.search != nil {
		s.search.RemoveVideo(videoID)
	}

	return nil
}

// CleanupUserFiles 删除某用户全部视频的存储文件（删除用户前调用，
// 数据库行由外键级联清理）。
func (s *VideoService) CleanupUserFiles(userID int64) error {
	videos, err := s.videoRepo.ListByUser(userID)
	if err != nil {
		return err
	}

	for i := range videos {
		s.removeStored(storage.KindVideo, videos[i].Filename)
		if videos[i].Thumbnail != nil {
			s.removeStored(storage.KindThumbnail, *videos[i].Thumbnail)
		}
		if s.search != nil {
			s.search.RemoveVideo(videos[i].ID)
		}
	}
	return nil
}

func (s *VideoService) saveUpload(ctx context.Context, kind storage.Kind, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	name := utils.UniqueFilename(fh.Filename)
	contentType := fh.Header.Get("Content-Type")

	if err := s.store.Save(ctx, kind, name, f, fh.Size, contentType); err != nil {
		return "", err
	}
	return name, nil
}

// removeStored 尽力删除存储文件，失败只记警告
func (s *VideoService) removeStored(kind storage.Kind, name string) {
	if name == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.store.Remove(ctx, kind, name); err != nil && !errors.Is(err, storage.ErrNotFound) {
		logger.Warn("Remove stored file failed",
			zap.String("kind", string(kind)),
			zap.String("name", name),
			zap.Error(err),
		)
	}
}

func (s *VideoService) syncSearchIndex(video *model.Video) {
	if s.search != nil {
		s.search.SyncVideo(video)
	}
}

func toVideoInfo(v *model.Video) *dto.VideoInfo {
	info := &dto.VideoInfo{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		Filename:     v.Filename,
		OriginalName: v.OriginalName,
		Thumbnail:    v.Thumbnail,
		Views:        v.Views,
		CategoryID:   v.CategoryID,
		UserID:       v.UserID,
		CreatedAt:    v.CreatedAt,
	}
	if v.Category.ID != 0 {
		info.Category = &dto.CategoryInfo{ID: v.Category.ID, Name: v.Category.Name}
	}
	return info
}

func buildVideoListData(videos []model.Video, total int64, page, pageSize int) *dto.VideoListData {
	items := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		items = append(items, *toVideoInfo(&videos[i]))
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.VideoListData{
		Videos:     items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasNext:    int64(page) < totalPages,
		HasPrev:    page > 1 && total > 0,
	}
}
