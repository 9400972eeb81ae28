package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vidshare/internal/api/dto"
	infraES "vidshare/internal/infra/elasticsearch"
	"vidshare/internal/model"
	"vidshare/internal/repository"
	"vidshare/pkg/logger"

	"go.uber.org/zap"
)

const searchTimeout = 10 * time.Second

// SearchService 视频搜索：Elasticsearch 优先，不可用或出错时降级到数据库
type SearchService struct {
	es        *infraES.Client // 可为 nil，直接走数据库
	videoRepo *repository.VideoRepository
}

func NewSearchService(es *infraES.Client, videoRepo *repository.VideoRepository) *SearchService {
	return &SearchService{es: es, videoRepo: videoRepo}
}

// Search 按标题搜索视频，分页参数与公开列表一致
func (s *SearchService) Search(query string, categoryID *int64, page, pageSize int) (*dto.VideoListData, error) {
	if page < 1 {
		page = 1
	}

	if s.es == nil {
		return s.searchFromDB(query, categoryID, page, pageSize)
	}

	data, err := s.searchFromES(query, categoryID, page, pageSize)
	if err != nil {
		logger.Warn("ES search failed, fallback to DB", zap.Error(err))
		return s.searchFromDB(query, categoryID, page, pageSize)
	}
	return data, nil
}

func (s *SearchService) searchFromDB(query string, categoryID *int64, page, pageSize int) (*dto.VideoListData, error) {
	skip := (page - 1) * pageSize
	videos, total, err := s.videoRepo.List(skip, pageSize, categoryID, query)
	if err != nil {
		return nil, err
	}
	return buildVideoListData(videos, total, page, pageSize), nil
}

func (s *SearchService) searchFromES(query string, categoryID *int64, page, pageSize int) (*dto.VideoListData, error) {
	body := buildESQuery(query, categoryID, page, pageSize)
	queryJSON, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	resp, err := s.es.Search(ctx, bytes.NewReader(queryJSON))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	videoIDs := make([]int64, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		videoIDs = append(videoIDs, h.Source.ID)
	}

	total := esResp.Hits.Total.Value
	if len(videoIDs) == 0 {
		return buildVideoListData(nil, total, page, pageSize), nil
	}

	videos, err := s.videoRepo.GetByIDs(videoIDs)
	if err != nil {
		return nil, err
	}

	// 按 ES 返回顺序重排
	videoMap := make(map[int64]*model.Video, len(videos))
	for i := range videos {
		videoMap[videos[i].ID] = &videos[i]
	}
	ordered := make([]model.Video, 0, len(videoIDs))
	for _, id := range videoIDs {
		if v, ok := videoMap[id]; ok {
			ordered = append(ordered, *v)
		}
	}

	return buildVideoListData(ordered, total, page, pageSize), nil
}

func buildESQuery(query string, categoryID *int64, page, pageSize int) map[string]interface{} {
	must := []map[string]interface{}{}
	if q := strings.TrimSpace(query); q != "" {
		must = append(must, map[string]interface{}{
			"match_phrase_prefix": map[string]interface{}{"title": q},
		})
	}

	filter := []map[string]interface{}{}
	if categoryID != nil {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"category_id": *categoryID},
		})
	}

	return map[string]interface{}{
		"from": (page - 1) * pageSize,
		"size": pageSize,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   must,
				"filter": filter,
			},
		},
		"sort": []map[string]interface{}{
			{"created_at": map[string]interface{}{"order": "desc"}},
		},
	}
}

// SyncVideo 将视频文档写入索引（尽力而为，失败只记警告）
func (s *SearchService) SyncVideo(video *model.Video) {
	if s.es == nil || video == nil {
		return
	}

	doc := map[string]interface{}{
		"id":          video.ID,
		"title":       video.Title,
		"category_id": video.CategoryID,
		"created_at":  video.CreatedAt,
	}
	docJSON, err := json.Marshal(doc)
	if err != nil {
		logger.Warn("Marshal video doc failed", zap.Int64("video_id", video.ID), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	resp, err := s.es.Index(ctx, strconv.FormatInt(video.ID, 10), bytes.NewReader(docJSON))
	if err != nil {
		logger.Warn("Sync video to ES failed", zap.Int64("video_id", video.ID), zap.Error(err))
		return
	}
	defer resp.Body.Close()
	if resp.IsError() {
		logger.Warn("Sync video to ES failed",
			zap.Int64("video_id", video.ID),
			zap.String("resp", resp.String()),
		)
	}
}

// RemoveVideo 从索引中删除视频文档（尽力而为）
func (s *SearchService) RemoveVideo(videoID int64) {
	if s.es == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()

	resp, err := s.es.Delete(ctx, strconv.FormatInt(videoID, 10))
	if err != nil {
		logger.Warn("Remove video from ES failed", zap.Int64("video_id", videoID), zap.Error(err))
		return
	}
	defer resp.Body.Close()
}
