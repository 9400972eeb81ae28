package elasticsearch

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"vidshare/internal/config"
	"vidshare/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"
)

// 视频索引的映射：标题参与全文检索，其余字段仅存储
const videoMapping = `{
  "mappings": {
    "properties": {
      "id":          {"type": "long"},
      "title":       {"type": "text"},
      "category_id": {"type": "long"},
      "created_at":  {"type": "date"}
    }
  }
}`

// Client 搜索客户端，封装视频索引的读写
type Client struct {
	es    *elasticsearch.Client
	index string
}

// New 创建 Elasticsearch 客户端并检查连通性
func New(cfg *config.ElasticsearchConfig) (*Client, error) {
	hosts := make([]string, 0, len(cfg.Hosts))
	for _, h := range cfg.Hosts {
		h = strings.TrimSpace(h)
		if h != "" && !strings.HasPrefix(h, "http") {
			h = "http://" + h
		}
		hosts = append(hosts, h)
	}
	if len(hosts) == 0 {
		return nil, fmt.Errorf("elasticsearch hosts is empty")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     hosts,
		RetryOnStatus: []int{502, 503, 504},
		MaxRetries:    3,
		RetryBackoff:  func(i int) time.Duration { return time.Duration(i) * time.Second },
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := es.Ping(es.Ping.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to ping elasticsearch: %w", err)
	}
	defer resp.Body.Close()
	if resp.IsError() {
		return nil, fmt.Errorf("elasticsearch ping failed: %s", resp.String())
	}

	index := cfg.Index
	if index == "" {
		index = "videos"
	}

	logger.Info("Elasticsearch connected", zap.Strings("hosts", hosts), zap.String("index", index))
	return &Client{es: es, index: index}, nil
}

// EnsureIndex 创建视频索引（已存在则跳过）
func (c *Client) EnsureIndex(ctx context.Context) error {
	exists, err := c.es.Indices.Exists([]string{c.index}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to check index: %w", err)
	}
	defer exists.Body.Close()
	if exists.StatusCode == 200 {
		return nil
	}

	resp, err := c.es.Indices.Create(
		c.index,
		c.es.Indices.Create.WithContext(ctx),
		c.es.Indices.Create.WithBody(strings.NewReader(videoMapping)),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer resp.Body.Close()
	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch index created", zap.String("index", c.index))
	return nil
}

// Index 写入或覆盖一个视频文档
func (c *Client) Index(ctx context.Context, id string, body io.Reader) (*esapi.Response, error) {
	return c.es.Index(
		c.index,
		body,
		c.es.Index.WithContext(ctx),
		c.es.Index.WithDocumentID(id),
		c.es.Index.WithRefresh("false"),
	)
}

// Delete 删除视频文档
func (c *Client) Delete(ctx context.Context, id string) (*esapi.Response, error) {
	return c.es.Delete(
		c.index,
		id,
		c.es.Delete.WithContext(ctx),
	)
}

// Search 执行搜索请求
func (c *Client) Search(ctx context.Context, body io.Reader) (*esapi.Response, error) {
	return c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(body),
	)
}
