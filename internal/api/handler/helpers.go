package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parsePage 解析页码参数，非法或缺省时返回 1
func parsePage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// parsePagination 解析页码与页大小（用户列表等场景）
func parsePagination(c *gin.Context) (int, int) {
	page := parsePage(c)
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// parseIDParam 解析路径中的整数 ID
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
