package handler

import (
	"errors"

	"vidshare/internal/api/dto"
	"vidshare/internal/api/response"
	"vidshare/internal/service"
	"vidshare/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List 分类列表
// @Summary 分类列表
// @Description 按名称升序返回全部分类
// @Tags 分类
// @Produce json
// @Success 200 {object} response.Response{data=[]dto.CategoryInfo} "获取成功"
// @Router /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List()
	if err != nil {
		logger.Error("List categories failed", zap.Error(err))
		response.InternalError(c, "获取分类列表失败")
		return
	}

	response.OK(c, "获取分类列表成功", categories)
}

// Create 创建分类
// @Summary 创建分类
// @Description 创建新分类，名称重复时返回冲突（admin）
// @Tags 分类
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CategoryRequest true "分类名称"
// @Success 201 {object} response.Response{data=dto.CategoryInfo} "创建成功"
// @Failure 409 {object} response.ErrorResponse "分类名称已存在"
// @Router /admin/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.categoryService.Create(req.Name)
	if err != nil {
		handleCategoryError(c, err)
		return
	}

	response.Created(c, "分类创建成功", info)
}

// Rename 重命名分类
// @Summary 重命名分类
// @Description 重命名分类，与其他分类重名时返回冲突（admin）
// @Tags 分类
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类ID"
// @Param request body dto.CategoryRequest true "新名称"
// @Success 200 {object} response.Response{data=dto.CategoryInfo} "更新成功"
// @Failure 404 {object} response.ErrorResponse "分类不存在"
// @Failure 409 {object} response.ErrorResponse "分类名称已存在"
// @Router /admin/categories/{id} [put]
func (h *CategoryHandler) Rename(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的分类ID")
		return
	}

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	info, err := h.categoryService.Rename(categoryID, req.Name)
	if err != nil {
		handleCategoryError(c, err)
		return
	}

	response.OK(c, "分类更新成功", info)
}

// Delete 删除分类
// @Summary 删除分类
// @Description 删除分类，分类下仍有视频时返回冲突（admin）
// @Tags 分类
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 404 {object} response.ErrorResponse "分类不存在"
// @Failure 409 {object} response.ErrorResponse "分类下仍有视频"
// @Router /admin/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的分类ID")
		return
	}

	if err := h.categoryService.Delete(categoryID); err != nil {
		handleCategoryError(c, err)
		return
	}

	response.OK(c, "分类删除成功", nil)
}

func handleCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCategoryNameTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrCategoryInUse):
		response.Conflict(c, err.Error())
	default:
		logger.Error("Category operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
