package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/nadia/library/internal/domain/user"
	"github.com/nadia/library/internal/interface/http/dto"
	apperrors "github.com/nadia/library/pkg/errors"
	"github.com/nadia/library/pkg/response"
)

// UserHandler 读者HTTP处理器
type UserHandler struct {
	userService user.Service
}

// NewUserHandler 创建读者处理器
func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers 查询读者列表
// @Summary      查询读者列表
// @Tags         读者
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.UserResponse}
// @Router       /api/v1/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]*dto.UserResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}
	response.Success(c, out)
}

// GetUser 查询读者详情
// @Summary      查询读者详情
// @Tags         读者
// @Produce      json
// @Param        id path int true "读者ID"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      404 {object} response.Response "读者不存在"
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	u, err := h.userService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toUserResponse(u))
}

// RegisterUser 登记新读者
// @Summary      登记新读者
// @Tags         读者
// @Accept       json
// @Produce      json
// @Param        request body dto.UserRequest true "读者信息"
// @Success      201 {object} response.Response{data=dto.UserResponse}
// @Failure      400 {object} response.Response "参数错误/邮箱已存在"
// @Router       /api/v1/users [post]
func (h *UserHandler) RegisterUser(c *gin.Context) {
	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	u, err := h.userService.RegisterUser(c.Request.Context(), req.Name, req.Address, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toUserResponse(u))
}

// UpdateUser 更新读者档案
// @Summary      更新读者档案
// @Tags         读者
// @Accept       json
// @Produce      json
// @Param        id path int true "读者ID"
// @Param        request body dto.UserRequest true "读者信息"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      404 {object} response.Response "读者不存在"
// @Router       /api/v1/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	u, err := h.userService.UpdateUser(c.Request.Context(), id, req.Name, req.Address, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toUserResponse(u))
}

// DeleteUser 删除读者
// @Summary      删除读者
// @Tags         读者
// @Param        id path int true "读者ID"
// @Success      204 "删除成功"
// @Failure      404 {object} response.Response "读者不存在"
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// toUserResponse 领域实体 → HTTP响应
func toUserResponse(u *user.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Address:   u.Address,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(timeLayout),
		UpdatedAt: u.UpdatedAt.Format(timeLayout),
	}
}
