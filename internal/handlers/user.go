package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/platewire/eatery-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
}

func (uh *UserHandler) List(c *gin.Context) {
	users, err := uh.userService.List(c.Request.Context(), nil)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"users": users})
}

func (uh *UserHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondBadRequest(c, err)
		return
	}
	user, err := uh.userService.Get(c.Request.Context(), nil, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, user)
}

func (uh *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, err)
		return
	}
	user, err := uh.userService.Create(c.Request.Context(), req.Name, req.Username, req.Bio, req.Location)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, user)
}

func (uh *UserHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondBadRequest(c, err)
		return
	}
	user, err := uh.userService.Delete(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, user)
}
