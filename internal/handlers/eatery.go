package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/platewire/eatery-backend/internal/services"
)

type EateryHandler struct {
	eateryService services.EateryService
}

func NewEateryHandler(eateryService services.EateryService) *EateryHandler {
	return &EateryHandler{eateryService: eateryService}
}

type createEateryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Cuisine     string `json:"cuisine"`
	Location    string `json:"location"`
}

func (eh *EateryHandler) List(c *gin.Context) {
	eateries, err := eh.eateryService.List(c.Request.Context(), nil)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"eateries": eateries})
}

func (eh *EateryHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondBadRequest(c, err)
		return
	}
	eatery, err := eh.eateryService.Get(c.Request.Context(), nil, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, eatery)
}

func (eh *EateryHandler) Create(c *gin.Context) {
	var req createEateryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, err)
		return
	}
	eatery, err := eh.eateryService.Create(c.Request.Context(), req.Name, req.Description, req.Cuisine, req.Location)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, eatery)
}

func (eh *EateryHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondBadRequest(c, err)
		return
	}
	eatery, err := eh.eateryService.Delete(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, eatery)
}
