package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/platewire/eatery-backend/internal/services"
)

type ReviewHandler struct {
	reviewService services.ReviewService
}

func NewReviewHandler(reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type createReviewRequest struct {
	UserID     *uint    `json:"user_id" binding:"required"`
	EateryID   *uint    `json:"eatery_id" binding:"required"`
	Rating     *float64 `json:"rating" binding:"required"`
	ReviewText string   `json:"review_text"`
}

// editReviewRequest fields are pointers: absent fields keep their prior
// values.
type editReviewRequest struct {
	Rating     *float64 `json:"rating"`
	ReviewText *string  `json:"review_text"`
}

func (rh *ReviewHandler) List(c *gin.Context) {
	reviews, err := rh.reviewService.List(c.Request.Context(), nil)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"reviews": reviews})
}

func (rh *ReviewHandler) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondBadRequest(c, err)
		return
	}
	review, err := rh.reviewService.Get(c.Request.Context(), nil, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, review)
}

func (rh *ReviewHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, err)
		return
	}
	review, err := rh.reviewService.Create(c.Request.Context(), *req.UserID, *req.EateryID, *req.Rating, req.ReviewText)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondCreated(c, review)
}

func (rh *ReviewHandler) Edit(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondBadRequest(c, err)
		return
	}
	var req editReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, err)
		return
	}
	review, err := rh.reviewService.Edit(c.Request.Context(), id, req.Rating, req.ReviewText)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, review)
}

func (rh *ReviewHandler) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		RespondBadRequest(c, err)
		return
	}
	review, err := rh.reviewService.Delete(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, review)
}
