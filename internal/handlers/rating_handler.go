package handlers

import (
	"net/http"

	"landmarket_backend/internal/services"
	"landmarket_backend/internal/services/dto"
	"landmarket_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	*BaseHandler
	ratingService services.RatingService
}

func NewRatingHandler(v *validator.Validator, ratingService services.RatingService) *RatingHandler {
	return &RatingHandler{
		BaseHandler:   NewBaseHandler(v),
		ratingService: ratingService,
	}
}

// CreateRating - POST /ratings/:id (:id - кого оцениваем)
func (h *RatingHandler) CreateRating(c *gin.Context) {
	raterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRatingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	rating, err := h.ratingService.Rate(db, raterID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Rating submitted",
		"data":    rating,
	})
}

// ListRatings - GET /ratings/:id
func (h *RatingHandler) ListRatings(c *gin.Context) {
	db := h.GetDB(c)
	ratings, err := h.ratingService.ListRatings(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    ratings,
	})
}
