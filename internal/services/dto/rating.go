package dto

type CreateRatingRequest struct {
	Score   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
