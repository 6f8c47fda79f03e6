package dto

type CreateProfileRequest struct {
	FirstName     string `json:"firstname" form:"firstname" validate:"required,max=65"`
	LastName      string `json:"lastname" form:"lastname" validate:"required,max=65"`
	ContactNumber string `json:"contact_number" form:"contact_number" validate:"omitempty,max=20"`
	Description   string `json:"description" form:"description"`
	Location      string `json:"location" form:"location" validate:"omitempty,max=255"`
	Website       string `json:"website" form:"website" validate:"omitempty,url"`
}

// UpdateProfileRequest - частичное обновление: меняются только
// переданные поля
type UpdateProfileRequest struct {
	FirstName     *string `json:"firstname" form:"firstname" validate:"omitempty,max=65"`
	LastName      *string `json:"lastname" form:"lastname" validate:"omitempty,max=65"`
	ContactNumber *string `json:"contact_number" form:"contact_number" validate:"omitempty,max=20"`
	Description   *string `json:"description" form:"description"`
	Location      *string `json:"location" form:"location" validate:"omitempty,max=255"`
	Website       *string `json:"website" form:"website" validate:"omitempty,url"`
}

type SocialLinkRequest struct {
	SiteName string `json:"site_name" validate:"required,max=255"`
	URL      string `json:"link" validate:"required,url"`
}

type UpdateSocialLinkRequest struct {
	SocialLinkID string  `json:"social_link_id" validate:"required"`
	SiteName     *string `json:"site_name" validate:"omitempty,max=255"`
	URL          *string `json:"link" validate:"omitempty,url"`
}

type DeleteSocialLinkRequest struct {
	SocialLinkID string `json:"social_link_id" validate:"required"`
}
