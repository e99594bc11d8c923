package web

// Request DTOs, validated with go-playground/validator.

type webhookUserRequest struct {
	ID    string `json:"id" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type updateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=30"`
}

type favoriteGenreRequest struct {
	GenreID   int    `json:"genre_id" validate:"required,gt=0"`
	MediaType string `json:"media_type" validate:"required,oneof=movie tv"`
}

type streamingPlatformRequest struct {
	Platform string `json:"platform" validate:"required,min=2,max=50"`
}

type createInteractionRequest struct {
	MediaID       int     `json:"media_id" validate:"required,gt=0"`
	MediaType     string  `json:"media_type" validate:"required,oneof=movie tv"`
	Rating        *int    `json:"rating" validate:"omitempty,min=0,max=10"`
	Comment       *string `json:"comment" validate:"omitempty,max=2000"`
	SeasonNumber  *int    `json:"season_number" validate:"omitempty,min=1"`
	EpisodeNumber *int    `json:"episode_number" validate:"omitempty,min=1"`
}

type updateInteractionRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=0,max=10"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

type createPlatformRequest struct {
	Code     string  `json:"code" validate:"required,min=2,max=50,lowercase"`
	Name     string  `json:"name" validate:"required,min=2,max=100"`
	LogoURL  *string `json:"logo_url" validate:"omitempty,url"`
	IsActive *bool   `json:"is_active"`
}

type updatePlatformRequest struct {
	Code     *string `json:"code" validate:"omitempty,min=2,max=50,lowercase"`
	Name     *string `json:"name" validate:"omitempty,min=2,max=100"`
	LogoURL  *string `json:"logo_url" validate:"omitempty,url"`
	IsActive *bool   `json:"is_active"`
}
