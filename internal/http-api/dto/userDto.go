package dto

type UserProfileResponse struct {
	ID                string `json:"id"`
	UserName          string `json:"user_name"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

type PatchUserInfoRequest struct {
	UserName string `json:"user_name" binding:"required,min=3,max=100"`
}
