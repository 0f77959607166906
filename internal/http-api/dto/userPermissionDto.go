package dto

type UserPermissionRequest struct {
	PermissionID int    `json:"permission_id" binding:"required"`
	UserID       string `json:"user_id" binding:"required"`
}
