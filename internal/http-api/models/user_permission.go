package models

// Pair uniqueness is checked in the service layer, there is no DB constraint.
type UserPermission struct {
	ID           int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	PermissionID int    `json:"permission_id" gorm:"not null;index"`
	UserID       string `json:"user_id" gorm:"type:uuid;not null;index"`
}

func (UserPermission) TableName() string {
	return "user_permissions"
}
