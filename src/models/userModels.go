package models

// UserModel is a curator account allowed to use the admin API.
type UserModel struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"column:username;type:varchar(150);uniqueIndex;not null"`
	Password string `json:"-" gorm:"type:varchar(100);not null"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type RegisterResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}
