package model

import "time"

type Account struct {
	DTO
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"not null;default:COUPLE" json:"role"`
	Active   bool   `gorm:"default:false" json:"isActive"`

	Couple *Couple `gorm:"foreignKey:AccountId" json:"couple,omitempty"`
}

type Accounts []Account

type VerificationToken struct {
	DTO
	AccountId uint      `gorm:"not null" json:"accountId"`
	Token     string    `gorm:"type:varchar(255);not null;unique" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	Account   Account   `gorm:"foreignKey:AccountId" json:"account"`
}

type PasswordResetToken struct {
	DTO
	AccountId uint      `gorm:"not null" json:"accountId"`
	Token     string    `gorm:"type:varchar(255);not null;unique" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	Account   Account   `gorm:"foreignKey:AccountId" json:"account"`
}

type SignupInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	GroomName   string `json:"groomName" validate:"required"`
	BrideName   string `json:"brideName" validate:"required"`
	WeddingDate string `json:"weddingDate" validate:"required"`
	City        string `json:"city" validate:"omitempty"`
}

type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
	RepeatPassword  string `json:"repeatPassword" validate:"required,eqfield=NewPassword"`
}
