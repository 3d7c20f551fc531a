package model

import "time"

type Guest struct {
	DTO
	CoupleId uint  `gorm:"not null;index" json:"coupleId"`
	GroupId  *uint `gorm:"index" json:"groupId"`

	FullName string `gorm:"not null" validate:"required" json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`

	// Code is the opaque invitation code printed on the QR card.
	Code string `gorm:"uniqueIndex;not null" json:"code"`

	Status     string     `gorm:"not null;default:pending" json:"status"`
	AgeClass   string     `gorm:"not null;default:adult" json:"ageClass"`
	MenuChoice string     `json:"menuChoice"`
	Message    string     `json:"message"`
	RsvpAt     *time.Time `gorm:"column:rsvp_at" json:"rsvpAt"`

	Companions []Companion `gorm:"foreignKey:GuestId" json:"companions"`
	Group      *GuestGroup `gorm:"foreignKey:GroupId" json:"group,omitempty"`
}

type Guests []Guest

type Companion struct {
	DTO
	GuestId    uint   `gorm:"not null;index" json:"guestId"`
	FullName   string `gorm:"not null" json:"fullName"`
	AgeClass   string `gorm:"not null;default:adult" json:"ageClass"`
	MenuChoice string `json:"menuChoice"`
}

type GuestGroup struct {
	DTO
	CoupleId uint   `gorm:"not null;index" json:"coupleId"`
	Name     string `gorm:"not null" validate:"required" json:"name"`

	TargetAmount  float64 `gorm:"default:0" json:"targetAmount"`
	CurrentAmount float64 `gorm:"default:0" json:"currentAmount"`
	MemberCount   int     `gorm:"default:0" json:"memberCount"`

	Guests []Guest `gorm:"foreignKey:GroupId" json:"guests,omitempty"`
}

type CreateGuestInput struct {
	FullName   string           `json:"fullName" validate:"required"`
	Email      string           `json:"email" validate:"omitempty,email"`
	Phone      string           `json:"phone"`
	GroupId    *uint            `json:"groupId"`
	AgeClass   string           `json:"ageClass" validate:"omitempty,oneof=adult child"`
	Companions []CompanionInput `json:"companions" validate:"omitempty,dive"`
}

type CompanionInput struct {
	FullName   string `json:"fullName" validate:"required"`
	AgeClass   string `json:"ageClass" validate:"omitempty,oneof=adult child"`
	MenuChoice string `json:"menuChoice"`
}

type EditGuestInput struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone"`
	GroupId  *uint   `json:"groupId"`
	AgeClass *string `json:"ageClass" validate:"omitempty,oneof=adult child"`
}

type SubmitRSVPInput struct {
	Code       string           `json:"code" validate:"required"`
	Attending  *bool            `json:"attending" validate:"required"`
	MenuChoice string           `json:"menuChoice"`
	Message    string           `json:"message"`
	Companions []CompanionInput `json:"companions" validate:"omitempty,dive"`
}

type CreateGroupInput struct {
	Name         string  `json:"name" validate:"required"`
	TargetAmount float64 `json:"targetAmount" validate:"omitempty,gte=0"`
}

type ContributionInput struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Note   string  `json:"note"`
}

type FilterGuest struct {
	Pagination
	SearchKey string `json:"searchKey"`
	Status    string `json:"status"`
	GroupId   *uint  `json:"groupId"`
}
