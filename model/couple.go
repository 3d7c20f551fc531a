package model

import "time"

// Couple is the tenant record. One couple owns one slug-addressed public
// site; is_active gates any public visibility and is_published gates whether
// the site is reachable even while active.
type Couple struct {
	DTO
	Slug      string `gorm:"uniqueIndex;not null" json:"slug"`
	AccountId uint   `gorm:"not null;index" json:"accountId"`

	GroomName         string     `gorm:"not null" validate:"required" json:"groomName"`
	BrideName         string     `gorm:"not null" validate:"required" json:"brideName"`
	WeddingDate       time.Time  `json:"weddingDate"`
	VenueName         string     `json:"venueName"`
	VenueAddress      string     `json:"venueAddress"`
	City              string     `json:"city"`
	MapUrl            string     `json:"mapUrl"`
	Story             string     `json:"story"`
	StoryImageUrl     string     `json:"storyImageUrl"`
	CoverImageUrl     string     `json:"coverImageUrl"`
	InvitationMessage string     `json:"invitationMessage"`
	RsvpDeadline      *time.Time `gorm:"column:rsvp_deadline" json:"rsvpDeadline"`

	IsActive    bool `gorm:"default:true" json:"isActive"`
	IsPublished bool `gorm:"default:false" json:"isPublished"`

	// ThemeColors is the semi-structured settings blob. Theme id and palette
	// snapshot live inside it next to whatever else the dashboard stores;
	// writers must merge, never replace.
	ThemeColors []byte `gorm:"type:jsonb" json:"themeColors"`
	// SettingsVersion guards blob read-modify-write with a conditional update.
	SettingsVersion uint `gorm:"not null;default:0" json:"-"`

	Groups []GuestGroup `gorm:"foreignKey:CoupleId" json:"groups,omitempty"`
	Guests []Guest      `gorm:"foreignKey:CoupleId" json:"guests,omitempty"`
}

type Couples []Couple

type EditCoupleInput struct {
	GroomName         *string `json:"groomName"`
	BrideName         *string `json:"brideName"`
	WeddingDate       *string `json:"weddingDate"`
	VenueName         *string `json:"venueName"`
	VenueAddress      *string `json:"venueAddress"`
	City              *string `json:"city"`
	MapUrl            *string `json:"mapUrl" validate:"omitempty,url"`
	Story             *string `json:"story"`
	StoryImageUrl     *string `json:"storyImageUrl" validate:"omitempty,url"`
	CoverImageUrl     *string `json:"coverImageUrl" validate:"omitempty,url"`
	InvitationMessage *string `json:"invitationMessage"`
	RsvpDeadline      *string `json:"rsvpDeadline"`
}

type SetThemeInput struct {
	ThemeId string `json:"themeId" validate:"required"`
}

type TemplateEditInput struct {
	SectionId string `json:"sectionId" validate:"required"`
	FieldId   string `json:"fieldId" validate:"required"`
	Value     string `json:"value"`
}

type FilterCouple struct {
	Pagination
	SearchKey   string `json:"searchKey"`
	City        string `json:"city"`
	IsPublished *bool  `json:"isPublished"`
}
