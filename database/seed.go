package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"wedding_manager/constants"
	"wedding_manager/model"
)

func parseDate(dateStr string) time.Time {
	t, _ := time.Parse("2006-01-02", dateStr)
	return t
}

// SeedData creates the admin account and one demo wedding so a fresh install
// has something to click through.
func SeedData(db *gorm.DB) {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), 10)
	if err != nil {
		log.Error().Err(err).Msg("seed: hash password")
		return
	}

	admin := model.Account{
		Email:    "admin@example.com",
		Password: string(hash),
		Role:     constants.ROLE_ADMIN,
		Active:   true,
	}
	if err := db.Where(model.Account{Email: admin.Email}).FirstOrCreate(&admin).Error; err != nil {
		log.Error().Err(err).Str("email", admin.Email).Msg("seed: account")
	}

	demo := model.Account{
		Email:    "demo@example.com",
		Password: string(hash),
		Role:     constants.ROLE_COUPLE,
		Active:   true,
	}
	if err := db.Where(model.Account{Email: demo.Email}).FirstOrCreate(&demo).Error; err != nil {
		log.Error().Err(err).Str("email", demo.Email).Msg("seed: account")
		return
	}

	couple := model.Couple{
		Slug:              "anna-bela-2026",
		AccountId:         demo.ID,
		GroomName:         "Bela",
		BrideName:         "Anna",
		WeddingDate:       parseDate("2026-10-17"),
		VenueName:         "Riverside Garden",
		VenueAddress:      "12 Willow Lane",
		City:              "Porto",
		Story:             "We met on a rainy platform and missed the same train twice.",
		InvitationMessage: "We would love to celebrate with you.",
		IsActive:          true,
		IsPublished:       true,
	}
	if err := db.Where(model.Couple{Slug: couple.Slug}).FirstOrCreate(&couple).Error; err != nil {
		log.Error().Err(err).Str("slug", couple.Slug).Msg("seed: couple")
		return
	}

	family := model.GuestGroup{CoupleId: couple.ID, Name: "Family", TargetAmount: 500}
	if err := db.Where(model.GuestGroup{CoupleId: couple.ID, Name: family.Name}).
		FirstOrCreate(&family).Error; err != nil {
		log.Error().Err(err).Msg("seed: guest group")
	}

	guests := []model.Guest{
		{CoupleId: couple.ID, GroupId: &family.ID, FullName: "Maria Figueira", Code: uuid.NewString(), Status: constants.RSVP_PENDING},
		{CoupleId: couple.ID, FullName: "Tomás Oliveira", Code: uuid.NewString(), Status: constants.RSVP_PENDING},
	}
	for _, g := range guests {
		if err := db.Where(model.Guest{CoupleId: couple.ID, FullName: g.FullName}).
			FirstOrCreate(&g).Error; err != nil {
			log.Error().Err(err).Str("guest", g.FullName).Msg("seed: guest")
		}
	}
}
