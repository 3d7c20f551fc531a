package template

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"wedding_manager/apperr"
	"wedding_manager/constants"
	"wedding_manager/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Couple{}))
	return db
}

func seedCouple(t *testing.T, db *gorm.DB) *model.Couple {
	t.Helper()
	couple := &model.Couple{
		Slug:      "anna-bela",
		AccountId: 1,
		GroomName: "Bela",
		BrideName: "Anna",
		Story:     "original story",
		IsActive:  true,
	}
	require.NoError(t, db.Create(couple).Error)
	return couple
}

func TestApplyEditMapped(t *testing.T) {
	db := newTestDB(t)
	couple := seedCouple(t, db)
	s := NewSyncer(db, SiteFieldMap(), constants.UNMAPPED_ACCEPT)

	err := s.ApplyEdit(context.Background(), couple.ID, "story", "content", "we met on a train")
	require.NoError(t, err)

	var got model.Couple
	require.NoError(t, db.First(&got, couple.ID).Error)
	require.Equal(t, "we met on a train", got.Story)
}

func TestApplyEditDate(t *testing.T) {
	db := newTestDB(t)
	couple := seedCouple(t, db)
	s := NewSyncer(db, SiteFieldMap(), constants.UNMAPPED_ACCEPT)

	err := s.ApplyEdit(context.Background(), couple.ID, "hero", "weddingDate", "2026-10-17")
	require.NoError(t, err)

	var got model.Couple
	require.NoError(t, db.First(&got, couple.ID).Error)
	require.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), got.WeddingDate.UTC())

	err = s.ApplyEdit(context.Background(), couple.ID, "hero", "weddingDate", "17/10/2026")
	require.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestApplyEditUnmappedAccept(t *testing.T) {
	db := newTestDB(t)
	couple := seedCouple(t, db)
	s := NewSyncer(db, SiteFieldMap(), constants.UNMAPPED_ACCEPT)

	err := s.ApplyEdit(context.Background(), couple.ID, "gallery", "layout", "masonry")
	require.NoError(t, err)

	// Nothing was persisted for it.
	var got model.Couple
	require.NoError(t, db.First(&got, couple.ID).Error)
	require.Equal(t, "original story", got.Story)
}

func TestApplyEditUnmappedReject(t *testing.T) {
	db := newTestDB(t)
	couple := seedCouple(t, db)
	s := NewSyncer(db, SiteFieldMap(), constants.UNMAPPED_REJECT)

	err := s.ApplyEdit(context.Background(), couple.ID, "gallery", "layout", "masonry")
	require.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestApplyEditMissingCouple(t *testing.T) {
	db := newTestDB(t)
	s := NewSyncer(db, SiteFieldMap(), constants.UNMAPPED_ACCEPT)

	err := s.ApplyEdit(context.Background(), 9999, "story", "content", "x")
	require.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestFieldsRendering(t *testing.T) {
	db := newTestDB(t)
	couple := seedCouple(t, db)
	couple.WeddingDate = time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	s := NewSyncer(db, SiteFieldMap(), constants.UNMAPPED_ACCEPT)

	fields := s.Fields(couple)
	require.Equal(t, "Bela", fields["hero"]["groomName"])
	require.Equal(t, "Anna", fields["hero"]["brideName"])
	require.Equal(t, "2026-10-17", fields["hero"]["weddingDate"])
	require.Equal(t, "original story", fields["story"]["content"])
	require.Equal(t, "", fields["rsvp"]["deadline"])
}
