package theme

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"wedding_manager/apperr"
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

func seedCouple(t *testing.T, db *gorm.DB, blob []byte) *model.Couple {
	t.Helper()
	couple := &model.Couple{
		Slug:        "anna-bela",
		AccountId:   1,
		GroomName:   "Bela",
		BrideName:   "Anna",
		ThemeColors: blob,
	}
	require.NoError(t, db.Create(couple).Error)
	return couple
}

func TestOfDefaultsWhenBlobEmpty(t *testing.T) {
	db := newTestDB(t)
	couple := seedCouple(t, db, nil)
	r := NewResolver(db)

	require.Equal(t, Default().Name, r.Of(couple).Name)
}

func TestOfDefaultsWhenThemeUnknown(t *testing.T) {
	db := newTestDB(t)
	couple := seedCouple(t, db, []byte(`{"themeId":"retired-theme"}`))
	r := NewResolver(db)

	require.Equal(t, Default().Name, r.Of(couple).Name)
}

func TestOfReturnsStoredTheme(t *testing.T) {
	db := newTestDB(t)
	couple := seedCouple(t, db, []byte(`{"themeId":"midnight-gold"}`))
	r := NewResolver(db)

	require.Equal(t, "midnight-gold", r.Of(couple).Name)
}

func TestSetUnknownThemeRejectedAndBlobUntouched(t *testing.T) {
	db := newTestDB(t)
	couple := seedCouple(t, db, []byte(`{"customNote":"keep me"}`))
	r := NewResolver(db)

	_, err := r.Set(context.Background(), couple.ID, "nonexistent-theme")
	require.True(t, apperr.Is(err, apperr.KindValidation))

	var got model.Couple
	require.NoError(t, db.First(&got, couple.ID).Error)
	require.JSONEq(t, `{"customNote":"keep me"}`, string(got.ThemeColors))
	require.Equal(t, uint(0), got.SettingsVersion)
}

func TestSetMergesAndPreservesUnrelatedKeys(t *testing.T) {
	db := newTestDB(t)
	couple := seedCouple(t, db, []byte(`{"customNote":"keep me","rsvpBanner":true}`))
	r := NewResolver(db)

	set, err := r.Set(context.Background(), couple.ID, "garden-sage")
	require.NoError(t, err)
	require.Equal(t, "garden-sage", set.Name)

	var got model.Couple
	require.NoError(t, db.First(&got, couple.ID).Error)

	var settings map[string]any
	require.NoError(t, json.Unmarshal(got.ThemeColors, &settings))
	require.Equal(t, "garden-sage", settings["themeId"])
	require.Equal(t, "keep me", settings["customNote"])
	require.Equal(t, true, settings["rsvpBanner"])
	require.Equal(t, set.Colors.Primary, settings["primary"])
	require.Equal(t, set.Colors.Background, settings["background"])

	themeData, ok := settings["themeData"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Garden Sage", themeData["displayName"])

	require.Equal(t, uint(1), got.SettingsVersion)
	require.Equal(t, "garden-sage", r.Of(&got).Name)
}

func TestSetBumpsVersionEachWrite(t *testing.T) {
	db := newTestDB(t)
	couple := seedCouple(t, db, nil)
	r := NewResolver(db)

	_, err := r.Set(context.Background(), couple.ID, "midnight-gold")
	require.NoError(t, err)
	_, err = r.Set(context.Background(), couple.ID, "coastal-blue")
	require.NoError(t, err)

	var got model.Couple
	require.NoError(t, db.First(&got, couple.ID).Error)
	require.Equal(t, uint(2), got.SettingsVersion)
	require.Equal(t, "coastal-blue", r.Of(&got).Name)
}

func TestSetRetriesAfterConcurrentWrite(t *testing.T) {
	db := newTestDB(t)
	couple := seedCouple(t, db, nil)
	r := NewResolver(db)

	// A rival write lands between Set's read and its conditional update: it
	// replaces the blob and bumps settings_version, so the first update must
	// miss and the retry must merge on top of the rival's state.
	var raced bool
	require.NoError(t, db.Callback().Update().Before("gorm:update").
		Register("rival_settings_write", func(tx *gorm.DB) {
			if raced {
				return
			}
			raced = true
			rival := tx.Session(&gorm.Session{NewDB: true})
			require.NoError(t, rival.Model(&model.Couple{}).Where("id = ?", couple.ID).
				Updates(map[string]any{
					"theme_colors":     []byte(`{"customNote":"from rival"}`),
					"settings_version": gorm.Expr("settings_version + 1"),
				}).Error)
		}))
	defer db.Callback().Update().Remove("rival_settings_write")

	set, err := r.Set(context.Background(), couple.ID, "garden-sage")
	require.NoError(t, err)
	require.True(t, raced)
	require.Equal(t, "garden-sage", set.Name)

	var got model.Couple
	require.NoError(t, db.First(&got, couple.ID).Error)
	require.Equal(t, uint(2), got.SettingsVersion)

	var settings map[string]any
	require.NoError(t, json.Unmarshal(got.ThemeColors, &settings))
	require.Equal(t, "garden-sage", settings["themeId"])
	require.Equal(t, "from rival", settings["customNote"])
}

func TestSetMissingCouple(t *testing.T) {
	db := newTestDB(t)
	r := NewResolver(db)

	_, err := r.Set(context.Background(), 9999, "midnight-gold")
	require.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCatalogHasUniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, th := range Catalog() {
		require.False(t, seen[th.Name], "duplicate theme %s", th.Name)
		seen[th.Name] = true

		got, ok := ByName(th.Name)
		require.True(t, ok)
		require.Equal(t, th.DisplayName, got.DisplayName)
	}
}
