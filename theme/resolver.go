package theme

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"wedding_manager/apperr"
	"wedding_manager/constants"
	"wedding_manager/model"
)

// setRetries bounds the conditional-update loop on settings_version.
const setRetries = 3

type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Of returns the theme selected by the couple's settings blob, falling back
// to the catalog default when the blob has no themeId or names a theme that
// no longer exists.
func (r *Resolver) Of(couple *model.Couple) Theme {
	settings := decodeSettings(couple.ThemeColors)
	id, _ := settings["themeId"].(string)
	if id == "" {
		return Default()
	}
	t, ok := ByName(id)
	if !ok {
		log.Warn().Str("slug", couple.Slug).Str("themeId", id).
			Msg("stored theme missing from catalog, using default")
		return Default()
	}
	return t
}

// Set validates the theme id, merges the id plus the catalog snapshot into
// the couple's settings blob without touching unrelated keys, and persists
// the merge with a conditional update on settings_version. A concurrent
// writer bumps the version and the merge is retried on a fresh read.
func (r *Resolver) Set(ctx context.Context, coupleId uint, themeId string) (Theme, error) {
	t, ok := ByName(themeId)
	if !ok {
		return Theme{}, apperr.Validation(constants.THEME_NOT_FOUND).WithKey("themeId")
	}

	for attempt := 0; attempt < setRetries; attempt++ {
		var couple model.Couple
		err := r.db.WithContext(ctx).
			Select("id", "slug", "theme_colors", "settings_version").
			First(&couple, coupleId).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Theme{}, apperr.NotFound(constants.COUPLE_NOT_FOUND)
			}
			return Theme{}, apperr.Transient(constants.ERROR_INTERNAL_ERROR, err)
		}

		settings := decodeSettings(couple.ThemeColors)
		settings["themeId"] = t.Name
		settings["primary"] = t.Colors.Primary
		settings["secondary"] = t.Colors.Secondary
		settings["accent"] = t.Colors.Accent
		settings["background"] = t.Colors.Background
		settings["text"] = t.Colors.Text
		settings["themeData"] = map[string]any{
			"name":        t.Name,
			"displayName": t.DisplayName,
			"fonts":       t.Fonts,
			"styling":     t.Styling,
			"animations":  t.Animations,
		}

		blob, err := json.Marshal(settings)
		if err != nil {
			return Theme{}, apperr.Transient(constants.ERROR_INTERNAL_ERROR, err)
		}

		res := r.db.WithContext(ctx).Model(&model.Couple{}).
			Where("id = ? AND settings_version = ?", couple.ID, couple.SettingsVersion).
			Updates(map[string]any{
				"theme_colors":     blob,
				"settings_version": couple.SettingsVersion + 1,
			})
		if res.Error != nil {
			return Theme{}, apperr.Transient(constants.ERROR_INTERNAL_ERROR, res.Error)
		}
		if res.RowsAffected > 0 {
			return t, nil
		}
		log.Debug().Uint("coupleId", coupleId).Int("attempt", attempt+1).
			Msg("theme write lost settings_version race, retrying")
	}

	return Theme{}, apperr.Conflict("concurrent settings updates, try again").WithKey("themeId")
}

func decodeSettings(blob []byte) map[string]any {
	settings := map[string]any{}
	if len(blob) == 0 {
		return settings
	}
	if err := json.Unmarshal(blob, &settings); err != nil {
		log.Warn().Err(err).Msg("settings blob is not valid JSON, starting fresh")
		return map[string]any{}
	}
	return settings
}
