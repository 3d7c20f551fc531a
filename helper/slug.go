package helper

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gosimple/unidecode"
	"gorm.io/gorm"

	"wedding_manager/apperr"
	"wedding_manager/constants"
	"wedding_manager/model"
)

// MaxSlugProbes bounds the uniqueness probe loop. The unique index on
// couples.slug stays the source of truth; the loop is only a pre-check.
const MaxSlugProbes = 50

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugHyphens  = regexp.MustCompile(`-+`)
	validSlugExp = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// NormalizeSlug turns a free-form name into a URL-safe slug:
// transliterate to ASCII, lowercase, drop anything outside [a-z0-9\s-],
// collapse whitespace and hyphen runs, trim edge hyphens.
func NormalizeSlug(text string) string {
	s := unidecode.Unidecode(text)
	s = strings.ToLower(s)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// CoupleSlug joins both first names, optionally suffixed with the wedding
// year, before normalizing.
func CoupleSlug(groomName, brideName string, year int) string {
	joined := groomName + " " + brideName
	if year > 0 {
		joined = fmt.Sprintf("%s %d", joined, year)
	}
	return NormalizeSlug(joined)
}

func IsValidSlug(s string) bool {
	return validSlugExp.MatchString(s)
}

// UniqueCoupleSlug probes the store for collisions and appends an
// incrementing suffix until a free slug is found or the probe budget runs
// out. Two concurrent signups can still both observe "free"; the caller
// relies on the unique index and retries on the constraint violation.
func UniqueCoupleSlug(tx *gorm.DB, base string) (string, error) {
	if base == "" {
		base = "our-wedding"
	}
	result := base

	for i := 1; i <= MaxSlugProbes; i++ {
		var count int64
		if err := tx.Model(&model.Couple{}).
			Where("slug = ?", result).
			Count(&count).Error; err != nil {
			return "", apperr.Transient(constants.ERROR_INTERNAL_ERROR, err)
		}

		if count == 0 {
			return result, nil
		}
		result = fmt.Sprintf("%s-%d", base, i)
	}

	return "", apperr.Conflict(constants.SLUG_EXHAUSTED).WithKey("slug")
}
