package template

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"wedding_manager/apperr"
	"wedding_manager/constants"
	"wedding_manager/model"
)

const dateLayout = "2006-01-02"

// Syncer applies template-editor edits onto the couples table through the
// field map, and renders the reverse direction for the public site.
type Syncer struct {
	db     *gorm.DB
	fields *FieldMap
	// unmappedMode decides what happens to an edit with no column behind it:
	// UNMAPPED_ACCEPT keeps it template-local and logs, UNMAPPED_REJECT
	// returns a validation error.
	unmappedMode string
}

func NewSyncer(db *gorm.DB, fields *FieldMap, unmappedMode string) *Syncer {
	if unmappedMode != constants.UNMAPPED_REJECT {
		unmappedMode = constants.UNMAPPED_ACCEPT
	}
	return &Syncer{db: db, fields: fields, unmappedMode: unmappedMode}
}

// ApplyEdit persists one template field edit. Edits are independent
// single-column writes; a section saved field by field has no atomicity
// beyond each column.
func (s *Syncer) ApplyEdit(ctx context.Context, coupleId uint, sectionId, fieldId, value string) error {
	entry, ok := s.fields.ToDBField(sectionId, fieldId)
	if !ok {
		if s.unmappedMode == constants.UNMAPPED_REJECT {
			return apperr.Validation(constants.FIELD_NOT_MAPPED).
				WithKey(FieldRef{sectionId, fieldId}.String())
		}
		log.Info().Uint("coupleId", coupleId).
			Str("field", FieldRef{sectionId, fieldId}.String()).
			Msg("unmapped template edit kept template-local")
		return nil
	}

	converted, err := convertValue(entry.Kind, value)
	if err != nil {
		return apperr.Validation(err.Error()).WithKey(FieldRef{sectionId, fieldId}.String())
	}

	res := s.db.WithContext(ctx).Model(&model.Couple{}).
		Where("id = ?", coupleId).
		Update(entry.Column, converted)
	if res.Error != nil {
		return apperr.Transient(constants.ERROR_INTERNAL_ERROR, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(constants.COUPLE_NOT_FOUND)
	}
	return nil
}

// Fields renders the mapped state of a couple as section -> field -> value,
// the shape the template editor consumes.
func (s *Syncer) Fields(couple *model.Couple) map[string]map[string]string {
	out := map[string]map[string]string{}
	for ref, entry := range s.fields.forward {
		if out[ref.SectionId] == nil {
			out[ref.SectionId] = map[string]string{}
		}
		out[ref.SectionId][ref.FieldId] = columnValue(couple, entry.Column)
	}
	return out
}

func convertValue(kind Kind, value string) (any, error) {
	if kind != KindDate {
		return value, nil
	}
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, errors.New("date must be YYYY-MM-DD")
	}
	return t, nil
}

func columnValue(couple *model.Couple, column string) string {
	switch column {
	case "groom_name":
		return couple.GroomName
	case "bride_name":
		return couple.BrideName
	case "wedding_date":
		if couple.WeddingDate.IsZero() {
			return ""
		}
		return couple.WeddingDate.Format(dateLayout)
	case "cover_image_url":
		return couple.CoverImageUrl
	case "story":
		return couple.Story
	case "story_image_url":
		return couple.StoryImageUrl
	case "venue_name":
		return couple.VenueName
	case "venue_address":
		return couple.VenueAddress
	case "city":
		return couple.City
	case "map_url":
		return couple.MapUrl
	case "invitation_message":
		return couple.InvitationMessage
	case "rsvp_deadline":
		if couple.RsvpDeadline == nil {
			return ""
		}
		return couple.RsvpDeadline.Format(dateLayout)
	}
	return ""
}
