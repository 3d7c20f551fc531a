package helper

import (
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/rs/zerolog/log"

	"wedding_manager/config"
)

// InitCloudinary builds the upload client for couple photos and gallery
// images.
func InitCloudinary() *cloudinary.Cloudinary {
	cld, err := cloudinary.NewFromParams(
		config.Config("CLOUDINARY_CLOUD_NAME"),
		config.Config("CLOUDINARY_API_KEY"),
		config.Config("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("cloudinary init failed")
	}
	return cld
}
