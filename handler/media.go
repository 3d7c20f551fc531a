package handler

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"

	"wedding_manager/config"
	"wedding_manager/constants"
	"wedding_manager/utils"
)

// UploadCoverImage uploads the hero cover through the server-side cloudinary
// client and stores the delivered URL on the couple.
func (h *Handler) UploadCoverImage(c *fiber.Ctx) error {
	couple := h.coupleFromToken(c)
	if couple == nil {
		return nil
	}

	file, err := c.FormFile("image")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	ext := strings.ToLower(file.Filename[strings.LastIndexByte(file.Filename, '.')+1:])
	if ext != "png" && ext != "jpg" && ext != "jpeg" && ext != "webp" {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Unsupported image format", fmt.Errorf("got .%s", ext), "image")
	}

	reader, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	defer reader.Close()

	res, err := h.Cld.Upload.Upload(c.Context(), reader, uploader.UploadParams{
		Folder: fmt.Sprintf("weddings/%s", couple.Slug),
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := h.DB.Model(couple).Update("cover_image_url", res.SecureURL).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	h.Resolver.Invalidate(c.Context(), couple.Slug)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"coverImageUrl": res.SecureURL})
}

// GenerateSignature signs a direct-to-cloudinary upload for the dashboard so
// the API secret never leaves the server.
func (h *Handler) GenerateSignature(c *fiber.Ctx) error {
	couple := h.coupleFromToken(c)
	if couple == nil {
		return nil
	}

	type SigParams struct {
		Folder       string `json:"folder"`
		PublicID     string `json:"public_id"`
		ResourceType string `json:"resource_type"` // parsed but never signed
	}

	var params SigParams
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	timestamp := time.Now().Unix()

	// Uploads are namespaced per tenant regardless of what the client asks.
	paramMap := map[string]string{
		"folder":    fmt.Sprintf("weddings/%s", couple.Slug),
		"timestamp": fmt.Sprintf("%d", timestamp),
	}
	if params.PublicID != "" {
		paramMap["public_id"] = params.PublicID
	}

	keys := make([]string, 0, len(paramMap))
	for k := range paramMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var stringToSign strings.Builder
	for i, k := range keys {
		if i > 0 {
			stringToSign.WriteString("&")
		}
		stringToSign.WriteString(k)
		stringToSign.WriteString("=")
		stringToSign.WriteString(paramMap[k])
	}
	stringToSign.WriteString(config.Config("CLOUDINARY_API_SECRET"))

	sum := sha1.Sum([]byte(stringToSign.String()))
	signature := hex.EncodeToString(sum[:])

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"folder":    paramMap["folder"],
		"apiKey":    config.Config("CLOUDINARY_API_KEY"),
		"cloudName": config.Config("CLOUDINARY_CLOUD_NAME"),
	})
}
