package router

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"wedding_manager/handler"
	"wedding_manager/middleware"
	"wedding_manager/validate"
)

// ReservedSegments is the explicit route table consulted before any first
// path segment is treated as a tenant slug. The slug match is the fallback
// case, never the default.
func ReservedSegments() map[string]struct{} {
	reserved := map[string]struct{}{}
	for _, s := range []string{
		"api",
		"auth",
		"login",
		"signup",
		"dashboard",
		"pricing",
		"verify-email",
		"static",
		"assets",
		"favicon.ico",
	} {
		reserved[s] = struct{}{}
	}
	return reserved
}

func SetupRoutes(app *fiber.App, h *handler.Handler) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")

	auth := v1.Group("/auth")
	auth.Post("/signup", validate.Signup(), h.Signup)
	auth.Post("/login", h.Login)
	auth.Post("/refresh-token", h.RefreshToken)
	auth.Get("/verify-email", h.VerifyEmail)
	auth.Post("/forgot-password", validate.ForgotPassword(), h.ForgotPassword)
	auth.Post("/reset-password", validate.ResetPassword(), h.ResetPassword)
	auth.Put("/change-password", middleware.Protected(), validate.ChangePassword(), h.ChangePassword)

	couple := v1.Group("/couple", logger.New())
	couple.Get("/me", middleware.Protected(), h.Me)
	couple.Get("/", middleware.Protected(), h.GetMyCouple)
	couple.Put("/", middleware.Protected(), validate.EditCouple(), h.EditCouple)
	couple.Patch("/publish", middleware.Protected(), h.SetPublished(true))
	couple.Patch("/unpublish", middleware.Protected(), h.SetPublished(false))
	couple.Get("/themes", middleware.Protected(), h.GetThemes)
	couple.Put("/theme", middleware.Protected(), validate.SetTheme(), h.SetTheme)
	couple.Patch("/template", middleware.Protected(), validate.TemplateEdit(), h.ApplyTemplateEdit)
	couple.Post("/cover-image", middleware.Protected(), h.UploadCoverImage)
	couple.Post("/cloudinary-signature", middleware.Protected(), h.GenerateSignature)

	guest := v1.Group("/guest", logger.New())
	guest.Get("/", middleware.Protected(), h.GetGuests)
	guest.Post("/", middleware.Protected(), validate.CreateGuest(), h.CreateGuest)
	guest.Put("/:guestId", middleware.Protected(), validate.EditGuest("guestId"), h.EditGuest)
	guest.Delete("/", middleware.Protected(), validate.Delete(), h.DeleteGuests)
	guest.Get("/:guestId/qr", middleware.Protected(), validate.GetById("guestId"), h.InviteQR)

	group := v1.Group("/group", logger.New())
	group.Get("/", middleware.Protected(), h.GetGroups)
	group.Post("/", middleware.Protected(), validate.CreateGroup(), h.CreateGroup)
	group.Delete("/:groupId", middleware.Protected(), validate.GetById("groupId"), h.DeleteGroup)
	group.Post("/:groupId/contribution", middleware.Protected(), validate.GetById("groupId"), validate.Contribution(), h.RecordContribution)

	v1.Get("/rsvp-feed", middleware.Protected(), h.FeedAuth, websocket.New(h.RSVPFeed))

	// Tenant fallback. The TenantSite middleware has already resolved the
	// slug and stashed the identity in Locals by the time these run.
	app.Get("/:slug", h.PublicSite)
	app.Get("/:slug/invite", h.GetInvite)
	app.Post("/:slug/rsvp", validate.SubmitRSVP(), h.SubmitRSVP)
}
