package routes

import (
	"os"

	"courier-admin/constants"
	authController "courier-admin/controllers/auth"
	bookingController "courier-admin/controllers/booking"
	couponController "courier-admin/controllers/coupon"
	emailController "courier-admin/controllers/email"
	pincodeController "courier-admin/controllers/pincode"
	serverController "courier-admin/controllers/server"
	"courier-admin/logger"
	"courier-admin/middleware"
	bookingService "courier-admin/services/booking"
	"courier-admin/services/bookingid"
	couponService "courier-admin/services/coupon"
	"courier-admin/services/invoice"
	"courier-admin/services/notification"
	pincodeService "courier-admin/services/pincode"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cache *redis.Client) {
	asyncLogger := logger.NewAsyncLogger(db)

	mailer := notification.NewMailerFromEnv()
	invoices := invoice.NewRenderer(os.Getenv("INVOICE_DIR"), os.Getenv("COMPANY_NAME"))
	bookings := bookingService.NewService(db, bookingid.NewAllocator(), mailer, invoices)
	pincodes := pincodeService.NewService(db, cache)
	coupons := couponService.NewService(db)

	auth := authController.NewAuthController(db, asyncLogger)
	booking := bookingController.NewBookingController(bookings, asyncLogger)
	pincode := pincodeController.NewPincodeController(pincodes)
	coupon := couponController.NewCouponController(coupons)
	email := emailController.NewEmailController(mailer)
	health := serverController.NewHealthController(db)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/auth/login", auth.Login)
	api.Get("/health", health.Health)
	api.Get("/track/:bookingId", booking.Track)
	api.Get("/pincodes/check/:pincode", pincode.Check)

	/*=============================================================================
	| Session Routes
	===============================================================================*/
	session := api.Group("/auth").Use(middleware.RequireAnyPermission())
	session.Get("/profile", auth.Profile)
	session.Post("/logout", auth.LogOut)

	/*=============================================================================
	| Booking Routes
	===============================================================================*/
	bookingGroup := api.Group("/bookings", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermBookingsFull,
	))
	bookingGroup.Get("/", booking.Index)
	bookingGroup.Post("/", booking.Store)
	bookingGroup.Post("/manual", booking.StoreManual)
	bookingGroup.Post("/pricing", booking.ComputePricing)
	bookingGroup.Get("/stats/dashboard", booking.Stats)
	bookingGroup.Get("/:id", booking.Show)
	bookingGroup.Put("/:id", booking.Update)
	bookingGroup.Delete("/:id", booking.Destroy)
	bookingGroup.Post("/:id/tracking", booking.AppendTracking)

	/*=============================================================================
	| Pincode Routes
	===============================================================================*/
	pincodeGroup := api.Group("/pincodes", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermPincodesFull,
	))
	pincodeGroup.Get("/", pincode.Index)
	pincodeGroup.Post("/", pincode.Store)
	pincodeGroup.Put("/:id", pincode.Update)
	pincodeGroup.Delete("/:id", pincode.Destroy)
	pincodeGroup.Patch("/:id/toggle", pincode.Toggle)

	/*=============================================================================
	| Coupon Routes
	===============================================================================*/
	couponGroup := api.Group("/coupons", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermCouponsFull,
	))
	couponGroup.Get("/", coupon.Index)
	couponGroup.Post("/", coupon.Store)
	couponGroup.Post("/validate", coupon.Validate)
	couponGroup.Post("/:code/redeem", coupon.Redeem)
	couponGroup.Put("/:id", coupon.Update)
	couponGroup.Delete("/:id", coupon.Destroy)
	couponGroup.Patch("/:id/toggle", coupon.Toggle)

	/*=============================================================================
	| Email Routes
	===============================================================================*/
	api.Post("/email/send", middleware.RequirePermissions(
		constants.PermSuperAdminFull,
		constants.PermEmailFull,
	), email.Send)
}
