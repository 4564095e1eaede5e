package constants

// Admin permissions
const (
	PermSuperAdminFull = "courier-admin.super-admin.full-permit"
	PermBookingsFull   = "courier-admin.bookings.full-permit"
	PermPincodesFull   = "courier-admin.pincodes.full-permit"
	PermCouponsFull    = "courier-admin.coupons.full-permit"
	PermEmailFull      = "courier-admin.email.full-permit"

	// Special permissions
	PermAny = "any"
)

// DefaultAdminPermissions is the grant set for a freshly provisioned admin.
var DefaultAdminPermissions = []string{
	PermSuperAdminFull,
	PermBookingsFull,
	PermPincodesFull,
	PermCouponsFull,
	PermEmailFull,
}
