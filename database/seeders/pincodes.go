package seeders

import (
	"courier-admin/logger"
	pincodeModel "courier-admin/models/pincode"

	"gorm.io/gorm"
)

var defaultPincodes = []pincodeModel.Pincode{
	{Pincode: "110001", City: "New Delhi", State: "Delhi", IsActive: true},
	{Pincode: "400001", City: "Mumbai", State: "Maharashtra", IsActive: true},
	{Pincode: "560001", City: "Bengaluru", State: "Karnataka", IsActive: true},
	{Pincode: "600001", City: "Chennai", State: "Tamil Nadu", IsActive: true},
	{Pincode: "700001", City: "Kolkata", State: "West Bengal", IsActive: true},
	{Pincode: "500001", City: "Hyderabad", State: "Telangana", IsActive: true},
	{Pincode: "411001", City: "Pune", State: "Maharashtra", IsActive: true},
	{Pincode: "302001", City: "Jaipur", State: "Rajasthan", IsActive: true},
}

// SeedPincodes inserts the starter serviceable pincodes, skipping ones that
// already exist.
func SeedPincodes(db *gorm.DB) error {
	for _, p := range defaultPincodes {
		var count int64
		if err := db.Model(&pincodeModel.Pincode{}).Where("pincode = ?", p.Pincode).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			return err
		}
		logger.Info("Seeded pincode " + p.Pincode)
	}
	return nil
}
