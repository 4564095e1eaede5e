package pincode

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"courier-admin/apperrors"
	pincodeModel "courier-admin/models/pincode"
	pincodeTypes "courier-admin/types/pincode"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T, withCache bool) (*Service, *miniredis.Miniredis) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&pincodeModel.Pincode{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	var cache *redis.Client
	var mr *miniredis.Miniredis
	if withCache {
		mr = miniredis.RunT(t)
		cache = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	}
	return NewService(db, cache), mr
}

func TestCreateRejectsDuplicates(t *testing.T) {
	svc, _ := newTestService(t, false)

	req := &pincodeTypes.PincodeRequest{Pincode: "110001", City: "New Delhi", State: "Delhi"}
	p, err := svc.Create(req)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !p.IsActive {
		t.Error("expected new pincode to be active")
	}

	if _, err := svc.Create(req); err == nil {
		t.Fatal("expected conflict for duplicate pincode, got nil")
	} else {
		var conflict *apperrors.ConflictError
		if !errors.As(err, &conflict) {
			t.Fatalf("expected ConflictError, got %T: %v", err, err)
		}
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t, false)

	_, err := svc.Create(&pincodeTypes.PincodeRequest{Pincode: "110001"})
	if err == nil {
		t.Fatal("expected validation error for missing city, got nil")
	}
	var verr *apperrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestCheckWithoutCache(t *testing.T) {
	svc, _ := newTestService(t, false)
	ctx := context.Background()

	if _, err := svc.Create(&pincodeTypes.PincodeRequest{Pincode: "110001", City: "New Delhi", State: "Delhi"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	res, err := svc.Check(ctx, "110001")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !res.Serviceable || res.City != "New Delhi" {
		t.Errorf("unexpected check result: %+v", res)
	}

	// Unknown pincodes answer "not serviceable" rather than erroring.
	unknown, err := svc.Check(ctx, "999999")
	if err != nil {
		t.Fatalf("Check failed for unknown pincode: %v", err)
	}
	if unknown.Serviceable {
		t.Error("unknown pincode must not be serviceable")
	}
}

func TestCheckCachesResult(t *testing.T) {
	svc, mr := newTestService(t, true)
	ctx := context.Background()

	if _, err := svc.Create(&pincodeTypes.PincodeRequest{Pincode: "400001", City: "Mumbai", State: "Maharashtra"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.Check(ctx, "400001"); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !mr.Exists("pincode:400001") {
		t.Fatal("expected check result to be cached")
	}

	// Poison the DB row behind the cache: a second check must be served from
	// Redis and still say serviceable.
	if err := svc.DB.Model(&pincodeModel.Pincode{}).Where("pincode = ?", "400001").Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to flip row: %v", err)
	}
	res, err := svc.Check(ctx, "400001")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !res.Serviceable {
		t.Error("expected cached answer, not a DB re-read")
	}

	// After the TTL the truth comes back from the database.
	mr.FastForward(cacheTTL)
	res, err = svc.Check(ctx, "400001")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if res.Serviceable {
		t.Error("expected expired cache entry to be refreshed from the database")
	}
}

func TestMutationsInvalidateCache(t *testing.T) {
	svc, mr := newTestService(t, true)
	ctx := context.Background()

	p, err := svc.Create(&pincodeTypes.PincodeRequest{Pincode: "560001", City: "Bengaluru", State: "Karnataka"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.Check(ctx, "560001"); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if !mr.Exists("pincode:560001") {
		t.Fatal("expected check result to be cached")
	}

	if _, err := svc.Toggle(p.ID); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if mr.Exists("pincode:560001") {
		t.Fatal("expected toggle to invalidate the cache entry")
	}

	res, err := svc.Check(ctx, "560001")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if res.Serviceable {
		t.Error("expected toggled pincode to be not serviceable")
	}
}

func TestCheckSurvivesCacheOutage(t *testing.T) {
	svc, mr := newTestService(t, true)
	ctx := context.Background()

	if _, err := svc.Create(&pincodeTypes.PincodeRequest{Pincode: "700016", City: "Kolkata", State: "West Bengal"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	mr.Close()

	res, err := svc.Check(ctx, "700016")
	if err != nil {
		t.Fatalf("Check must fall through to the database when Redis is down: %v", err)
	}
	if !res.Serviceable {
		t.Errorf("unexpected check result: %+v", res)
	}
}
