package pincode

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"courier-admin/apperrors"
	"courier-admin/logger"
	pincodeModel "courier-admin/models/pincode"
	pincodeTypes "courier-admin/types/pincode"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const cacheTTL = 10 * time.Minute

// Service owns serviceable pincode CRUD and the public lookup. The Redis
// client is optional; when it is nil or unreachable lookups fall through to
// the database.
type Service struct {
	DB    *gorm.DB
	Cache *redis.Client
}

func NewService(db *gorm.DB, cache *redis.Client) *Service {
	return &Service{DB: db, Cache: cache}
}

// List returns all pincodes sorted by pincode.
func (s *Service) List() ([]pincodeModel.Pincode, error) {
	var pincodes []pincodeModel.Pincode
	if err := s.DB.Order("pincode ASC").Find(&pincodes).Error; err != nil {
		return nil, err
	}
	return pincodes, nil
}

// Create stores a new serviceable pincode.
func (s *Service) Create(req *pincodeTypes.PincodeRequest) (*pincodeModel.Pincode, error) {
	if msg := req.Validate(); msg != "" {
		return nil, apperrors.NewValidation("%s", msg)
	}
	code := strings.TrimSpace(req.Pincode)

	var count int64
	if err := s.DB.Model(&pincodeModel.Pincode{}).Where("pincode = ?", code).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.NewConflict("pincode %s already exists", code)
	}

	p := &pincodeModel.Pincode{
		Pincode:  code,
		City:     req.City,
		State:    req.State,
		IsActive: true,
	}
	if err := s.DB.Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewConflict("pincode %s already exists", code)
		}
		return nil, err
	}
	s.invalidate(code)
	return p, nil
}

// Update edits a pincode's city/state.
func (s *Service) Update(id uint, req *pincodeTypes.PincodeRequest) (*pincodeModel.Pincode, error) {
	var p pincodeModel.Pincode
	if err := s.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("pincode %d not found", id)
		}
		return nil, err
	}
	if req.City != "" {
		p.City = req.City
	}
	if req.State != "" {
		p.State = req.State
	}
	if err := s.DB.Save(&p).Error; err != nil {
		return nil, err
	}
	s.invalidate(p.Pincode)
	return &p, nil
}

// Delete removes a pincode.
func (s *Service) Delete(id uint) error {
	var p pincodeModel.Pincode
	if err := s.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("pincode %d not found", id)
		}
		return err
	}
	if err := s.DB.Delete(&p).Error; err != nil {
		return err
	}
	s.invalidate(p.Pincode)
	return nil
}

// Toggle flips a pincode's serviceability.
func (s *Service) Toggle(id uint) (*pincodeModel.Pincode, error) {
	var p pincodeModel.Pincode
	if err := s.DB.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("pincode %d not found", id)
		}
		return nil, err
	}
	p.IsActive = !p.IsActive
	if err := s.DB.Save(&p).Error; err != nil {
		return nil, err
	}
	s.invalidate(p.Pincode)
	return &p, nil
}

// Check is the public serviceability lookup, cached in Redis.
func (s *Service) Check(ctx context.Context, code string) (*pincodeTypes.CheckResult, error) {
	code = strings.TrimSpace(code)

	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, cacheKey(code)).Result(); err == nil {
			var cached pincodeTypes.CheckResult
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			logger.Warning("Pincode cache read failed: " + err.Error())
		}
	}

	result := &pincodeTypes.CheckResult{Pincode: code}
	var p pincodeModel.Pincode
	err := s.DB.Where("pincode = ?", code).First(&p).Error
	switch {
	case err == nil:
		result.Serviceable = p.IsActive
		result.City = p.City
		result.State = p.State
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Unknown pincode is a valid, cacheable "not serviceable" answer.
	default:
		return nil, err
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(result); err == nil {
			if err := s.Cache.Set(ctx, cacheKey(code), raw, cacheTTL).Err(); err != nil {
				logger.Warning("Pincode cache write failed: " + err.Error())
			}
		}
	}
	return result, nil
}

func (s *Service) invalidate(code string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(context.Background(), cacheKey(code)).Err(); err != nil {
		logger.Warning("Pincode cache invalidation failed: " + err.Error())
	}
}

func cacheKey(code string) string {
	return "pincode:" + code
}
