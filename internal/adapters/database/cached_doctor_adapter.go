package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
	"github.com/ayumitra/telemed-backend/internal/domain/providers"
	"github.com/ayumitra/telemed-backend/internal/domain/repositories"
)

// CachedDoctorAdapter wraps DoctorRepository with caching. Doctor listings
// are the hot path of routing: every connect-with-doctor call lists doctors
// to match in memory.
type CachedDoctorAdapter struct {
	adapter repositories.DoctorRepository
	cache   providers.CacheProvider
}

// NewCachedDoctorAdapter creates a new cached doctor adapter
func NewCachedDoctorAdapter(adapter repositories.DoctorRepository, cache providers.CacheProvider) repositories.DoctorRepository {
	return &CachedDoctorAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds). Listings stay short-lived because online status
// changes frequently.
const (
	doctorByIDTTL  = 300
	doctorsListTTL = 30
)

func doctorCacheKey(id string) string {
	return fmt.Sprintf("doctor:%s", id)
}

func doctorsListCacheKey(filter repositories.DoctorFilter) string {
	online := "any"
	if filter.IsOnline != nil {
		online = fmt.Sprintf("%t", *filter.IsOnline)
	}
	return fmt.Sprintf("doctors:list:%s:%s:%d", online, filter.FacilityID, filter.Limit)
}

// Create creates a doctor and invalidates listings
func (a *CachedDoctorAdapter) Create(ctx context.Context, doctor *entities.Doctor) error {
	if err := a.adapter.Create(ctx, doctor); err != nil {
		return err
	}
	a.invalidateListings(ctx)
	return nil
}

// GetByID retrieves a doctor by ID with caching
func (a *CachedDoctorAdapter) GetByID(ctx context.Context, id string) (*entities.Doctor, error) {
	cacheKey := doctorCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var doctor entities.Doctor
		if err := json.Unmarshal(cached, &doctor); err == nil {
			return &doctor, nil
		}
		log.Warn().Str("doctor_id", id).Msg("failed to unmarshal cached doctor")
	}

	doctor, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(doctor); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, doctorByIDTTL); err != nil {
				log.Warn().Err(err).Str("doctor_id", id).Msg("failed to cache doctor")
			}
		}
	}()

	return doctor, nil
}

// List retrieves doctors with caching
func (a *CachedDoctorAdapter) List(ctx context.Context, filter repositories.DoctorFilter) ([]*entities.Doctor, error) {
	cacheKey := doctorsListCacheKey(filter)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var doctors []*entities.Doctor
		if err := json.Unmarshal(cached, &doctors); err == nil {
			return doctors, nil
		}
	}

	doctors, err := a.adapter.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(doctors); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, doctorsListTTL); err != nil {
				log.Warn().Err(err).Msg("failed to cache doctor listing")
			}
		}
	}()

	return doctors, nil
}

// UpdateAvailability updates availability and invalidates the doctor's cache
func (a *CachedDoctorAdapter) UpdateAvailability(ctx context.Context, id string, availability entities.Availability) error {
	if err := a.adapter.UpdateAvailability(ctx, id, availability); err != nil {
		return err
	}

	if err := a.cache.Delete(ctx, doctorCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("doctor_id", id).Msg("failed to invalidate doctor cache")
	}
	a.invalidateListings(ctx)

	return nil
}

// IncrementPatientsTreated bumps the counter and invalidates the doctor's cache
func (a *CachedDoctorAdapter) IncrementPatientsTreated(ctx context.Context, id string) error {
	if err := a.adapter.IncrementPatientsTreated(ctx, id); err != nil {
		return err
	}

	if err := a.cache.Delete(ctx, doctorCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("doctor_id", id).Msg("failed to invalidate doctor cache")
	}

	return nil
}

// invalidateListings drops the listing variants the matching services use.
// Listings also expire on a short TTL, so a missed variant self-heals.
func (a *CachedDoctorAdapter) invalidateListings(ctx context.Context) {
	online := true
	variants := []repositories.DoctorFilter{
		{},
		{IsOnline: &online},
	}
	for _, filter := range variants {
		if err := a.cache.Delete(ctx, doctorsListCacheKey(filter)); err != nil {
			log.Warn().Err(err).Msg("failed to invalidate doctor listing cache")
		}
	}
}
