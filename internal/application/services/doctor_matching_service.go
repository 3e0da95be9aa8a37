package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
	"github.com/ayumitra/telemed-backend/internal/domain/repositories"
)

// MaxMatchedDoctors caps how many doctors a routing request fans out to
const MaxMatchedDoctors = 10

// DoctorMatchingService selects the doctors eligible for a routing request.
// Matching happens in memory over the full listing: the substring logic does
// not translate to a store-side filter, and the doctor population is small.
type DoctorMatchingService struct {
	doctorRepo repositories.DoctorRepository
	resolver   SpecialtyResolver
}

// NewDoctorMatchingService creates a new doctor matching service
func NewDoctorMatchingService(doctorRepo repositories.DoctorRepository, resolver SpecialtyResolver) *DoctorMatchingService {
	return &DoctorMatchingService{
		doctorRepo: doctorRepo,
		resolver:   resolver,
	}
}

// MatchDoctors returns up to MaxMatchedDoctors online doctors whose
// specialization matches the analyzed specialty. If no specialization
// matches but online doctors exist, it falls back to the online doctors
// regardless of specialty: never show the patient a dead end when staff
// are available. Urgency does not gate doctor matching.
func (s *DoctorMatchingService) MatchDoctors(ctx context.Context, rawSpecialty, urgency string) ([]*entities.Doctor, error) {
	keywords := s.resolver.Resolve(rawSpecialty)

	all, err := s.doctorRepo.List(ctx, repositories.DoctorFilter{})
	if err != nil {
		return nil, err
	}

	var online []*entities.Doctor
	var matched []*entities.Doctor

	for _, doctor := range all {
		if !doctor.Availability.IsOnline {
			continue
		}
		online = append(online, doctor)

		if specializationMatches(doctor.Specialization, keywords) {
			matched = append(matched, doctor)
		}
	}

	log.Debug().
		Str("specialty", rawSpecialty).
		Strs("keywords", keywords).
		Int("total", len(all)).
		Int("online", len(online)).
		Int("matched", len(matched)).
		Msg("doctor matching")

	if len(matched) == 0 && len(online) > 0 {
		log.Debug().
			Str("specialty", rawSpecialty).
			Int("online", len(online)).
			Msg("no specialty match, falling back to online doctors")
		return capDoctors(online), nil
	}

	return capDoctors(matched), nil
}

// specializationMatches tests bidirectional substring containment between
// the doctor's specialization and each search keyword
func specializationMatches(specialization string, keywords []string) bool {
	spec := strings.ToLower(specialization)
	for _, kw := range keywords {
		if strings.Contains(spec, kw) || strings.Contains(kw, spec) {
			return true
		}
	}
	return false
}

func capDoctors(doctors []*entities.Doctor) []*entities.Doctor {
	if len(doctors) > MaxMatchedDoctors {
		return doctors[:MaxMatchedDoctors]
	}
	return doctors
}
