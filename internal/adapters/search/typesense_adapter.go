package search

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/ayumitra/telemed-backend/internal/domain/entities"
	"github.com/ayumitra/telemed-backend/internal/domain/repositories"
	tsclient "github.com/ayumitra/telemed-backend/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements the facility directory using Typesense. The
// index only carries lightweight summaries; full facility records stay in
// Postgres.
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements FacilitySearchRepository
var _ repositories.FacilitySearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// Index upserts a facility summary into the directory
func (a *TypesenseAdapter) Index(ctx context.Context, summary *entities.FacilitySummary, location *entities.Location) error {
	document := map[string]interface{}{
		"id":            summary.ID,
		"name":          summary.Name,
		"facility_type": summary.Type,
		"created_at":    time.Now().Unix(),
	}
	if location != nil {
		document["location"] = []float64{location.Latitude, location.Longitude}
	}

	_, err := a.client.Client().Collection(tsclient.FacilitiesCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index facility: %w", err)
	}

	return nil
}

// Delete removes a facility from the directory
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(tsclient.FacilitiesCollection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete facility from index: %w", err)
	}
	return nil
}

// SearchByName searches the directory by facility name
func (a *TypesenseAdapter) SearchByName(ctx context.Context, query string, limit int) ([]*entities.FacilitySummary, error) {
	if limit <= 0 {
		limit = 20
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.FacilitiesCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search facilities: %w", err)
	}

	summaries := []*entities.FacilitySummary{}
	if result.Hits == nil {
		return summaries, nil
	}

	// Typesense returns map[string]interface{}, cast each field safely
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document

		summary := &entities.FacilitySummary{}
		if val, ok := doc["id"].(string); ok {
			summary.ID = val
		}
		if val, ok := doc["name"].(string); ok {
			summary.Name = val
		}
		if val, ok := doc["facility_type"].(string); ok {
			summary.Type = val
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}
