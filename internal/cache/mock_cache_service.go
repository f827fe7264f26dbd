package cache

import (
	"context"

	"github.com/bridgepass/backend-go/internal/models"
)

// MockCacheService always misses and accepts every save, for tests.
type MockCacheService struct {
	Saved []models.TideTableRecord
}

func NewMockCacheService() *MockCacheService {
	return &MockCacheService{}
}

func (m *MockCacheService) GetTideDay(_ context.Context, _, _ string) (*models.TideTableRecord, error) {
	return nil, nil
}

func (m *MockCacheService) SaveTideDay(_ context.Context, record models.TideTableRecord) error {
	m.Saved = append(m.Saved, record)
	return nil
}

func (m *MockCacheService) SaveTideDaysBatch(_ context.Context, records []models.TideTableRecord) error {
	m.Saved = append(m.Saved, records...)
	return nil
}
