package store

import (
	"context"
	"slices"
	"sync"

	"anchorledger/internal/registry/models"
	"anchorledger/pkg/domain"
	"anchorledger/pkg/platform/sentinel"
)

// InMemory holds endpoint and anchor-service records behind one mutex.
type InMemory struct {
	mu        sync.RWMutex
	endpoints map[domain.Address]models.Endpoint
	services  map[domain.Address]models.AnchorServices
}

func NewInMemory() *InMemory {
	return &InMemory{
		endpoints: make(map[domain.Address]models.Endpoint),
		services:  make(map[domain.Address]models.AnchorServices),
	}
}

// CreateEndpoint stores a new endpoint; an attestor can register only one.
func (s *InMemory) CreateEndpoint(_ context.Context, endpoint models.Endpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.endpoints[endpoint.Attestor]; exists {
		return sentinel.ErrConflict
	}
	s.endpoints[endpoint.Attestor] = endpoint
	return nil
}

// FindEndpoint returns the attestor's endpoint.
func (s *InMemory) FindEndpoint(_ context.Context, attestor domain.Address) (models.Endpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	endpoint, ok := s.endpoints[attestor]
	if !ok {
		return models.Endpoint{}, sentinel.ErrNotFound
	}
	return endpoint, nil
}

// SetEndpointActive flips the endpoint's active flag.
func (s *InMemory) SetEndpointActive(_ context.Context, attestor domain.Address, active bool) (models.Endpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	endpoint, ok := s.endpoints[attestor]
	if !ok {
		return models.Endpoint{}, sentinel.ErrNotFound
	}
	endpoint.IsActive = active
	s.endpoints[attestor] = endpoint
	return endpoint, nil
}

// SaveServices upserts the anchor's capability set.
func (s *InMemory) SaveServices(_ context.Context, services models.AnchorServices) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	services.Services = slices.Clone(services.Services)
	s.services[services.Anchor] = services
	return nil
}

// FindServices returns the anchor's capability set.
func (s *InMemory) FindServices(_ context.Context, anchor domain.Address) (models.AnchorServices, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	services, ok := s.services[anchor]
	if !ok {
		return models.AnchorServices{}, sentinel.ErrNotFound
	}
	services.Services = slices.Clone(services.Services)
	return services, nil
}
