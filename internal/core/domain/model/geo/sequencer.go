package geo

import "fleetdelivery/internal/core/domain/model/kernel"

// Sequencer decides the visiting order of a set of stops. Implementations
// must be deterministic for identical input.
type Sequencer interface {
	Sequence(start kernel.Location, stops []kernel.Location) []int
}

// NearestNeighborSequencer is the greedy baseline.
type NearestNeighborSequencer struct {
	params Params
}

func NewNearestNeighborSequencer(params Params) *NearestNeighborSequencer {
	return &NearestNeighborSequencer{params: params.Normalized()}
}

func (s *NearestNeighborSequencer) Sequence(start kernel.Location, stops []kernel.Location) []int {
	return s.params.NearestNeighbor(start, stops)
}
