// Package services provides domain services that work on a delivery order
// but need collaborators the aggregate does not own.
//
// The package includes:
//   - RoutePlanner: sequences the stops of an order and times the route
package services
