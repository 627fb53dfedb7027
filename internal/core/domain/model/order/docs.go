// Package order holds the DeliveryOrder aggregate: one vehicle run from a
// branch carrying a set of items to their receivers.
//
// The package includes:
//   - DeliveryOrder: the aggregate root owning items, route, tracking and history
//   - Item: a delivery item with its own status machine and proof of delivery
//   - Status and ItemStatus: the order and item state machines
//   - Route and RoutePlan: the planned stops and their timing
//   - Number: the human-readable order number, e.g. SM250314JK0007
//
// Key business rules:
//   - items can only be added or removed while the order is pending or assigned
//   - an order completes once every item is terminal; completed when all were
//     delivered, partially_completed otherwise
//   - a COD payment can only be reconciled after the item's proof of delivery
//   - every status change is appended to the order and item history
package order
