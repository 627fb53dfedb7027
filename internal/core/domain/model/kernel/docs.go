// Package kernel holds the value objects shared by every aggregate of the
// delivery domain: identifiers (UUID), geographic points (Location) and
// cash amounts (Money). All of them are immutable; the zero value of UUID
// and Location is invalid and fails Validate.
package kernel
