// Package services provides domain services that cut across the marketplace
// aggregates. It implements business rules that don't naturally belong to a
// single aggregate root.
//
// The package includes:
//   - AccessGate: the role-based authorization table that decides which
//     actor roles may perform each marketplace action
package services
