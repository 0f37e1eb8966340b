// Package models defines the core domain models for Invotrack.
//
// # Models
//
//   - User: a registered account, identified by unique email
//   - Invoice: an invoice row owned by exactly one user
//   - Date: a calendar date exchanged as "YYYY-MM-DD"
//
// # Design Principles
//
//  1. Models carry no behavior beyond serialization; validation happens at
//     the HTTP boundary, persistence rules in the storage layer.
//  2. Relationships use ID fields instead of pointers to avoid circular
//     references.
//  3. PasswordHash is excluded from JSON so a User can be serialized
//     directly in API responses.
package models
