// Package models defines the core domain models for FairShare.
//
// # Models
//
//   - User: a registered account; the only place profile data lives
//   - Group: a household with a join code, an owner, and a member set
//   - Chore: a task owned by a group, optionally assigned to a member
//   - Expense: a shared cost recorded against a group
//   - Notification: an invite or event delivered to a user
//
// # Design Principles
//
// 1. **ID references, not object graphs**: entities point at each other
// by ID string. Membership is an association, not an embedded set of
// user structs, so there are no cyclic references to manage.
// 2. **Opaque strings where the domain doesn't care**: due dates and
// chore statuses are free-form strings; only the literal "completed"
// (case-insensitive) carries scoring meaning.
// 3. **Shared error vocabulary**: the three error kinds in errors.go are
// raised by storage and services alike and mapped once at the HTTP
// boundary.
package models
