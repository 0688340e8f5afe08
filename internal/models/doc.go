// Package models defines the core domain models for Habitual.
//
// # Models
//
//   - User: a registered account, identified by a unique email
//   - Habit: a habit owned by one user, carrying its streak counters
//
// Check-ins are not a standalone model: a check-in is a single calendar
// date (YYYY-MM-DD) recorded against a habit, unique per habit and date,
// and append-only. Habits embed their check-in dates as ordered strings.
//
// # Design Principles
//
//  1. Relationships use ID strings instead of pointers to avoid circular
//     references between models.
//  2. Timestamps are Unix seconds; calendar dates are YYYY-MM-DD strings,
//     since streak arithmetic works on whole days, not instants.
//  3. Models carry their JSON representation directly; the API layer
//     serializes them as-is, with PasswordHash always excluded.
package models
