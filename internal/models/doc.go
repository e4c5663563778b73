// Package models defines the core domain models for FitTrackr.
//
// # Models
//
//   - Account: a registered user's credentials and fitness goal
//   - Goal: a target weight paired with a goal type (weight loss / muscle gain)
//   - PlanRecord: an immutable snapshot of a generated workout or meal plan
//
// # Design Principles
//
// 1. **Accounts own their goal**: the goal is embedded state on the account,
// overwritten wholesale on every update (no partial merges, no goal history).
//
// 2. **PlanRecords are append-only**: once generated, a plan is never mutated
// or deleted; history order is generation order.
//
// 3. **Avoid circular references**: records reference their owner by username
// string, never by pointer.
package models
