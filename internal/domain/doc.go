// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/article).
// This root package holds sentinel errors, validation types, and the
// categorized Error and Outcome values that every task run reports.
package domain
