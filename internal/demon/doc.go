// Package demon holds the core value types of the Maxwell's-demon
// simulation: particles, speed classification, the barrier-zone state
// machine labels, and the gate policy table.
//
// Everything here is plain data with total operations; validation lives in
// [ConfigError] and happens once, at construction.
package demon
