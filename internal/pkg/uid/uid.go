// Package uid provides identifier generation for persisted records.
//
// Numeric IDs come from a snowflake generator and are used as primary keys;
// string IDs are UUIDs and are used for tokens and correlation values.
package uid

// NumberID generates unique int64 identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}
