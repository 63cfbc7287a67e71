package config

import (
	"io"
	"time"
)

// Config defines read access to runtime configuration values.
//
// Implementations handle retrieval and type conversion, returning zero values
// for missing keys so callers always apply their own defaults explicitly.
type Config interface {
	io.Closer

	// GetBool retrieves the value for key as a bool.
	GetBool(key string) bool

	// GetString retrieves the value for key as a string.
	GetString(key string) string

	// GetInt retrieves the value for key as an int.
	GetInt(key string) int

	// GetInt32 retrieves the value for key as an int32.
	GetInt32(key string) int32

	// GetInt64 retrieves the value for key as an int64.
	GetInt64(key string) int64

	// GetFloat64 retrieves the value for key as a float64.
	GetFloat64(key string) float64

	// GetArray retrieves the value for key as a slice of strings.
	// The value is stored in the format <element1>,<element2>,...
	GetArray(key string) []string

	// GetSecond retrieves the value for key as a duration in seconds.
	GetSecond(key string) time.Duration

	// GetMinute retrieves the value for key as a duration in minutes.
	GetMinute(key string) time.Duration
}
