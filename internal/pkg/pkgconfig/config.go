package pkgconfig

import "time"

// Config is the read-only view of application configuration.
//
// Implementations load values from a backing source (file, env, etc.) and
// expose them through typed getters. Missing keys return zero values.
type Config interface {
	// GetInt returns the value for key as int64.
	GetInt(key string) int64
	// GetBool returns the value for key as bool.
	GetBool(key string) bool
	// GetFloat returns the value for key as float64.
	GetFloat(key string) float64
	// GetString returns the value for key as string.
	GetString(key string) string
	// GetDuration returns the value for key parsed as a time.Duration.
	GetDuration(key string) time.Duration
	// GetBinary returns the value for key decoded from base64.
	GetBinary(key string) []byte
	// GetArray returns the value for key split by commas.
	GetArray(key string) []string
	// GetMap returns the value for key parsed from "k:v,k:v" pairs.
	GetMap(key string) map[string]string
	// Close releases any resources held by the configuration source.
	Close() error
}
