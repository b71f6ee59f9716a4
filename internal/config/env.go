package config

import "os"

const DataDirEnv = "GRAVSIM_DATA"

// GetEnv returns the value of the environment variable named by key, or
// fallback if it is unset.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
