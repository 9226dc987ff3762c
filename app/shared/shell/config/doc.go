// Package config provides the server configuration read from the environment,
// database pool construction for the three supported adapters, test DSNs,
// and the OpenTelemetry provider setup.
package config
