// Package common contains shared constants and sentinel errors used across
// blog service components.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on protected calls.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the only accepted credential scheme.
	BearerScheme = "Bearer"

	// SecretByteLength is the size of a generated signing secret before hex encoding.
	SecretByteLength = 32
)
