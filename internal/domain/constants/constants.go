// Package constants holds shared domain-level constant values.
package constants

// Pub/Sub provider identifiers accepted in configuration.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)
