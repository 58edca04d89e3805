// Package registry provides the central "glue" for the inspector system.
//
// The Registry stores mappings between the handler identifiers used in
// manifests (e.g., "OnInspectLoc") and the actual compiled Go functions
// that implement the inspector's logic. It also holds the parsed,
// format-agnostic inspector definitions from the manifests themselves.
//
// During application startup, the registry is populated and then validated
// to ensure that the Go code, the manifests, and the tag catalog are
// perfectly in sync, preventing a wide class of runtime errors.
package registry
