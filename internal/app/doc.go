// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the lifecycle of an analysis run (discover,
// inspect, report), decoupled from any specific entrypoint like a CLI.
package app
