// Package config defines the format-agnostic inspector definition model,
// along with the Loader interface for reading definitions from various
// sources.
//
// The `config.Model` is the single source of truth for the `resolver`,
// `registry`, and `depgraph` packages. The concrete HCL implementation of
// the Loader lives in the hclloader package.
package config
