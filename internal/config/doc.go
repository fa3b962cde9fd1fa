// Package config defines the format-agnostic model of a project build
// configuration, the Loader interface that format adapters implement, and the
// typed errors every layer reports configuration problems with.
//
// The Model is deliberately raw: it records what the files declared, with
// just enough presence information for the project package to validate it.
// Concrete loaders, such as the HCL one, live in separate packages.
package config
