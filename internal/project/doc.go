// Package project turns a loaded config.Model into the validated, explicit
// configuration the external build tool consumes.
//
// ConfigLoader exposes the individual operations (plugins, repositories,
// build directories, the clean action and evaluation ordering) and Resolve
// runs them together. Every failure is either a *config.ConfigError or a
// *config.CycleError, and a failed Resolve returns no partial result.
package project
