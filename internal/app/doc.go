// Package app contains the core application logic. It defines the App
// struct, its configuration and the load/resolve/clean/emit lifecycle,
// decoupled from the CLI entrypoint.
package app
