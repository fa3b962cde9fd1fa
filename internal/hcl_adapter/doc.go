// Package hcl_adapter implements config.Loader for HCL configuration files.
//
// Files are decoded with gohcl into the schema structs in schema.go and then
// translated into the format-agnostic config.Model. Only structural problems
// (syntax, unknown attributes, wrong attribute types, settings declared twice)
// are reported here; semantic validation happens in the project package.
package hcl_adapter
