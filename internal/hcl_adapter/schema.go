package hcl_adapter

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes every top-level item a configuration file may contain.
// Anything else is rejected by the decoder.
type fileRoot struct {
	Plugins      []*PluginBlock     `hcl:"plugin,block"`
	Repositories *[]string          `hcl:"repositories,optional"`
	BuildDir     *string            `hcl:"build_dir,optional"`
	Subproject   []*SubprojectBlock `hcl:"subproject,block"`
	Subprojects  *SubprojectsBlock  `hcl:"subprojects,block"`
}

// PluginBlock is a `plugin "<id>" { ... }` block.
type PluginBlock struct {
	ID string `hcl:"id,label"`
	// Version stays an expression so that an omitted attribute can be told
	// apart from a wrongly typed one.
	Version hcl.Expression `hcl:"version,optional"`
	Apply   *bool          `hcl:"apply,optional"`
}

// SubprojectBlock is a `subproject "<name>" { ... }` block.
type SubprojectBlock struct {
	Name                string   `hcl:"name,label"`
	EvaluationDependsOn []string `hcl:"evaluation_depends_on,optional"`
}

// SubprojectsBlock is the unlabeled `subprojects { ... }` block whose
// settings apply to every subproject.
type SubprojectsBlock struct {
	EvaluationDependsOn []string `hcl:"evaluation_depends_on,optional"`
}
