package classify

// Category is the semantic classification assigned to a figure. Every figure
// receives exactly one category; figures without a table are Nontabular and
// figures no rule matches are Uncategorized.
type Category string

const (
	Acronyms                      Category = "acronyms"
	IoControllerCommandSetSupport Category = "io_controller_command_set_support"
	CommandSetOpcodes             Category = "command_set_opcodes"
	CommandSupportRequirements    Category = "command_support_requirements"
	CommandSqeDwords              Category = "command_sqe_dwords"
	CommandSqeDword               Category = "command_sqe_dword"
	CommandSqeDataPointer         Category = "command_sqe_data_pointer"
	CommandCqeDword               Category = "command_cqe_dword"
	CnsValues                     Category = "cns_values"
	GeneralCommandStatusValues    Category = "general_command_status_values"
	CommandSpecificStatusValues   Category = "command_specific_status_values"
	FeatureIdentifiers            Category = "feature_identifiers"
	FeatureSupport                Category = "feature_support"
	LogPageIdentifiers            Category = "log_page_identifiers"
	Offset                        Category = "offset"
	PropertyDefinition            Category = "property_definition"
	Uncategorized                 Category = "uncategorized"
	Nontabular                    Category = "nontabular"
)

// All lists every category in emission order: rule-bearing categories first,
// then the two fallbacks.
func All() []Category {
	return []Category{
		Acronyms,
		IoControllerCommandSetSupport,
		CommandSetOpcodes,
		CommandSupportRequirements,
		CommandSqeDwords,
		CommandSqeDword,
		CommandSqeDataPointer,
		CommandCqeDword,
		CnsValues,
		GeneralCommandStatusValues,
		CommandSpecificStatusValues,
		FeatureIdentifiers,
		FeatureSupport,
		LogPageIdentifiers,
		Offset,
		PropertyDefinition,
		Uncategorized,
		Nontabular,
	}
}

// GridBearing reports whether figures of this category encode a bit-field
// layout that the grid builder should parse.
func (c Category) GridBearing() bool {
	switch c {
	case CommandSqeDword, CommandSqeDwords, CommandSqeDataPointer, CommandCqeDword, Offset:
		return true
	}
	return false
}
