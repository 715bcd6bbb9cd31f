package classify

import "regexp"

// Rule pairs a description pattern with the category it selects. Patterns
// are matched case-insensitively against the ASCII-folded figure
// description. Named capture groups become the categorized figure's
// attributes.
type Rule struct {
	Category Category
	Pattern  *regexp.Regexp
}

// rules is the ordered rule table: the first matching rule wins and no rule
// is skipped. Order is load-bearing and deliberate — more specific patterns
// precede the generic ones they would otherwise shadow (the multi-dword rule
// must run before the single-dword rule, which matches any dword caption).
// The table is built once at package init and never mutated.
var rules = []Rule{
	{Acronyms, regexp.MustCompile(`(?i)^.*Acronym\s+(definitions|Descriptions)`)},
	{CnsValues, regexp.MustCompile(`(?i)^.*CNS\s+Values.*`)},
	{CommandCqeDword, regexp.MustCompile(`(?i)^(?P<command_name>[\w\s]+)\s+-\s+Completion\sQueue\sEntry\sDword\s(?P<command_dword>\d+)`)},
	{CommandSetOpcodes, regexp.MustCompile(`(?i)^Opcodes\sfor\s(?P<command_set_name>.*)\sCommands`)},
	{CommandSpecificStatusValues, regexp.MustCompile(`(?i)^(?P<command_name>[\w\s]+)\s+-\s+Command\s+Specific\s+Status\s+Values`)},
	{CommandSqeDataPointer, regexp.MustCompile(`(?i)^(?P<command_name>[\w\s]+)\s+-\s+Data\s+Pointer`)},
	{CommandSqeDwords, regexp.MustCompile(`(?i)^(?P<command_name>[\w\s]+)\s*-\s*Command\s*Dword\s*(?P<command_dword_lower>\d+).*and.*?\s(?P<command_dword_upper>\d+)`)},
	{CommandSqeDword, regexp.MustCompile(`(?i)^(?P<command_name>[\w\s]+)\s*-\s*Command\s*Dword\s*(?P<command_dword>\d+).*?`)},
	{CommandSupportRequirements, regexp.MustCompile(`(?i)^\s*(?P<command_span>.*)\s+Command\s*Support\s*Requirements.*`)},
	{FeatureIdentifiers, regexp.MustCompile(`(?i)^.*Feature\s*Identifiers.*`)},
	{FeatureSupport, regexp.MustCompile(`(?i)^.*Feature\s*Support.*`)},
	{GeneralCommandStatusValues, regexp.MustCompile(`(?i)^.*(Generic|General)\s+Command\s+Status\s+Values.*`)},
	{IoControllerCommandSetSupport, regexp.MustCompile(`(?i)^.*-\s+(?P<command_set_name>.*)Command\s+Set\s+Support`)},
	{LogPageIdentifiers, regexp.MustCompile(`(?i)^.*Log\s+Page\s+Identifiers.*`)},
	{Offset, regexp.MustCompile(`(?i)^.*offset`)},
	{PropertyDefinition, regexp.MustCompile(`(?i)^.*Property Definition.*`)},
}

// Rules returns the ordered rule table. Callers must treat it as read-only.
func Rules() []Rule {
	return rules
}
