package lint

import "strings"

// DefaultDocsBaseURL is where the generated rule pages are published.
const DefaultDocsBaseURL = "https://leapstack-labs.github.io/declint/rules"

// DocsBaseURL is the base for diagnostic documentation links. The
// docs_url config key overrides it.
var DocsBaseURL = DefaultDocsBaseURL

// DocPath returns the page name of a rule relative to the docs base,
// e.g. "ma04" for MA04. scripts/gendocs writes DocPath(id) + ".md".
func DocPath(ruleID string) string {
	return strings.ToLower(strings.TrimSpace(ruleID))
}

// BuildDocURL returns the documentation link attached to diagnostics.
func BuildDocURL(ruleID string) string {
	return DocsBaseURL + "/" + DocPath(ruleID)
}

// SetDocsBaseURL points documentation links at another site, for example a
// local checkout of the generated docs.
func SetDocsBaseURL(url string) {
	DocsBaseURL = strings.TrimSuffix(url, "/")
}

// ResetDocsBaseURL restores DefaultDocsBaseURL.
func ResetDocsBaseURL() {
	DocsBaseURL = DefaultDocsBaseURL
}

// ImpactLevel scores how much a finding hurts readability, 0 to 100.
type ImpactLevel int

// Impact levels used by the rules.
const (
	ImpactLow      ImpactLevel = 20 // blank-line layout
	ImpactMedium   ImpactLevel = 50 // order within a group
	ImpactHigh     ImpactLevel = 70 // declarations split apart by other code
	ImpactCritical ImpactLevel = 90 // through references that cannot resolve
)

// Int returns the impact score as an integer.
func (l ImpactLevel) Int() int {
	return int(l)
}

