package manifest

import "strings"

// MarkerToken is the literal placeholder templates use where the project
// name belongs. Substitution is verbatim and case-sensitive.
const MarkerToken = "PROJECT_NAME"

// Transform rewrites template content before it is written to a project.
type Transform func(content string) string

// NameTransform returns a transform replacing every occurrence of
// MarkerToken with projectName.
func NameTransform(projectName string) Transform {
	return func(content string) string {
		return strings.ReplaceAll(content, MarkerToken, projectName)
	}
}
