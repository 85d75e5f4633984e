package emit

import "strings"

// Dialect selects the formatting pass applied to a rendered artifact.
type Dialect string

const (
	DialectTS  Dialect = "ts"
	DialectVue Dialect = "vue"
)

// Format normalizes a rendered artifact for its dialect: TypeScript sources
// get their gql template literal reindented by brace depth; every dialect
// gets blank-line runs collapsed and exactly one trailing newline.
func Format(src string, d Dialect) string {
	if d == DialectTS {
		src = reindentGQL(src)
	}
	src = strings.TrimLeft(src, "\n")
	for strings.Contains(src, "\n\n\n") {
		src = strings.ReplaceAll(src, "\n\n\n", "\n\n")
	}
	return strings.TrimRight(src, "\n") + "\n"
}

// reindentGQL reindents the lines inside a gql`...` template literal with two
// spaces per brace level. Lines outside the literal are left alone.
func reindentGQL(src string) string {
	lines := strings.Split(src, "\n")
	inGQL := false
	depth := 0

	for i, line := range lines {
		if !inGQL {
			if strings.Contains(line, "gql`") {
				inGQL = true
				depth = 0
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "`") {
			inGQL = false
			continue
		}
		if trimmed == "" {
			lines[i] = ""
			continue
		}

		indent := depth
		if strings.HasPrefix(trimmed, "}") {
			indent--
		}
		lines[i] = strings.Repeat("  ", indent+1) + trimmed
		depth += strings.Count(trimmed, "{") - strings.Count(trimmed, "}")
	}
	return strings.Join(lines, "\n")
}
