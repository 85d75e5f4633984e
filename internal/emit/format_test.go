package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEnsuresSingleTrailingNewline(t *testing.T) {
	assert.Equal(t, "export interface X {}\n", Format("export interface X {}", DialectTS))
	assert.Equal(t, "export interface X {}\n", Format("export interface X {}\n\n\n", DialectTS))
}

func TestFormatCollapsesBlankRuns(t *testing.T) {
	got := Format("a\n\n\n\nb", DialectVue)
	assert.Equal(t, "a\n\nb\n", got)
}

func TestFormatTrimsLeadingNewlines(t *testing.T) {
	assert.Equal(t, "a\n", Format("\n\na", DialectVue))
}

func TestFormatReindentsGQLBlock(t *testing.T) {
	src := "export const X = gql`\nfragment X on Y {\na\nouter {\nb\n}\n}\n`;\n"
	want := "export const X = gql`\n" +
		"  fragment X on Y {\n" +
		"    a\n" +
		"    outer {\n" +
		"      b\n" +
		"    }\n" +
		"  }\n" +
		"`;\n"
	assert.Equal(t, want, Format(src, DialectTS))
}

func TestFormatLeavesNonGQLLinesAlone(t *testing.T) {
	src := "const x = { a: 1 };\n"
	assert.Equal(t, src, Format(src, DialectTS))
}
