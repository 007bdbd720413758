package heuristics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksLikeCode(t *testing.T) {
	r := DefaultRules()

	codeLines := []string{
		"#include <stdio.h>",
		"int main() {",
		"for (int i = 0; i < n; i++) {",
		"console.log(total);",
		"def bubble_sort(arr):",
		"int x = 5;",
		"}",
	}
	for _, line := range codeLines {
		assert.True(t, r.LooksLikeCode(line), "want code: %q", line)
	}

	proseLines := []string{
		"arrays store elements contiguously",
		"so the loop runs n times",
		"",
	}
	for _, line := range proseLines {
		assert.False(t, r.LooksLikeCode(line), "want prose: %q", line)
	}
}

func TestLooksLikeFormula(t *testing.T) {
	r := DefaultRules()

	assert.True(t, r.LooksLikeFormula("V = IR"))
	assert.True(t, r.LooksLikeFormula("apply KCL at the node"))
	assert.True(t, r.LooksLikeFormula("energy stored in the capacitor"))
	assert.False(t, r.LooksLikeFormula("arrays store elements"))
	// Code wins over formula when both match.
	assert.False(t, r.LooksLikeFormula("int x = 5;"))
}

func TestLooksLikeDiagram(t *testing.T) {
	r := DefaultRules()

	assert.True(t, r.LooksLikeDiagram("input -> process -> output"))
	assert.True(t, r.LooksLikeDiagram("Flow: read, parse, emit"))
	assert.False(t, r.LooksLikeDiagram("plain description of the idea"))
}

func TestGuessLanguage(t *testing.T) {
	r := DefaultRules()

	tests := []struct {
		code string
		want string
	}{
		{"#include <stdio.h>\nint main() {}", "c"},
		{"def add(a, b):\n    return a + b", "python"},
		{"console.log('hi')", "javascript"},
		{"public static void main(String[] args)", "java"},
		{"x := compute()", "go"},
		{"just some words", "text"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.GuessLanguage(tt.code), "code: %q", tt.code)
	}
}

func TestExplainLine(t *testing.T) {
	r := DefaultRules()

	tests := []struct {
		line string
		want string
	}{
		{"#include <stdio.h>", "Includes a header file for input/output support."},
		{"int main() {", "Program execution starts here."},
		{"}", "Closes the current code block."},
		{"// swap adjacent values", "Comment describing the logic."},
		{"def bubble_sort(arr):", "Declares a function."},
		{"for i in range(n):", "Loop that repeats the following block."},
		{"if arr[j] > arr[j+1]:", "Condition guarding the next statement."},
		{"return total", "Returns the result and exits the function."},
		{"printf(\"%d\", x);", "Prints output to the screen."},
		{"total = a + b", "Assigns or computes a value."},
		{"break", "Core statement in this step."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.ExplainLine(tt.line), "line: %q", tt.line)
	}
}

func TestSummarizeCode(t *testing.T) {
	r := DefaultRules()

	got := r.SummarizeCode("def bubble_sort(arr):\n    for i in range(len(arr)):", "python")
	assert.Contains(t, got, "bubble_sort")
	assert.Contains(t, got, "python")

	got = r.SummarizeCode("for (int i = 0; i < n; i++) {", "c")
	assert.Contains(t, got, "loop")

	got = r.SummarizeCode("x = 5", "python")
	assert.Contains(t, got, "computation")
}
