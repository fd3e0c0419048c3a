package topics

import (
	"strings"
	"testing"
)

func TestSolveMathPercentage(t *testing.T) {
	got := SolveMath("what is 20% of 80?")
	want := "**20% of 80 = 16**\n\nCalculation: (20 ÷ 100) × 80 = 16"
	if got != want {
		t.Errorf("SolveMath percentage:\ngot  %q\nwant %q", got, want)
	}
}

func TestSolveMathPercentageNeedsTwoNumbers(t *testing.T) {
	got := SolveMath("what is 25 percent")
	if !strings.Contains(got, "percentage problems") {
		t.Errorf("expected percentage help template, got %q", got)
	}
}

func TestSolveMathArithmetic(t *testing.T) {
	tests := []struct {
		question string
		result   string
	}{
		{"calculate 25 * 4", "100"},
		{"what is 100 / 5", "20"},
		{"solve 2 + 3 * 4", "14"},
		{"calculate (2 + 3) * 4", "20"},
		{"what is 7 - 10", "-3"},
		{"calculate 2.5 * 4", "10"},
	}
	for _, tt := range tests {
		got := SolveMath(tt.question)
		if !strings.HasPrefix(got, "**"+tt.result+"**") {
			t.Errorf("SolveMath(%q) = %q, want result %s", tt.question, got, tt.result)
		}
	}
}

func TestSolveMathDivideByZero(t *testing.T) {
	got := SolveMath("calculate 10 / 0")
	if !strings.Contains(got, "couldn't parse") {
		t.Errorf("division by zero should yield a clarification, got %q", got)
	}
}

func TestSolveMathEmptyExpression(t *testing.T) {
	got := SolveMath("calculate apples")
	if got != "I need a clearer mathematical expression to solve." {
		t.Errorf("got %q", got)
	}
}

func TestSolveMathEquation(t *testing.T) {
	tests := []struct {
		question string
		x        string
	}{
		{"solve 2x + 5 = 15", "5"},
		{"solve 3x - 7 = 20", "9"},
		{"solve 5 + 2x = 15", "5"},
		{"solve x = 10", "10"},
		{"solve 2.5x = 10", "4"},
	}
	for _, tt := range tests {
		got := SolveMath(tt.question)
		if !strings.HasPrefix(got, "**Solution: x = "+tt.x+"**") {
			t.Errorf("SolveMath(%q) = %q, want x = %s", tt.question, got, tt.x)
		}
	}
}

func TestSolveMathEquationClarification(t *testing.T) {
	// Forms the solver deliberately refuses rather than guesses at.
	questions := []string{
		"solve 20 - 3x = 2",  // negated x term
		"solve 2x + 3x = 10", // two x terms
		"solve x = x",        // x on both sides
		"solve x + 1 = 2 = 3",
		"solve 0x + 5 = 5", // zero coefficient
	}
	for _, q := range questions {
		if got := SolveMath(q); got != equationClarification {
			t.Errorf("SolveMath(%q) = %q, want clarification", q, got)
		}
	}
}

func TestSolveMathWordProblems(t *testing.T) {
	got := SolveMath("if mary is 20 years old, how old is johnny")
	if !strings.Contains(got, "age problems") {
		t.Errorf("expected age template, got %q", got)
	}

	got = SolveMath("they cost twenty dollars, what do they cost individually")
	if !strings.Contains(got, "money problems") {
		t.Errorf("expected money template, got %q", got)
	}
}

func TestSolveMathFallbackHelp(t *testing.T) {
	got := SolveMath("solve my crazy problem somehow")
	if !strings.Contains(got, "I can help with math!") {
		t.Errorf("expected help template, got %q", got)
	}
}

func TestEvalExpression(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"1+2", 3},
		{"2*3+4", 10},
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"-5+3", -2},
		{"10/4", 2.5},
		{"2*(3+(4-1))", 12},
	}
	for _, tt := range tests {
		got, err := evalExpression(tt.expr)
		if err != nil {
			t.Errorf("evalExpression(%q) error: %v", tt.expr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("evalExpression(%q) = %v, want %v", tt.expr, got, tt.want)
		}
	}
}

func TestEvalExpressionErrors(t *testing.T) {
	for _, expr := range []string{"", "1+", "(1+2", "1++2...", "5/0"} {
		if _, err := evalExpression(expr); err == nil {
			t.Errorf("evalExpression(%q) should fail", expr)
		}
	}
}
