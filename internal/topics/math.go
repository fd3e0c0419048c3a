package topics

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SolveMath answers arithmetic, percentage, and simple linear-equation
// questions. Attempts run in a fixed order: percentages, plain arithmetic,
// single-variable equations, then word-problem templates. Any parse or
// evaluation failure yields a clarification request; a raw error never
// reaches the caller.
func SolveMath(question string) string {
	clean := strings.ToLower(question)
	for _, prefix := range []string{"solve", "calculate", "what is"} {
		clean = strings.ReplaceAll(clean, prefix, "")
	}
	clean = strings.TrimSpace(clean)

	if strings.Contains(clean, "%") || strings.Contains(clean, "percent") {
		return solvePercentage(clean)
	}

	if !strings.Contains(clean, "=") && !strings.ContainsAny(clean, "xyz") {
		return solveArithmetic(clean)
	}

	if strings.Contains(clean, "=") && strings.Contains(clean, "x") {
		return solveEquation(clean)
	}

	if containsAny(clean, []string{"age", "years", "cost", "price", "distance", "speed", "time"}) {
		return solveWordProblem(question)
	}

	return "I can help with math! Try asking: 'solve 2x + 5 = 15', 'calculate 25 * 4', or 'what is 20% of 80?'"
}

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// solvePercentage handles "N% of M" problems.
func solvePercentage(problem string) string {
	numbers := numberPattern.FindAllString(problem, -1)
	if len(numbers) >= 2 && strings.Contains(problem, "of") {
		percent, err1 := strconv.ParseFloat(numbers[0], 64)
		value, err2 := strconv.ParseFloat(numbers[1], 64)
		if err1 == nil && err2 == nil {
			result := percent / 100 * value
			return fmt.Sprintf("**%s%% of %s = %s**\n\nCalculation: (%s ÷ 100) × %s = %s",
				formatNumber(percent), formatNumber(value), formatNumber(result),
				formatNumber(percent), formatNumber(value), formatNumber(result))
		}
	}
	return "For percentage problems, try asking: 'What is 20% of 80?' or 'Calculate 25% of 120'"
}

// solveArithmetic sanitizes the expression to digits, operators, and
// parentheses, then evaluates it with ordinary precedence.
func solveArithmetic(expression string) string {
	expr := strings.NewReplacer("×", "*", "÷", "/").Replace(expression)

	var sb strings.Builder
	for _, r := range expr {
		if r >= '0' && r <= '9' || strings.ContainsRune("+-*/.()", r) {
			sb.WriteRune(r)
		}
	}
	sanitized := sb.String()
	if sanitized == "" {
		return "I need a clearer mathematical expression to solve."
	}

	result, err := evalExpression(sanitized)
	if err != nil {
		return "I couldn't parse this mathematical expression. Try something like '25 * 4' or '100 / 5'"
	}

	r := formatNumber(result)
	trimmed := strings.TrimSpace(expression)
	return fmt.Sprintf("**%s**\n\nCalculation: %s = %s\n\nStep by step:\n- Input: %s\n- Result: %s",
		r, trimmed, r, trimmed, r)
}

const equationClarification = "I can solve simple linear equations like '2x + 5 = 15' or '3x - 7 = 20'. Could you rephrase your equation?"

// solveEquation handles single-operator linear equations of the form
// ax+b=c, b+ax=c, ax-b=c, or ax=c. Anything else (x on both sides,
// multiple operators, x trailing a minus) is ambiguous and yields the
// clarification template.
func solveEquation(equation string) string {
	sides := strings.Split(equation, "=")
	if len(sides) != 2 {
		return equationClarification
	}
	left := strings.TrimSpace(sides[0])
	right := strings.TrimSpace(sides[1])

	if strings.Contains(right, "x") {
		return equationClarification
	}
	rhs, err := strconv.ParseFloat(right, 64)
	if err != nil {
		return equationClarification
	}

	coeff, constant, err := splitLinearLHS(left)
	if err != nil {
		return equationClarification
	}
	if coeff == 0 {
		return equationClarification
	}

	x := (rhs - constant) / coeff
	xs := formatNumber(x)
	return fmt.Sprintf("**Solution: x = %s**\n\nStep by step:\n1. Original equation: %s\n2. Solving for x: x = %s\n\nVerification: Substitute x = %s back into the equation to check!",
		xs, strings.TrimSpace(equation), xs, xs)
}

var errBadEquation = errors.New("unsupported equation form")

// splitLinearLHS extracts (coefficient, constant) from the left side of a
// linear equation.
func splitLinearLHS(left string) (coeff, constant float64, err error) {
	switch {
	case strings.Contains(left, "+"):
		parts := strings.Split(left, "+")
		if len(parts) != 2 {
			return 0, 0, errBadEquation
		}
		a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if strings.Contains(a, "x") {
			coeff, err = parseCoefficient(a)
			if err != nil {
				return 0, 0, err
			}
			constant, err = strconv.ParseFloat(b, 64)
		} else {
			coeff, err = parseCoefficient(b)
			if err != nil {
				return 0, 0, err
			}
			constant, err = strconv.ParseFloat(a, 64)
		}
		if err != nil {
			return 0, 0, errBadEquation
		}
		return coeff, constant, nil

	case strings.Contains(left, "-"):
		parts := strings.Split(left, "-")
		if len(parts) != 2 {
			return 0, 0, errBadEquation
		}
		a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		// Only the ax-b form is unambiguous; b-ax negates the x term and
		// is treated as unsupported.
		if !strings.Contains(a, "x") {
			return 0, 0, errBadEquation
		}
		coeff, err = parseCoefficient(a)
		if err != nil {
			return 0, 0, err
		}
		constant, err = strconv.ParseFloat(b, 64)
		if err != nil {
			return 0, 0, errBadEquation
		}
		return coeff, -constant, nil

	default:
		coeff, err = parseCoefficient(left)
		if err != nil {
			return 0, 0, err
		}
		return coeff, 0, nil
	}
}

// parseCoefficient parses "2x", "x", or "2.5x" into its numeric coefficient.
func parseCoefficient(term string) (float64, error) {
	if !strings.Contains(term, "x") {
		return 0, errBadEquation
	}
	raw := strings.TrimSpace(strings.ReplaceAll(term, "x", ""))
	if raw == "" {
		return 1, nil
	}
	c, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errBadEquation
	}
	return c, nil
}

// solveWordProblem returns templated guidance for recognized word-problem
// categories instead of a computed value.
func solveWordProblem(problem string) string {
	lower := strings.ToLower(problem)

	if strings.Contains(lower, "age") || strings.Contains(lower, "years old") {
		return "I can help with age problems! For example: 'If John is 5 years older than Mary, and Mary is 20, how old is John?' The answer would be 25 years old."
	}
	if strings.Contains(lower, "cost") || strings.Contains(lower, "price") || strings.Contains(problem, "$") {
		return "For money problems, I can help! For example: 'If 3 apples cost $6, how much does 1 apple cost?' The answer would be $2 per apple."
	}
	return "I can help with word problems! Try rephrasing with specific numbers and operations, like: 'If I have 10 apples and eat 3, how many are left?'"
}

// formatNumber renders a float without trailing zeros (16, not 16.000000).
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// --- arithmetic expression evaluation ---

var (
	errExprSyntax   = errors.New("malformed expression")
	errDivideByZero = errors.New("division by zero")
)

// evalExpression evaluates a sanitized arithmetic expression with a small
// recursive-descent parser: expr → term {(+|-) term}, term → factor
// {(*|/) factor}, factor → number | (expr) | -factor.
func evalExpression(s string) (float64, error) {
	p := &exprParser{input: s}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return 0, errExprSyntax
	}
	return v, nil
}

type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) parseExpr() (float64, error) {
	v, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v += rhs
		case '-':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			v -= rhs
		default:
			return v, nil
		}
	}
}

func (p *exprParser) parseTerm() (float64, error) {
	v, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '*':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			v *= rhs
		case '/':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, errDivideByZero
			}
			v /= rhs
		default:
			return v, nil
		}
	}
}

func (p *exprParser) parseFactor() (float64, error) {
	p.skipSpaces()
	switch {
	case p.peek() == '-':
		p.pos++
		v, err := p.parseFactor()
		return -v, err
	case p.peek() == '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		p.skipSpaces()
		if p.peek() != ')' {
			return 0, errExprSyntax
		}
		p.pos++
		return v, nil
	default:
		return p.parseNumber()
	}
}

func (p *exprParser) parseNumber() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c >= '0' && c <= '9' || c == '.' {
			p.pos++
		} else {
			break
		}
	}
	if start == p.pos {
		return 0, errExprSyntax
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, errExprSyntax
	}
	return v, nil
}

func (p *exprParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}
