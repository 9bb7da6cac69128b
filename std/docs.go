package std

import "github.com/zephyrtronium/abacus"

func fn(name, syntax, desc string) abacus.Documentation {
	return abacus.Documentation{Name: name, Kind: "function", Syntax: syntax, Description: desc}
}

func opdoc(name, syntax, desc string) abacus.Documentation {
	return abacus.Documentation{Name: name, Kind: "operator", Syntax: syntax, Description: desc}
}

func typedoc(name, desc string) abacus.Documentation {
	return abacus.Documentation{Name: name, Kind: "number type", Syntax: name, Description: desc}
}

// Docs returns documentation for everything the standard plugin provides.
func Docs() []abacus.Documentation {
	return []abacus.Documentation{
		typedoc("naive", "Machine float64 numbers. Fast, with about 15 significant digits."),
		typedoc("binary", "Binary floating-point numbers with 256 bits of mantissa."),
		typedoc("precise", "Decimal floating-point numbers with 65 digits, displayed to 50."),

		opdoc("+", "x + y", "Sum of x and y."),
		opdoc("-", "x - y", "Difference of x and y."),
		opdoc("-", "-x", "Negation of x."),
		opdoc("*", "x * y", "Product of x and y."),
		opdoc("/", "x / y", "Quotient of x and y. y must not be zero."),
		opdoc("^", "x ^ y", "x raised to the power y. Right associative. 0^y requires y > 0; a negative x requires an integer y."),
		opdoc("!", "x!", "Factorial of x, which must be a non-negative integer."),
		opdoc("nPr", "n nPr k", "Number of ordered selections of k items from n."),
		opdoc("nCr", "n nCr k", "Number of unordered selections of k items from n."),
		opdoc(":=", "name := expr", "Evaluate expr once and bind the result to name."),
		opdoc(":-", "name :- expr", "Define name as expr, re-evaluated each time name is used."),

		fn("abs", "abs(x)", "Absolute value of x."),
		fn("exp", "exp(x)", "e raised to the power x."),
		fn("ln", "ln(x)", "Natural logarithm of x, which must be positive."),
		fn("sqrt", "sqrt(x)", "Square root of x, which must not be negative."),
		fn("sin", "sin(x)", "Sine of x radians."),
		fn("cos", "cos(x)", "Cosine of x radians."),
		fn("tan", "tan(x)", "Tangent of x radians."),
		fn("sec", "sec(x)", "Secant of x radians."),
		fn("csc", "csc(x)", "Cosecant of x radians."),
		fn("cot", "cot(x)", "Cotangent of x radians."),
		fn("arcsin", "arcsin(x)", "Inverse sine of x, for -1 <= x <= 1."),
		fn("arccos", "arccos(x)", "Inverse cosine of x, for -1 <= x <= 1."),
		fn("arctan", "arctan(x)", "Inverse tangent of x."),
		fn("arcsec", "arcsec(x)", "Inverse secant of x, for |x| >= 1."),
		fn("arccsc", "arccsc(x)", "Inverse cosecant of x, for |x| >= 1."),
		fn("arccot", "arccot(x)", "Inverse cotangent of x, between 0 and π."),
		fn("random_int", "random_int(n)", "Uniformly random integer from 0 to n inclusive."),
		fn("pi", "pi()", "The constant π in the active number type."),
		fn("sum", "sum(i, lo, hi, expr)", "Sum of expr for each integer i from lo to hi."),
		fn("prod", "prod(i, lo, hi, expr)", "Product of expr for each integer i from lo to hi."),
	}
}
