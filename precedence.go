package irprint

// USubPrecedence is the precedence of the unary minus.
// It is higher than the precedence of all binary operations.
const USubPrecedence = 60

var opPrecedence = map[string]int{
	"or": 10,

	"and": 20,

	"<":  30,
	">":  30,
	"<=": 30,
	">=": 30,
	"==": 30,

	"+": 40,
	"-": 40,

	"*": 50,
	"/": 50,
}

// Precedence returns the precedence of the given binary operator.
func Precedence(op string) (int, bool) {
	p, ok := opPrecedence[op]
	return p, ok
}
