package visitor

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

const (
	msgRequired      = "required"
	msgInvalidFormat = "invalid format"
	msgInvalidNumber = "invalid number"
	msgOutOfRange    = "out of range"

	minIdade    = 12
	maxIdade    = 120
	phoneDigits = 11
)

// Submission carries raw visitor fields as submitted, before validation.
// Idade is untyped because forms post it either as a JSON number or as a
// numeric string.
type Submission struct {
	Nome          string
	Telefone      string
	Idade         any
	Consentimento bool
	Origem        string
}

// Validate checks a submission and returns one message per offending
// field. An empty map means the submission is acceptable.
func Validate(s Submission) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(s.Nome) == "" {
		errs["nome"] = msgRequired
	}

	telefone := strings.TrimSpace(s.Telefone)
	switch {
	case telefone == "":
		errs["telefone"] = msgRequired
	case digitCount(telefone) != phoneDigits:
		errs["telefone"] = msgInvalidFormat
	}

	if idade, msg := parseIdade(s.Idade); msg != "" {
		errs["idade"] = msg
	} else if idade < minIdade || idade > maxIdade {
		errs["idade"] = msgOutOfRange
	}

	if !s.Consentimento {
		errs["consentimento"] = msgRequired
	}

	return errs
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// parseIdade normalizes the age field. The second return value is the
// validation message, empty on success.
func parseIdade(v any) (int, string) {
	switch t := v.(type) {
	case nil:
		return 0, msgRequired
	case int:
		return t, ""
	case int64:
		return int(t), ""
	case float64:
		if t != math.Trunc(t) || t < math.MinInt || t > math.MaxInt {
			return 0, msgInvalidNumber
		}
		return int(t), ""
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, msgRequired
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, msgInvalidNumber
		}
		return n, ""
	default:
		return 0, msgInvalidNumber
	}
}
