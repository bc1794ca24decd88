package linearcheck

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/njchilds90/linearcheck/symbolic"
)

// Message keys are the English texts.
const (
	msgNoVariables       = "Please enter the variable names."
	msgInvalidVariable   = "Invalid variable name: %s"
	msgDuplicateVariable = "Duplicate variable name: %s"
	msgEmptyTransform    = "Empty transformation."
	msgEmptyComponent    = "Transformation component %d is empty."
	msgTooLong           = "Input longer than %d characters."
	msgUnknownSymbol     = "Unknown variables in the transformation: %s"
	msgDivisionByZero    = "Division by zero while simplifying the transformation."
	msgTooComplex        = "The transformation is too complex to simplify."
	msgGeneric           = "Error: %s"

	msgLinear       = "LINEAR"
	msgNotLinear    = "NOT LINEAR"
	msgAdditive     = "Condition 1: F(u+v) = F(u) + F(v) (additivity)"
	msgHomogeneous  = "Condition 2: F(k·u) = k·F(u) (homogeneity)"
	msgHolds        = "✓ Condition %d holds"
	msgFails        = "✗ Condition %d does not hold"
	msgDifference   = "Difference"
	msgStandardForm = "Standard matrix"
)

var indonesian = map[string]string{
	msgNoVariables:       "Silakan masukkan nama variabel.",
	msgInvalidVariable:   "Nama variabel tidak valid: %s",
	msgDuplicateVariable: "Nama variabel ganda: %s",
	msgEmptyTransform:    "Transformasi kosong.",
	msgEmptyComponent:    "Komponen transformasi ke-%d kosong.",
	msgTooLong:           "Masukan lebih dari %d karakter.",
	msgUnknownSymbol:     "Terdapat variabel tidak dikenal pada transformasi: %s",
	msgDivisionByZero:    "Terjadi pembagian dengan nol saat menyederhanakan transformasi.",
	msgTooComplex:        "Transformasi terlalu rumit untuk disederhanakan.",
	msgGeneric:           "Error: %s",

	msgLinear:       "LINIER",
	msgNotLinear:    "TIDAK LINIER",
	msgAdditive:     "Kondisi 1: F(u+v) = F(u) + F(v) (Aditif)",
	msgHomogeneous:  "Kondisi 2: F(k·u) = k·F(u) (Homogenitas)",
	msgHolds:        "✓ Kondisi %d terpenuhi",
	msgFails:        "✗ Kondisi %d tidak terpenuhi",
	msgDifference:   "Hasil Pengurangan",
	msgStandardForm: "Matriks standar",
}

// Supported lists the message languages, default first.
var Supported = []language.Tag{language.Indonesian, language.English}

var (
	messages = newCatalog()
	matcher  = language.NewMatcher(Supported)
)

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.Indonesian))
	for key, msg := range indonesian {
		must(b.SetString(language.Indonesian, key, msg))
		must(b.SetString(language.English, key, key))
	}
	return b
}

func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("linearcheck: message catalog: %v", err))
	}
}

// ParseLanguage maps a BCP 47 tag such as "en-GB" to the closest supported
// language. Unsupported languages fall back to Indonesian.
func ParseLanguage(s string) (language.Tag, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return language.Indonesian, fmt.Errorf("linearcheck: language %q: %w", s, err)
	}
	_, idx, _ := matcher.Match(tag)
	return Supported[idx], nil
}

func newPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(messages))
}

// userMessage renders the single readable line shown for a failure.
func userMessage(p *message.Printer, ve *VerifyError) string {
	switch {
	case ve.Err == nil:
		return p.Sprintf(msgGeneric, "")
	case errors.Is(ve.Err, ErrNoVariables):
		return p.Sprintf(msgNoVariables)
	case errors.Is(ve.Err, ErrInvalidVariable):
		return p.Sprintf(msgInvalidVariable, joinNames(ve.Names))
	case errors.Is(ve.Err, ErrDuplicateVariable):
		return p.Sprintf(msgDuplicateVariable, joinNames(ve.Names))
	case errors.Is(ve.Err, ErrEmptyTransformation):
		return p.Sprintf(msgEmptyTransform)
	case errors.Is(ve.Err, ErrEmptyComponent):
		return p.Sprintf(msgEmptyComponent, ve.Component+1)
	case errors.Is(ve.Err, ErrInputTooLong):
		return p.Sprintf(msgTooLong, ve.Limit)
	case errors.Is(ve.Err, ErrUnknownSymbol):
		return p.Sprintf(msgUnknownSymbol, joinNames(ve.Names))
	case errors.Is(ve.Err, symbolic.ErrDivisionByZero):
		return p.Sprintf(msgDivisionByZero)
	case errors.Is(ve.Err, symbolic.ErrTooComplex):
		return p.Sprintf(msgTooComplex)
	}
	return p.Sprintf(msgGeneric, causeText(ve.Err))
}

func joinNames(names []string) string { return strings.Join(names, ", ") }

// internalPrefix matches the matrix position and package qualifiers that
// wrapped errors carry.
var internalPrefix = regexp.MustCompile(`^(?:entry \[\d+,\d+\]: |symbolic: )+`)

// causeText returns the innermost description of err, dropping the
// linearcheck sentinel that classifies it and any internal prefixes.
func causeText(err error) string {
	text := err.Error()
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		if errs := joined.Unwrap(); len(errs) > 0 {
			text = errs[len(errs)-1].Error()
		}
	}
	return internalPrefix.ReplaceAllString(text, "")
}
