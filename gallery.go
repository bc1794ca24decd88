package linearcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Expectation is the label shown next to an example.
type Expectation string

const (
	ExpectLinear    Expectation = "LINIER"
	ExpectNonLinear Expectation = "TIDAK LINIER"
	ExpectError     Expectation = "ERROR"
)

// Example is one (variables, transformation, expected label) entry of the
// gallery.
type Example struct {
	Name           string      `json:"name" yaml:"name" toml:"name"`
	Variables      string      `json:"variables" yaml:"variables" toml:"variables"`
	Transformation string      `json:"transformation" yaml:"transformation" toml:"transformation"`
	Expected       Expectation `json:"expected" yaml:"expected" toml:"expected"`
}

var builtinExamples = []Example{
	{"scaling", "x,y", "(2*x, 3*y)", ExpectLinear},
	{"square and shift", "x,y,z", "(x**2, y, z+1)", ExpectNonLinear},
	{"mixing", "x,y,z", "(x + y, 2*y - z)", ExpectLinear},
	{"averages", "x,y", "((x+y)/2, (x-y)/2)", ExpectLinear},
	{"rational coefficients", "x,y", "(x/3 - 0.5*y, 1e-1*x)", ExpectLinear},
	{"constant", "x", "5", ExpectNonLinear},
	{"product", "x,y", "(x*y, x)", ExpectNonLinear},
	{"angle", "x,y", "(atan2(y, x), x)", ExpectNonLinear},
	{"sine", "x", "sin(x)", ExpectNonLinear},
	{"unknown symbol", "x,y", "x+w", ExpectError},
}

// Examples returns a copy of the built-in gallery.
func Examples() []Example {
	out := make([]Example, len(builtinExamples))
	copy(out, builtinExamples)
	return out
}

type galleryFile struct {
	Examples []Example `json:"examples" yaml:"examples" toml:"examples"`
}

// LoadExamples reads a gallery file. The format follows the extension:
// .toml, .yaml, .yml or .json.
func LoadExamples(path string) ([]Example, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gallery: %w", err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	examples, err := DecodeExamples(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return examples, nil
}

// DecodeExamples parses a gallery document with a top-level "examples" list.
func DecodeExamples(r io.Reader, format string) ([]Example, error) {
	var file galleryFile
	switch format {
	case "toml":
		if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
			return nil, fmt.Errorf("decode toml gallery: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&file); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml gallery: %w", err)
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&file); err != nil {
			return nil, fmt.Errorf("decode json gallery: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported gallery format %q", format)
	}
	for i, ex := range file.Examples {
		switch ex.Expected {
		case ExpectLinear, ExpectNonLinear, ExpectError:
		default:
			return nil, fmt.Errorf("example %d (%s): unknown expectation %q", i, ex.Name, ex.Expected)
		}
	}
	return file.Examples, nil
}

// Outcome pairs an example with its verification.
type Outcome struct {
	Example Example     `json:"example" yaml:"example"`
	Got     Expectation `json:"got" yaml:"got"`
	Passed  bool        `json:"passed" yaml:"passed"`
	Result  Result      `json:"result" yaml:"result"`
}

// Label returns the gallery label for a result.
func Label(r Result) Expectation {
	switch {
	case !r.OK():
		return ExpectError
	case r.IsLinear:
		return ExpectLinear
	}
	return ExpectNonLinear
}

// RunExamples verifies the examples with at most parallelism goroutines
// and returns the outcomes in input order. It stops early only when ctx is
// cancelled.
func (v *Verifier) RunExamples(ctx context.Context, examples []Example, parallelism int) ([]Outcome, error) {
	if parallelism <= 0 {
		parallelism = 1
	}
	outcomes := make([]Outcome, len(examples))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, ex := range examples {
		i, ex := i, ex
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := v.VerifyContext(ctx, ex.Variables, ex.Transformation)
			got := Label(res)
			outcomes[i] = Outcome{Example: ex, Got: got, Passed: got == ex.Expected, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}
