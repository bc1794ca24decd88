// Package linearcheck decides whether a vector-valued function written as
// text is a linear transformation.
//
// F is checked symbolically: with fresh vectors u, v and a scalar k it
// computes
//
//	r1 = F(u+v) - (F(u) + F(v))
//	r2 = F(k·u) - k·F(u)
//
// and reduces every entry to a rational normal form. F is linear exactly
// when both residual vectors are zero. The intermediate vectors are
// returned so that callers can display the proof.
package linearcheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/njchilds90/linearcheck/symbolic"
)

const (
	// DefaultMaxInputLength bounds each of the two input strings.
	DefaultMaxInputLength = 4096

	tracerName = "github.com/njchilds90/linearcheck"
)

// Verifier checks transformations. It holds no per-call state and is safe
// for concurrent use.
type Verifier struct {
	logger         *slog.Logger
	limits         symbolic.Limits
	lang           language.Tag
	printer        *message.Printer
	maxInputLength int
	tracer         trace.Tracer
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithLogger sets the logger used for diagnostics. Failures are logged at
// debug level with their kind.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Verifier) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithLimits bounds the work spent normalizing residuals.
func WithLimits(limits symbolic.Limits) Option {
	return func(v *Verifier) { v.limits = limits }
}

// WithLanguage selects the language of user-visible messages.
func WithLanguage(tag language.Tag) Option {
	return func(v *Verifier) {
		_, idx, _ := matcher.Match(tag)
		v.lang = Supported[idx]
	}
}

// WithMaxInputLength bounds the length in bytes of each input string.
// Zero or less disables the check.
func WithMaxInputLength(n int) Option {
	return func(v *Verifier) { v.maxInputLength = n }
}

// WithTracer overrides the tracer taken from the global otel provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(v *Verifier) {
		if tracer != nil {
			v.tracer = tracer
		}
	}
}

// New returns a Verifier with Indonesian messages and default limits.
func New(opts ...Option) *Verifier {
	v := &Verifier{
		logger:         slog.Default(),
		limits:         symbolic.DefaultLimits,
		lang:           language.Indonesian,
		maxInputLength: DefaultMaxInputLength,
		tracer:         otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.printer = newPrinter(v.lang)
	return v
}

// Verify checks transformation against variableNames with a default
// Verifier.
func Verify(variableNames, transformation string) Result {
	return New().Verify(variableNames, transformation)
}

// Language reports the language of user-visible messages.
func (v *Verifier) Language() language.Tag { return v.lang }

// Verify checks whether transformation, a single expression or a
// parenthesized tuple such as "(2*x, 3*y)", is linear in the
// comma-separated variableNames. Failures never panic; they are reported
// in Result.Error.
func (v *Verifier) Verify(variableNames, transformation string) Result {
	return v.VerifyContext(context.Background(), variableNames, transformation)
}

// VerifyContext is Verify with a context for tracing and logging. The
// computation itself is not cancellable.
func (v *Verifier) VerifyContext(ctx context.Context, variableNames, transformation string) Result {
	ctx, span := v.tracer.Start(ctx, "linearcheck.Verify")
	defer span.End()
	start := time.Now()

	res, err := v.run(variableNames, transformation)
	if err != nil {
		res = v.failure(err)
		kind := KindOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(kind))
		v.logger.DebugContext(ctx, "verification failed",
			"kind", kind,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return res
	}

	span.SetAttributes(
		attribute.Bool("linearcheck.linear", res.IsLinear),
		attribute.Bool("linearcheck.additive", res.Additive),
		attribute.Bool("linearcheck.homogeneous", res.Homogeneous),
		attribute.Int("linearcheck.variables", len(res.Variables)),
		attribute.Int("linearcheck.components", len(res.Components)),
	)
	v.logger.DebugContext(ctx, "verification complete",
		"linear", res.IsLinear,
		"variables", len(res.Variables),
		"components", len(res.Components),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res
}

func (v *Verifier) failure(err error) Result {
	var ve *VerifyError
	if !errors.As(err, &ve) {
		ve = &VerifyError{Kind: KindEvaluation, Op: "verify", Component: -1, Err: fmt.Errorf("%w: %w", ErrEvaluation, err)}
	}
	return Result{Error: userMessage(v.printer, ve), Cause: ve}
}

func (v *Verifier) run(variableNames, transformation string) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &VerifyError{
				Kind:      KindEvaluation,
				Op:        "verify",
				Component: -1,
				Err:       fmt.Errorf("%w: %w", ErrEvaluation, fmt.Errorf("panic: %v", r)),
			}
		}
	}()

	if err := v.checkLength(variableNames, transformation); err != nil {
		return Result{}, err
	}
	names, err := splitVariables(variableNames)
	if err != nil {
		return Result{}, err
	}
	sources, err := splitComponents(transformation)
	if err != nil {
		return Result{}, err
	}
	declared := make(map[string]bool, len(names))
	for _, n := range names {
		declared[n] = true
	}
	exprs, err := parseComponents(sources, names, declared)
	if err != nil {
		return Result{}, err
	}

	syms := freshSymbols(declared, len(names))
	k := symbolic.S(syms.K)
	atU := make(map[string]symbolic.Expr, len(names))
	atV := make(map[string]symbolic.Expr, len(names))
	atUV := make(map[string]symbolic.Expr, len(names))
	atKU := make(map[string]symbolic.Expr, len(names))
	for i, name := range names {
		u, w := symbolic.S(syms.U[i]), symbolic.S(syms.V[i])
		atU[name] = u
		atV[name] = w
		atUV[name] = symbolic.AddOf(u, w)
		atKU[name] = symbolic.MulOf(k, u)
	}

	f := symbolic.ColumnVector(exprs...)
	res = Result{
		Variables:  names,
		Symbols:    syms,
		Components: exprs,
		FU:         f.ApplySubs(atU),
		FV:         f.ApplySubs(atV),
		FUV:        f.ApplySubs(atUV),
		FKU:        f.ApplySubs(atKU),
	}
	res.FUPlusFV = res.FU.MatAdd(res.FV)
	res.KFU = res.FU.Scale(k)

	if res.R1, err = res.FUV.MatSub(res.FUPlusFV).Map(v.normalize); err != nil {
		return Result{}, evaluationError("simplify", err)
	}
	if res.R2, err = res.FKU.MatSub(res.KFU).Map(v.normalize); err != nil {
		return Result{}, evaluationError("simplify", err)
	}
	res.Additive = res.R1.IsZeroLiteral()
	res.Homogeneous = res.R2.IsZeroLiteral()
	res.IsLinear = res.Additive && res.Homogeneous

	if res.IsLinear {
		a, err := symbolic.Jacobian(exprs, names).Map(v.normalize)
		if err != nil {
			v.logger.Debug("standard matrix unavailable", "error", err)
		} else {
			res.StandardMatrix = a
		}
	}
	return res, nil
}

func (v *Verifier) checkLength(variableNames, transformation string) error {
	if v.maxInputLength <= 0 {
		return nil
	}
	if len(variableNames) > v.maxInputLength || len(transformation) > v.maxInputLength {
		ve := inputError("length", ErrInputTooLong)
		ve.Limit = v.maxInputLength
		return ve
	}
	return nil
}

func (v *Verifier) normalize(e symbolic.Expr) (symbolic.Expr, error) {
	return symbolic.Normalize(e, v.limits)
}

// parseComponents parses each source with only names declared and rejects
// any other free symbol.
func parseComponents(sources, names []string, declared map[string]bool) ([]symbolic.Expr, error) {
	exprs := make([]symbolic.Expr, len(sources))
	for i, src := range sources {
		e, err := symbolic.Parse(src, symbolic.WithSymbols(names...))
		if err != nil {
			return nil, &VerifyError{Kind: KindParse, Op: "parse", Component: i, Err: fmt.Errorf("%w: %w", ErrParse, err)}
		}
		var unknown []string
		for _, s := range symbolic.SortedFreeSymbols(e) {
			if !declared[s] {
				unknown = append(unknown, s)
			}
		}
		if len(unknown) > 0 {
			return nil, &VerifyError{
				Kind:      KindUnknownSymbol,
				Op:        "parse",
				Component: i,
				Names:     unknown,
				Err:       fmt.Errorf("%w: %s", ErrUnknownSymbol, strings.Join(unknown, ", ")),
			}
		}
		exprs[i] = e
	}
	return exprs, nil
}

func evaluationError(op string, err error) *VerifyError {
	return &VerifyError{Kind: KindEvaluation, Op: op, Component: -1, Err: fmt.Errorf("%w: %w", ErrEvaluation, err)}
}

// Symbols names the fresh symbols a verification substitutes for the
// declared variables.
type Symbols struct {
	U []string `json:"u" yaml:"u"`
	V []string `json:"v" yaml:"v"`
	K string   `json:"k" yaml:"k"`
}

// freshSymbols returns u0..u{n-1}, v0..v{n-1} and k, inserting underscores
// until none of them is a declared name.
func freshSymbols(declared map[string]bool, n int) Symbols {
	for sep := ""; ; sep += "_" {
		syms := Symbols{U: make([]string, n), V: make([]string, n), K: "k" + sep}
		clash := declared[syms.K]
		for i := 0; i < n; i++ {
			syms.U[i] = fmt.Sprintf("u%s%d", sep, i)
			syms.V[i] = fmt.Sprintf("v%s%d", sep, i)
			clash = clash || declared[syms.U[i]] || declared[syms.V[i]]
		}
		if !clash {
			return syms
		}
	}
}
