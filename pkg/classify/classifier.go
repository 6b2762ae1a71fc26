package classify

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dkoosis/conform/pkg/corpus"
	"github.com/dkoosis/conform/pkg/validator"
)

// Classifier runs a validator backend over corpus files.
type Classifier struct {
	compiler validator.Compiler
	parallel int
	logger   *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithParallelism classifies up to n files concurrently. n <= 1 is sequential.
func WithParallelism(n int) Option {
	return func(c *Classifier) {
		if n > 1 {
			c.parallel = n
		}
	}
}

// WithLogger sets the logger used for per-file debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Classifier) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a Classifier for compiler.
func New(compiler validator.Compiler, opts ...Option) *Classifier {
	c := &Classifier{
		compiler: compiler,
		parallel: 1,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PanicError wraps a panic raised inside a validator backend.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

// Case compiles the case's schema and classifies each of its vectors.
func (c *Classifier) Case(tc corpus.Case) CaseResult {
	res := CaseResult{
		Description: tc.Description,
		Vectors:     make([]VectorResult, 0, len(tc.Tests)),
	}

	schema, err := c.compile(tc)
	if err != nil {
		res.SchemaErr = Capture(err)
		for _, v := range tc.Tests {
			res.Vectors = append(res.Vectors, VectorResult{
				Description: v.Description,
				Data:        v.Data,
				Valid:       v.Valid,
				Outcome:     Undefined,
				Err:         res.SchemaErr,
			})
		}
		return res
	}

	for _, v := range tc.Tests {
		outcome, info := Classify(v.Valid, validate(schema, v))
		res.Vectors = append(res.Vectors, VectorResult{
			Description: v.Description,
			Data:        v.Data,
			Valid:       v.Valid,
			Outcome:     outcome,
			Err:         info,
		})
	}
	return res
}

// File classifies every case of f in document order.
func (c *Classifier) File(f corpus.File) FileResult {
	res := FileResult{Name: f.Name, Path: f.Path, Cases: make([]CaseResult, 0, len(f.Cases))}
	for _, tc := range f.Cases {
		res.Cases = append(res.Cases, c.Case(tc))
	}
	c.logger.Debug("classified file", "file", f.Name, "cases", len(res.Cases), "vectors", res.Vectors(), "status", res.Status())
	return res
}

// Files classifies files and returns results in input order. onFile, if
// non-nil, is called once per finished file; with parallelism it may be
// called from several goroutines. Cancellation stops scheduling new files and
// returns ctx.Err().
func (c *Classifier) Files(ctx context.Context, files []corpus.File, onFile func(FileResult)) ([]FileResult, error) {
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallel)
	for i := range files {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.File(files[i])
			if onFile != nil {
				onFile(results[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Classifier) compile(tc corpus.Case) (schema validator.Schema, err error) {
	defer func() {
		if r := recover(); r != nil {
			schema, err = nil, &PanicError{Value: r}
		}
	}()
	return c.compiler.Compile(tc.Schema)
}

func validate(schema validator.Schema, v corpus.Vector) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return schema.Validate(v.Data)
}
