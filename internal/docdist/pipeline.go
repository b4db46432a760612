package docdist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"docdist/internal/logging"
	"docdist/internal/similarity"
	"docdist/internal/textutil"
	"docdist/internal/wordfreq"
)

// Document is a named, ordered sequence of lines.
type Document struct {
	Name  string
	Lines []string
}

// FromText splits text on newlines into a Document. A single trailing newline
// terminates the last line rather than starting an empty one, matching
// source.Read.
func FromText(name, text string) Document {
	if text == "" {
		return Document{Name: name}
	}
	text = strings.TrimSuffix(text, "\n")
	return Document{Name: name, Lines: strings.Split(text, "\n")}
}

// Profile summarizes one analyzed document.
type Profile struct {
	Name     string          `json:"name"`
	Lines    int             `json:"lines"`
	Words    int             `json:"words"`
	Distinct int             `json:"distinct_words"`
	Vector   wordfreq.Vector `json:"-"`
}

// Result is the outcome of comparing two documents.
type Result struct {
	RunID        string  `json:"run_id"`
	A            Profile `json:"a"`
	B            Profile `json:"b"`
	InnerProduct float64 `json:"inner_product"`
	Cosine       float64 `json:"cosine"`
	Angle        float64 `json:"angle"`
}

// Pipeline composes tokenizer, aggregation, ordering, and comparison.
type Pipeline struct {
	tokenizer textutil.Tokenizer
	logger    *slog.Logger
}

// New returns a pipeline. A nil logger discards diagnostics.
func New(tokenizer textutil.Tokenizer, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		tokenizer: tokenizer,
		logger:    logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Tokenizer returns the tokenizer the pipeline was built with.
func (p *Pipeline) Tokenizer() textutil.Tokenizer {
	return p.tokenizer
}

// Analyze builds the frequency vector and statistics for one document.
func (p *Pipeline) Analyze(ctx context.Context, doc Document) Profile {
	tokens := p.tokenizer.TokenizeLines(doc.Lines)
	vector := wordfreq.Order(wordfreq.Aggregate(tokens))
	profile := Profile{
		Name:     doc.Name,
		Lines:    len(doc.Lines),
		Words:    len(tokens),
		Distinct: vector.Len(),
		Vector:   vector,
	}
	logging.WithContext(ctx, p.logger).Debug("analyzed document",
		logging.String(logging.FieldDocument, doc.Name),
		logging.Int("lines", profile.Lines),
		logging.Int("words", profile.Words),
		logging.Int("distinct_words", profile.Distinct),
	)
	return profile
}

// Compare analyzes a and b concurrently and returns the angle between them.
// An empty document yields an error wrapping similarity.ErrDegenerateVector;
// the returned Result then still carries both profiles and the run ID.
func (p *Pipeline) Compare(ctx context.Context, a, b Document) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ensureRunID(ctx)

	var pa, pb Profile
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		pa = p.Analyze(gctx, a)
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		pb = p.Analyze(gctx, b)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	result, err := p.compareProfiles(ctx, pa, pb)
	if err != nil {
		logging.WarnWithContext(ctx, p.logger, "comparison failed", "comparison_failed",
			logging.String("a", pa.Name), logging.String("b", pb.Name), logging.Error(err))
		return result, err
	}
	logging.WithContext(ctx, p.logger).Info("compared documents",
		logging.String("a", pa.Name),
		logging.String("b", pb.Name),
		logging.Float64("angle", result.Angle),
	)
	return result, nil
}

func (p *Pipeline) compareProfiles(ctx context.Context, pa, pb Profile) (Result, error) {
	runID, _ := logging.RunIDFromContext(ctx)
	result := Result{RunID: runID, A: pa, B: pb}
	m, err := similarity.Measure(pa.Vector, pb.Vector)
	if err != nil {
		return result, describeComparisonError(err, pa.Name, pb.Name)
	}
	result.InnerProduct = m.InnerProduct
	result.Cosine = m.Cosine
	result.Angle = m.Angle
	return result, nil
}

func describeComparisonError(err error, nameA, nameB string) error {
	var degenerate *similarity.DegenerateVectorError
	if errors.As(err, &degenerate) {
		switch degenerate.Side {
		case "a":
			return fmt.Errorf("document %s has no words; angle is undefined: %w", nameA, err)
		case "b":
			return fmt.Errorf("document %s has no words; angle is undefined: %w", nameB, err)
		default:
			return fmt.Errorf("documents %s and %s have no words; angle is undefined: %w", nameA, nameB, err)
		}
	}
	return fmt.Errorf("compare %s and %s: %w", nameA, nameB, err)
}

func ensureRunID(ctx context.Context) context.Context {
	if _, ok := logging.RunIDFromContext(ctx); ok {
		return ctx
	}
	return logging.WithRunID(ctx, uuid.NewString())
}

// CompareDocuments returns the angle between two texts using the ASCII tokenizer.
func CompareDocuments(textA, textB string) (float64, error) {
	p := New(textutil.NewTokenizer(textutil.PolicyASCII), nil)
	result, err := p.Compare(context.Background(), FromText("a", textA), FromText("b", textB))
	if err != nil {
		return 0, err
	}
	return result.Angle, nil
}
