package docdist

import (
	"context"
	"errors"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"docdist/internal/logging"
)

// Cell holds the angle between two documents of a Matrix. Pairs involving an
// empty document carry an error instead of an angle.
type Cell struct {
	Angle float64 `json:"angle"`
	Error string  `json:"error,omitempty"`
	err   error
}

// Err returns the comparison error for this pair, if any.
func (c Cell) Err() error { return c.err }

// Defined reports whether the pair has an angle.
func (c Cell) Defined() bool { return c.err == nil }

// Matrix is the symmetric table of pairwise angles for a document set.
type Matrix struct {
	RunID    string    `json:"run_id"`
	Profiles []Profile `json:"documents"`
	Cells    [][]Cell  `json:"angles"`
}

// Size returns the number of documents.
func (m *Matrix) Size() int { return len(m.Profiles) }

// At returns the cell for documents i and j.
func (m *Matrix) At(i, j int) Cell { return m.Cells[i][j] }

// Nearest returns the document closest to i. ok is false when no other
// document has a defined angle to i.
func (m *Matrix) Nearest(i int) (j int, angle float64, ok bool) {
	best, bestAngle := -1, math.Inf(1)
	for k := range m.Profiles {
		if k == i || !m.Cells[i][k].Defined() {
			continue
		}
		if a := m.Cells[i][k].Angle; a < bestAngle {
			best, bestAngle = k, a
		}
	}
	if best < 0 {
		return -1, 0, false
	}
	return best, bestAngle, true
}

// CompareAll analyzes every document once and fills in all pairwise angles.
// Empty documents do not abort the run; their cells record the error.
func (p *Pipeline) CompareAll(ctx context.Context, docs []Document) (*Matrix, error) {
	if len(docs) < 2 {
		return nil, errors.New("compare all: at least two documents are required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ensureRunID(ctx)

	profiles := make([]Profile, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			profiles[i] = p.Analyze(gctx, doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	runID, _ := logging.RunIDFromContext(ctx)
	m := &Matrix{RunID: runID, Profiles: profiles, Cells: make([][]Cell, len(docs))}
	for i := range m.Cells {
		m.Cells[i] = make([]Cell, len(docs))
	}
	for i := range profiles {
		for j := i; j < len(profiles); j++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			cell := p.compareCell(ctx, profiles[i], profiles[j])
			m.Cells[i][j] = cell
			m.Cells[j][i] = cell
		}
	}
	logging.WithContext(ctx, p.logger).Info("compared document set", logging.Int("documents", len(docs)))
	return m, nil
}

func (p *Pipeline) compareCell(ctx context.Context, a, b Profile) Cell {
	result, err := p.compareProfiles(ctx, a, b)
	if err != nil {
		return Cell{Error: err.Error(), err: err}
	}
	return Cell{Angle: result.Angle}
}
