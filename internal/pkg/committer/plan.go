// Package committer batches Spanner mutations and writes them in one commit.
//
// Repositories only produce mutations. The cart store collects them into a
// CommitPlan and commits it guarded by the cart row's version:
//
//	plan := committer.NewPlan()
//	plan.AddMultiple(muts)
//	err := comm.ApplyWithVersionCheck(ctx, m_cart.TableName, spanner.Key{id}, version, plan)
package committer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"
)

// versionColumn is the optimistic-lock column every guarded table carries.
const versionColumn = "version"

// ErrVersionConflict means the guarded row moved past the version the caller
// loaded. Callers reload and retry.
var ErrVersionConflict = errors.New("optimistic lock conflict: row was modified concurrently")

// CommitPlan accumulates the mutations of one logical write.
type CommitPlan struct {
	muts []*spanner.Mutation
}

func NewPlan() *CommitPlan {
	return &CommitPlan{}
}

// Add appends m, skipping nil so repositories can return "nothing to do".
func (p *CommitPlan) Add(m *spanner.Mutation) {
	if m == nil {
		return
	}
	p.muts = append(p.muts, m)
}

func (p *CommitPlan) AddMultiple(ms []*spanner.Mutation) {
	for _, m := range ms {
		p.Add(m)
	}
}

func (p *CommitPlan) Mutations() []*spanner.Mutation { return p.muts }
func (p *CommitPlan) IsEmpty() bool                   { return len(p.muts) == 0 }
func (p *CommitPlan) Count() int                      { return len(p.muts) }

// Committer writes plans through a Spanner client.
type Committer struct {
	client *spanner.Client
}

func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply commits the plan unconditionally. An empty plan is a no-op.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}
	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("commit %d mutations: %w", plan.Count(), err)
	}
	return nil
}

// ApplyWithVersionCheck commits the plan only while the row at key still has
// expected in its version column. An absent row counts as version 0, so a
// brand new cart commits with expected == 0.
func (c *Committer) ApplyWithVersionCheck(ctx context.Context, table string, key spanner.Key, expected int64, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	_, err := c.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		current, err := readVersion(ctx, txn, table, key)
		if err != nil {
			return err
		}
		if current != expected {
			return fmt.Errorf("%w: %s %v at version %d, expected %d", ErrVersionConflict, table, key, current, expected)
		}
		return txn.BufferWrite(plan.Mutations())
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrVersionConflict):
		return err
	case strings.Contains(err.Error(), ErrVersionConflict.Error()):
		// spanner may re-wrap what the transaction body returned
		return fmt.Errorf("%w: %v", ErrVersionConflict, err)
	default:
		return fmt.Errorf("guarded commit on %s: %w", table, err)
	}
}

func readVersion(ctx context.Context, txn *spanner.ReadWriteTransaction, table string, key spanner.Key) (int64, error) {
	row, err := txn.ReadRow(ctx, table, key, []string{versionColumn})
	if spanner.ErrCode(err) == codes.NotFound {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s version: %w", table, err)
	}
	var v int64
	if err := row.Column(0, &v); err != nil {
		return 0, fmt.Errorf("decode %s version: %w", table, err)
	}
	return v, nil
}
