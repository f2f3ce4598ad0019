package dashboard

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/vendorlink/supplier-dashboard/internal/notice"
	"github.com/vendorlink/supplier-dashboard/internal/odata"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// genericFailureMessage is the single dashboard-level notice emitted when a
// fail-fast aggregation aborts.
const genericFailureMessage = "Something went wrong while fetching dashboard data. Please try again later."

// AggregationError is a failed joined aggregation. It wraps the fetch error
// that aborted the join.
type AggregationError struct {
	VendorCode string
	Err        error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregate dashboard for vendor %s: %v", e.VendorCode, e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}

// Fetcher is the entity-query contract the aggregator depends on.
type Fetcher interface {
	Fetch(ctx context.Context, entitySet, vendorCode string, params url.Values) ([]odata.Row, error)
}

// Aggregator fans out the four entity fetches for one vendor and joins them
// into a snapshot. The join is fail-fast and all-or-nothing: one failed
// fetch aborts the aggregation and no view model is produced. Callers that
// prefer partial availability use AggregateSettled instead.
type Aggregator struct {
	fetcher Fetcher
	engine  *Engine
	notices *notice.Center
	logger  *zap.Logger
}

// NewAggregator creates a dashboard aggregator.
func NewAggregator(fetcher Fetcher, engine *Engine, notices *notice.Center, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		engine:  engine,
		notices: notices,
		logger:  logger,
	}
}

// Aggregate fetches all four entity sets concurrently and transforms them
// into one snapshot. Any fetch failure cancels the remaining fetches,
// publishes one generic notice, and returns an *AggregationError.
func (a *Aggregator) Aggregate(ctx context.Context, vendorCode string) (*Snapshot, error) {
	a.logger.Debug("Starting dashboard aggregation", zap.String("vendor_code", vendorCode))

	var trendRows, productRows, orderRows, commitmentRows []odata.Row

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		trendRows, err = a.fetcher.Fetch(gctx, odata.EntityBusinessValueTrend, vendorCode, nil)
		return err
	})
	g.Go(func() (err error) {
		productRows, err = a.fetcher.Fetch(gctx, odata.EntityTopProducts, vendorCode, nil)
		return err
	})
	g.Go(func() (err error) {
		orderRows, err = a.fetcher.Fetch(gctx, odata.EntityTopOpenPurchaseOrders, vendorCode, nil)
		return err
	})
	g.Go(func() (err error) {
		commitmentRows, err = a.fetcher.Fetch(gctx, odata.EntityBusinessCommitments, vendorCode, nil)
		return err
	})

	if err := g.Wait(); err != nil {
		a.logger.Error("Dashboard aggregation failed",
			zap.String("vendor_code", vendorCode),
			zap.Error(err))
		a.notices.Errorf(genericFailureMessage)
		return nil, &AggregationError{VendorCode: vendorCode, Err: err}
	}

	snapshot := &Snapshot{
		BusinessTrend: a.engine.BusinessTrend(trendRows),
		TopProducts:   a.engine.TopProducts(productRows),
		OpenOrders:    a.engine.OpenOrders(orderRows),
		Commitments:   a.engine.Commitments(commitmentRows),
	}

	a.logger.Info("Dashboard aggregation complete",
		zap.String("vendor_code", vendorCode),
		zap.Int("products", len(snapshot.TopProducts)),
		zap.Int("open_orders", len(snapshot.OpenOrders)),
		zap.Int("commitments", len(snapshot.Commitments)))
	return snapshot, nil
}

// AggregateSettled fetches all four entity sets concurrently and reports a
// per-entity-set outcome instead of aborting on the first failure. Failed
// sets keep their view model in the empty shape. No generic notice is
// emitted; the per-entity transient notices from the fetch layer stand on
// their own.
func (a *Aggregator) AggregateSettled(ctx context.Context, vendorCode string) *SettledSnapshot {
	a.logger.Debug("Starting settled dashboard aggregation", zap.String("vendor_code", vendorCode))

	type outcome struct {
		rows []odata.Row
		err  error
	}
	entitySets := []string{
		odata.EntityBusinessValueTrend,
		odata.EntityTopProducts,
		odata.EntityTopOpenPurchaseOrders,
		odata.EntityBusinessCommitments,
	}

	outcomes := make([]outcome, len(entitySets))
	var wg sync.WaitGroup
	for i, entitySet := range entitySets {
		wg.Add(1)
		go func(i int, entitySet string) {
			defer wg.Done()
			rows, err := a.fetcher.Fetch(ctx, entitySet, vendorCode, nil)
			outcomes[i] = outcome{rows: rows, err: err}
		}(i, entitySet)
	}
	wg.Wait()

	settled := &SettledSnapshot{Complete: true}
	for i, entitySet := range entitySets {
		status := EntityStatus{EntitySet: entitySet, Loaded: outcomes[i].err == nil}
		if outcomes[i].err != nil {
			status.Error = outcomes[i].err.Error()
			settled.Complete = false
		}
		settled.Statuses = append(settled.Statuses, status)
	}

	settled.BusinessTrend = a.engine.BusinessTrend(outcomes[0].rows)
	settled.TopProducts = a.engine.TopProducts(outcomes[1].rows)
	settled.OpenOrders = a.engine.OpenOrders(outcomes[2].rows)
	settled.Commitments = a.engine.Commitments(outcomes[3].rows)
	return settled
}
