package reporting

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Service computes report snapshots from the marketplace public API. Failed
// upstream calls degrade to empty sections, never to an error.
type Service struct {
	client  Client
	workers int
	topSize int
	logger  *slog.Logger
}

// NewService constructs the report builder.
func NewService(client Client, workers, topSize int, logger *slog.Logger) *Service {
	if workers <= 0 {
		workers = 1
	}
	if topSize <= 0 {
		topSize = 1
	}
	return &Service{client: client, workers: workers, topSize: topSize, logger: logger}
}

// BuildSnapshot assembles a full report in one pass.
func (s *Service) BuildSnapshot(ctx context.Context) *Snapshot {
	snapshot := &Snapshot{RefreshedAt: time.Now()}

	reputations, err := s.client.Reputations(ctx)
	if err != nil {
		s.logger.Error("fetch reputations failed", slog.String("error", err.Error()))
	} else {
		snapshot.TopSellers = s.topSellers(reputations)
		snapshot.TopBuyers = s.topBuyers(reputations)
	}

	products, err := s.client.Products(ctx)
	if err != nil {
		s.logger.Error("fetch products failed", slog.String("error", err.Error()))
		return snapshot
	}
	snapshot.BestSelling = s.bestSelling(ctx, products)
	snapshot.Categories = s.categoryRollups(ctx, products)
	return snapshot
}

// OrdersCount passes the query through to the marketplace.
func (s *Service) OrdersCount(ctx context.Context, accountID int64) (uint32, error) {
	return s.client.OrdersCount(ctx, accountID)
}

func (s *Service) topSellers(entries []ReputationEntry) []AccountRating {
	return s.ranking(entries, func(e ReputationEntry) *uint64 { return e.AsSellerAverage })
}

func (s *Service) topBuyers(entries []ReputationEntry) []AccountRating {
	return s.ranking(entries, func(e ReputationEntry) *uint64 { return e.AsBuyerAverage })
}

// ranking keeps accounts that have an average in the requested slot, orders
// them by average descending with account id as the tiebreaker, and truncates
// to the configured top size.
func (s *Service) ranking(entries []ReputationEntry, average func(ReputationEntry) *uint64) []AccountRating {
	rated := make([]AccountRating, 0, len(entries))
	for _, e := range entries {
		avg := average(e)
		if avg == nil {
			continue
		}
		rated = append(rated, AccountRating{Account: e.Account, Average: *avg})
	}
	sort.Slice(rated, func(i, j int) bool {
		if rated[i].Average != rated[j].Average {
			return rated[i].Average > rated[j].Average
		}
		return rated[i].Account < rated[j].Account
	})
	if len(rated) > s.topSize {
		rated = rated[:s.topSize]
	}
	return rated
}

// bestSelling fans the per-product sales queries out over the worker pool.
func (s *Service) bestSelling(ctx context.Context, products []ProductEntry) []ProductSales {
	if len(products) == 0 {
		return nil
	}

	jobs := make(chan ProductEntry)
	results := make(chan ProductSales, len(products))

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for product := range jobs {
				sales, err := s.client.ProductSales(ctx, product.ID)
				if err != nil {
					s.logger.Error("fetch product sales failed",
						slog.Uint64("product", product.ID),
						slog.String("error", err.Error()),
					)
					continue
				}
				results <- ProductSales{ProductID: product.ID, Name: product.Name, Sales: sales}
			}
		}()
	}

	for _, product := range products {
		jobs <- product
	}
	close(jobs)
	wg.Wait()
	close(results)

	ranked := make([]ProductSales, 0, len(products))
	for entry := range results {
		ranked = append(ranked, entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Sales != ranked[j].Sales {
			return ranked[i].Sales > ranked[j].Sales
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})
	return ranked
}

func (s *Service) categoryRollups(ctx context.Context, products []ProductEntry) []CategoryRollup {
	seen := make(map[string]bool)
	categories := make([]string, 0, len(products))
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)

	rollups := make([]CategoryRollup, 0, len(categories))
	for _, category := range categories {
		rollup, err := s.client.CategoryStats(ctx, category)
		if err != nil {
			s.logger.Error("fetch category stats failed",
				slog.String("category", category),
				slog.String("error", err.Error()),
			)
			continue
		}
		rollups = append(rollups, *rollup)
	}
	return rollups
}
