package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/karigar-cli/internal/core/domain"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driven"
	"github.com/custodia-labs/karigar-cli/internal/core/ports/driving"
	"github.com/custodia-labs/karigar-cli/internal/logger"
)

// Ensure DirectoryService implements the interface.
var _ driving.DirectoryService = (*DirectoryService)(nil)

// DirectoryService aggregates professional counts over the static taxonomy
// and holds the browse screen's search and expansion state.
type DirectoryService struct {
	taxonomy *domain.Taxonomy
	counter  driven.ProfessionalCounter
	api      driven.MarketplaceAPI
	sessions *SessionManager
	metrics  driven.MetricsRecorder

	mu          sync.Mutex
	concurrency int
	limiter     *rate.Limiter
	cacheTTL    time.Duration
	listings    *gocache.Cache
	counts     domain.Counts
	expanded   map[string]bool
	generation uint64
	cancel     context.CancelFunc
}

// NewDirectoryService creates a new directory service.
// api and sessions may be nil when only counts are needed.
func NewDirectoryService(
	taxonomy *domain.Taxonomy,
	counter driven.ProfessionalCounter,
	api driven.MarketplaceAPI,
	sessions *SessionManager,
	metrics driven.MetricsRecorder,
	settings domain.DirectorySettings,
) *DirectoryService {
	s := &DirectoryService{
		taxonomy: taxonomy,
		counter:  counter,
		api:      api,
		sessions: sessions,
		metrics:  metricsOrNop(metrics),
		counts:   domain.NewCounts(),
		expanded: make(map[string]bool),
	}
	s.Configure(settings)
	return s
}

// Configure applies new throttling and cache settings. A refresh already
// in flight keeps the settings it started with. Changing the cache TTL
// drops every cached listing.
func (s *DirectoryService) Configure(settings domain.DirectorySettings) {
	concurrency := settings.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	limit := rate.Inf
	if settings.RequestsPerSecond > 0 {
		limit = rate.Limit(settings.RequestsPerSecond)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.concurrency = concurrency
	s.limiter = rate.NewLimiter(limit, concurrency)
	if settings.CacheTTL != s.cacheTTL {
		s.cacheTTL = settings.CacheTTL
		s.listings = nil
		if settings.CacheTTL > 0 {
			s.listings = gocache.New(settings.CacheTTL, 2*settings.CacheTTL)
		}
	}
}

// Categories returns every service category in declaration order.
func (s *DirectoryService) Categories() []domain.ServiceCategory {
	return s.taxonomy.Categories()
}

// Services returns the countable services of category: its resolved list
// without the sentinel.
func (s *DirectoryService) Services(category string) []domain.Option {
	list := s.taxonomy.Services(category)
	out := make([]domain.Option, 0, len(list))
	for _, o := range list {
		if o.Value != domain.SentinelService {
			out = append(out, o)
		}
	}
	return out
}

// RefreshCounts fetches the count of every distinct service once and sums
// them per category. A failed fetch counts as 0 and is listed in
// Counts.Failed; it never fails the refresh.
//
// Starting a refresh supersedes any refresh still in flight: the older one
// is cancelled, its results are discarded and it returns
// domain.ErrRefreshSuperseded.
func (s *DirectoryService) RefreshCounts(ctx context.Context) (domain.Counts, error) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	concurrency, limiter := s.concurrency, s.limiter
	s.mu.Unlock()
	defer cancel()

	services := s.countableServices()
	logger.Debug("refreshing counts for %d services", len(services))

	var (
		resMu   sync.Mutex
		results = make(map[string]int, len(services))
		failed  []string
	)

	g, gctx := errgroup.WithContext(runCtx)
	g.SetLimit(concurrency)
	for _, service := range services {
		g.Go(func() error {
			n, err := s.fetchCount(gctx, limiter, service)
			resMu.Lock()
			defer resMu.Unlock()
			if err != nil {
				failed = append(failed, service)
				results[service] = 0
				return nil
			}
			results[service] = n
			return nil
		})
	}
	_ = g.Wait()

	counts := s.aggregate(results)
	sort.Strings(failed)
	counts.Failed = failed

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		logger.Debug("count refresh %d superseded", gen)
		return counts, domain.ErrRefreshSuperseded
	}
	s.cancel = nil
	if err := ctx.Err(); err != nil {
		return counts, err
	}
	s.counts = counts
	if counts.Degraded() {
		logger.Warn("counts degraded for %d of %d services", len(failed), len(services))
	}
	return cloneCounts(counts), nil
}

// OnActivate re-runs the count refresh whenever the browse screen becomes visible.
func (s *DirectoryService) OnActivate(ctx context.Context) (domain.Counts, error) {
	return s.RefreshCounts(ctx)
}

// Counts returns the last committed counts.
func (s *DirectoryService) Counts() domain.Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCounts(s.counts)
}

// Search returns the labels of categories whose own label, or any of whose
// standard service labels, contains query case-insensitively. The sentinel
// entry every category resolves to never makes a category match. Labels
// appear once, in declaration order. An empty query matches every category.
func (s *DirectoryService) Search(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []string{}
	seen := make(map[string]bool)
	for _, c := range s.taxonomy.Categories() {
		if seen[c.Label] || !categoryMatches(c, q) {
			continue
		}
		seen[c.Label] = true
		out = append(out, c.Label)
	}
	return out
}

func categoryMatches(c domain.ServiceCategory, q string) bool {
	if q == "" || strings.Contains(strings.ToLower(c.Label), q) {
		return true
	}
	for _, svc := range c.Services {
		if svc.Value == domain.SentinelService {
			continue
		}
		if strings.Contains(strings.ToLower(svc.Label), q) {
			return true
		}
	}
	return false
}

// ToggleExpanded flips a category row and returns its new state.
// The sentinel category is a navigation shortcut and stays collapsed.
func (s *DirectoryService) ToggleExpanded(category string) bool {
	if domain.IsSentinelCategory(category) {
		return false
	}
	if c, ok := s.taxonomy.Category(category); ok {
		if domain.IsSentinelCategory(c.Label) || domain.IsSentinelCategory(c.Value) {
			return false
		}
		category = c.Label
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.expanded[category] = !s.expanded[category]
	return s.expanded[category]
}

// IsExpanded reports a category row's state.
func (s *DirectoryService) IsExpanded(category string) bool {
	if c, ok := s.taxonomy.Category(category); ok {
		category = c.Label
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expanded[category]
}

// Professionals lists the professionals offering serviceName. category
// narrows matches of the sentinel service, which spans every category.
// Listings are reused for the configured cache TTL.
func (s *DirectoryService) Professionals(
	ctx context.Context,
	serviceName, category string,
) ([]domain.ProfessionalRecord, error) {
	if s.api == nil {
		return nil, domain.ErrNotFound
	}
	if strings.TrimSpace(serviceName) == "" {
		return nil, fmt.Errorf("%w: service name is required", domain.ErrInvalidInput)
	}

	query := domain.ProfessionalQuery{ServiceName: serviceName, ServiceCategory: category}
	key := query.ServiceName + "\x00" + query.ServiceCategory

	s.mu.Lock()
	listings := s.listings
	s.mu.Unlock()

	if listings != nil {
		if cached, ok := listings.Get(key); ok {
			return cloneRecords(cached.([]domain.ProfessionalRecord)), nil
		}
	}

	records, err := s.api.ListProfessionals(ctx, query)
	s.metrics.ObserveRequest("list_professionals", err)
	if err != nil {
		if s.sessions != nil {
			return nil, s.sessions.Guard(ctx, err)
		}
		return nil, err
	}

	if listings != nil {
		listings.SetDefault(key, cloneRecords(records))
	}
	return records, nil
}

// countableServices returns each distinct non-sentinel service value of
// every non-sentinel category, in declaration order.
func (s *DirectoryService) countableServices() []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range s.taxonomy.Categories() {
		if domain.IsSentinelCategory(c.Label) || domain.IsSentinelCategory(c.Value) {
			continue
		}
		for _, svc := range c.Services {
			if svc.Value == domain.SentinelService || seen[svc.Value] {
				continue
			}
			seen[svc.Value] = true
			out = append(out, svc.Value)
		}
	}
	return out
}

func (s *DirectoryService) fetchCount(ctx context.Context, limiter *rate.Limiter, service string) (int, error) {
	if err := limiter.Wait(ctx); err != nil {
		logger.Debug("count fetch for %q not started: %v", service, err)
		return 0, err
	}
	n, err := s.counter.CountProfessionals(ctx, service)
	s.metrics.ObserveRequest("count_professionals", err)
	if err != nil {
		if ctx.Err() != nil {
			// Cancelled along with its refresh; not a degraded count.
			return 0, err
		}
		s.metrics.CountFetchFailed(service)
		logger.Warn("count fetch for %q failed: %v", service, err)
		return 0, err
	}
	return n, nil
}

// aggregate sums service counts per category. The sentinel category is
// pinned to 0 regardless of its children.
func (s *DirectoryService) aggregate(results map[string]int) domain.Counts {
	counts := domain.NewCounts()
	for service, n := range results {
		counts.Services[service] = n
	}
	for _, c := range s.taxonomy.Categories() {
		if domain.IsSentinelCategory(c.Label) || domain.IsSentinelCategory(c.Value) {
			counts.Categories[c.Label] = 0
			continue
		}
		total := 0
		for _, svc := range c.Services {
			if svc.Value == domain.SentinelService {
				continue
			}
			total += results[svc.Value]
		}
		counts.Categories[c.Label] = total
	}
	return counts
}

func cloneCounts(c domain.Counts) domain.Counts {
	out := domain.NewCounts()
	for k, v := range c.Services {
		out.Services[k] = v
	}
	for k, v := range c.Categories {
		out.Categories[k] = v
	}
	out.Failed = append([]string(nil), c.Failed...)
	return out
}

func cloneRecords(r []domain.ProfessionalRecord) []domain.ProfessionalRecord {
	return append([]domain.ProfessionalRecord(nil), r...)
}
