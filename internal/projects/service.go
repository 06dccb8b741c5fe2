package projects

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"blockedge/co2e-dashboard/dashboard-backend/internal/cache"
	"blockedge/co2e-dashboard/dashboard-backend/internal/catalog"
	"blockedge/co2e-dashboard/dashboard-backend/internal/explorer"
	"blockedge/co2e-dashboard/dashboard-backend/internal/fallback"
	"blockedge/co2e-dashboard/dashboard-backend/internal/pricing"
	"blockedge/co2e-dashboard/dashboard-backend/pkg/tokenmath"
)

// Sentinel errors surfaced to the HTTP layer.
var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrCertificateNotFound = errors.New("certificate not found")
)

const projectsCacheKey = "projects"

// tokenFetchConcurrency bounds parallel explorer calls during a full refresh.
const tokenFetchConcurrency = 8

// CatalogClient fetches the static project catalog.
type CatalogClient interface {
	FetchCatalog(ctx context.Context) (*catalog.Catalog, error)
}

// ExplorerClient provides per-contract data from the chain explorer.
type ExplorerClient interface {
	TokenInfo(ctx context.Context, address string) (*explorer.TokenInfo, error)
	TokenInstance(ctx context.Context, address, tokenID string) (*explorer.NFTInstance, error)
	TokenTransferCount(ctx context.Context, address string) (int64, error)
}

// Service exposes the dashboard's project accessors.
type Service interface {
	GetProjects(ctx context.Context) ([]*ProjectData, error)
	GetProjectByID(ctx context.Context, id string) (*ProjectData, error)
	GetCertificateMetadata(ctx context.Context, certAddress, tokenID string) (*NFTMetadata, error)
	Refresh(ctx context.Context) ([]*ProjectData, error)
	ClearCaches()
	CacheStatus() CacheStatus
}

type service struct {
	catalog  CatalogClient
	explorer ExplorerClient

	projectsCache *cache.Cache[[]*ProjectData]
	nftCache      *cache.Cache[*NFTMetadata]

	logger *zap.Logger
}

// NewService creates the project service with its injected caches.
func NewService(
	catalogClient CatalogClient,
	explorerClient ExplorerClient,
	projectsCache *cache.Cache[[]*ProjectData],
	nftCache *cache.Cache[*NFTMetadata],
	logger *zap.Logger,
) Service {
	return &service{
		catalog:       catalogClient,
		explorer:      explorerClient,
		projectsCache: projectsCache,
		nftCache:      nftCache,
		logger:        logger,
	}
}

// GetProjects returns the full project list, refetching when the cached list
// has gone stale. A catalog failure is fatal to the whole call; a per-project
// token lookup failure degrades only that project to estimated figures.
func (s *service) GetProjects(ctx context.Context) ([]*ProjectData, error) {
	return s.projectsCache.GetOrFetch(ctx, projectsCacheKey, s.fetchAll)
}

// GetProjectByID returns one project from the (possibly refreshed) list.
func (s *service) GetProjectByID(ctx context.Context, id string) (*ProjectData, error) {
	list, err := s.GetProjects(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrProjectNotFound
}

// GetCertificateMetadata returns a certificate NFT's metadata, cached on its
// own longer TTL.
func (s *service) GetCertificateMetadata(ctx context.Context, certAddress, tokenID string) (*NFTMetadata, error) {
	key := certAddress + "/" + tokenID
	return s.nftCache.GetOrFetch(ctx, key, func(ctx context.Context) (*NFTMetadata, error) {
		instance, err := s.explorer.TokenInstance(ctx, certAddress, tokenID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch certificate %s: %w", key, err)
		}
		if instance == nil {
			return nil, ErrCertificateNotFound
		}
		return &NFTMetadata{
			ContractAddress: certAddress,
			TokenID:         tokenID,
			ImageURL:        instance.ImageURL,
			Attributes:      instance.Metadata,
		}, nil
	})
}

// Refresh drops the project cache and rebuilds the list immediately.
func (s *service) Refresh(ctx context.Context) ([]*ProjectData, error) {
	s.projectsCache.Clear()
	return s.GetProjects(ctx)
}

// ClearCaches empties every cache the service owns.
func (s *service) ClearCaches() {
	s.projectsCache.Clear()
	s.nftCache.Clear()
}

// CacheStatus reports entry counts and TTLs for the status endpoint.
func (s *service) CacheStatus() CacheStatus {
	return CacheStatus{
		Projects: CacheInfo{
			Entries: s.projectsCache.Len(),
			TTL:     s.projectsCache.TTL().String(),
			Keys:    s.projectsCache.Keys(),
		},
		NFTMetadata: CacheInfo{
			Entries: s.nftCache.Len(),
			TTL:     s.nftCache.TTL().String(),
			Keys:    s.nftCache.Keys(),
		},
	}
}

// record pairs a catalog project with its standard for the transform step.
type record struct {
	project  catalog.Project
	standard catalog.Standard
	code     string
}

// fetchAll builds the full project list from the catalog and the explorer.
func (s *service) fetchAll(ctx context.Context) ([]*ProjectData, error) {
	cat, err := s.catalog.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load project catalog: %w", err)
	}

	// Flatten in a stable order so refreshes don't reshuffle the dashboard.
	codes := make([]string, 0, len(cat.CarbonCreditProjects))
	for code := range cat.CarbonCreditProjects {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var records []record
	for _, code := range codes {
		std := cat.CarbonCreditProjects[code]
		for _, p := range std.Projects {
			records = append(records, record{project: p, standard: std, code: code})
		}
	}

	// Fetch token data for every record concurrently. A failed or empty
	// lookup leaves infos[i] nil and that record falls back to estimates;
	// the group itself never errors. Transfer counts ride along for records
	// with on-chain data and degrade to zero on their own failures.
	infos := make([]*explorer.TokenInfo, len(records))
	transfers := make([]int64, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(tokenFetchConcurrency)
	for i, rec := range records {
		g.Go(func() error {
			info, err := s.explorer.TokenInfo(gctx, rec.project.Token)
			if err != nil {
				s.logger.Warn("Token lookup failed, using estimated figures",
					zap.String("project_id", rec.project.ProjectID),
					zap.String("token", rec.project.Token),
					zap.Error(err))
				return nil
			}
			if info == nil {
				return nil
			}
			infos[i] = info

			count, err := s.explorer.TokenTransferCount(gctx, rec.project.Token)
			if err != nil {
				s.logger.Debug("Transfer count unavailable",
					zap.String("token", rec.project.Token), zap.Error(err))
				return nil
			}
			transfers[i] = count
			return nil
		})
	}
	_ = g.Wait()

	list := make([]*ProjectData, len(records))
	onchain := 0
	for i, rec := range records {
		list[i] = s.convertToProjectData(rec, infos[i])
		list[i].Transfers = transfers[i]
		if list[i].DataSource == DataSourceOnChain {
			onchain++
		}
	}

	s.logger.Info("Project list rebuilt",
		zap.Int("total", len(list)),
		zap.Int("onchain", onchain),
		zap.Int("estimated", len(list)-onchain))

	return list, nil
}

// convertToProjectData shapes one catalog record into a ProjectData. With
// usable token info the figures come from chain data; otherwise the fallback
// generator fills them in.
func (s *service) convertToProjectData(rec record, info *explorer.TokenInfo) *ProjectData {
	p := &ProjectData{
		ID:           rec.project.ProjectID,
		Name:         rec.project.ProjectName,
		Type:         rec.project.Type,
		Location:     rec.project.Location,
		Country:      rec.project.Country,
		TokenAddress: rec.project.Token,
		CertAddress:  rec.project.Cert,
		Registry:     rec.standard.Registry,
		Methodology:  methodologyFor(rec),
		Compliance:   complianceFor(rec.standard, rec.code),
	}

	if info != nil {
		if s.applyTokenInfo(p, info) {
			return p
		}
		// Malformed supply counts as degraded data, same as a 404.
		s.logger.Warn("Unusable token supply, using estimated figures",
			zap.String("project_id", p.ID),
			zap.String("raw_supply", info.TotalSupply))
	}

	applyFallback(p)
	return p
}

// applyTokenInfo fills supply and derived metrics from explorer data.
// Returns false when the raw supply cannot be parsed.
func (s *service) applyTokenInfo(p *ProjectData, info *explorer.TokenInfo) bool {
	decimals := tokenmath.DefaultDecimals
	if d, err := strconv.Atoi(info.Decimals); err == nil && d > 0 {
		decimals = d
	}

	formatted, err := tokenmath.FormatUnits(info.TotalSupply, decimals)
	if err != nil {
		return false
	}
	tokens, err := tokenmath.Tokens(info.TotalSupply, decimals)
	if err != nil {
		return false
	}

	// The explorer exposes no retirement breakdown, so the full supply reads
	// as available; retirement shows up as the supply shrinking over time.
	p.Supply = Supply{Total: tokens, Available: tokens, Retired: 0}
	p.CO2Reduction = CO2Reduction{
		Total:  formatted,
		Annual: formatTons(tokens / 10),
		Unit:   "tCO2e",
	}
	p.Pricing = Pricing{CurrentPrice: pricing.PricePerTon(p.Methodology), Currency: pricing.Currency}
	p.InvestmentEstimate = pricing.InvestmentEstimate(tokens, p.Methodology)
	if h, err := strconv.ParseInt(info.HoldersCount, 10, 64); err == nil {
		p.Holders = h
	}
	p.DataSource = DataSourceOnChain
	return true
}

// applyFallback fills supply and derived metrics from generated estimates.
func applyFallback(p *ProjectData) {
	m := fallback.Generate(p.ID, p.Name, p.Registry)

	p.Supply = Supply{Total: m.TotalSupply, Available: m.Available, Retired: m.Retired}
	p.CO2Reduction = CO2Reduction{
		Total:  formatTons(m.CO2Total),
		Annual: formatTons(m.CO2Annual),
		Unit:   "tCO2e",
	}
	p.Pricing = Pricing{CurrentPrice: pricing.PricePerTon(p.Methodology), Currency: pricing.Currency}
	p.InvestmentEstimate = pricing.InvestmentEstimate(m.TotalSupply, p.Methodology)
	p.DataSource = DataSourceEstimated
}

func methodologyFor(rec record) string {
	if rec.project.Methodology != "" {
		return rec.project.Methodology
	}
	return rec.code
}

func complianceFor(std catalog.Standard, code string) []string {
	out := []string{code}
	if std.StandardName != "" {
		out = append(out, std.StandardName)
	}
	if std.Registry != "" {
		out = append(out, std.Registry)
	}
	return out
}

func formatTons(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
