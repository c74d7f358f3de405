package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"benefits-server/api/catalog"
	"benefits-server/dao/redis"
	"benefits-server/logger"
	"benefits-server/models/benefit"
	"benefits-server/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// benefitIDNamespace seeds the name based IDs of benefits the catalog
// publishes without one.
var benefitIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:benefits-server:benefit"))

// BenefitsRefresherService periodically mirrors the upstream catalog into redis.
type BenefitsRefresherService struct {
	benefitDao *redis.RedisBenefitDAO
	catalogAPI catalog.CatalogAPI
	maxPages   int
	log        *zap.Logger
}

// NewBenefitsRefresherService constructs a new refresher. maxPages bounds a
// single refresh; zero or less means no bound.
func NewBenefitsRefresherService(
	benefitDao *redis.RedisBenefitDAO,
	catalogAPI catalog.CatalogAPI,
	maxPages int,
) *BenefitsRefresherService {
	return &BenefitsRefresherService{
		benefitDao: benefitDao,
		catalogAPI: catalogAPI,
		maxPages:   maxPages,
		log:        logger.Named("BenefitsRefresherService"),
	}
}

// BenefitID returns the deterministic ID of a benefit: its catalog ID when
// present, otherwise a UUIDv5 over bank, merchant and discount.
func BenefitID(b benefit.Benefit) string {
	if id := strings.TrimSpace(b.ID); id != "" {
		return id
	}
	name := strings.ToLower(strings.TrimSpace(b.Bank)) + "|" +
		strings.ToLower(strings.TrimSpace(b.MerchantName)) + "|" +
		strconv.Itoa(b.DiscountPercent)
	return uuid.NewSHA1(benefitIDNamespace, []byte(name)).String()
}

// StartPeriodicJob launches the background loop at the given interval. It
// stops when ctx is done.
func (br *BenefitsRefresherService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go br.startPeriodicJob(ctx, interval)
}

func (br *BenefitsRefresherService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			br.log.Info("Stopping periodic benefits refresher job")
			return
		case <-ticker.C:
			br.log.Info("Running periodic benefits refresher job")
			if n, err := br.RefreshBenefitsData(ctx); err != nil {
				br.log.Error("RefreshBenefitsData returned error", zap.Error(err))
			} else {
				br.log.Info("RefreshBenefitsData completed successfully", zap.Int("benefits", n))
			}
		}
	}
}

// RefreshBenefitsData pulls every catalog page, dedupes the benefits by ID
// and upserts them. Once the whole catalog was read, stored benefits that
// are no longer published are removed. It returns the number of benefits
// stored.
func (br *BenefitsRefresherService) RefreshBenefitsData(ctx context.Context) (int, error) {
	seen := make(map[string]struct{})
	stored := 0

	page := 1
	for fetched := 0; page != 0; fetched++ {
		if br.maxPages > 0 && fetched == br.maxPages {
			br.log.Warn("Reached catalog page limit, skipping stale cleanup", zap.Int("max_pages", br.maxPages))
			return stored, nil
		}
		if err := ctx.Err(); err != nil {
			return stored, err
		}

		resp, err := br.catalogAPI.GetBenefitsPage(ctx, page)
		if err != nil {
			return stored, fmt.Errorf("failed to fetch catalog page %d: %w", page, err)
		}
		util.LogCatalogResponsePartially(resp)

		for _, b := range resp.Benefits {
			b.ID = BenefitID(b)
			if _, dup := seen[b.ID]; dup {
				br.log.Debug("Skipping duplicate benefit", zap.String("benefit_id", b.ID))
				continue
			}
			seen[b.ID] = struct{}{}

			if b.Lat == 0 && b.Lon == 0 {
				br.log.Warn("Skipping benefit without location", zap.String("benefit", b.ToString()))
				continue
			}
			if err := br.benefitDao.UpsertBenefit(ctx, b); err != nil {
				br.log.Error("Upsert failed", zap.String("benefit_id", b.ID), zap.Error(err))
				continue
			}
			stored++
		}

		if resp.NextPage != 0 && resp.NextPage <= page {
			return stored, fmt.Errorf("catalog page %d points back to page %d", page, resp.NextPage)
		}
		page = resp.NextPage
	}

	br.removeStale(ctx, seen)
	return stored, nil
}

func (br *BenefitsRefresherService) removeStale(ctx context.Context, seen map[string]struct{}) {
	ids, err := br.benefitDao.ListBenefitIDs(ctx)
	if err != nil {
		br.log.Error("Error listing stored benefit IDs", zap.Error(err))
		return
	}
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		if err := br.benefitDao.DeleteBenefit(ctx, id); err != nil {
			br.log.Error("Failed to delete stale benefit", zap.String("benefit_id", id), zap.Error(err))
		}
	}
}
