package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"benefits-server/config"
	"benefits-server/db"
	"benefits-server/logger"
	"benefits-server/models/benefit"

	"go.uber.org/zap"
)

// RedisBenefitDAO stores raw benefit records in a redis geo index. Parsed
// day availability is never written here.
type RedisBenefitDAO struct {
	client db.RedisClient
	log    *zap.Logger
}

// NewRedisBenefitDAO initializes a RedisBenefitDAO with the Redis client.
func NewRedisBenefitDAO(client db.RedisClient) *RedisBenefitDAO {
	return &RedisBenefitDAO{
		client: client,
		log:    logger.Named("RedisBenefitDAO"),
	}
}

func benefitKey(id string) string {
	return fmt.Sprintf(config.BENEFITS_GEO_PLACE_MEMBER_FORMAT_V1, id)
}

// UpsertBenefit stores the benefit at its merchant's location.
func (dao *RedisBenefitDAO) UpsertBenefit(ctx context.Context, b benefit.Benefit) error {
	if b.ID == "" {
		return fmt.Errorf("benefit without id for merchant %q", b.MerchantName)
	}
	return dao.client.AddLocationWithJSON(ctx, config.BENEFITS_GEO_KEY_V1, benefitKey(b.ID), b.Lat, b.Lon, b)
}

// GetBenefit loads a single benefit. A missing benefit yields db.ErrNotFound.
func (dao *RedisBenefitDAO) GetBenefit(ctx context.Context, id string) (*benefit.Benefit, error) {
	str, err := dao.client.Get(ctx, benefitKey(id))
	if err != nil {
		return nil, fmt.Errorf("failed to get benefit %s: %w", id, err)
	}
	var b benefit.Benefit
	if err := json.Unmarshal([]byte(str), &b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal benefit JSON: %w", err)
	}
	return &b, nil
}

// GetNearbyBenefits retrieves benefits within radiusKm, nearest first.
func (dao *RedisBenefitDAO) GetNearbyBenefits(ctx context.Context, lat, lon, radiusKm float64) ([]benefit.Benefit, error) {
	benefitsJSON, err := dao.client.GetLocationsWithinRadius(ctx, config.BENEFITS_GEO_KEY_V1, lat, lon, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("failed to get benefits: %w", err)
	}

	benefits := make([]benefit.Benefit, 0, len(benefitsJSON))
	for _, raw := range benefitsJSON {
		var b benefit.Benefit
		if err := json.Unmarshal([]byte(raw), &b); err != nil {
			dao.log.Warn("Skipping unreadable benefit", zap.Error(err))
			continue
		}
		benefits = append(benefits, b)
	}
	dao.log.Debug("Loaded nearby benefits", zap.Int("count", len(benefits)), zap.Float64("radius_km", radiusKm))
	return benefits, nil
}

// ListBenefitIDs returns the IDs of every stored benefit.
func (dao *RedisBenefitDAO) ListBenefitIDs(ctx context.Context) ([]string, error) {
	keys, err := dao.client.Keys(ctx, benefitKey("*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list benefit keys: %w", err)
	}
	prefix := benefitKey("")
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids, nil
}

// DeleteBenefit removes a benefit from the geo index and the keyspace.
func (dao *RedisBenefitDAO) DeleteBenefit(ctx context.Context, id string) error {
	if err := dao.client.RemoveLocation(ctx, config.BENEFITS_GEO_KEY_V1, benefitKey(id)); err != nil {
		return fmt.Errorf("failed to delete benefit %s: %w", id, err)
	}
	dao.log.Info("Deleted benefit", zap.String("benefit_id", id))
	return nil
}
