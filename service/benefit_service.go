package services

import (
	"context"
	"time"

	"benefits-server/dao/redis"
	"benefits-server/dayparser"
	"benefits-server/models"
	"benefits-server/models/benefit"
)

type BenefitService struct {
	benefitDao *redis.RedisBenefitDAO
}

// NewBenefitService constructs a new BenefitService with Redis dependency injection.
func NewBenefitService(benefitDao *redis.RedisBenefitDAO) *BenefitService {
	return &BenefitService{
		benefitDao: benefitDao,
	}
}

// GetBenefitsNearby returns the benefits within radius km, each with its
// resolved day availability. When day is set, only benefits known to be
// usable on that day are kept.
func (bs *BenefitService) GetBenefitsNearby(ctx context.Context, lat, lon, radius float64, day *time.Weekday) ([]models.BenefitWithDays, error) {
	benefits, err := bs.benefitDao.GetNearbyBenefits(ctx, lat, lon, radius)
	if err != nil {
		return nil, err
	}

	result := make([]models.BenefitWithDays, 0, len(benefits))
	for _, b := range benefits {
		withDays := withResolvedDays(b)
		if day != nil && !withDays.Days.IsAvailableOn(*day) {
			continue
		}
		result = append(result, withDays)
	}
	return result, nil
}

// GetBenefitDays loads one benefit and resolves its days.
func (bs *BenefitService) GetBenefitDays(ctx context.Context, benefitID string) (*models.BenefitWithDays, error) {
	b, err := bs.benefitDao.GetBenefit(ctx, benefitID)
	if err != nil {
		return nil, err
	}
	withDays := withResolvedDays(*b)
	return &withDays, nil
}

// ParseText runs the single-text parser and reports its match.
func (bs *BenefitService) ParseText(text string) models.ParseDaysResponse {
	availability := dayparser.Parse(text)
	response := models.ParseDaysResponse{
		Availability: availability,
		DayNames:     dayparser.AvailableDayNames(availability),
		HasAnyDay:    dayparser.HasAnyDayAvailable(availability),
	}
	if res := dayparser.ParseEnhanced(text); res != nil {
		match := res.Match
		response.Match = &match
		response.Confidence = match.Confidence
	}
	return response
}

// Resolve merges the day fields of a benefit into one availability. source
// takes any shape dayparser.ParseFromBenefit understands, raw JSON included.
func (bs *BenefitService) Resolve(source any) models.ResolveDaysResponse {
	availability := dayparser.ParseFromBenefit(source)
	return models.ResolveDaysResponse{
		Availability: availability,
		DayNames:     dayparser.AvailableDayNames(availability),
		HasAnyDay:    dayparser.HasAnyDayAvailable(availability),
	}
}

// WeekdayCoverage counts, for each weekday, the nearby benefits usable on it.
// Benefits without any recognizable day are counted as unknown.
func (bs *BenefitService) WeekdayCoverage(ctx context.Context, lat, lon, radius float64) (*models.WeekdayCoverage, error) {
	benefits, err := bs.GetBenefitsNearby(ctx, lat, lon, radius, nil)
	if err != nil {
		return nil, err
	}

	coverage := &models.WeekdayCoverage{Total: len(benefits)}
	for _, b := range benefits {
		if !dayparser.HasAnyDayAvailable(b.Days) {
			coverage.Unknown++
			continue
		}
		for _, d := range b.Days.Days() {
			coverage.Days[d]++
		}
	}
	return coverage, nil
}

func withResolvedDays(b benefit.Benefit) models.BenefitWithDays {
	days := dayparser.ParseFromBenefit(b)
	return models.BenefitWithDays{
		Benefit:  b,
		Days:     days,
		DayNames: dayparser.AvailableDayNames(days),
	}
}
