package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"benefits-server/api/catalog"
	"benefits-server/dao/redis"
	"benefits-server/db"
	"benefits-server/dayparser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	obeliscoLat = -34.6037
	obeliscoLon = -58.3816
)

// newSeededService loads the catalog fixture into a mock redis.
func newSeededService(t *testing.T) *BenefitService {
	t.Helper()
	dao := redis.NewRedisBenefitDAO(db.NewMockRedisClient())
	refresher := NewBenefitsRefresherService(dao, catalog.NewCatalogApiClientMock(), 0)

	n, err := refresher.RefreshBenefitsData(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, n)

	return NewBenefitService(dao)
}

func TestBenefitService_GetBenefitsNearby(t *testing.T) {
	service := newSeededService(t)

	got, err := service.GetBenefitsNearby(context.Background(), obeliscoLat, obeliscoLon, 5, nil)
	require.NoError(t, err)
	require.Len(t, got, 5)

	byMerchant := make(map[string][]string)
	for _, b := range got {
		byMerchant[b.Benefit.MerchantName] = b.DayNames
	}
	assert.Equal(t, []string{"Sábado", "Domingo"}, byMerchant["Café Tortoni"])
	assert.Equal(t, []string{"Lunes", "Martes", "Miércoles"}, byMerchant["El Ateneo Grand Splendid"])
	assert.Equal(t, []string{"Viernes", "Sábado", "Domingo"}, byMerchant["Güerrín"])
	assert.Equal(t, []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}, byMerchant["Farmacity Obelisco"])
	assert.Equal(t, []string{}, byMerchant["Cine Gaumont"])
}

func TestBenefitService_GetBenefitsNearby_DayFilter(t *testing.T) {
	service := newSeededService(t)
	ctx := context.Background()

	sunday := time.Sunday
	got, err := service.GetBenefitsNearby(ctx, obeliscoLat, obeliscoLon, 5, &sunday)
	require.NoError(t, err)
	var names []string
	for _, b := range got {
		names = append(names, b.Benefit.MerchantName)
	}
	assert.ElementsMatch(t, []string{"Café Tortoni", "Güerrín"}, names)

	thursday := time.Thursday
	got, err = service.GetBenefitsNearby(ctx, obeliscoLat, obeliscoLon, 5, &thursday)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Farmacity Obelisco", got[0].Benefit.MerchantName)
}

func TestBenefitService_GetBenefitDays(t *testing.T) {
	service := newSeededService(t)

	got, err := service.GetBenefitDays(context.Background(), "bn-tortoni-20")
	require.NoError(t, err)
	require.NotNil(t, got.Days)
	assert.True(t, got.Days.Saturday)
	assert.True(t, got.Days.Sunday)
	assert.False(t, got.Days.AllDays)

	_, err = service.GetBenefitDays(context.Background(), "missing")
	assert.True(t, errors.Is(err, db.ErrNotFound))
}

func TestBenefitService_WeekdayCoverage(t *testing.T) {
	service := newSeededService(t)

	got, err := service.WeekdayCoverage(context.Background(), obeliscoLat, obeliscoLon, 5)
	require.NoError(t, err)

	assert.Equal(t, 5, got.Total)
	assert.Equal(t, 1, got.Unknown)
	assert.Equal(t, [7]int{2, 2, 2, 1, 2, 3, 2}, got.Days)
}

func TestBenefitService_ParseText(t *testing.T) {
	service := NewBenefitService(redis.NewRedisBenefitDAO(db.NewMockRedisClient()))

	got := service.ParseText("válido solo fines de semana")
	require.NotNil(t, got.Match)
	assert.Equal(t, dayparser.PatternWeekendRestriction, got.Match.Pattern)
	assert.Equal(t, 0.93, got.Confidence)
	assert.Equal(t, []string{"Sábado", "Domingo"}, got.DayNames)
	assert.True(t, got.HasAnyDay)

	unmatched := service.ParseText("horario especial")
	assert.Nil(t, unmatched.Match)
	assert.Equal(t, "horario especial", unmatched.Availability.CustomText)
	assert.False(t, unmatched.HasAnyDay)

	blank := service.ParseText("")
	assert.Nil(t, blank.Availability)
	assert.Equal(t, []string{}, blank.DayNames)
}

func TestBenefitService_Resolve(t *testing.T) {
	service := NewBenefitService(redis.NewRedisBenefitDAO(db.NewMockRedisClient()))

	got := service.Resolve(dayparser.BenefitDayInfo{
		Condicion: "válido solo fines de semana",
		Cuando:    "aplicable únicamente domingos",
	})
	assert.Equal(t, []string{"Domingo"}, got.DayNames)
	assert.True(t, got.HasAnyDay)

	raw := service.Resolve(json.RawMessage(`{"requisitos":"válido lunes y martes","cuando":"sábados"}`))
	assert.Equal(t, []string{"Lunes", "Martes", "Sábado"}, raw.DayNames)

	empty := service.Resolve(dayparser.BenefitDayInfo{})
	assert.Nil(t, empty.Availability)
	assert.False(t, empty.HasAnyDay)
}
