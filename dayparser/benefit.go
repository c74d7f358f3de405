package dayparser

import (
	"encoding/json"

	"benefits-server/logger"

	"go.uber.org/zap"
)

// DayInfoSource is implemented by records that can hand out their day
// related text fields.
type DayInfoSource interface {
	DayInfo() BenefitDayInfo
}

// ParseFromBenefit extracts the day fields from a benefit-like value and
// resolves them. Accepted shapes are BenefitDayInfo (value or pointer), any
// DayInfoSource, a decoded JSON object and raw JSON bytes. When the value is
// malformed only its cuando field is parsed.
func ParseFromBenefit(benefit any) *DayAvailability {
	info, ok := extractDayInfo(benefit)
	if !ok {
		return parseCuandoOnly(info.Cuando)
	}
	return ParseMultiField(info)
}

func extractDayInfo(benefit any) (info BenefitDayInfo, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Named("dayparser").Warn("malformed benefit", zap.Any("panic", r))
			ok = false
		}
	}()

	switch v := benefit.(type) {
	case nil:
		return BenefitDayInfo{}, false
	case BenefitDayInfo:
		return v, true
	case *BenefitDayInfo:
		if v == nil {
			return BenefitDayInfo{}, false
		}
		return *v, true
	case DayInfoSource:
		return v.DayInfo(), true
	case map[string]any:
		return dayInfoFromMap(v)
	case json.RawMessage:
		return dayInfoFromJSON(v)
	case []byte:
		return dayInfoFromJSON(v)
	}
	return BenefitDayInfo{}, false
}

func dayInfoFromJSON(raw []byte) (BenefitDayInfo, bool) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return BenefitDayInfo{}, false
	}
	return dayInfoFromMap(m)
}

// dayInfoFromMap reads the known keys of a decoded JSON object. A key holding
// the wrong type marks the object as malformed; cuando is kept whenever it is
// a string so the caller can still fall back to it.
func dayInfoFromMap(m map[string]any) (BenefitDayInfo, bool) {
	var info BenefitDayInfo
	ok := true

	readString := func(key string, dst *string) {
		switch v := m[key].(type) {
		case nil:
		case string:
			*dst = v
		default:
			ok = false
		}
	}
	readString(string(FieldCondicion), &info.Condicion)
	readString(string(FieldCuando), &info.Cuando)
	readString(string(FieldTextoAplicacion), &info.TextoAplicacion)

	switch v := m[string(FieldRequisitos)].(type) {
	case nil:
	case string:
		info.Requisitos = []string{v}
	case []string:
		info.Requisitos = v
	case []any:
		for _, item := range v {
			if s, isString := item.(string); isString {
				info.Requisitos = append(info.Requisitos, s)
			}
		}
	default:
		ok = false
	}

	return info, ok
}
