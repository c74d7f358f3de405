package benefit

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"benefits-server/dayparser"
)

// Benefit is a bank card discount offered at a merchant, as published by
// the catalog. The four Spanish text fields are kept verbatim; day
// availability is derived from them on read.
type Benefit struct {
	ID              string  `json:"id"`
	MerchantName    string  `json:"merchant_name"`
	MerchantAddress string  `json:"merchant_address"`
	Lat             float64 `json:"lat"`
	Lon             float64 `json:"lng"`

	Bank            string `json:"bank"`
	Card            string `json:"card,omitempty"`
	Category        string `json:"category,omitempty"`
	DiscountPercent int    `json:"discount_percent"`

	Condicion       string   `json:"condicion,omitempty"`
	Requisitos      []string `json:"requisitos,omitempty"`
	Cuando          string   `json:"cuando,omitempty"`
	TextoAplicacion string   `json:"textoAplicacion,omitempty"`
}

// DayInfo hands the day related text fields to the day parser.
func (b Benefit) DayInfo() dayparser.BenefitDayInfo {
	return dayparser.BenefitDayInfo{
		Condicion:       b.Condicion,
		Requisitos:      b.Requisitos,
		Cuando:          b.Cuando,
		TextoAplicacion: b.TextoAplicacion,
	}
}

func (b *Benefit) ToString() string {
	return fmt.Sprintf("Benefit(id=%s, merchant=%s, bank=%s, discount=%d%%, lat=%f, lon=%f)",
		b.ID, b.MerchantName, b.Bank, b.DiscountPercent, b.Lat, b.Lon)
}

// UnmarshalJSON accepts the loose shapes the catalog publishes: requisitos
// as a single string or a list, discount as a number or a "25%" string.
func (b *Benefit) UnmarshalJSON(data []byte) error {
	// Create an alias to avoid infinite recursion.
	type Alias Benefit
	aux := &struct {
		Requisitos      interface{} `json:"requisitos"`
		DiscountPercent interface{} `json:"discount_percent"`
		*Alias
	}{
		Alias: (*Alias)(b),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	b.Requisitos = nil
	switch val := aux.Requisitos.(type) {
	case string:
		if strings.TrimSpace(val) != "" {
			b.Requisitos = []string{val}
		}
	case []interface{}:
		for _, item := range val {
			if s, ok := item.(string); ok {
				b.Requisitos = append(b.Requisitos, s)
			}
		}
	}

	b.DiscountPercent = 0
	switch val := aux.DiscountPercent.(type) {
	case float64:
		b.DiscountPercent = int(val)
	case string:
		trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(val), "%"))
		if n, err := strconv.Atoi(trimmed); err == nil {
			b.DiscountPercent = n
		}
	}

	return nil
}
