package inference

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"jewelai/models"
)

// Placeholder market features. The training pipeline derived these from
// history that is not available per request, so inference uses the
// dataset-wide typical values.
const (
	marketShare       = 13.0
	categoryAvgMarket = 90000.0
	storeAvgSales     = 95000.0
	salesMomentum     = 92000.0
)

// FeatureVector is one row in artifact column order.
type FeatureVector struct {
	Columns []string
	Values  []float64
}

// Get returns the value of a named column.
func (v FeatureVector) Get(name string) (float64, bool) {
	for i, c := range v.Columns {
		if c == name {
			return v.Values[i], true
		}
	}
	return 0, false
}

type categoryColumn struct {
	column  string
	aliases []string
}

// categoryColumns lists the category one-hot block. A request matches on the
// short name or the canonical dataset label, ignoring case.
var categoryColumns = []categoryColumn{
	{"product_category_GOLD BRACELET", []string{"BRACELET", "GOLD BRACELET"}},
	{"product_category_GOLD CHAINS", []string{"CHAIN", "GOLD CHAINS"}},
	{"product_category_GOLD EARRING", []string{"EARRING", "GOLD EARRING"}},
	{"product_category_GOLD NECKLACE", []string{"NECKLACE", "GOLD NECKLACE"}},
	{"product_category_GOLD RINGS", []string{"RING", "GOLD RINGS"}},
}

// StoreIDs are the stores the model was trained on.
var StoreIDs = []string{"MAIN_STORE", "STORE_1", "STORE_2", "STORE_3", "STORE_4", "STORE_5", "STORE_6"}

type bin struct {
	column string
	lo, hi float64 // [lo, hi)
}

var weightBins = []bin{
	{"weight_category_Light", negInf, 5},
	{"weight_category_Medium", 5, 10},
	{"weight_category_Heavy", 10, 20},
	{"weight_category_Very_Heavy", 20, 50},
	{"weight_category_Ultra_Heavy", 50, posInf},
}

var priceBins = []bin{
	{"price_bracket_Budget", negInf, 20000},
	{"price_bracket_Mid", 20000, 50000},
	{"price_bracket_Premium", 50000, 100000},
	{"price_bracket_Luxury", 100000, 200000},
	{"price_bracket_Ultra", 200000, posInf},
}

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)

// PricePerGram is a coarse purity lookup, not a market price feed.
func PricePerGram(purity float64) float64 {
	switch purity {
	case 22:
		return 6000
	case 18:
		return 5500
	default:
		return 6500
	}
}

// ParseVoucherDate parses an ISO YYYY-MM-DD date.
func ParseVoucherDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: voucher_date %q is not YYYY-MM-DD", ErrInvalidRequest, s)
	}
	return t, nil
}

// BuildFeatures maps a prediction request onto the artifact's feature columns,
// in exactly that order. Unknown column names fail with ErrUnknownFeatureSchema.
func BuildFeatures(req models.PredictionRequest, columns []string) (FeatureVector, error) {
	date, err := ParseVoucherDate(req.VoucherDate)
	if err != nil {
		return FeatureVector{}, err
	}
	features := featureMap(req, date)

	var missing []string
	values := make([]float64, len(columns))
	for i, col := range columns {
		v, ok := features[col]
		if !ok {
			missing = append(missing, col)
			continue
		}
		values[i] = v
	}
	if len(missing) > 0 {
		return FeatureVector{}, fmt.Errorf("%w: cannot produce %s", ErrUnknownFeatureSchema, strings.Join(missing, ", "))
	}

	cols := make([]string, len(columns))
	copy(cols, columns)
	return FeatureVector{Columns: cols, Values: values}, nil
}

// KnownFeatures lists every column BuildFeatures can produce, sorted.
func KnownFeatures() []string {
	m := featureMap(models.PredictionRequest{NetWeight: 1}, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func featureMap(req models.PredictionRequest, date time.Time) map[string]float64 {
	pricePerGram := PricePerGram(req.Purity)
	estimatedPrice := pricePerGram * req.NetWeight
	// time.Weekday starts on Sunday; the model expects Monday = 0.
	dayOfWeek := (int(date.Weekday()) + 6) % 7
	_, isoWeek := date.ISOWeek()

	f := map[string]float64{
		"year":                float64(date.Year()),
		"month":               float64(date.Month()),
		"day":                 float64(date.Day()),
		"day_of_week":         float64(dayOfWeek),
		"week_of_year":        float64(isoWeek),
		"is_weekend":          boolFloat(dayOfWeek >= 5),
		"is_festival":         0, // no festival calendar yet
		"net_weight":          req.NetWeight,
		"price_per_gram":      pricePerGram,
		"market_share":        marketShare,
		"category_avg_market": categoryAvgMarket,
		"store_avg_sales":     storeAvgSales,
		"sales_momentum":      salesMomentum,
	}

	category := strings.ToUpper(strings.TrimSpace(req.Category))
	for _, cc := range categoryColumns {
		f[cc.column] = boolFloat(containsString(cc.aliases, category))
	}
	for _, b := range weightBins {
		f[b.column] = boolFloat(req.NetWeight >= b.lo && req.NetWeight < b.hi)
	}
	for _, b := range priceBins {
		f[b.column] = boolFloat(estimatedPrice >= b.lo && estimatedPrice < b.hi)
	}
	for _, id := range StoreIDs {
		f["store_id_"+id] = boolFloat(req.StoreID == id)
	}
	return f
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// TrainingColumns is the column order used by the training pipeline. Artifacts
// normally declare exactly this list, but only the artifact's order is binding.
var TrainingColumns = []string{
	"year", "month", "day", "day_of_week", "week_of_year", "is_weekend", "is_festival",
	"net_weight", "price_per_gram", "market_share", "category_avg_market", "store_avg_sales", "sales_momentum",
	"product_category_GOLD BRACELET", "product_category_GOLD CHAINS", "product_category_GOLD EARRING",
	"product_category_GOLD NECKLACE", "product_category_GOLD RINGS",
	"weight_category_Light", "weight_category_Medium", "weight_category_Heavy",
	"weight_category_Very_Heavy", "weight_category_Ultra_Heavy",
	"price_bracket_Budget", "price_bracket_Mid", "price_bracket_Premium", "price_bracket_Luxury", "price_bracket_Ultra",
	"store_id_MAIN_STORE", "store_id_STORE_1", "store_id_STORE_2", "store_id_STORE_3",
	"store_id_STORE_4", "store_id_STORE_5", "store_id_STORE_6",
}
