package pricing

// Price is a monthly USD rate for one billable unit.
type Price struct {
	PricePerUnit float64
	CurrencyCode string
}

// Store resolves static monthly rates for the scanned resource kinds. Rates
// are list-price estimates, not invoices; no pricing API is consulted.
type Store interface {
	DiskGBMonth(diskType string) Price
	StaticIPMonth() Price
	SnapshotGBMonth() Price
	BucketGBMonth() Price
}

type pricingStore struct {
	diskRates map[string]float64
}

func NewStore() Store {
	return &pricingStore{
		diskRates: map[string]float64{
			"pd-standard": 0.040,
			"pd-balanced": 0.100,
			"pd-ssd":      0.170,
			"pd-extreme":  0.125,
		},
	}
}

func (p *pricingStore) DiskGBMonth(diskType string) Price {
	rate, ok := p.diskRates[diskType]
	if !ok {
		rate = p.diskRates["pd-standard"]
	}
	return Price{PricePerUnit: rate, CurrencyCode: "USD"}
}

func (p *pricingStore) StaticIPMonth() Price {
	return Price{PricePerUnit: 7.20, CurrencyCode: "USD"}
}

func (p *pricingStore) SnapshotGBMonth() Price {
	return Price{PricePerUnit: 0.026, CurrencyCode: "USD"}
}

func (p *pricingStore) BucketGBMonth() Price {
	return Price{PricePerUnit: 0.020, CurrencyCode: "USD"}
}
