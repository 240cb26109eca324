package inventory

import (
	"errors"
	"fmt"
	"strings"

	"atelier/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var ErrSKUIsNotConstructed = errors.New("SKU must be created via NewSKU constructor")

// Costs are the components of a SKU's unit cost. All of them are per piece
// except FabricPricePerMeter, which MetersPerUnit scales.
type Costs struct {
	MetersPerUnit       decimal.Decimal
	FabricPricePerMeter decimal.Decimal
	SewingCost          decimal.Decimal
	AccessoriesCost     decimal.Decimal
	ExtraCosts          decimal.Decimal
}

// UnitCost is metersPerUnit × fabricPricePerMeter + sewing + accessories + extras.
func (c Costs) UnitCost() decimal.Decimal {
	return c.MetersPerUnit.Mul(c.FabricPricePerMeter).
		Add(c.SewingCost).
		Add(c.AccessoriesCost).
		Add(c.ExtraCosts)
}

func (c Costs) validate() error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"meters per unit", c.MetersPerUnit},
		{"fabric price per meter", c.FabricPricePerMeter},
		{"sewing cost", c.SewingCost},
		{"accessories cost", c.AccessoriesCost},
		{"extra costs", c.ExtraCosts},
	}

	var joined error
	for _, f := range fields {
		if f.value.IsNegative() {
			joined = errors.Join(joined, errs.NewValueIsOutOfRangeError(f.name, f.value, 0, "unbounded"))
		}
	}
	return joined
}

// SKU is a stock-keeping unit of the catalog. Its quantity on hand changes
// only through ApplyMovement, so it always equals the sum of the ledger
// deltas recorded for its code.
type SKU struct {
	code      string
	name      string
	kind      string
	quantity  int
	costs     Costs
	salePrice decimal.Decimal

	isConstructed bool
}

// NewSKU creates a catalog entry with zero stock. Opening stock is recorded
// as a movement afterwards.
func NewSKU(code, name, kind string, costs Costs, salePrice decimal.Decimal) (*SKU, error) {
	s := &SKU{isConstructed: true}

	if err := errors.Join(
		s.setCode(code),
		s.setMetadata(name, kind, costs, salePrice),
	); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *SKU) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSKUIsNotConstructed
	}
	return nil
}

func (s *SKU) Code() string               { return s.code }
func (s *SKU) Name() string               { return s.name }
func (s *SKU) Kind() string               { return s.kind }
func (s *SKU) Quantity() int              { return s.quantity }
func (s *SKU) Costs() Costs               { return s.costs }
func (s *SKU) SalePrice() decimal.Decimal { return s.salePrice }
func (s *SKU) UnitCost() decimal.Decimal  { return s.costs.UnitCost() }

// UpdateMetadata changes everything but the code and the quantity on hand.
func (s *SKU) UpdateMetadata(name, kind string, costs Costs, salePrice decimal.Decimal) error {
	candidate := *s
	if err := candidate.setMetadata(name, kind, costs, salePrice); err != nil {
		return err
	}
	*s = candidate
	return nil
}

// ApplyMovement adds the movement's delta to the quantity on hand and returns
// the new quantity. The result may be negative; the caller raises the alert.
func (s *SKU) ApplyMovement(m Movement) (int, error) {
	if m.Code() != s.code {
		return s.quantity, errs.NewValueIsInvalidErrorWithCause(
			"movement",
			fmt.Errorf("movement for %s applied to %s", m.Code(), s.code),
		)
	}
	s.quantity += m.Delta()
	return s.quantity, nil
}

func (s *SKU) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("sku code")
	}
	if strings.ContainsAny(code, " \t\r\n/") {
		return errs.NewValueIsInvalidErrorWithCause("sku code", fmt.Errorf("%q contains whitespace or '/'", code))
	}
	s.code = code
	return nil
}

func (s *SKU) setMetadata(name, kind string, costs Costs, salePrice decimal.Decimal) error {
	name = strings.TrimSpace(name)

	var nameErr, priceErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("sku name")
	}
	if salePrice.IsNegative() {
		priceErr = errs.NewValueIsOutOfRangeError("sale price", salePrice, 0, "unbounded")
	}

	if err := errors.Join(nameErr, priceErr, costs.validate()); err != nil {
		return err
	}

	s.name = name
	s.kind = strings.TrimSpace(kind)
	s.costs = costs
	s.salePrice = salePrice
	return nil
}

// SKURecord is the flat, persisted form of a SKU.
type SKURecord struct {
	Code                string          `json:"code"`
	Name                string          `json:"name"`
	Kind                string          `json:"kind,omitempty"`
	Quantity            int             `json:"quantity"`
	MetersPerUnit       decimal.Decimal `json:"metersPerUnit"`
	FabricPricePerMeter decimal.Decimal `json:"fabricPricePerMeter"`
	SewingCost          decimal.Decimal `json:"sewingCost"`
	AccessoriesCost     decimal.Decimal `json:"accessoriesCost"`
	ExtraCosts          decimal.Decimal `json:"extraCosts"`
	SalePrice           decimal.Decimal `json:"salePrice"`
}

func (s *SKU) Record() SKURecord {
	return SKURecord{
		Code:                s.code,
		Name:                s.name,
		Kind:                s.kind,
		Quantity:            s.quantity,
		MetersPerUnit:       s.costs.MetersPerUnit,
		FabricPricePerMeter: s.costs.FabricPricePerMeter,
		SewingCost:          s.costs.SewingCost,
		AccessoriesCost:     s.costs.AccessoriesCost,
		ExtraCosts:          s.costs.ExtraCosts,
		SalePrice:           s.salePrice,
	}
}

// RestoreSKU rebuilds a SKU from persistence, quantity included.
func RestoreSKU(r SKURecord) (*SKU, error) {
	s, err := NewSKU(r.Code, r.Name, r.Kind, Costs{
		MetersPerUnit:       r.MetersPerUnit,
		FabricPricePerMeter: r.FabricPricePerMeter,
		SewingCost:          r.SewingCost,
		AccessoriesCost:     r.AccessoriesCost,
		ExtraCosts:          r.ExtraCosts,
	}, r.SalePrice)
	if err != nil {
		return nil, err
	}
	s.quantity = r.Quantity
	return s, nil
}
