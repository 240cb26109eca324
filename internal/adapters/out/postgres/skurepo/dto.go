// Package skurepo persists the catalog: one row per SKU with its cost sheet
// and the quantity-on-hand snapshot.
package skurepo

import (
	"atelier/internal/core/domain/model/inventory"

	"github.com/shopspring/decimal"
)

// SKUDTO is the catalog row. NameKey holds inventory.NameKey(Name) so name
// lookups use the index instead of folding every row.
type SKUDTO struct {
	Code                string `gorm:"type:varchar(32);primaryKey"`
	Name                string
	NameKey             string `gorm:"index"`
	Kind                string
	Quantity            int
	MetersPerUnit       decimal.Decimal `gorm:"type:numeric(14,4)"`
	FabricPricePerMeter decimal.Decimal `gorm:"type:numeric(14,2)"`
	SewingCost          decimal.Decimal `gorm:"type:numeric(14,2)"`
	AccessoriesCost     decimal.Decimal `gorm:"type:numeric(14,2)"`
	ExtraCosts          decimal.Decimal `gorm:"type:numeric(14,2)"`
	SalePrice           decimal.Decimal `gorm:"type:numeric(14,2)"`
}

func (SKUDTO) TableName() string {
	return "skus"
}

func fromDomain(sku *inventory.SKU) SKUDTO {
	r := sku.Record()
	return SKUDTO{
		Code:                r.Code,
		Name:                r.Name,
		NameKey:             inventory.NameKey(r.Name),
		Kind:                r.Kind,
		Quantity:            r.Quantity,
		MetersPerUnit:       r.MetersPerUnit,
		FabricPricePerMeter: r.FabricPricePerMeter,
		SewingCost:          r.SewingCost,
		AccessoriesCost:     r.AccessoriesCost,
		ExtraCosts:          r.ExtraCosts,
		SalePrice:           r.SalePrice,
	}
}

func toDomain(dto SKUDTO) (*inventory.SKU, error) {
	return inventory.RestoreSKU(inventory.SKURecord{
		Code:                dto.Code,
		Name:                dto.Name,
		Kind:                dto.Kind,
		Quantity:            dto.Quantity,
		MetersPerUnit:       dto.MetersPerUnit,
		FabricPricePerMeter: dto.FabricPricePerMeter,
		SewingCost:          dto.SewingCost,
		AccessoriesCost:     dto.AccessoriesCost,
		ExtraCosts:          dto.ExtraCosts,
		SalePrice:           dto.SalePrice,
	})
}

func toDomainList(dtos []SKUDTO) ([]*inventory.SKU, error) {
	skus := make([]*inventory.SKU, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		skus = append(skus, s)
	}
	return skus, nil
}
