package testutil

import (
	"fmt"

	catalog "github.com/light-bringer/storefront-service/internal/app/catalog/domain"
	"github.com/light-bringer/storefront-service/internal/app/cart/domain"
	"github.com/light-bringer/storefront-service/internal/pkg/money"
)

// Product builds an active catalog product with stock.
func Product(id string, unitPrice int64, available int) catalog.Product {
	return catalog.Product{
		ID:                id,
		Name:              fmt.Sprintf("Product %s", id),
		SKU:               "SKU-" + id,
		CategoryID:        "cat-1",
		CategoryName:      "Shirts",
		UnitPrice:         money.FromInt(unitPrice),
		AvailableQuantity: available,
		Active:            true,
	}
}

// DiscountedProduct is Product with an explicit discounted price.
func DiscountedProduct(id string, unitPrice, discounted int64, available int) catalog.Product {
	p := Product(id, unitPrice, available)
	d := money.FromInt(discounted)
	p.DiscountedPrice = &d
	p.Discount = catalog.Discount{Type: catalog.DiscountFixed, Value: money.FromInt(unitPrice - discounted)}
	return p
}

// VariantProduct is Product with size variations sharing the product price.
func VariantProduct(id string, unitPrice int64, sizes map[string]int) catalog.Product {
	p := Product(id, unitPrice, 0)
	for size, stock := range sizes {
		p.Variations = append(p.Variations, catalog.Variation{
			ID:                id + "-" + size,
			Size:              size,
			SKU:               "SKU-" + id + "-" + size,
			Price:             money.FromInt(unitPrice),
			AvailableQuantity: stock,
		})
		p.AvailableQuantity += stock
	}
	return p
}

// Item builds a valid cart line for a product without variations.
func Item(productID string, qty int, unitPrice int64) domain.CartItem {
	item := domain.CartItem{
		ProductID:    productID,
		SKU:          "SKU-" + productID,
		Name:         fmt.Sprintf("Product %s", productID),
		Active:       true,
		Quantity:     qty,
		UnitPrice:    money.FromInt(unitPrice),
		CategoryID:   "cat-1",
		CategoryName: "Shirts",
	}
	item.Recompute()
	return item
}
