package enum

// StockStatus represents catalog stock health for a product
type StockStatus string

const (
	StockStatusInStock      StockStatus = "in-stock"
	StockStatusLowStock     StockStatus = "low-stock"
	StockStatusOutOfStock   StockStatus = "out-of-stock"
	StockStatusDiscontinued StockStatus = "discontinued"
)

// Sellable reports whether new lines may be added for this product.
// Out-of-stock items can still be sold against a lead time; discontinued
// cannot.
func (s StockStatus) Sellable() bool {
	return s != StockStatusDiscontinued
}
