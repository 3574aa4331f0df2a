package m_product

// Resource paths and JSON field names of the remote product API.
// These provide type-safe references and prevent typos.
const (
	ResourceProducts   = "/products"
	ResourceCategories = "/categories"

	ID          = "id"
	Name        = "name"
	Price       = "price"
	Quantity    = "quantity"
	Description = "description"
	Category    = "category"
)
