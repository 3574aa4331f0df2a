package m_product

// Data is the wire representation of a product returned by the API.
type Data struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Description *string `json:"description,omitempty"`
	Category    string  `json:"category"`
}

// PayloadData is the request body of create and update calls.
type PayloadData struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

// ErrorData mirrors the server's error body. Every field is optional.
type ErrorData struct {
	Status  int      `json:"status"`
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Path    string   `json:"path"`
	Errors  []string `json:"errors"`
}
