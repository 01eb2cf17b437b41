package product

type Product struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Price      int     `json:"price"`
	OfferPrice int     `json:"offerPrice"`
	ImageURL   *string `json:"image,omitempty"`
	InStock    bool    `json:"inStock"`
}
