package models

// Product categories.
var ProductCategories = []string{"Oriental", "Floral", "Woody", "Fresh", "Limited Edition"}

// Product genders.
var ProductGenders = []string{"Men", "Women", "Unisex"}

// Product tags.
var ProductTags = []string{"Bestseller", "New", "Limited"}

type Product struct {
	BaseModel
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Price         float64        `json:"price"`
	OriginalPrice float64        `json:"original_price"`
	Images        []string       `gorm:"serializer:json" json:"images"`
	Category      string         `gorm:"index" json:"category"`
	Gender        string         `gorm:"index" json:"gender"`
	Size          string         `gorm:"default:100ml" json:"size"`
	Rating        float64        `json:"rating"`
	ReviewsCount  int            `json:"reviews_count"`
	Tag           string         `json:"tag"`
	InStock       bool           `gorm:"default:true" json:"in_stock"`
	StockQuantity int            `json:"stock_quantity"`
	Active        bool           `gorm:"default:true" json:"active"`

	// Marketplace listing flags.
	OnAmazon   bool `json:"on_amazon"`
	OnFlipkart bool `json:"on_flipkart"`
	OnMyntra   bool `json:"on_myntra"`
}

// ValidCategory reports whether category is one of the known values.
func ValidCategory(category string) bool {
	return contains(ProductCategories, category)
}

// ValidGender reports whether gender is one of the known values.
func ValidGender(gender string) bool {
	return contains(ProductGenders, gender)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
