package models

type Store struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type,omitempty"`
	Description  string  `json:"description,omitempty"`
	Location     string  `json:"location"`
	Contact      string  `json:"contact"`
	Email        string  `json:"email,omitempty"`
	Latitude     float64 `json:"latitude,omitempty"`
	Longitude    float64 `json:"longitude,omitempty"`
	SystemRating float64 `json:"system_rating"`
	PasswordHash []byte  `json:"-"`
}

type Product struct {
	ID        uint    `json:"id"`
	StoreID   uint    `json:"store_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
	Image     string  `json:"image,omitempty"`
}

// Request structs for API
type RegisterStoreRequest struct {
	Name        string   `json:"store_name" binding:"required,max=100"`
	Type        string   `json:"store_type" binding:"required,max=50"`
	Description string   `json:"store_description" binding:"max=2000"`
	Contact     string   `json:"contact_number" binding:"required,max=15"`
	Email       string   `json:"email" binding:"required"`
	Password    string   `json:"password" binding:"required"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude" binding:"required"`
	Longitude   *float64 `json:"longitude" binding:"required"`
}

type AddProductRequest struct {
	Name      string  `json:"name" binding:"required,max=100"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	Available *bool   `json:"stock,omitempty"`
	Image     string  `json:"image" binding:"omitempty,url"`
}

type StoreFilter struct {
	Search    string
	MinRating float64
}

type ProductFilter struct {
	Search  string
	Sort    string
	StoreID uint
}

type StoreDetails struct {
	Store    Store         `json:"store"`
	Products []Product     `json:"products"`
	Summary  RatingSummary `json:"summary"`
}

type ProductDetails struct {
	Product Product       `json:"product"`
	Store   Store         `json:"store"`
	Summary RatingSummary `json:"summary"`
}
