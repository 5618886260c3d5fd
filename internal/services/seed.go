package services

import "github.com/autoxpert/feedback-backend/internal/models"

// DefaultStores is the starter catalog shown by the parts search screen.
func DefaultStores() []models.Store {
	return []models.Store{
		{ID: 1, Name: "Auto Parts Store 1", Location: "123 Main St, City, Country", Contact: "+1234567890", SystemRating: 4.5},
		{ID: 2, Name: "Speedy Auto Repairs", Location: "456 Elm St, City, Country", Contact: "+0987654321", SystemRating: 3.9},
		{ID: 3, Name: "Parts and Service Hub", Location: "789 Oak St, City, Country", Contact: "+1122334455", SystemRating: 4.7},
		{ID: 4, Name: "Engine Parts World", Location: "123 Industrial Rd, City, Country", Contact: "+1555555555", SystemRating: 4.2},
		{ID: 5, Name: "Quick Fix Auto Service", Location: "987 Maple St, City, Country", Contact: "+1456789876", SystemRating: 4.3},
	}
}

func DefaultProducts() []models.Product {
	products := make([]models.Product, 0, 12)
	add := func(name string, price float64, storeID uint, image string) {
		products = append(products, models.Product{
			ID:        uint(len(products) + 1),
			StoreID:   storeID,
			Name:      name,
			Price:     price,
			Available: true,
			Image:     image,
		})
	}

	add("Filter Oil", 45.99, 1, "https://paisleyautocare.co.uk/cdn/shop/articles/Quality_Oil_Filter.webp")
	add("Filter Oil", 45.99, 1, "https://cartek.lk/cdn/shop/files/VIC-C-932-OIL-FILTER-Cartek-LK-Sri-Lanka.png")
	add("Filter Oil", 45.99, 1, "https://m.media-amazon.com/images/I/71OQulmkp2L.jpg")
	add("Filter Oil", 45.99, 1, "https://www.sampiyonfilter.com.tr/media/Blog/keep.jpg")
	add("Headlight Bulb", 25.99, 3, "https://dealhub.lk/wp-content/uploads/2023/04/Kaier-V6-LED-Headlight-Bulb-2pcs@ido.lk_.jpg")
	add("Headlight Bulb", 25.99, 3, "https://static.tudo.lk/uploads/2023/10/h4-9003-hb2-hi-lo-beam-led-motorcycle-headlight-bulb-16965944565325784.webp")
	add("Headlight Bulb", 25.99, 3, "https://m.media-amazon.com/images/I/71l3uGJ8n1L._AC_UF894,1000_QL80_.jpg")
	add("Headlight Bulb", 25.99, 3, "")
	add("Brake Pads", 30.00, 1, "https://images-cdn.ubuy.co.in/633ff1c6acee89023641bdf5-power-stop-koe206-autospecialty-rear.jpg")
	add("Brake Pads", 30.00, 1, "https://media.takealot.com/covers_images/a5bc0de639234e819a580ffe2cfb3e04/s-pdpxl.file")
	add("Brake Pads", 30.00, 1, "")
	add("Brake Pads", 30.00, 1, "")

	return products
}
