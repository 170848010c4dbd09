package application

import "github.com/karansingh008/Tourizio/domain"

// The destination catalog is static. Rates are per night per guest.
var destinations = []domain.Destination{
	{ID: "agra", Name: "Agra", Price: 2500, Image: "/images/agra.jpg", Days: "3 Days / 2 Nights"},
	{ID: "rishikesh", Name: "Rishikesh", Price: 1500, Image: "/images/rishikesh.jpg", Days: "3 Days / 2 Nights"},
	{ID: "andaman", Name: "Andaman", Price: 4000, Image: "/images/andaman.jpg", Days: "5 Days / 4 Nights"},
	{ID: "jaipur", Name: "Jaipur", Price: 2000, Image: "/images/jaipur.jpg", Days: "3 Days / 2 Nights"},
	{ID: "kerala", Name: "Kerala", Price: 3500, Image: "/images/kerala.jpg", Days: "4 Days / 3 Nights"},
	{ID: "goa", Name: "Goa", Price: 3000, Image: "/images/goa.jpg", Days: "4 Days / 3 Nights"},
}

func Destinations() []domain.Destination {
	return destinations
}

func FindDestination(id string) (*domain.Destination, bool) {
	for i := range destinations {
		if destinations[i].ID == id {
			return &destinations[i], true
		}
	}
	return nil, false
}
