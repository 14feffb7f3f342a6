// Package catalog provides the static city dataset backing the location
// services. A static list keeps search deterministic and instant, and stays
// within the usage terms of the public geocoders that forbid autocomplete.
package catalog

import (
	"sort"
	"strings"

	"github.com/Iron-Ham/tripflow/internal/trip"
)

// cities is the in-memory dataset: metros, major urban centers, and the
// popular tourist destinations travelers actually plan trips between.
var cities = []trip.City{
	// Tier 1 (metropolitan)
	{Name: "Mumbai", State: "Maharashtra", Lat: 19.0760, Lon: 72.8777, Tier: 1, Country: "India"},
	{Name: "Delhi", State: "Delhi", Lat: 28.7041, Lon: 77.1025, Tier: 1, Country: "India"},
	{Name: "Bangalore", State: "Karnataka", Lat: 12.9716, Lon: 77.5946, Tier: 1, Country: "India"},
	{Name: "Kolkata", State: "West Bengal", Lat: 22.5726, Lon: 88.3639, Tier: 1, Country: "India"},
	{Name: "Chennai", State: "Tamil Nadu", Lat: 13.0827, Lon: 80.2707, Tier: 1, Country: "India"},
	{Name: "Hyderabad", State: "Telangana", Lat: 17.3850, Lon: 78.4867, Tier: 1, Country: "India"},
	{Name: "Pune", State: "Maharashtra", Lat: 18.5204, Lon: 73.8567, Tier: 1, Country: "India"},
	{Name: "Ahmedabad", State: "Gujarat", Lat: 23.0225, Lon: 72.5714, Tier: 1, Country: "India"},

	// Tier 2 (major urban centers)
	{Name: "Jaipur", State: "Rajasthan", Lat: 26.9124, Lon: 75.7873, Tier: 2, Country: "India"},
	{Name: "Surat", State: "Gujarat", Lat: 21.1702, Lon: 72.8311, Tier: 2, Country: "India"},
	{Name: "Lucknow", State: "Uttar Pradesh", Lat: 26.8467, Lon: 80.9462, Tier: 2, Country: "India"},
	{Name: "Nagpur", State: "Maharashtra", Lat: 21.1458, Lon: 79.0882, Tier: 2, Country: "India"},
	{Name: "Indore", State: "Madhya Pradesh", Lat: 22.7196, Lon: 75.8577, Tier: 2, Country: "India"},
	{Name: "Bhopal", State: "Madhya Pradesh", Lat: 23.2599, Lon: 77.4126, Tier: 2, Country: "India"},
	{Name: "Visakhapatnam", State: "Andhra Pradesh", Lat: 17.6868, Lon: 83.2185, Tier: 2, Country: "India"},
	{Name: "Patna", State: "Bihar", Lat: 25.5941, Lon: 85.1376, Tier: 2, Country: "India"},
	{Name: "Vadodara", State: "Gujarat", Lat: 22.3072, Lon: 73.1812, Tier: 2, Country: "India"},
	{Name: "Agra", State: "Uttar Pradesh", Lat: 27.1767, Lon: 78.0081, Tier: 2, Country: "India"},
	{Name: "Nashik", State: "Maharashtra", Lat: 19.9975, Lon: 73.7898, Tier: 2, Country: "India"},
	{Name: "Varanasi", State: "Uttar Pradesh", Lat: 25.3176, Lon: 82.9739, Tier: 2, Country: "India"},
	{Name: "Amritsar", State: "Punjab", Lat: 31.6340, Lon: 74.8723, Tier: 2, Country: "India"},
	{Name: "Chandigarh", State: "Chandigarh", Lat: 30.7333, Lon: 76.7794, Tier: 2, Country: "India"},
	{Name: "Kochi", State: "Kerala", Lat: 9.9312, Lon: 76.2673, Tier: 2, Country: "India"},
	{Name: "Coimbatore", State: "Tamil Nadu", Lat: 11.0168, Lon: 76.9558, Tier: 2, Country: "India"},
	{Name: "Madurai", State: "Tamil Nadu", Lat: 9.9252, Lon: 78.1198, Tier: 2, Country: "India"},
	{Name: "Thiruvananthapuram", State: "Kerala", Lat: 8.5241, Lon: 76.9366, Tier: 2, Country: "India"},
	{Name: "Bhubaneswar", State: "Odisha", Lat: 20.2961, Lon: 85.8245, Tier: 2, Country: "India"},
	{Name: "Guwahati", State: "Assam", Lat: 26.1445, Lon: 91.7362, Tier: 2, Country: "India"},
	{Name: "Mysore", State: "Karnataka", Lat: 12.2958, Lon: 76.6394, Tier: 2, Country: "India"},
	{Name: "Jodhpur", State: "Rajasthan", Lat: 26.2389, Lon: 73.0243, Tier: 2, Country: "India"},
	{Name: "Raipur", State: "Chhattisgarh", Lat: 21.2514, Lon: 81.6296, Tier: 2, Country: "India"},
	{Name: "Ranchi", State: "Jharkhand", Lat: 23.3441, Lon: 85.3096, Tier: 2, Country: "India"},
	{Name: "Dehradun", State: "Uttarakhand", Lat: 30.3165, Lon: 78.0322, Tier: 2, Country: "India"},
	{Name: "Panaji", State: "Goa", Lat: 15.4909, Lon: 73.8278, Tier: 2, Country: "India"},

	// Tourist destinations
	{Name: "Goa", State: "Goa", Lat: 15.2993, Lon: 74.1240, Tier: 2, Country: "India"},
	{Name: "Udaipur", State: "Rajasthan", Lat: 24.5854, Lon: 73.7125, Tier: 2, Country: "India"},
	{Name: "Jaisalmer", State: "Rajasthan", Lat: 26.9157, Lon: 70.9083, Tier: 2, Country: "India"},
	{Name: "Pushkar", State: "Rajasthan", Lat: 26.4897, Lon: 74.5511, Tier: 2, Country: "India"},
	{Name: "Pondicherry", State: "Puducherry", Lat: 11.9416, Lon: 79.8083, Tier: 2, Country: "India"},
	{Name: "Shimla", State: "Himachal Pradesh", Lat: 31.1048, Lon: 77.1734, Tier: 2, Country: "India"},
	{Name: "Manali", State: "Himachal Pradesh", Lat: 32.2396, Lon: 77.1887, Tier: 2, Country: "India"},
	{Name: "Dharamshala", State: "Himachal Pradesh", Lat: 32.2190, Lon: 76.3234, Tier: 2, Country: "India"},
	{Name: "Darjeeling", State: "West Bengal", Lat: 27.0410, Lon: 88.2663, Tier: 2, Country: "India"},
	{Name: "Ooty", State: "Tamil Nadu", Lat: 11.4064, Lon: 76.6932, Tier: 2, Country: "India"},
	{Name: "Gangtok", State: "Sikkim", Lat: 27.3389, Lon: 88.6065, Tier: 2, Country: "India"},
	{Name: "Rishikesh", State: "Uttarakhand", Lat: 30.0869, Lon: 78.2676, Tier: 2, Country: "India"},
	{Name: "Haridwar", State: "Uttarakhand", Lat: 29.9457, Lon: 78.1642, Tier: 2, Country: "India"},
	{Name: "Mussoorie", State: "Uttarakhand", Lat: 30.4598, Lon: 78.0644, Tier: 2, Country: "India"},
	{Name: "Nainital", State: "Uttarakhand", Lat: 29.3803, Lon: 79.4636, Tier: 2, Country: "India"},
	{Name: "Mount Abu", State: "Rajasthan", Lat: 24.5926, Lon: 72.7156, Tier: 2, Country: "India"},
	{Name: "Kodaikanal", State: "Tamil Nadu", Lat: 10.2381, Lon: 77.4892, Tier: 2, Country: "India"},
	{Name: "Munnar", State: "Kerala", Lat: 10.0889, Lon: 77.0595, Tier: 2, Country: "India"},
	{Name: "Alleppey", State: "Kerala", Lat: 9.4981, Lon: 76.3388, Tier: 2, Country: "India"},
	{Name: "Kovalam", State: "Kerala", Lat: 8.4004, Lon: 76.9788, Tier: 2, Country: "India"},
	{Name: "Leh", State: "Ladakh", Lat: 34.1526, Lon: 77.5771, Tier: 2, Country: "India"},
	{Name: "Khajuraho", State: "Madhya Pradesh", Lat: 24.8318, Lon: 79.9199, Tier: 2, Country: "India"},
	{Name: "Hampi", State: "Karnataka", Lat: 15.3350, Lon: 76.4600, Tier: 2, Country: "India"},
	{Name: "Mahabalipuram", State: "Tamil Nadu", Lat: 12.6269, Lon: 80.1932, Tier: 2, Country: "India"},
	{Name: "Rameswaram", State: "Tamil Nadu", Lat: 9.2876, Lon: 79.3129, Tier: 2, Country: "India"},
	{Name: "Puri", State: "Odisha", Lat: 19.8135, Lon: 85.8312, Tier: 2, Country: "India"},
	{Name: "Konark", State: "Odisha", Lat: 19.8876, Lon: 86.0945, Tier: 2, Country: "India"},
	{Name: "Dwarka", State: "Gujarat", Lat: 22.2442, Lon: 68.9685, Tier: 2, Country: "India"},
	{Name: "Somnath", State: "Gujarat", Lat: 20.8880, Lon: 70.4013, Tier: 2, Country: "India"},
}

// MinQueryLength is the shortest query Search will answer.
const MinQueryLength = 2

// Search returns up to limit cities whose names contain the query,
// case-insensitively. Prefix matches rank ahead of substring matches so
// typing "Mu" surfaces Mumbai before Rameswaram. Queries shorter than
// MinQueryLength return an empty list rather than an error.
func Search(query string, limit int) []trip.City {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) < MinQueryLength || limit < 1 {
		return []trip.City{}
	}

	var prefix, substring []trip.City
	for _, city := range cities {
		name := strings.ToLower(city.Name)
		switch {
		case strings.HasPrefix(name, q):
			prefix = append(prefix, city)
		case strings.Contains(name, q):
			substring = append(substring, city)
		}
	}

	sort.SliceStable(prefix, func(i, j int) bool { return prefix[i].Tier < prefix[j].Tier })

	matches := append(prefix, substring...)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// ByName returns the city with the exact given name, case-insensitively.
func ByName(name string) (trip.City, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, city := range cities {
		if strings.ToLower(city.Name) == n {
			return city, true
		}
	}
	return trip.City{}, false
}

// Count returns the size of the dataset.
func Count() int {
	return len(cities)
}
