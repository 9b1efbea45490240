package domain

// Draft is an in-flight report held per session until commit. It never
// touches the database; the draft store keeps it in redis with a TTL.
type Draft struct {
	ImagePath    string   `json:"image_path"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Address      string   `json:"address,omitempty"`
	LocationText string   `json:"location_text,omitempty"`
}
