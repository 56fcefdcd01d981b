package domain

// Listing is a laptop offered for sale on the marketplace.
type Listing struct {
	ID          int64  `json:"id" bson:"_id,omitempty"`
	Brand       string `json:"brand" bson:"brand"`
	Model       string `json:"model" bson:"model"`
	Price       string `json:"price" bson:"price"`
	Description string `json:"description" bson:"description"`
	ImageURL    string `json:"image_url,omitempty" bson:"image_url,omitempty"`
	OwnerID     int64  `json:"owner" bson:"owner_id"`
}

// IsOwner reports whether userID may mutate the listing. Ownership is
// assigned at creation time and never changes afterwards.
func (l *Listing) IsOwner(userID int64) bool {
	return l.OwnerID == userID
}
