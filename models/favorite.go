package models

// Favorite marks a service as favorited by an account. Detail fields are
// populated when the remote response carries them; membership alone is the
// contract.
type Favorite struct {
	ServiceID string  `bson:"service_id" json:"service_id"`
	Name      string  `bson:"name,omitempty" json:"name,omitempty"`
	Price     float64 `bson:"price,omitempty" json:"price,omitempty"`
}
