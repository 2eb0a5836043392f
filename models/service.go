package models

// ServiceSnapshot captures the service details as they were at booking time.
// It is not live-linked to the salon's service catalogue.
type ServiceSnapshot struct {
	ServiceID       string  `bson:"service_id" json:"service_id"`
	Name            string  `bson:"name" json:"name"`
	Price           float64 `bson:"price" json:"price"`
	DurationMinutes int     `bson:"duration_minutes" json:"duration_minutes"`
}
