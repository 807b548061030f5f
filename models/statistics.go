package models

import "time"

// ConsultationDailyStat is one day of a doctor's teleconsultation activity,
// aggregated over the consultations collection.
type ConsultationDailyStat struct {
	Date            time.Time `bson:"date" json:"date"`
	Count           int       `bson:"count" json:"count"`
	Completed       int       `bson:"completed" json:"completed"`
	Cancelled       int       `bson:"cancelled" json:"cancelled"`
	TotalDuration   int       `bson:"totalDuration" json:"totalDuration"`
	TotalRevenue    float64   `bson:"totalRevenue" json:"totalRevenue"`
	AverageDuration float64   `bson:"averageDuration" json:"averageDuration"`
}
