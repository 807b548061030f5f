package consultationRepo

import (
	"fmt"
	"time"

	"telecare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetDailyStatsByMedecin aggregates a doctor's consultations per calendar day.
func (r *MongoConsultationRepo) GetDailyStatsByMedecin(medecinID string, from, to time.Time) ([]models.ConsultationDailyStat, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	match := bson.M{"medecin_id": medecinID}
	dateFilter := bson.M{}
	if !from.IsZero() {
		dateFilter["$gte"] = from
	}
	if !to.IsZero() {
		dateFilter["$lte"] = to
	}
	if len(dateFilter) > 0 {
		match["date"] = dateFilter
	}

	statusCounter := func(status string) bson.M {
		return bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$status", status}}, 1, 0}}}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$date"},
				"month": bson.M{"$month": "$date"},
				"day":   bson.M{"$dayOfMonth": "$date"},
			},
			"count":         bson.M{"$sum": 1},
			"completed":     statusCounter(models.ConsultationCompleted),
			"cancelled":     statusCounter(models.ConsultationCancelled),
			"totalDuration": bson.M{"$sum": "$duration"},
			"totalRevenue":  bson.M{"$sum": "$price"},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id": 0,
			"date": bson.M{"$dateFromParts": bson.M{
				"year":  "$_id.year",
				"month": "$_id.month",
				"day":   "$_id.day",
			}},
			"count":           1,
			"completed":       1,
			"cancelled":       1,
			"totalDuration":   1,
			"totalRevenue":    1,
			"averageDuration": bson.M{"$divide": bson.A{"$totalDuration", "$count"}},
		}}},
		{{Key: "$sort", Value: bson.M{"date": 1}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate consultation statistics: %w", err)
	}
	defer cursor.Close(ctx)

	var stats []models.ConsultationDailyStat
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode consultation statistics: %w", err)
	}
	return stats, nil
}
