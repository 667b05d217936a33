package medicationRepo

import (
	"context"
	"fmt"
	"time"

	"medivault/database"
	"medivault/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMedicationRepo implements MedicationRepository using MongoDB.
type MongoMedicationRepo struct {
	coll *mongo.Collection
}

// NewMongoMedicationRepo creates a new instance of MedicationRepository using MongoDB.
func NewMongoMedicationRepo() MedicationRepository {
	coll := database.MongoClient.Database("medivault").Collection("medications")
	repo := &MongoMedicationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoMedicationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new medication document.
func (r *MongoMedicationRepo) Create(med *models.Medication) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	med.CreatedAt = now
	med.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, med)
	if err != nil {
		return fmt.Errorf("failed to create medication: %w", err)
	}
	return nil
}

// Update modifies an existing medication document.
func (r *MongoMedicationRepo) Update(med *models.Medication) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	med.UpdatedAt = time.Now()
	filter := bson.M{"id": med.ID}
	update := bson.M{"$set": med}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update medication with id %s: %w", med.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("medication with id %s not found", med.ID)
	}
	return nil
}

// Delete removes a medication document by its ID.
func (r *MongoMedicationRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete medication with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("medication with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a medication by its unique ID.
func (r *MongoMedicationRepo) GetByID(id string) (*models.Medication, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var med models.Medication
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&med); err != nil {
		return nil, fmt.Errorf("failed to fetch medication with id %s: %w", id, err)
	}
	return &med, nil
}

// GetByUserID retrieves all medications owned by the given user.
func (r *MongoMedicationRepo) GetByUserID(userID string) ([]models.Medication, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve medications for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var meds []models.Medication
	for cursor.Next(ctx) {
		var m models.Medication
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode medication: %w", err)
		}
		meds = append(meds, m)
	}
	return meds, nil
}
