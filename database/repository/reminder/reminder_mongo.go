package reminderRepo

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

// MongoReminderRepo implements ReminderRepository using MongoDB.
type MongoReminderRepo struct {
	coll *mongo.Collection
}

// NewMongoReminderRepo creates a new instance of ReminderRepository using MongoDB.
func NewMongoReminderRepo() ReminderRepository {
	coll := database.MongoClient.Database("medivault").Collection("reminders")
	repo := &MongoReminderRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for the due scan and the regeneration path.
// The compound unique index enforces at most one reminder per
// (medication, scheduledTime) pair.
func (r *MongoReminderRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "scheduledTime", Value: 1}}},
		{
			Keys:    bson.D{{Key: "medicationId", Value: 1}, {Key: "scheduledTime", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a single reminder document.
func (r *MongoReminderRepo) Create(rem *models.Reminder) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	rem.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, rem); err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}

// GetByMedication retrieves all reminders for a medication, ascending by
// scheduled time.
func (r *MongoReminderRepo) GetByMedication(medicationID string) ([]models.Reminder, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "scheduledTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"medicationId": medicationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reminders for medication %s: %w", medicationID, err)
	}
	defer cursor.Close(ctx)

	return decodeReminders(ctx, cursor)
}

// ListDue returns pending reminders whose scheduled time has passed, oldest
// first.
func (r *MongoReminderRepo) ListDue(now time.Time) ([]models.Reminder, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"status":        models.ReminderStatusPending,
		"scheduledTime": bson.M{"$lte": now},
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduledTime", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve due reminders: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeReminders(ctx, cursor)
}

// SetStatus transitions a pending reminder to a terminal status. The filter
// includes status=pending so the write is a single atomic compare-and-set;
// a reminder that is already sent or skipped is never touched.
func (r *MongoReminderRepo) SetStatus(id, status string, sentAt *time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.ReminderStatusPending}
	set := bson.M{"status": status}
	if sentAt != nil {
		set["sentAt"] = *sentAt
	}

	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update reminder %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotPending
	}
	return nil
}

// ReplacePending removes the medication's pending reminders and inserts the
// fresh set. The regeneration entrypoint is the only writer of pending rows,
// and the poller only flips pending rows to terminal states, so the
// delete-then-insert pair cannot interleave into duplicates.
func (r *MongoReminderRepo) ReplacePending(medicationID string, fresh []models.Reminder) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"medicationId": medicationID,
		"status":       models.ReminderStatusPending,
	}
	if _, err := r.coll.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("failed to discard pending reminders for medication %s: %w", medicationID, err)
	}

	if len(fresh) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(fresh))
	for i := range fresh {
		fresh[i].CreatedAt = now
		docs = append(docs, fresh[i])
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert reminders for medication %s: %w", medicationID, err)
	}
	return nil
}

// DeleteByMedication removes every reminder belonging to a medication.
func (r *MongoReminderRepo) DeleteByMedication(medicationID string) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"medicationId": medicationID}); err != nil {
		return fmt.Errorf("failed to delete reminders for medication %s: %w", medicationID, err)
	}
	return nil
}

func decodeReminders(ctx context.Context, cursor *mongo.Cursor) ([]models.Reminder, error) {
	var reminders []models.Reminder
	for cursor.Next(ctx) {
		var rem models.Reminder
		if err := cursor.Decode(&rem); err != nil {
			return nil, fmt.Errorf("failed to decode reminder: %w", err)
		}
		reminders = append(reminders, rem)
	}
	return reminders, nil
}
