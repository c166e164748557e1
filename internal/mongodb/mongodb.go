package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"zenflowAPI/internal/progress"
	"zenflowAPI/internal/user"
)

const (
	usersCollection       = "users"
	completionsCollection = "completions"
)

// Client mirrors store writes into an external MongoDB and serves the
// daily-progress aggregation. The mirror is best-effort: callers queue
// writes fire-and-forget and only log failures.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, uri, dbName string) (*Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Client{client: client, db: client.Database(dbName)}, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

type userDocument struct {
	ID               string    `bson:"_id"`
	Email            string    `bson:"email"`
	Username         string    `bson:"username"`
	FirstName        string    `bson:"first_name,omitempty"`
	LastName         string    `bson:"last_name,omitempty"`
	EmailVerified    bool      `bson:"email_verified"`
	RemindersEnabled bool      `bson:"reminders_enabled"`
	CreatedAt        time.Time `bson:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at"`
}

type completionDocument struct {
	ID          string `bson:"_id"`
	UserID      string `bson:"user_id"`
	RoutineID   string `bson:"routine_id"`
	CompletedAt string `bson:"completed_at"`
	// Day is precomputed at write time so the aggregation can group on
	// a plain string; empty when CompletedAt failed to parse.
	Day string `bson:"day"`
}

// MirrorUser upserts the user document keyed by the store's user ID.
func (c *Client) MirrorUser(ctx context.Context, u *user.User) error {
	doc := userDocument{
		ID:               u.ID,
		Email:            u.Email,
		Username:         u.Username,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		EmailVerified:    u.EmailVerified,
		RemindersEnabled: u.RemindersEnabled,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}

	opts := options.Replace().SetUpsert(true)
	_, err := c.db.Collection(usersCollection).ReplaceOne(ctx, bson.M{"_id": u.ID}, doc, opts)
	if err != nil {
		return fmt.Errorf("failed to mirror user %s: %w", u.ID, err)
	}
	return nil
}

func (c *Client) MirrorCompletion(ctx context.Context, cm *progress.Completion) error {
	doc := completionDocument{
		ID:          cm.ID,
		UserID:      cm.UserID,
		RoutineID:   cm.RoutineID,
		CompletedAt: cm.CompletedAt,
		Day:         completionDay(cm.CompletedAt),
	}

	_, err := c.db.Collection(completionsCollection).InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to mirror completion %s: %w", cm.ID, err)
	}
	return nil
}

// RemoveUserData deletes a user's mirrored documents after account
// deletion.
func (c *Client) RemoveUserData(ctx context.Context, userID string) error {
	if _, err := c.db.Collection(completionsCollection).DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to remove mirrored completions for %s: %w", userID, err)
	}
	if _, err := c.db.Collection(usersCollection).DeleteOne(ctx, bson.M{"_id": userID}); err != nil {
		return fmt.Errorf("failed to remove mirrored user %s: %w", userID, err)
	}
	return nil
}

// DailyCounts groups a user's mirrored completions per calendar day,
// newest first, capped at limit buckets. Documents whose timestamp never
// parsed carry an empty day and are excluded.
func (c *Client) DailyCounts(ctx context.Context, userID string, limit int) ([]*progress.DailyCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID, "day": bson.M{"$ne": ""}}}},
		{{Key: "$group", Value: bson.M{"_id": "$day", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"_id": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := c.db.Collection(completionsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily counts: %w", err)
	}
	defer cursor.Close(ctx)

	var counts []*progress.DailyCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode daily counts: %w", err)
	}
	return counts, nil
}

func completionDay(ts string) string {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
