package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/inkpost/internal/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const postsCollection = "posts"

// MongoPostStore keeps posts as documents in a MongoDB collection.
type MongoPostStore struct {
	collection *mongo.Collection
	now        func() time.Time
}

type postDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Summary   string             `bson:"summary"`
	Content   string             `bson:"content"`
	Cover     string             `bson:"cover"`
	Author    string             `bson:"author"`
	Tags      []string           `bson:"tags"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// ConnectMongo dials uri and verifies the deployment answers a ping.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// NewMongoPostStore creates a MongoPostStore on the posts collection of database.
func NewMongoPostStore(database *mongo.Database) *MongoPostStore {
	return &MongoPostStore{
		collection: database.Collection(postsCollection),
		now:        time.Now,
	}
}

// EnsureIndexes creates the createdAt and tags indexes used by listing queries.
func (s *MongoPostStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	})
	if err != nil {
		return persistenceError(err)
	}
	return nil
}

// ValidID reports whether id is a 24 character hex ObjectID.
func (s *MongoPostStore) ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// Create inserts the post as a new document and fills in its id and timestamps.
func (s *MongoPostStore) Create(ctx context.Context, post *db.Post) (string, error) {
	// BSON dates keep millisecond precision only.
	now := s.now().UTC().Truncate(time.Millisecond)
	doc := postDocument{
		ID:        primitive.NewObjectID(),
		Title:     post.Title,
		Summary:   post.Summary,
		Content:   post.Content,
		Cover:     post.Cover,
		Author:    post.Author,
		Tags:      post.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return "", persistenceError(err)
	}

	post.ID = doc.ID.Hex()
	post.CreatedAt = now
	post.UpdatedAt = now
	return post.ID, nil
}

// Get fetches a post by its ObjectID hex string.
func (s *MongoPostStore) Get(ctx context.Context, id string) (*db.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidIdentifier
	}

	var doc postDocument
	if err := s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, persistenceError(err)
	}

	post := doc.toPost()
	return &post, nil
}

// ListPaged returns one page of posts ordered by created time descending.
func (s *MongoPostStore) ListPaged(ctx context.Context, page, pageSize int) ([]db.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(pageOffset(page, pageSize))).
		SetLimit(int64(pageSize))

	cursor, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, persistenceError(err)
	}
	defer cursor.Close(ctx)

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, persistenceError(err)
	}

	posts := make([]db.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, doc.toPost())
	}
	return posts, nil
}

// DistinctTags returns every tag value used by at least one post.
func (s *MongoPostStore) DistinctTags(ctx context.Context) ([]string, error) {
	values, err := s.collection.Distinct(ctx, "tags", bson.D{})
	if err != nil {
		return nil, persistenceError(err)
	}

	tags := make([]string, 0, len(values))
	for _, value := range values {
		if tag, ok := value.(string); ok {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func (d postDocument) toPost() db.Post {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return db.Post{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Summary:   d.Summary,
		Content:   d.Content,
		Cover:     d.Cover,
		Author:    d.Author,
		Tags:      tags,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
