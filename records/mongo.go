package records

import (
	"context"
	"errors"
	"log"

	"gallery/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	photosCollection = "photos"
	wishesCollection = "wishes"
)

var newestFirstDocs = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// MongoStore keeps photos and wishes as camelCase documents with the
// record id as _id.
type MongoStore struct {
	client *mongo.Client
	photos *mongo.Collection
	wishes *mongo.Collection
}

func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	db := client.Database(database)
	s := &MongoStore{
		client: client,
		photos: db.Collection(photosCollection),
		wishes: db.Collection(wishesCollection),
	}
	s.ensureIndexes(ctx)
	log.Printf("Record store: MongoDB database %s", database)
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) {
	_, err := s.photos.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: newestFirstDocs},
		{Keys: bson.D{{Key: "guestId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		log.Printf("Mongo photos index error: %v", err)
	}
	if _, err = s.wishes.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: newestFirstDocs}); err != nil {
		log.Printf("Mongo wishes index error: %v", err)
	}
}

func (s *MongoStore) CreatePhoto(ctx context.Context, photo *models.Photo) error {
	if _, err := s.photos.InsertOne(ctx, photo); err != nil {
		return storeError("create photo", err)
	}
	return nil
}

func (s *MongoStore) GetPhoto(ctx context.Context, id string) (*models.Photo, error) {
	photo := models.Photo{}
	err := s.photos.FindOne(ctx, bson.M{"_id": id}).Decode(&photo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, storeError("get photo", err)
	}
	return &photo, nil
}

func (s *MongoStore) ListPhotos(ctx context.Context, guestID string) ([]models.Photo, error) {
	filter := bson.M{}
	if guestID != "" {
		filter["guestId"] = guestID
	}
	cursor, err := s.photos.Find(ctx, filter, options.Find().SetSort(newestFirstDocs))
	if err != nil {
		return nil, storeError("list photos", err)
	}
	result := []models.Photo{}
	if err = cursor.All(ctx, &result); err != nil {
		return nil, storeError("list photos", err)
	}
	return result, nil
}

func (s *MongoStore) DeletePhoto(ctx context.Context, id string) error {
	res, err := s.photos.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeError("delete photo", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *MongoStore) CreateWish(ctx context.Context, wish *models.Wish) error {
	if _, err := s.wishes.InsertOne(ctx, wish); err != nil {
		return storeError("create wish", err)
	}
	return nil
}

func (s *MongoStore) CountWishes(ctx context.Context) (int64, error) {
	total, err := s.wishes.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, storeError("count wishes", err)
	}
	return total, nil
}

func (s *MongoStore) ListWishes(ctx context.Context, skip, limit int) ([]models.Wish, error) {
	opts := options.Find().SetSort(newestFirstDocs)
	if skip > 0 {
		opts.SetSkip(int64(skip))
	}
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := s.wishes.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, storeError("list wishes", err)
	}
	result := []models.Wish{}
	if err = cursor.All(ctx, &result); err != nil {
		return nil, storeError("list wishes", err)
	}
	return result, nil
}

func (s *MongoStore) DeleteWish(ctx context.Context, id string) error {
	res, err := s.wishes.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeError("delete wish", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
