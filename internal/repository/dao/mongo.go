package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	shortTimeout = 5 * time.Second
	longTimeout  = 10 * time.Second
)

type itemDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Cost     float64            `bson:"cost"`
	Quantity float64            `bson:"quantity"`
}

type MongoItemDAO struct {
	col *mongo.Collection
}

func NewMongoItemDAO(col *mongo.Collection) *MongoItemDAO {
	return &MongoItemDAO{
		col: col,
	}
}

func (d *MongoItemDAO) Insert(ctx context.Context, item Item) (Item, error) {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()

	doc := itemDocument{
		ID:       primitive.NewObjectID(),
		Name:     item.Name,
		Cost:     item.Cost,
		Quantity: item.Quantity,
	}
	if _, err := d.col.InsertOne(ctx, doc); err != nil {
		return Item{}, fmt.Errorf("d.col.InsertOne -> %w", err)
	}

	return docToItem(doc), nil
}

func (d *MongoItemDAO) FindAll(ctx context.Context) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, longTimeout)
	defer cancel()

	cur, err := d.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("d.col.Find -> %w", err)
	}

	var docs []itemDocument
	if err = cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("cur.All -> %w", err)
	}

	items := make([]Item, 0, len(docs))
	for _, doc := range docs {
		items = append(items, docToItem(doc))
	}

	return items, nil
}

// DeleteByID reports whether a document was removed.
func (d *MongoItemDAO) DeleteByID(ctx context.Context, id string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()

	res := d.col.FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if err = res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("d.col.FindOneAndDelete -> %w", err)
	}

	return true, nil
}

func docToItem(doc itemDocument) Item {
	return Item{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		Cost:      doc.Cost,
		Quantity:  doc.Quantity,
		CreatedAt: doc.ID.Timestamp(),
	}
}
