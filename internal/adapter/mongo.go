package adapter

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pii-radar/piiradar/internal/detector"
	"github.com/pii-radar/piiradar/internal/engine"
	"github.com/pii-radar/piiradar/internal/models"
)

// MongoAdapter scans documents from a MongoDB collection set, grounded
// on bharat-parihar-ARC-Hawk's mongo-driver connector shape.
type MongoAdapter struct {
	cfg DBConfig
}

// NewMongoAdapter returns a MongoAdapter over cfg. Tables names the
// collections to scan (spec reuses the --tables flag for collections).
func NewMongoAdapter(cfg DBConfig) *MongoAdapter {
	return &MongoAdapter{cfg: cfg}
}

func (a *MongoAdapter) Iter(yield func(sourceID string, text engine.TextProvider, locate detector.LocationFactory) error) error {
	ctx := context.Background()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(a.cfg.ConnectionString))
	if err != nil {
		return &models.AdapterFatalError{Err: fmt.Errorf("connecting to mongodb: %w", err)}
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		return &models.AdapterFatalError{Err: fmt.Errorf("pinging mongodb: %w", err)}
	}

	db := client.Database(a.cfg.Database)

	collections, err := a.collections(ctx, db)
	if err != nil {
		return &models.AdapterFatalError{Err: err}
	}

	for _, coll := range collections {
		if err := a.iterCollection(ctx, db.Collection(coll), coll, yield); err != nil {
			return err
		}
	}
	return nil
}

func (a *MongoAdapter) collections(ctx context.Context, db *mongo.Database) ([]string, error) {
	if len(a.cfg.Tables) > 0 {
		return a.cfg.Tables, nil
	}
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	var out []string
	for _, n := range names {
		if wantTable(a.cfg, n) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (a *MongoAdapter) iterCollection(ctx context.Context, coll *mongo.Collection, name string, yield func(sourceID string, text engine.TextProvider, locate detector.LocationFactory) error) error {
	findOpts := options.Find()
	if a.cfg.RowLimit > 0 {
		findOpts.SetLimit(int64(a.cfg.RowLimit))
	}

	cursor, err := coll.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return &models.AdapterTransientError{SourceID: name, Err: err}
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return &models.AdapterTransientError{SourceID: name, Err: err}
		}

		order, values, rowKey := stringifyDoc(a.cfg, doc)
		text, columnAt := rowText(order, values)
		sourceID := fmt.Sprintf("%s:%s", name, rowKey)

		provider := func() (string, error) { return text, nil }
		locate := func(offset int) models.Location {
			return models.Location{Kind: models.LocationRow, TableOrCollection: name, RowKey: rowKey, ColumnOrField: columnAt(offset)}
		}

		if err := yield(sourceID, provider, locate); err != nil {
			return err
		}
	}
	return cursor.Err()
}

func stringifyDoc(cfg DBConfig, doc bson.M) (order []string, values map[string]string, rowKey string) {
	values = make(map[string]string, len(doc))
	for field, v := range doc {
		if !wantColumn(cfg, field) {
			continue
		}
		order = append(order, field)
		values[field] = fmt.Sprintf("%v", v)
	}
	sort.Strings(order)
	if id, ok := doc["_id"]; ok {
		rowKey = fmt.Sprintf("%v", id)
	} else if len(order) > 0 {
		rowKey = values[order[0]]
	}
	return order, values, rowKey
}
