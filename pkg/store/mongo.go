package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	cverr "github.com/matzehuels/columnview/pkg/errors"
	"github.com/matzehuels/columnview/pkg/graph"
)

const (
	mongoDefaultDB  = "columnview"
	mongoCollection = "graphs"
)

// mongoGraph is the document shape: the graph ID is the primary key.
type mongoGraph struct {
	ID    int          `bson:"_id"`
	Nodes []graph.Node `bson:"nodes"`
	Edges []graph.Edge `bson:"edges"`
}

// MongoStore reads graphs from the "graphs" collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and verifies the connection.
// An empty database name selects "columnview".
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		return nil, cverr.New(cverr.ErrCodeInvalidInput, "mongo uri cannot be empty")
	}
	if database == "" {
		database = mongoDefaultDB
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, cverr.Wrap(cverr.ErrCodeUnavailable, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, cverr.Wrap(cverr.ErrCodeUnavailable, err, "ping mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(mongoCollection),
	}, nil
}

func (s *MongoStore) List(ctx context.Context) ([]int, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, cverr.Wrap(cverr.ErrCodeUnavailable, err, "list graphs")
	}
	var docs []struct {
		ID int `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, cverr.Wrap(cverr.ErrCodeUnavailable, err, "list graphs")
	}
	ids := make([]int, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

func (s *MongoStore) Get(ctx context.Context, id int) (graph.Graph, error) {
	var doc mongoGraph
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return graph.Graph{}, notFound(id)
	}
	if err != nil {
		return graph.Graph{}, cverr.Wrap(cverr.ErrCodeUnavailable, err, "get graph %d", id)
	}
	return graph.Graph{Nodes: doc.Nodes, Edges: doc.Edges}, nil
}

// Put upserts g under id.
func (s *MongoStore) Put(ctx context.Context, id int, g graph.Graph) error {
	doc := mongoGraph{ID: id, Nodes: g.Nodes, Edges: g.Edges}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, opts); err != nil {
		return cverr.Wrap(cverr.ErrCodeUnavailable, err, "put graph %d", id)
	}
	return nil
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var (
	_ Store  = (*MongoStore)(nil)
	_ Writer = (*MongoStore)(nil)
)
