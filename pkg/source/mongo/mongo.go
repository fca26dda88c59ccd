// Package mongo stores and loads tree snapshots in a MongoDB collection.
//
// Each node is one document tagged with the snapshot it belongs to:
//
//	{"snap": 1718000000000000000, "seq": 0, "node_id": 1, "links": [2, 3], "pos": [130, 25]}
//
// Identifiers may be strings or integers. A head document
// {"_id": "head", "snap": ..., "count": ...} names the published snapshot.
// Save writes a new snapshot, moves the head to it and then removes older
// nodes, so readers always see one complete snapshot. Documents are read in
// ascending seq order, which becomes the node order.
//
// A collection without a head document is read as a single hand-written
// snapshot.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	perrors "github.com/matzehuels/treeplot/pkg/errors"
	treeio "github.com/matzehuels/treeplot/pkg/io"
	"github.com/matzehuels/treeplot/pkg/tree"
)

// Defaults for database and collection names.
const (
	DefaultDatabase   = "treeplot"
	DefaultCollection = "nodes"
)

const (
	headID = "head"

	// readAttempts bounds re-reads when a Save replaces the snapshot
	// between reading the head and reading its nodes.
	readAttempts = 3
)

// nodeDoc is the stored form of one node. ID and link elements are decoded
// as any so integer identifiers survive. Links is a pointer so a missing
// field can be told apart from an empty array.
type nodeDoc struct {
	Snap  int64     `bson:"snap,omitempty"`
	Seq   int       `bson:"seq"`
	ID    any       `bson:"node_id"`
	Links *[]any    `bson:"links"`
	Pos   []float64 `bson:"pos"`
}

// headDoc names the published snapshot and its node count.
type headDoc struct {
	ID    string `bson:"_id"`
	Snap  int64  `bson:"snap"`
	Count int    `bson:"count"`
}

// Source reads nodes from one collection.
type Source struct {
	client *mongo.Client
	coll   *mongo.Collection
	owned  bool
}

// New wraps an existing client. Close leaves the client open.
func New(client *mongo.Client, database, collection string) *Source {
	if database == "" {
		database = DefaultDatabase
	}
	if collection == "" {
		collection = DefaultCollection
	}
	return &Source{client: client, coll: client.Database(database).Collection(collection)}
}

// Dial connects to uri and checks the connection with a ping.
func Dial(ctx context.Context, uri, database, collection string) (*Source, error) {
	if err := perrors.ValidateURL(uri, "mongodb", "mongodb+srv"); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidSource, err, "mongo uri")
	}
	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)
	if err := opts.Validate(); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidSource, err, "mongo uri")
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidSource, err, "mongo connect")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, perrors.Wrap(perrors.ErrCodeSourceUnavailable, err, "mongo ping")
	}
	s := New(client, database, collection)
	s.owned = true
	return s, nil
}

// Collection returns the collection name.
func (s *Source) Collection() string { return s.coll.Name() }

// Tree reads the published snapshot ordered by seq. An empty collection
// is an empty tree.
func (s *Source) Tree(ctx context.Context) (*tree.Tree, error) {
	for range readAttempts {
		head, found, err := s.head(ctx)
		if err != nil {
			return nil, err
		}
		filter := bson.D{{Key: "seq", Value: bson.D{{Key: "$exists", Value: true}}}}
		if found {
			filter = append(filter, bson.E{Key: "snap", Value: head.Snap})
		}
		docs, err := s.find(ctx, filter)
		if err != nil {
			return nil, err
		}
		if found && len(docs) != head.Count {
			continue
		}
		return assemble(docs)
	}
	return nil, perrors.New(perrors.ErrCodeSourceUnavailable, "mongo %s: snapshot kept changing while reading", s.coll.Name())
}

func (s *Source) head(ctx context.Context) (headDoc, bool, error) {
	var h headDoc
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: headID}}).Decode(&h)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return h, false, nil
	}
	if err != nil {
		return h, false, perrors.Wrap(perrors.ErrCodeSourceUnavailable, err, "mongo head %s", s.coll.Name())
	}
	return h, true, nil
}

func (s *Source) find(ctx context.Context, filter bson.D) ([]nodeDoc, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cur, err := s.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeSourceUnavailable, err, "mongo find %s", s.coll.Name())
	}
	defer cur.Close(ctx)

	var docs []nodeDoc
	for cur.Next(ctx) {
		var d nodeDoc
		if err := cur.Decode(&d); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidTree, err, "decode document")
		}
		docs = append(docs, d)
	}
	if err := cur.Err(); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeSourceUnavailable, err, "mongo cursor")
	}
	return docs, nil
}

// assemble builds a tree from documents already in seq order.
func assemble(docs []nodeDoc) (*tree.Tree, error) {
	t := tree.New()
	for _, d := range docs {
		id, n, err := d.node()
		if err != nil {
			return nil, err
		}
		if err := t.Add(id, n); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidTree, err, "node %q", id)
		}
	}
	return t, nil
}

func (d nodeDoc) node() (tree.ID, tree.Node, error) {
	id, err := treeio.NormalizeID(d.ID)
	if err != nil {
		return "", tree.Node{}, perrors.Wrap(perrors.ErrCodeInvalidTree, err, "document seq %d", d.Seq)
	}
	if d.Links == nil {
		return "", tree.Node{}, perrors.New(perrors.ErrCodeInvalidTree, "node %s: missing links", id)
	}
	if len(d.Pos) != 2 {
		return "", tree.Node{}, perrors.New(perrors.ErrCodeInvalidTree, "node %s: pos must have 2 coordinates, got %d", id, len(d.Pos))
	}
	links := make([]tree.ID, len(*d.Links))
	for i, raw := range *d.Links {
		if links[i], err = treeio.NormalizeID(raw); err != nil {
			return "", tree.Node{}, perrors.Wrap(perrors.ErrCodeInvalidTree, err, "node %s: link #%d", id, i)
		}
	}
	return id, tree.Node{Links: links, Pos: tree.Position{X: d.Pos[0], Y: d.Pos[1]}}, nil
}

// toDocs converts t into documents of snapshot snap numbered in node
// order.
func toDocs(t *tree.Tree, snap int64) []any {
	docs := make([]any, 0, t.Len())
	seq := 0
	for id, n := range t.All() {
		links := make([]any, len(n.Links))
		for i, l := range n.Links {
			links[i] = string(l)
		}
		docs = append(docs, nodeDoc{
			Snap:  snap,
			Seq:   seq,
			ID:    string(id),
			Links: &links,
			Pos:   []float64{n.Pos.X, n.Pos.Y},
		})
		seq++
	}
	return docs
}

// Save publishes t as a new snapshot. Readers keep seeing the previous
// snapshot until the head moves; a failed write leaves it in place.
func (s *Source) Save(ctx context.Context, t *tree.Tree) error {
	snap := time.Now().UnixNano()
	if docs := toDocs(t, snap); len(docs) > 0 {
		if _, err := s.coll.InsertMany(ctx, docs); err != nil {
			_, _ = s.coll.DeleteMany(context.WithoutCancel(ctx), bson.D{{Key: "snap", Value: snap}})
			return perrors.Wrap(perrors.ErrCodeSourceUnavailable, err, "mongo insert %s", s.coll.Name())
		}
	}

	head := headDoc{ID: headID, Snap: snap, Count: t.Len()}
	_, err := s.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: headID}}, head, options.Replace().SetUpsert(true))
	if err != nil {
		_, _ = s.coll.DeleteMany(context.WithoutCancel(ctx), bson.D{{Key: "snap", Value: snap}})
		return perrors.Wrap(perrors.ErrCodeSourceUnavailable, err, "mongo publish %s", s.coll.Name())
	}

	stale := bson.D{
		{Key: "_id", Value: bson.D{{Key: "$ne", Value: headID}}},
		{Key: "snap", Value: bson.D{{Key: "$ne", Value: snap}}},
	}
	if _, err := s.coll.DeleteMany(ctx, stale); err != nil {
		return perrors.Wrap(perrors.ErrCodeSourceUnavailable, err, "mongo prune %s", s.coll.Name())
	}
	return nil
}

// Close disconnects the client if Dial created it.
func (s *Source) Close() error {
	if !s.owned {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// String describes the source for logs.
func (s *Source) String() string {
	return fmt.Sprintf("mongo:%s.%s", s.coll.Database().Name(), s.coll.Name())
}

var _ tree.Source = (*Source)(nil)
