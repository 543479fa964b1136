package source

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/siteoverview/pkg/cache"
	"github.com/matzehuels/siteoverview/pkg/errors"
	"github.com/matzehuels/siteoverview/pkg/sites"
)

// Defaults for MongoOptions.
const (
	DefaultMongoDatabase   = "siteoverview"
	DefaultMongoCollection = "sites"
	DefaultMongoTimeout    = 5 * time.Second
)

// MongoOptions configures the MongoDB source.
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
	// Title is the overview title; documents carry only sites.
	Title   string
	Timeout time.Duration
}

// Mongo loads one document per site. Sites are returned sorted by site_id so
// the grid order is stable between loads.
type Mongo struct {
	client  *mongo.Client
	coll    *mongo.Collection
	title   string
	timeout time.Duration
}

// NewMongo connects to MongoDB and verifies the connection.
func NewMongo(ctx context.Context, opts MongoOptions) (*Mongo, error) {
	if opts.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "source.mongo_uri is required for the mongo source")
	}
	if opts.Database == "" {
		opts.Database = DefaultMongoDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultMongoCollection
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultMongoTimeout
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI).SetTimeout(opts.Timeout))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "connect mongo")
	}

	pingCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "ping mongo")
	}

	return &Mongo{
		client:  client,
		coll:    client.Database(opts.Database).Collection(opts.Collection),
		title:   opts.Title,
		timeout: opts.Timeout,
	}, nil
}

// Load queries all site documents. Network errors and timeouts are retried
// with backoff.
func (m *Mongo) Load(ctx context.Context) (sites.Overview, error) {
	var docs []sites.Site
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		docs, err = m.find(ctx)
		if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
			return cache.Retryable(err)
		}
		return err
	})
	if err != nil {
		if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
			return sites.Overview{}, errors.Wrap(errors.ErrCodeTimeout, err, "load sites from mongo")
		}
		return sites.Overview{}, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "load sites from mongo")
	}

	ov := sites.Overview{Title: m.title, RenderMode: sites.ModeSites, Sites: docs}
	if err := ov.Validate(); err != nil {
		return sites.Overview{}, err
	}
	return ov, nil
}

func (m *Mongo) find(ctx context.Context) ([]sites.Site, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	cur, err := m.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "site_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	docs := []sites.Site{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Name returns "mongo:<database>.<collection>".
func (m *Mongo) Name() string {
	return KindMongo + ":" + m.coll.Database().Name() + "." + m.coll.Name()
}

// Close disconnects the client.
func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	return m.client.Disconnect(ctx)
}
