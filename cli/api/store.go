package api

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	ds "github.com/oaiiae/contacts-api/datastores"
)

type StoreOptions struct {
	StoreURI            string        `doc:"contacts store: mem://, mongodb://, mongodb+srv://, redis:// or rediss://" default:"mem://"`
	StoreDatabase       string        `doc:"database when the mongodb URI names none"                                  default:"contacts"`
	StorePrefix         string        `doc:"collection name or redis key prefix"                                       default:"contacts"`
	StoreConnectTimeout time.Duration `doc:"time allowed to connect to the store"                                      default:"10s"`
}

// NewStore connects to the store named by options and checks it answers.
// The returned function releases the connection.
func NewStore(
	ctx context.Context,
	options *StoreOptions,
	logger *slog.Logger,
) (ds.ContactsStore, func(context.Context) error, error) {
	u, err := url.Parse(options.StoreURI)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parsing store URI")
	}

	ctx, cancel := context.WithTimeout(ctx, options.StoreConnectTimeout)
	defer cancel()

	switch u.Scheme {
	case "mem":
		logger.Warn("using in-memory store, contacts will be lost on exit")
		return ds.NewContactsInmem(), func(context.Context) error { return nil }, nil

	case "mongodb", "mongodb+srv":
		return newMongoStore(ctx, options, logger)

	case "redis", "rediss":
		return newRedisStore(ctx, options, logger)

	default:
		return nil, nil, errors.Errorf("unsupported store scheme %q", u.Scheme)
	}
}

func newMongoStore(
	ctx context.Context,
	options *StoreOptions,
	logger *slog.Logger,
) (ds.ContactsStore, func(context.Context) error, error) {
	cs, err := connstring.ParseAndValidate(options.StoreURI)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parsing mongodb URI")
	}
	database := cs.Database
	if database == "" {
		database = options.StoreDatabase
	}

	client, err := mongo.Connect(ctx, mongoClientOptions(options.StoreURI))
	if err != nil {
		return nil, nil, errors.Wrap(err, "connecting to mongodb")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background()) //nolint: errcheck // already failing
		return nil, nil, errors.Wrap(err, "pinging mongodb")
	}

	logger.Info("connected to mongodb", "hosts", cs.Hosts, "database", database, "collection", options.StorePrefix)
	store := ds.NewContactsMongo(client.Database(database).Collection(options.StorePrefix))
	return store, client.Disconnect, nil
}

func mongoClientOptions(uri string) *options.ClientOptions {
	return options.Client().ApplyURI(uri).SetAppName("contacts-api")
}

func newRedisStore(
	ctx context.Context,
	options *StoreOptions,
	logger *slog.Logger,
) (ds.ContactsStore, func(context.Context) error, error) {
	opts, err := redis.ParseURL(options.StoreURI)
	if err != nil {
		return nil, nil, errors.Wrap(err, "parsing redis URI")
	}

	rdb := redis.NewClient(opts)
	store := ds.NewContactsRedis(rdb, ds.WithRedisPrefix(options.StorePrefix))
	if err := store.Ping(ctx); err != nil {
		rdb.Close() //nolint: errcheck // already failing
		return nil, nil, err
	}

	logger.Info("connected to redis", "addr", opts.Addr, "db", opts.DB, "prefix", options.StorePrefix)
	return store, func(context.Context) error { return rdb.Close() }, nil
}
