package storage

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const appName = "claynest-storefront"

// ConnectMongoDB opens the database holding the image bucket. The client is
// disconnected again when the server cannot be reached.
func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetAppName(appName).
		SetConnectTimeout(10*time.Second).
		SetServerSelectionTimeout(5*time.Second).
		SetMaxPoolSize(20))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("mongodb ping %s: %w", database, err)
	}
	return client.Database(database), nil
}

// DisconnectMongoDB closes the client behind db within timeout.
func DisconnectMongoDB(db *mongo.Database, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return db.Client().Disconnect(ctx)
}
