// Package mongodb implements the repositories on MongoDB. Counter documents
// live in the `counters` collection and are only ever mutated inside the same
// session transaction as the entity write they mirror.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stjosephs/hostel/core"
)

// Collections
const (
	colStaff      = "staff"
	colLearners   = "learners"
	colDuties     = "duties"
	colAssigned   = "assigned_duties"
	colAttendance = "attendance"
	colCounters   = "counters"
)

// Counter document keys
const (
	counterTotalLearners = "total-learners"
	counterTotalCapacity = "total-capacity"
)

func Open(ctx context.Context, conf *core.Config) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.Database.URI))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongo")
	}
	if err = ping(ctx, client); err != nil {
		return nil, err
	}
	return client.Database(conf.Database.Name), nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(ctx context.Context, client *mongo.Client) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = client.Ping(ctx, nil)
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}
	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// EnsureIndexes creates the indexes the repositories rely on; the unique
// attendance index is what enforces the one-record-per-(learner, activity,
// day) key under concurrent reconcile calls.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := true
	_, err := db.Collection(colAttendance).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "learner_details.id", Value: 1},
			{Key: "activity", Value: 1},
			{Key: "day", Value: 1},
			{Key: "month", Value: 1},
			{Key: "year", Value: 1},
		},
		Options: &options.IndexOptions{Unique: &unique},
	})
	if err != nil {
		return errors.Wrap(err, "creating attendance index")
	}

	_, err = db.Collection(colAssigned).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "learner_details.id", Value: 1}},
	})
	return errors.Wrap(err, "creating assigned_duties index")
}

// withTx runs fn inside a session transaction.
func withTx(ctx context.Context, db *mongo.Database, fn func(sc mongo.SessionContext) error) error {
	sess, err := db.Client().StartSession()
	if err != nil {
		return storeErr(err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// incCounter adjusts a counter document by delta, bumping its version.
func incCounter(ctx context.Context, db *mongo.Database, key string, delta int) error {
	upsert := true
	_, err := db.Collection(colCounters).UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$inc": bson.M{"total": delta, "version": 1}},
		&options.UpdateOptions{Upsert: &upsert},
	)
	return err
}

// readCounter reads a counter document; a missing document counts as zero.
func readCounter(ctx context.Context, db *mongo.Database, key string) (int, error) {
	var doc struct {
		Total int `bson:"total"`
	}
	err := db.Collection(colCounters).FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, storeErr(err)
	}
	return doc.Total, nil
}

// storeErr wraps infrastructure failures so callers can match
// core.ErrStoreUnavailable with errors.Is.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%v: %w", err, core.ErrStoreUnavailable)
}
