package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stjosephs/hostel/core"
	"github.com/stjosephs/hostel/core/access"
	"github.com/stjosephs/hostel/core/learner"
)

// learnerDoc is the persisted shape of learner.Learner; the id is a real
// ObjectID in the store and hex over the wire.
type learnerDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"first_name"`
	LastName  string             `bson:"last_name"`
	Block     access.Block       `bson:"block"`
	Grade     int                `bson:"grade"`
	Room      int                `bson:"room"`
	Present   bool               `bson:"present"`
	LastDuty  string             `bson:"last_duty"`
	Image     []byte             `bson:"image,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func newLearnerDoc(l learner.Learner) (learnerDoc, error) {
	doc := learnerDoc{
		FirstName: l.FirstName,
		LastName:  l.LastName,
		Block:     l.Block,
		Grade:     l.Grade,
		Room:      l.Room,
		Present:   l.Present,
		LastDuty:  l.LastDuty,
		Image:     l.Image,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
	if l.ID != "" {
		oid, err := primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return learnerDoc{}, core.ErrInvalidID
		}
		doc.ID = oid
	}
	return doc, nil
}

func (doc learnerDoc) toLearner() learner.Learner {
	return learner.Learner{
		ID:        doc.ID.Hex(),
		FirstName: doc.FirstName,
		LastName:  doc.LastName,
		Block:     doc.Block,
		Grade:     doc.Grade,
		Room:      doc.Room,
		Present:   doc.Present,
		LastDuty:  doc.LastDuty,
		Image:     doc.Image,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

type learnerRepository struct {
	db *mongo.Database
}

var _ learner.Repository = (*learnerRepository)(nil) // interface compliance check

func NewLearnerRepository(db *mongo.Database) learner.Repository {
	return &learnerRepository{db: db}
}

func (repo *learnerRepository) col() *mongo.Collection {
	return repo.db.Collection(colLearners)
}

func (repo *learnerRepository) CreateLearner(ctx context.Context, l learner.Learner) (learner.Learner, error) {
	doc, err := newLearnerDoc(l)
	if err != nil {
		return learner.Learner{}, err
	}

	err = withTx(ctx, repo.db, func(sc mongo.SessionContext) error {
		res, err := repo.col().InsertOne(sc, doc)
		if err != nil {
			return err
		}
		doc.ID = res.InsertedID.(primitive.ObjectID)
		return incCounter(sc, repo.db, counterTotalLearners, 1)
	})
	if err != nil {
		return learner.Learner{}, storeErr(err)
	}
	return doc.toLearner(), nil
}

func (repo *learnerRepository) GetLearnerByID(ctx context.Context, id string) (learner.Learner, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return learner.Learner{}, core.ErrInvalidID
	}

	var doc learnerDoc
	err = repo.col().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return learner.Learner{}, learner.ErrNotFound
	}
	if err != nil {
		return learner.Learner{}, storeErr(err)
	}
	return doc.toLearner(), nil
}

func (repo *learnerRepository) QueryAllLearners(ctx context.Context) ([]learner.Learner, error) {
	return repo.find(ctx, bson.M{})
}

func (repo *learnerRepository) FilterLearners(ctx context.Context, filter learner.QueryFilter) ([]learner.Learner, error) {
	query := bson.M{}
	if len(filter.Blocks) > 0 {
		query["block"] = bson.M{"$in": filter.Blocks}
	}
	if filter.Present != nil {
		query["present"] = *filter.Present
	}
	return repo.find(ctx, query)
}

func (repo *learnerRepository) SetLearnerPresence(ctx context.Context, id string, present bool, updatedAt time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return core.ErrInvalidID
	}

	res, err := repo.col().UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"present": present, "updated_at": updatedAt}},
	)
	if err != nil {
		return storeErr(err)
	}
	if res.MatchedCount == 0 {
		return learner.ErrNotFound
	}
	return nil
}

func (repo *learnerRepository) DeleteLearner(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return core.ErrInvalidID
	}

	err = withTx(ctx, repo.db, func(sc mongo.SessionContext) error {
		res, err := repo.col().DeleteOne(sc, bson.M{"_id": oid})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return learner.ErrNotFound
		}
		return incCounter(sc, repo.db, counterTotalLearners, -1)
	})
	if err == learner.ErrNotFound {
		return err
	}
	return storeErr(err)
}

func (repo *learnerRepository) TotalLearners(ctx context.Context) (int, error) {
	return readCounter(ctx, repo.db, counterTotalLearners)
}

func (repo *learnerRepository) find(ctx context.Context, query bson.M) ([]learner.Learner, error) {
	cur, err := repo.col().Find(ctx, query)
	if err != nil {
		return nil, storeErr(err)
	}
	defer func() { _ = cur.Close(ctx) }()

	learners := make([]learner.Learner, 0)
	for cur.Next(ctx) {
		var doc learnerDoc
		if err = cur.Decode(&doc); err != nil {
			return nil, storeErr(err)
		}
		learners = append(learners, doc.toLearner())
	}
	if err = cur.Err(); err != nil {
		return nil, storeErr(err)
	}
	return learners, nil
}
