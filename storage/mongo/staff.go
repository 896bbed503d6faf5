package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stjosephs/hostel/core/staff"
)

type staffRepository struct {
	db *mongo.Database
}

var _ staff.Repository = (*staffRepository)(nil) // interface compliance check

func NewStaffRepository(db *mongo.Database) staff.Repository {
	return &staffRepository{db: db}
}

func (repo *staffRepository) col() *mongo.Collection {
	return repo.db.Collection(colStaff)
}

func (repo *staffRepository) CreateStaff(ctx context.Context, stf staff.Staff) (staff.Staff, error) {
	_, err := repo.col().InsertOne(ctx, stf)
	if mongo.IsDuplicateKeyError(err) {
		return staff.Staff{}, staff.ErrExists
	}
	if err != nil {
		return staff.Staff{}, storeErr(err)
	}
	return stf, nil
}

func (repo *staffRepository) GetStaffByUsername(ctx context.Context, username string) (staff.Staff, error) {
	var stf staff.Staff
	err := repo.col().FindOne(ctx, bson.M{"_id": username}).Decode(&stf)
	if err == mongo.ErrNoDocuments {
		return staff.Staff{}, staff.ErrNotFound
	}
	if err != nil {
		return staff.Staff{}, storeErr(err)
	}
	return stf, nil
}

func (repo *staffRepository) QueryAllStaff(ctx context.Context) ([]staff.Staff, error) {
	cur, err := repo.col().Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr(err)
	}
	defer func() { _ = cur.Close(ctx) }()

	all := make([]staff.Staff, 0)
	for cur.Next(ctx) {
		var stf staff.Staff
		if err = cur.Decode(&stf); err != nil {
			return nil, storeErr(err)
		}
		all = append(all, stf)
	}
	if err = cur.Err(); err != nil {
		return nil, storeErr(err)
	}
	return all, nil
}

func (repo *staffRepository) UpdateStaffPassword(ctx context.Context, username string, hash []byte, updatedAt time.Time) error {
	return repo.set(ctx, username, bson.M{"password_hash": hash, "updated_at": updatedAt})
}

func (repo *staffRepository) SetStaffActive(ctx context.Context, username string, active bool, updatedAt time.Time) error {
	return repo.set(ctx, username, bson.M{"active": active, "updated_at": updatedAt})
}

func (repo *staffRepository) DeleteStaff(ctx context.Context, username string) error {
	res, err := repo.col().DeleteOne(ctx, bson.M{"_id": username})
	if err != nil {
		return storeErr(err)
	}
	if res.DeletedCount == 0 {
		return staff.ErrNotFound
	}
	return nil
}

func (repo *staffRepository) set(ctx context.Context, username string, fields bson.M) error {
	res, err := repo.col().UpdateOne(ctx, bson.M{"_id": username}, bson.M{"$set": fields})
	if err != nil {
		return storeErr(err)
	}
	if res.MatchedCount == 0 {
		return staff.ErrNotFound
	}
	return nil
}
