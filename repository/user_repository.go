package repository

import (
	"context"

	"Backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository struct {
	db *mongo.Database
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) col() *mongo.Collection {
	return r.db.Collection("users")
}

// GetByID 查詢使用者，查無資料時回傳(nil, nil)由呼叫端決定錯誤
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.col().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail 查詢使用者，查無資料時回傳(nil, nil)不代表錯誤
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.col().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	result, err := r.col().InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// GetAddressByID 以投影查詢收件地址，projectOnly為true時僅回傳地址欄位
func (r *UserRepository) GetAddressByID(ctx context.Context, id primitive.ObjectID, projectOnly bool) (*models.UserAddress, error) {
	projection := bson.M{"address": 1, "email": 1}
	if projectOnly {
		projection = bson.M{"address": 1, "_id": 0}
	}

	var address models.UserAddress
	err := r.col().
		FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(projection)).
		Decode(&address)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

func (r *UserRepository) SetAddress(ctx context.Context, id primitive.ObjectID, address string) error {
	_, err := r.col().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"address": address}},
	)
	return err
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	cursor, err := r.col().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
