package repository

import (
	"context"

	"Backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type LoginTokenRepository struct {
	db *mongo.Database
}

func NewLoginTokenRepository(db *mongo.Database) *LoginTokenRepository {
	return &LoginTokenRepository{db: db}
}

func (r *LoginTokenRepository) col() *mongo.Collection {
	return r.db.Collection("login_tokens")
}

func (r *LoginTokenRepository) Create(ctx context.Context, token *models.LoginToken) error {
	_, err := r.col().InsertOne(ctx, token)
	return err
}

// Exists 檢查Token是否仍然有效(登出後會被刪除)
func (r *LoginTokenRepository) Exists(ctx context.Context, token string) (bool, error) {
	err := r.col().FindOne(ctx, bson.M{"token": token}).Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete 刪除Token並回傳刪除數量，供登出判斷Token是否存在
func (r *LoginTokenRepository) Delete(ctx context.Context, token string) (int64, error) {
	result, err := r.col().DeleteOne(ctx, bson.M{"token": token})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
