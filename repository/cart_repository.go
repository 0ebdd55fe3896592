package repository

import (
	"context"
	"errors"

	"Backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrInsufficientFunds 表示交易內的扣款條件不成立(餘額在讀取後已被其他請求扣減)
var ErrInsufficientFunds = errors.New("餘額不足以完成扣款")

type CartRepository struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewCartRepository(client *mongo.Client, db *mongo.Database) *CartRepository {
	return &CartRepository{client: client, db: db}
}

func (r *CartRepository) col() *mongo.Collection {
	return r.db.Collection("carts")
}

// GetByEmail 查詢購物車，查無資料時回傳(nil, nil)由呼叫端決定錯誤
func (r *CartRepository) GetByEmail(ctx context.Context, email string) (*models.Cart, error) {
	var cart models.Cart
	err := r.col().FindOne(ctx, bson.M{"_id": email}).Decode(&cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *CartRepository) Create(ctx context.Context, cart *models.Cart) error {
	_, err := r.col().InsertOne(ctx, cart)
	return err
}

// Update 以Email整份覆蓋購物車文件
func (r *CartRepository) Update(ctx context.Context, cart *models.Cart) error {
	_, err := r.col().ReplaceOne(ctx, bson.M{"_id": cart.Email}, cart)
	return err
}

// DebitAndClear 在同一筆交易內扣除使用者餘額並清空購物車，
// 兩者要麼一起成功要麼一起失敗。扣款附帶balance >= total條件，
// 餘額在讀取後被其他請求扣減時整筆交易中止並回傳ErrInsufficientFunds。
func (r *CartRepository) DebitAndClear(ctx context.Context, user *models.User, total uint) (*models.Cart, error) {
	session, err := r.client.StartSession()
	if err != nil {
		return nil, err
	}
	defer session.EndSession(ctx)

	users := r.db.Collection("users")

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		result, err := users.UpdateOne(sc,
			bson.M{"_id": user.ID, "balance": bson.M{"$gte": total}},
			bson.M{"$inc": bson.M{"balance": -int64(total)}},
		)
		if err != nil {
			return nil, err
		}
		if result.MatchedCount == 0 {
			return nil, ErrInsufficientFunds
		}

		_, err = r.col().UpdateOne(sc,
			bson.M{"_id": user.Email},
			bson.M{"$set": bson.M{"items": []models.CartItem{}}},
		)
		if err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByEmail(ctx, user.Email)
}
