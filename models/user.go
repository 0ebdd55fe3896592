package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// DefaultAddress 為尚未設定收件地址的預設值，結帳前必須先修改
const DefaultAddress = "尚未設定收件地址"

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Address  string             `bson:"address" json:"address"`
	Balance  uint               `bson:"balance" json:"balance"`
	Role     string             `bson:"role" json:"role"`
}

// UserAddress 為查詢收件地址時的投影結果
type UserAddress struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email   string             `bson:"email,omitempty" json:"email,omitempty"`
	Address string             `bson:"address" json:"address"`
}
