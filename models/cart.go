package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// DefaultPaymentOption 為購物車建立時的預設付款方式
const DefaultPaymentOption = "貨到付款"

// Cart 以使用者Email作為文件主鍵，一位使用者最多只有一台購物車
type Cart struct {
	Email         string     `bson:"_id" json:"email"`
	Items         []CartItem `bson:"items" json:"items"`
	PaymentOption string     `bson:"paymentOption" json:"paymentOption"`
}

// CartItem 為購物車內嵌的商品項目，同一商品在購物車內至多出現一次
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  uint               `bson:"quantity" json:"quantity"`
}
