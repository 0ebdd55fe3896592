package jwt

import (
	"context"
	"crypto/rsa"
	"log"
	"os"

	"Backend/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	privateKeyPath = "jwt/private_key.pem"
	publicKeyPath  = "jwt/public_key.pem"
)

// 讀取私鑰
func loadPrivateKey() (*rsa.PrivateKey, error) {
	keyBytes, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, err
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(keyBytes)
	if err != nil {
		return nil, err
	}

	return key, nil
}

// 讀取公鑰
func loadPublicKey() (*rsa.PublicKey, error) {
	keyBytes, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, err
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM(keyBytes)
	if err != nil {
		return nil, err
	}

	return key, nil
}

// 生成JWT Token，userID為Mongo ObjectID的十六進位字串
func GenerateToken(userID string, role string, expTime int64) (string, error) {
	privateKey, err := loadPrivateKey()
	if err != nil {
		return "", err
	}

	token := jwt.New(jwt.SigningMethodRS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["userID"] = userID
	claims["exp"] = expTime
	claims["role"] = role
	//每個Token帶唯一jti，同一使用者同秒重複登入時Token字串才不會相同
	claims["jti"] = uuid.NewString()

	tokenString, err := token.SignedString(privateKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// 驗證JWT Token並回傳UserID與Role
func VerifyToken(ctx context.Context, tokenString *string, tokens *repository.LoginTokenRepository) (string, string, error) {
	publicKey, err := loadPublicKey()
	if err != nil {
		return "", "", err
	}

	token, err := jwt.Parse(*tokenString, func(token *jwt.Token) (interface{}, error) {
		return publicKey, nil
	})
	if err != nil {
		return "", "", err
	}

	if !token.Valid {
		return "", "", jwt.ErrTokenSignatureInvalid
	}

	//從資料庫檢查Token是否已登出刪除
	exists, err := tokens.Exists(ctx, *tokenString)
	if err != nil {
		log.Println(err)
		return "", "", err
	}
	if !exists {
		return "", "", jwt.ErrTokenInvalidId
	}

	claims := token.Claims.(jwt.MapClaims)
	userID := claims["userID"].(string)
	role := claims["role"].(string)

	return userID, role, nil
}
