package services

import (
	"context"

	"Backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository 為使用者資料的持久層介面，由repository包的Mongo實作滿足
type UserRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	GetAddressByID(ctx context.Context, id primitive.ObjectID, projectOnly bool) (*models.UserAddress, error)
	SetAddress(ctx context.Context, id primitive.ObjectID, address string) error
}

type UserService struct {
	users UserRepository
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

// GetUserByID 查詢使用者，查無資料時回傳ErrUserNotFound
func (s *UserService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetUserByEmail 查詢使用者，查無資料時回傳(nil, nil)，由呼叫端自行處理
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// CreateUser 建立新使用者，Email重複時回傳ErrEmailAlreadyExists。
// 收件地址以預設值建立，餘額從零開始
func (s *UserService) CreateUser(ctx context.Context, name, email, password string) (*models.User, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Address:  models.DefaultAddress,
		Balance:  0,
		Role:     "user",
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserAddressByID 查詢收件地址投影，projectOnly為true時僅回傳地址欄位
func (s *UserService) GetUserAddressByID(ctx context.Context, id primitive.ObjectID, projectOnly bool) (*models.UserAddress, error) {
	address, err := s.users.GetAddressByID(ctx, id, projectOnly)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrUserNotFound
	}
	return address, nil
}

// SetAddress 覆寫收件地址並回傳新地址
func (s *UserService) SetAddress(ctx context.Context, user *models.User, newAddress string) (string, error) {
	if err := s.users.SetAddress(ctx, user.ID, newAddress); err != nil {
		return "", err
	}
	user.Address = newAddress
	return newAddress, nil
}
