package services

import (
	"context"
	"errors"

	"Backend/models"
	"Backend/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductRepository 為商品目錄的唯讀介面，購物車服務只讀不寫商品
type ProductRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// CartRepository 為購物車文件的持久層介面。DebitAndClear必須保證
// 扣款與清空購物車在同一筆交易內完成
type CartRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	Update(ctx context.Context, cart *models.Cart) error
	DebitAndClear(ctx context.Context, user *models.User, total uint) (*models.Cart, error)
}

type CartService struct {
	carts    CartRepository
	products ProductRepository

	//defaultAddress 為收件地址未設定時的預設值，結帳時用來判斷地址是否已填
	defaultAddress string
}

func NewCartService(carts CartRepository, products ProductRepository, defaultAddress string) *CartService {
	if defaultAddress == "" {
		defaultAddress = models.DefaultAddress
	}
	return &CartService{
		carts:          carts,
		products:       products,
		defaultAddress: defaultAddress,
	}
}

// GetCartByUser 查詢使用者的購物車，尚未建立時回傳ErrCartNotFound
func (s *CartService) GetCartByUser(ctx context.Context, user *models.User) (*models.Cart, error) {
	cart, err := s.carts.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	return cart, nil
}

// AddProductToCart 新增商品至購物車。尚未建立購物車時先建立一台空的，
// 商品已在購物車內或不存在於商品目錄時拒絕，不會合併數量
func (s *CartService) AddProductToCart(ctx context.Context, user *models.User, productID primitive.ObjectID, quantity uint) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.carts.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &models.Cart{
			Email:         user.Email,
			Items:         []models.CartItem{},
			PaymentOption: models.DefaultPaymentOption,
		}
		if err := s.carts.Create(ctx, cart); err != nil {
			return nil, ErrCartCreateFailed
		}
	}

	for _, item := range cart.Items {
		if item.ProductID == productID {
			return nil, ErrProductAlreadyInCart
		}
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	cart.Items = append(cart.Items, models.CartItem{
		ProductID: productID,
		Quantity:  quantity,
	})
	if err := s.carts.Update(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateProductInCart 覆寫購物車內商品的數量，商品必須已是購物車的項目
func (s *CartService) UpdateProductInCart(ctx context.Context, user *models.User, productID primitive.ObjectID, quantity uint) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.carts.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotCreated
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	index := findCartItem(cart.Items, productID)
	if index < 0 {
		return nil, ErrProductNotInCart
	}

	cart.Items[index].Quantity = quantity
	if err := s.carts.Update(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// DeleteProductFromCart 從購物車移除商品項目
func (s *CartService) DeleteProductFromCart(ctx context.Context, user *models.User, productID primitive.ObjectID) error {
	cart, err := s.carts.GetByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if cart == nil {
		return ErrCartNotCreated
	}

	index := findCartItem(cart.Items, productID)
	if index < 0 {
		return ErrProductNotInCart
	}

	cart.Items = append(cart.Items[:index], cart.Items[index+1:]...)
	return s.carts.Update(ctx, cart)
}

// Checkout 結帳:驗證購物車非空、收件地址已設定、餘額足夠(允許剛好等於總額)，
// 通過後在同一筆交易內扣款並清空購物車，回傳清空後的購物車。
// 驗證失敗時不會產生任何扣款或清空的副作用
func (s *CartService) Checkout(ctx context.Context, user *models.User) (*models.Cart, error) {
	cart, err := s.carts.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	if user.Address == s.defaultAddress {
		return nil, ErrAddressNotSet
	}

	total := uint(0)
	for _, item := range cart.Items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, ErrProductNotFound
		}
		total += product.Price * item.Quantity
	}

	if user.Balance < total {
		return nil, ErrInsufficientBalance
	}

	cleared, err := s.carts.DebitAndClear(ctx, user, total)
	if err != nil {
		//交易內的條件扣款失敗代表餘額在讀取後已被其他請求扣減
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return nil, ErrInsufficientBalance
		}
		return nil, err
	}

	user.Balance -= total
	return cleared, nil
}

func findCartItem(items []models.CartItem, productID primitive.ObjectID) int {
	for i := range items {
		if items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
