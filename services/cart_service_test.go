package services

import (
	"context"
	"errors"
	"testing"

	"Backend/models"
	"Backend/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeProductRepo struct {
	products map[primitive.ObjectID]models.Product
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	return &product, nil
}

type fakeCartRepo struct {
	carts      map[string]models.Cart
	users      map[primitive.ObjectID]*models.User
	failCreate bool
}

func copyCart(cart models.Cart) *models.Cart {
	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)
	cart.Items = items
	return &cart
}

func (f *fakeCartRepo) GetByEmail(ctx context.Context, email string) (*models.Cart, error) {
	cart, ok := f.carts[email]
	if !ok {
		return nil, nil
	}
	return copyCart(cart), nil
}

func (f *fakeCartRepo) Create(ctx context.Context, cart *models.Cart) error {
	if f.failCreate {
		return errors.New("insert failed")
	}
	f.carts[cart.Email] = *copyCart(*cart)
	return nil
}

func (f *fakeCartRepo) Update(ctx context.Context, cart *models.Cart) error {
	f.carts[cart.Email] = *copyCart(*cart)
	return nil
}

func (f *fakeCartRepo) DebitAndClear(ctx context.Context, user *models.User, total uint) (*models.Cart, error) {
	stored := f.users[user.ID]
	if stored.Balance < total {
		return nil, repository.ErrInsufficientFunds
	}
	stored.Balance -= total

	cart := f.carts[user.Email]
	cart.Items = []models.CartItem{}
	f.carts[user.Email] = cart
	return copyCart(cart), nil
}

func newTestUser(balance uint, address string) *models.User {
	return &models.User{
		ID:      primitive.NewObjectID(),
		Name:    "tester",
		Email:   "tester@example.com",
		Address: address,
		Balance: balance,
	}
}

// 建立測試用服務:商品A單價100、商品B單價50
func newTestCartService(user *models.User) (*CartService, *fakeCartRepo, primitive.ObjectID, primitive.ObjectID) {
	productA := primitive.NewObjectID()
	productB := primitive.NewObjectID()

	products := &fakeProductRepo{
		products: map[primitive.ObjectID]models.Product{
			productA: {ID: productA, Name: "商品A", Price: 100},
			productB: {ID: productB, Name: "商品B", Price: 50},
		},
	}
	carts := &fakeCartRepo{
		carts: map[string]models.Cart{},
		users: map[primitive.ObjectID]*models.User{user.ID: user},
	}

	return NewCartService(carts, products, models.DefaultAddress), carts, productA, productB
}

func TestGetCartByUser(t *testing.T) {
	ctx := context.Background()
	user := newTestUser(0, "台北市中正區")
	svc, _, productA, _ := newTestCartService(user)

	t.Run("no cart -> not found", func(t *testing.T) {
		_, err := svc.GetCartByUser(ctx, user)
		if err != ErrCartNotFound {
			t.Fatalf("expected ErrCartNotFound, got %v", err)
		}
	})

	t.Run("after add -> returns cart", func(t *testing.T) {
		if _, err := svc.AddProductToCart(ctx, user, productA, 1); err != nil {
			t.Fatalf("AddProductToCart failed: %v", err)
		}
		cart, err := svc.GetCartByUser(ctx, user)
		if err != nil {
			t.Fatalf("GetCartByUser failed: %v", err)
		}
		if cart.Email != user.Email {
			t.Fatalf("cart keyed by %q, want %q", cart.Email, user.Email)
		}
		if cart.PaymentOption != models.DefaultPaymentOption {
			t.Fatalf("payment option = %q, want default", cart.PaymentOption)
		}
	})
}

func TestAddProductToCart(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate add rejected, not merged", func(t *testing.T) {
		user := newTestUser(0, "台北市中正區")
		svc, carts, productA, _ := newTestCartService(user)

		if _, err := svc.AddProductToCart(ctx, user, productA, 2); err != nil {
			t.Fatalf("first add failed: %v", err)
		}
		_, err := svc.AddProductToCart(ctx, user, productA, 3)
		if err != ErrProductAlreadyInCart {
			t.Fatalf("expected ErrProductAlreadyInCart, got %v", err)
		}

		cart := carts.carts[user.Email]
		if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
			t.Fatalf("cart changed by rejected add: %+v", cart.Items)
		}
	})

	t.Run("unknown product rejected regardless of cart state", func(t *testing.T) {
		user := newTestUser(0, "台北市中正區")
		svc, _, productA, _ := newTestCartService(user)
		unknown := primitive.NewObjectID()

		//購物車尚未建立
		if _, err := svc.AddProductToCart(ctx, user, unknown, 1); err != ErrProductNotFound {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}

		//購物車已有商品
		if _, err := svc.AddProductToCart(ctx, user, productA, 1); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if _, err := svc.AddProductToCart(ctx, user, unknown, 1); err != ErrProductNotFound {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("quantity below 1 rejected", func(t *testing.T) {
		user := newTestUser(0, "台北市中正區")
		svc, _, productA, _ := newTestCartService(user)

		if _, err := svc.AddProductToCart(ctx, user, productA, 0); err != ErrInvalidQuantity {
			t.Fatalf("expected ErrInvalidQuantity, got %v", err)
		}
	})

	t.Run("cart create failure is fatal", func(t *testing.T) {
		user := newTestUser(0, "台北市中正區")
		svc, carts, productA, _ := newTestCartService(user)
		carts.failCreate = true

		if _, err := svc.AddProductToCart(ctx, user, productA, 1); err != ErrCartCreateFailed {
			t.Fatalf("expected ErrCartCreateFailed, got %v", err)
		}
	})
}

func TestUpdateProductInCart(t *testing.T) {
	ctx := context.Background()

	t.Run("no cart -> guided to add first", func(t *testing.T) {
		user := newTestUser(0, "台北市中正區")
		svc, _, productA, _ := newTestCartService(user)

		if _, err := svc.UpdateProductInCart(ctx, user, productA, 2); err != ErrCartNotCreated {
			t.Fatalf("expected ErrCartNotCreated, got %v", err)
		}
	})

	t.Run("product not in cart -> rejected, cart unmodified", func(t *testing.T) {
		user := newTestUser(0, "台北市中正區")
		svc, carts, productA, productB := newTestCartService(user)

		if _, err := svc.AddProductToCart(ctx, user, productA, 2); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if _, err := svc.UpdateProductInCart(ctx, user, productB, 5); err != ErrProductNotInCart {
			t.Fatalf("expected ErrProductNotInCart, got %v", err)
		}

		cart := carts.carts[user.Email]
		if len(cart.Items) != 1 || cart.Items[0].ProductID != productA || cart.Items[0].Quantity != 2 {
			t.Fatalf("cart modified by rejected update: %+v", cart.Items)
		}
	})

	t.Run("overwrites quantity in place", func(t *testing.T) {
		user := newTestUser(0, "台北市中正區")
		svc, carts, productA, _ := newTestCartService(user)

		if _, err := svc.AddProductToCart(ctx, user, productA, 2); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if _, err := svc.UpdateProductInCart(ctx, user, productA, 7); err != nil {
			t.Fatalf("update failed: %v", err)
		}

		cart := carts.carts[user.Email]
		if cart.Items[0].Quantity != 7 {
			t.Fatalf("quantity = %d, want 7", cart.Items[0].Quantity)
		}
	})
}

func TestDeleteProductFromCart(t *testing.T) {
	ctx := context.Background()

	t.Run("no cart -> rejected", func(t *testing.T) {
		user := newTestUser(0, "台北市中正區")
		svc, _, productA, _ := newTestCartService(user)

		if err := svc.DeleteProductFromCart(ctx, user, productA); err != ErrCartNotCreated {
			t.Fatalf("expected ErrCartNotCreated, got %v", err)
		}
	})

	t.Run("product not in cart -> rejected", func(t *testing.T) {
		user := newTestUser(0, "台北市中正區")
		svc, _, productA, productB := newTestCartService(user)

		if _, err := svc.AddProductToCart(ctx, user, productA, 1); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := svc.DeleteProductFromCart(ctx, user, productB); err != ErrProductNotInCart {
			t.Fatalf("expected ErrProductNotInCart, got %v", err)
		}
	})

	t.Run("removes line item", func(t *testing.T) {
		user := newTestUser(0, "台北市中正區")
		svc, carts, productA, productB := newTestCartService(user)

		if _, err := svc.AddProductToCart(ctx, user, productA, 1); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if _, err := svc.AddProductToCart(ctx, user, productB, 1); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := svc.DeleteProductFromCart(ctx, user, productA); err != nil {
			t.Fatalf("delete failed: %v", err)
		}

		cart := carts.carts[user.Email]
		if len(cart.Items) != 1 || cart.Items[0].ProductID != productB {
			t.Fatalf("unexpected items after delete: %+v", cart.Items)
		}
	})
}

// 建立商品A(單價100)x2 + 商品B(單價50)x1的購物車，總額250
func fillCart(t *testing.T, svc *CartService, user *models.User, productA, productB primitive.ObjectID) {
	t.Helper()
	ctx := context.Background()
	if _, err := svc.AddProductToCart(ctx, user, productA, 2); err != nil {
		t.Fatalf("add productA failed: %v", err)
	}
	if _, err := svc.AddProductToCart(ctx, user, productB, 1); err != nil {
		t.Fatalf("add productB failed: %v", err)
	}
}

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("no cart -> not found", func(t *testing.T) {
		user := newTestUser(300, "台北市中正區")
		svc, _, _, _ := newTestCartService(user)

		if _, err := svc.Checkout(ctx, user); err != ErrCartNotFound {
			t.Fatalf("expected ErrCartNotFound, got %v", err)
		}
		if user.Balance != 300 {
			t.Fatalf("balance changed on failed checkout: %d", user.Balance)
		}
	})

	t.Run("empty cart -> rejected, no debit", func(t *testing.T) {
		user := newTestUser(300, "台北市中正區")
		svc, carts, productA, _ := newTestCartService(user)

		if _, err := svc.AddProductToCart(ctx, user, productA, 1); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := svc.DeleteProductFromCart(ctx, user, productA); err != nil {
			t.Fatalf("delete failed: %v", err)
		}

		if _, err := svc.Checkout(ctx, user); err != ErrCartEmpty {
			t.Fatalf("expected ErrCartEmpty, got %v", err)
		}
		if user.Balance != 300 || carts.users[user.ID].Balance != 300 {
			t.Fatalf("balance changed on empty-cart checkout")
		}
	})

	t.Run("default address -> rejected, no debit", func(t *testing.T) {
		user := newTestUser(300, models.DefaultAddress)
		svc, _, productA, productB := newTestCartService(user)
		fillCart(t, svc, user, productA, productB)

		if _, err := svc.Checkout(ctx, user); err != ErrAddressNotSet {
			t.Fatalf("expected ErrAddressNotSet, got %v", err)
		}
		if user.Balance != 300 {
			t.Fatalf("balance changed on failed checkout: %d", user.Balance)
		}
	})

	t.Run("balance exactly equal to total succeeds", func(t *testing.T) {
		user := newTestUser(250, "台北市中正區")
		svc, _, productA, productB := newTestCartService(user)
		fillCart(t, svc, user, productA, productB)

		cart, err := svc.Checkout(ctx, user)
		if err != nil {
			t.Fatalf("checkout failed: %v", err)
		}
		if user.Balance != 0 {
			t.Fatalf("balance = %d, want 0", user.Balance)
		}
		if len(cart.Items) != 0 {
			t.Fatalf("cart not emptied: %+v", cart.Items)
		}
	})

	t.Run("balance 300, total 250 -> wallet 50 and empty cart", func(t *testing.T) {
		user := newTestUser(300, "台北市中正區")
		svc, carts, productA, productB := newTestCartService(user)
		fillCart(t, svc, user, productA, productB)

		cart, err := svc.Checkout(ctx, user)
		if err != nil {
			t.Fatalf("checkout failed: %v", err)
		}
		if user.Balance != 50 {
			t.Fatalf("balance = %d, want 50", user.Balance)
		}
		if len(cart.Items) != 0 {
			t.Fatalf("cart not emptied: %+v", cart.Items)
		}
		if stored := carts.carts[user.Email]; len(stored.Items) != 0 {
			t.Fatalf("stored cart not emptied: %+v", stored.Items)
		}
	})

	t.Run("balance 200, total 250 -> insufficient, nothing changes", func(t *testing.T) {
		user := newTestUser(200, "台北市中正區")
		svc, carts, productA, productB := newTestCartService(user)
		fillCart(t, svc, user, productA, productB)

		if _, err := svc.Checkout(ctx, user); err != ErrInsufficientBalance {
			t.Fatalf("expected ErrInsufficientBalance, got %v", err)
		}
		if user.Balance != 200 || carts.users[user.ID].Balance != 200 {
			t.Fatalf("balance changed on failed checkout")
		}
		if stored := carts.carts[user.Email]; len(stored.Items) != 2 {
			t.Fatalf("cart changed on failed checkout: %+v", stored.Items)
		}
	})

	t.Run("conditional debit failure maps to insufficient balance", func(t *testing.T) {
		user := newTestUser(300, "台北市中正區")
		svc, carts, productA, productB := newTestCartService(user)
		fillCart(t, svc, user, productA, productB)

		//模擬餘額在讀取後被其他請求扣減
		carts.users[user.ID].Balance = 100
		userCopy := *user
		userCopy.Balance = 300

		if _, err := svc.Checkout(ctx, &userCopy); err != ErrInsufficientBalance {
			t.Fatalf("expected ErrInsufficientBalance, got %v", err)
		}
		if carts.users[user.ID].Balance != 100 {
			t.Fatalf("balance changed by aborted transaction")
		}
	})
}
