package handlers

import (
	"log"
	"net/http"

	"Backend/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 將服務層的固定錯誤值轉換為HTTP狀態碼:
// 找不到資源 -> 404、建立購物車失敗 -> 500、違反業務規則 -> 400、其餘 -> 500
func cartErrorStatusCode(err error) int {
	switch err {
	case services.ErrCartNotFound, services.ErrUserNotFound:
		return http.StatusNotFound
	case services.ErrCartCreateFailed:
		return http.StatusInternalServerError
	case services.ErrCartNotCreated,
		services.ErrCartEmpty,
		services.ErrProductNotFound,
		services.ErrProductAlreadyInCart,
		services.ErrProductNotInCart,
		services.ErrInvalidQuantity,
		services.ErrAddressNotSet,
		services.ErrInsufficientBalance:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// 查詢購物車
func GetCartHandler(c *gin.Context, userService *services.UserService, cartService *services.CartService) {
	user, ok := getCurrentUser(c, userService)
	if !ok {
		return
	}

	cart, err := cartService.GetCartByUser(c, user)
	if err != nil {
		c.JSON(cartErrorStatusCode(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功查詢購物車",
		"cart":    cart,
	})
}

// 新增商品至購物車，購物車不存在時自動建立
func AddToCartHandler(c *gin.Context, userService *services.UserService, cartService *services.CartService) {
	user, ok := getCurrentUser(c, userService)
	if !ok {
		return
	}

	var cartItemReq struct {
		ProductID string `json:"productID" binding:"required"`
		Quantity  uint   `json:"quantity" binding:"required"`
	}
	if err := c.BindJSON(&cartItemReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	productID, err := primitive.ObjectIDFromHex(cartItemReq.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "商品ID格式錯誤",
			"error":   err.Error(),
		})
		return
	}

	cart, err := cartService.AddProductToCart(c, user, productID, cartItemReq.Quantity)
	if err != nil {
		c.JSON(cartErrorStatusCode(err), gin.H{
			"message": "新增物品至購物車失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "成功新增物品至購物車",
		"productID": cartItemReq.ProductID,
		"quantity":  cartItemReq.Quantity,
		"cart":      cart,
	})
}

// 更新購物車商品數量，商品必須已在購物車內
func UpdateCartItemQuantityHandler(c *gin.Context, userService *services.UserService, cartService *services.CartService) {
	user, ok := getCurrentUser(c, userService)
	if !ok {
		return
	}

	var cartItemReq struct {
		ProductID string `json:"productID" binding:"required"`
		Quantity  uint   `json:"quantity" binding:"required"`
	}
	if err := c.BindJSON(&cartItemReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	productID, err := primitive.ObjectIDFromHex(cartItemReq.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "商品ID格式錯誤",
			"error":   err.Error(),
		})
		return
	}

	cart, err := cartService.UpdateProductInCart(c, user, productID, cartItemReq.Quantity)
	if err != nil {
		c.JSON(cartErrorStatusCode(err), gin.H{
			"message": "更新購物車物品數量失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "成功更新購物車物品數量",
		"productID": cartItemReq.ProductID,
		"quantity":  cartItemReq.Quantity,
		"cart":      cart,
	})
}

// 刪除購物車商品
func DeleteCartItemHandler(c *gin.Context, userService *services.UserService, cartService *services.CartService) {
	user, ok := getCurrentUser(c, userService)
	if !ok {
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "商品ID格式錯誤",
			"error":   err.Error(),
		})
		return
	}

	err = cartService.DeleteProductFromCart(c, user, productID)
	if err != nil {
		c.JSON(cartErrorStatusCode(err), gin.H{
			"message": "刪除購物車物品失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "成功刪除購物車物品",
		"productID": c.Param("productID"),
	})
}

// 結帳:扣除餘額並清空購物車，回傳清空後的購物車
func CheckoutHandler(c *gin.Context, userService *services.UserService, cartService *services.CartService) {
	user, ok := getCurrentUser(c, userService)
	if !ok {
		return
	}

	cart, err := cartService.Checkout(c, user)
	if err != nil {
		c.JSON(cartErrorStatusCode(err), gin.H{
			"message": "結帳失敗",
			"error":   err.Error(),
		})
		return
	}

	log.Printf("使用者%s完成結帳，剩餘餘額%d\n", user.Email, user.Balance)
	c.JSON(http.StatusOK, gin.H{
		"message": "成功結帳",
		"balance": user.Balance,
		"cart":    cart,
	})
}
