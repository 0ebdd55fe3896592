package routers

import (
	"net/http"

	"Backend/config"
	"Backend/handlers"
	"Backend/middleware"
	"Backend/repository"
	"Backend/services"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func SetupRouters(client *mongo.Client, db *mongo.Database, rdb *redis.Client, cfg config.Config) *gin.Engine {
	//組裝持久層與服務層
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(client, db)
	tokenRepo := repository.NewLoginTokenRepository(db)

	userService := services.NewUserService(userRepo)
	cartService := services.NewCartService(cartRepo, productRepo, cfg.DefaultAddress)

	//建立Gin路由器
	router := gin.Default()
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Authorization")
		c.Next()
	})
	err := router.SetTrustedProxies(nil)
	if err != nil {
		return nil
	}

	router.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	////無須權限，使用中間件檢查是否登入
	router.Use(middleware.AuthMiddleware(tokenRepo))
	{
		//查詢商品列表
		router.GET("/api/v1/products", func(context *gin.Context) {
			handlers.GetProductListHandler(context, productRepo, rdb)
		})
		//查詢商品詳細資料
		router.GET("/api/v1/products/:productID", func(context *gin.Context) {
			handlers.GetProductDataHandler(context, productRepo)
		})
		//註冊帳號
		router.POST("/api/v1/register", func(context *gin.Context) {
			handlers.RegisterHandler(context, userService)
		})
		//登入帳號
		router.POST("/api/v1/login", func(context *gin.Context) {
			handlers.LoginHandler(context, userService, tokenRepo)
		})

		////需要登入，使用中間件檢查是否登入
		loginRequired := router.Group("/api/v1/user")
		loginRequired.Use(middleware.CheckLoginMiddleware())
		{
			//查詢使用者資料
			loginRequired.GET("/profile", func(context *gin.Context) {
				handlers.GetUserProfileHandler(context, userService)
			})
			//查詢收件地址
			loginRequired.GET("/address", func(context *gin.Context) {
				handlers.GetUserAddressHandler(context, userService)
			})
			//變更收件地址
			loginRequired.PATCH("/address", func(context *gin.Context) {
				handlers.SetAddressHandler(context, userService)
			})
			//查詢購物車商品
			loginRequired.GET("/carts", func(context *gin.Context) {
				handlers.GetCartHandler(context, userService, cartService)
			})
			//新增商品至購物車
			loginRequired.POST("/carts/add", func(context *gin.Context) {
				handlers.AddToCartHandler(context, userService, cartService)
			})
			//更新購物車商品數量
			loginRequired.POST("/carts/update", func(context *gin.Context) {
				handlers.UpdateCartItemQuantityHandler(context, userService, cartService)
			})
			//刪除購物車商品
			loginRequired.DELETE("/carts/:productID", func(context *gin.Context) {
				handlers.DeleteCartItemHandler(context, userService, cartService)
			})
			//結帳並清空購物車
			loginRequired.POST("/carts/checkout", func(context *gin.Context) {
				handlers.CheckoutHandler(context, userService, cartService)
			})
			//登出
			loginRequired.POST("/logout", func(context *gin.Context) {
				handlers.LogOutHandler(context, tokenRepo)
			})
		}

		////需要admin身分，使用中間件檢查是否登入及admin權限
		adminRequired := router.Group("/api/v1/admin")
		adminRequired.Use(middleware.CheckLoginMiddleware(), middleware.CheckAdminPermissionMiddleware())
		{
			//查詢使用者列表
			adminRequired.GET("/users", func(context *gin.Context) {
				handlers.GetUserListHandler(context, userRepo)
			})
			//新增商品
			adminRequired.POST("/products", func(context *gin.Context) {
				handlers.CreateProductHandler(context, productRepo, rdb)
			})
			//刪除商品
			adminRequired.DELETE("/products/:productID", func(context *gin.Context) {
				handlers.DeleteProductHandler(context, productRepo, rdb)
			})
		}
	}

	return router
}
