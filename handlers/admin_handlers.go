package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"Backend/models"
	"Backend/repository"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 查詢使用者列表
func GetUserListHandler(c *gin.Context, users *repository.UserRepository) {
	userList, err := users.List(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢使用者列表失敗",
			"error":   err.Error(),
		})
		return
	}

	var usersData []gin.H
	for _, user := range userList {
		usersData = append(usersData, gin.H{
			"ID":      user.ID.Hex(),
			"Name":    user.Name,
			"Email":   user.Email,
			"Role":    user.Role,
			"Balance": user.Balance,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功查詢使用者列表",
		"users":   usersData,
	})
}

// 新增商品
func CreateProductHandler(c *gin.Context, products *repository.ProductRepository, rdb *redis.Client) {
	var newProduct struct {
		Name        string `json:"name" binding:"required"`
		Price       uint   `json:"price" binding:"required"`
		Description string `json:"description"`
		ImageURL    string `json:"imageURL"`
		Category    string `json:"category"`
	}
	if err := c.ShouldBindJSON(&newProduct); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	product := models.Product{
		Name:        newProduct.Name,
		Price:       newProduct.Price,
		Description: newProduct.Description,
		ImageURL:    newProduct.ImageURL,
		Category:    newProduct.Category,
		CreatedAt:   time.Now(),
	}

	if err := products.Create(c, &product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "新增商品失敗",
			"error":   err.Error(),
		})
		return
	}

	//將新商品同步加入Redis商品列表
	productJSON, err := json.Marshal(product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法序列化商品資料",
			"error":   err.Error(),
		})
		return
	}

	err = rdb.ZAdd(c, "products", redis.Z{
		Score:  float64(product.CreatedAt.Unix()),
		Member: productJSON,
	}).Err()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法將商品資料加入Redis",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "成功新增商品",
		"product": product,
	})
}

// 刪除商品
func DeleteProductHandler(c *gin.Context, products *repository.ProductRepository, rdb *redis.Client) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "商品ID格式錯誤",
			"error":   err.Error(),
		})
		return
	}

	//先查出商品，刪除後才能從Redis移除對應資料
	product, err := products.GetByID(c, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢商品失敗",
			"error":   err.Error(),
		})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "查無此商品",
		})
		return
	}

	deleted, err := products.Delete(c, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "刪除商品失敗",
			"error":   err.Error(),
		})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "查無此商品",
		})
		return
	}

	productJSON, err := json.Marshal(product)
	if err == nil {
		err = rdb.ZRem(c, "products", productJSON).Err()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法將商品資料從Redis刪除",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "成功刪除商品",
		"productID": c.Param("productID"),
	})
}
