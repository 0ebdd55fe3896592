package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"Backend/models"
	"Backend/repository"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 查詢商品列表
func GetProductListHandler(c *gin.Context, products *repository.ProductRepository, rdb *redis.Client) {
	limit := c.DefaultQuery("limit", "10")
	limitInt, err := strconv.Atoi(limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "查詢數量輸入錯誤",
			"error":   err.Error(),
		})
		return
	}
	//限制最高查詢數量為50
	if limitInt > 50 {
		limitInt = 50
	}

	offset := c.DefaultQuery("offset", "0")
	offsetInt, err := strconv.Atoi(offset)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "offset輸入錯誤",
			"error":   err.Error(),
		})
		return
	}

	//嘗試從Redis讀取商品列表，如失敗則從資料庫讀取並儲存至Redis
	redisProducts, err := rdb.ZRange(c, "products", int64(offsetInt), int64(offsetInt+limitInt-1)).Result()
	if err != nil || rdb.ZCard(c, "products").Val() == 0 {
		productList, err := products.List(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "無法讀取商品列表",
				"error":   err.Error(),
			})
			return
		}

		rdb.Del(c, "products")

		for _, product := range productList {
			productJSON, err := json.Marshal(product)
			if err != nil {
				fmt.Printf("無法序列化商品資料: %v\n", err)
				continue
			}

			err = rdb.ZAdd(c, "products", redis.Z{
				Score:  float64(product.CreatedAt.Unix()),
				Member: productJSON,
			}).Err()
			if err != nil {
				fmt.Printf("無法將商品資料加入Redis: %v\n", err)
				continue
			}
		}

		//再次嘗試從Redis讀取商品列表
		redisProducts, err = rdb.ZRange(c, "products", int64(offsetInt), int64(offsetInt+limitInt-1)).Result()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "無法從Redis讀取商品列表",
				"error":   err.Error(),
			})
			return
		}
	}

	var productsData []gin.H
	for _, redisProduct := range redisProducts {
		var productUnmarshal models.Product
		err = json.Unmarshal([]byte(redisProduct), &productUnmarshal)
		if err != nil {
			fmt.Printf("無法反序列化商品資料: %v\n", err)
			continue
		}

		productsData = append(productsData, gin.H{
			"ID":       productUnmarshal.ID.Hex(),
			"Name":     productUnmarshal.Name,
			"Price":    productUnmarshal.Price,
			"Category": productUnmarshal.Category,
			"ImageURL": productUnmarshal.ImageURL,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "成功讀取商品列表",
		"products":   productsData,
		"totalCount": rdb.ZCard(c, "products").Val(),
	})
}

// 查詢商品詳細資料
func GetProductDataHandler(c *gin.Context, products *repository.ProductRepository) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "商品ID格式錯誤",
			"error":   err.Error(),
		})
		return
	}

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

	c.JSON(http.StatusOK, gin.H{
		"message": "成功查詢商品",
		"product": product,
	})
}
