package handlers

import (
	"log"
	"net/http"
	"regexp"
	"strconv"
	"time"
	"unicode"

	"Backend/jwt"
	"Backend/models"
	"Backend/repository"
	"Backend/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// 檢查信箱是否合法
func ValidateEmail(email string) bool {
	pattern := "^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\\.[a-zA-Z0-9-.]+$"
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

// 檢查密碼是否合法
func ValidatePassword(password string) bool {
	if len(password) < 8 || len(password) > 50 {
		return false
	}

	var (
		isUpper   = false
		isLower   = false
		isNumber  = false
		isSpecial = false
		isSpace   = false
	)

	for _, s := range password {
		switch {
		case unicode.IsSpace(s):
			isSpace = true
		case unicode.IsUpper(s):
			isUpper = true
		case unicode.IsLower(s):
			isLower = true
		case unicode.IsDigit(s):
			isNumber = true
		case unicode.IsPunct(s) || unicode.IsSymbol(s):
			isSpecial = true
		default:
		}
	}

	return isUpper && isLower && isNumber && isSpecial && !isSpace
}

// 從Context取出登入的使用者並查詢完整資料，失敗時直接回應並回傳false
func getCurrentUser(c *gin.Context, userService *services.UserService) (*models.User, bool) {
	userIDHex, ok := c.Get("UserID")
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return nil, false
	}

	userID, err := primitive.ObjectIDFromHex(userIDHex.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "使用者ID格式錯誤",
			"error":   err.Error(),
		})
		return nil, false
	}

	user, err := userService.GetUserByID(c, userID)
	if err != nil {
		if err == services.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "查無此使用者",
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢使用者資料失敗",
			"error":   err.Error(),
		})
		return nil, false
	}

	return user, true
}

// 註冊使用者帳戶
func RegisterHandler(c *gin.Context, userService *services.UserService) {
	var registerReq struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.BindJSON(&registerReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	//檢查信箱是否合法
	if !ValidateEmail(registerReq.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "註冊失敗:不合法的信箱",
		})
		return
	}

	//檢查密碼是否合法
	if !ValidatePassword(registerReq.Password) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "註冊失敗:不合法的密碼",
		})
		return
	}

	user, err := userService.CreateUser(c, registerReq.Name, registerReq.Email, registerReq.Password)
	if err != nil {
		if err == services.ErrEmailAlreadyExists {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "註冊失敗:信箱已被使用",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法儲存使用者資料至資料庫",
			"error":   err.Error(),
		})
		return
	}

	//成功註冊
	c.JSON(http.StatusCreated, gin.H{
		"message": "使用者已成功註冊",
		"name":    user.Name,
		"email":   user.Email,
	})
}

func LoginHandler(c *gin.Context, userService *services.UserService, tokens *repository.LoginTokenRepository) {
	//檢查是否已經登入
	if _, ok := c.Get("UserID"); ok {
		c.JSON(http.StatusOK, gin.H{
			"message": "已經登入",
		})
		return
	}

	//從請求擷取信箱和密碼
	var loginReq struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	//檢查是否有此帳號，查無此信箱不是資料庫錯誤
	user, err := userService.GetUserByEmail(c, loginReq.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "資料庫錯誤",
			"error":   err.Error(),
		})
		return
	}
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "找不到此帳號",
		})
		return
	}

	//檢查密碼是否正確
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(loginReq.Password))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "密碼錯誤",
		})
		return
	}

	//生成JWT Token
	tokenExpiredTime := time.Now().Add(time.Hour * 24)
	token, err := jwt.GenerateToken(user.ID.Hex(), user.Role, tokenExpiredTime.Unix())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "生成JWT Token錯誤",
			"error":   err.Error(),
		})
		return
	}

	//儲存LoginToken
	loginToken := models.LoginToken{
		Token:          token,
		ExpirationTime: tokenExpiredTime,
		UserID:         user.ID,
		Role:           user.Role,
	}
	err = tokens.Create(c, &loginToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "儲存Login Token失敗",
			"error":   err.Error(),
		})
		return
	}

	//成功登入 回傳Token和成功訊息
	c.Header("Authorization", "Bearer "+token)
	c.JSON(http.StatusOK, gin.H{
		"message": "成功登入",
	})
}

func LogOutHandler(c *gin.Context, tokens *repository.LoginTokenRepository) {
	token, exists := c.Get("Token")
	if !exists {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "無法取得Token",
		})
		return
	}

	//刪除此LoginToken
	deleted, err := tokens.Delete(c, token.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "資料庫錯誤",
			"error":   err.Error(),
		})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "找不到此token或已登出",
		})
		return
	}

	c.Header("Authorization", "")
	c.JSON(http.StatusOK, gin.H{
		"message": "成功登出",
	})
}

// 查詢使用者資料
func GetUserProfileHandler(c *gin.Context, userService *services.UserService) {
	user, ok := getCurrentUser(c, userService)
	if !ok {
		return
	}

	//成功查詢使用者資料
	c.JSON(http.StatusOK, gin.H{
		"message": "成功查詢使用者資料",
		"user":    user,
	})
}

// 查詢收件地址，projectOnly=true時僅回傳地址欄位
func GetUserAddressHandler(c *gin.Context, userService *services.UserService) {
	userIDHex, ok := c.Get("UserID")
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "無法取得使用者ID",
		})
		return
	}

	userID, err := primitive.ObjectIDFromHex(userIDHex.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "使用者ID格式錯誤",
			"error":   err.Error(),
		})
		return
	}

	projectOnly, err := strconv.ParseBool(c.DefaultQuery("projectOnly", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "projectOnly輸入錯誤",
			"error":   err.Error(),
		})
		return
	}

	address, err := userService.GetUserAddressByID(c, userID, projectOnly)
	if err != nil {
		if err == services.ErrUserNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"message": "查無此使用者",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "查詢收件地址失敗",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "成功查詢收件地址",
		"address": address,
	})
}

// 變更收件地址
func SetAddressHandler(c *gin.Context, userService *services.UserService) {
	user, ok := getCurrentUser(c, userService)
	if !ok {
		return
	}

	var addressReq struct {
		Address string `json:"address" binding:"required"`
	}
	if err := c.ShouldBindJSON(&addressReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "綁定請求資料錯誤",
			"error":   err.Error(),
		})
		return
	}

	newAddress, err := userService.SetAddress(c, user, addressReq.Address)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "變更收件地址失敗",
			"error":   err.Error(),
		})
		return
	}

	log.Printf("使用者%s變更收件地址\n", user.Email)
	c.JSON(http.StatusOK, gin.H{
		"message": "成功變更收件地址",
		"address": newAddress,
	})
}
