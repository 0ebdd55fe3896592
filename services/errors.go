package services

import "errors"

// 服務層以固定錯誤值表達業務規則違反，由handlers層轉換為HTTP狀態碼:
// 找不到資源 -> 404、建立購物車失敗 -> 500、其餘 -> 400
var (
	ErrUserNotFound       = errors.New("查無此使用者")
	ErrEmailAlreadyExists = errors.New("此Email已被註冊")

	ErrCartNotFound         = errors.New("使用者沒有購物車")
	ErrCartNotCreated       = errors.New("尚未建立購物車，請先將商品加入購物車")
	ErrCartCreateFailed     = errors.New("建立購物車失敗")
	ErrCartEmpty            = errors.New("購物車是空的")
	ErrProductNotFound      = errors.New("查無此商品")
	ErrProductAlreadyInCart = errors.New("商品已在購物車內")
	ErrProductNotInCart     = errors.New("購物車內沒有此商品")
	ErrInvalidQuantity      = errors.New("商品數量不得小於1")

	ErrAddressNotSet       = errors.New("尚未設定收件地址")
	ErrInsufficientBalance = errors.New("餘額不足")
)
