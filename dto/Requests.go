package dto

import "github.com/go-playground/validator/v10"

var validate = validator.New()

func Validate(v interface{}) error {
	return validate.Struct(v)
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type RegisterRequest struct {
	Username        string `json:"username" form:"username" validate:"required"`
	Password        string `json:"password" form:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"required,eqfield=Password"`
}

// Share quantities arrive as raw form strings so that "missing" and
// "not a positive integer" stay distinguishable rejections.
type BuyRequest struct {
	Symbol string `json:"symbol" form:"symbol"`
	Shares string `json:"shares" form:"shares"`
}

type SellRequest struct {
	Symbol   string `json:"symbol" form:"symbol"`
	ShareQty string `json:"share_qty" form:"share_qty"`
}

type SymbolRequest struct {
	Symbol string `json:"symbol" form:"symbol"`
}
