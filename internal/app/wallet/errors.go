package wallet

import "errors"

var (
	ErrNotAuthenticated   = errors.New("not_authenticated")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrInvalidValue       = errors.New("invalid_value")
	ErrUnavailable        = errors.New("item_unavailable")
	ErrOutOfStock         = errors.New("out_of_stock")
	ErrInsufficientPoints = errors.New("insufficient_points")
	ErrRaffleNotActive    = errors.New("raffle_not_active")
	ErrAlreadyEntered     = errors.New("already_entered")
	ErrTransactionFailed  = errors.New("transaction_failed")
)
