package services

import (
	"errors"

	"github.com/Govind-619/SlotPay/catalog"
	"github.com/Govind-619/SlotPay/repository"
)

var (
	ErrUnknownPack          = catalog.ErrUnknownPack
	ErrMissingSeller        = errors.New("seller id is required")
	ErrMissingSignature     = errors.New("missing webhook signature")
	ErrInvalidSignature     = errors.New("invalid webhook signature")
	ErrStoreUnavailable     = errors.New("payment store unavailable")
	ErrProcessorUnavailable = errors.New("payment processor unavailable")
	ErrOrderNotFound        = errors.New("order not found")
	ErrSellerNotFound       = repository.ErrSellerNotFound
)
