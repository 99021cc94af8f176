package service

import (
	"errors"
	"fmt"
)

// 核心错误分类，调用方使用 errors.Is 判断
var (
	ErrValidation         = errors.New("validation error")
	ErrProductNotFound    = errors.New("product not found")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrOrderNotFound      = errors.New("order not found")
	ErrItemNotFound       = errors.New("item not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrConflictRetryable  = errors.New("conflict, retry")
)

// 业务错误
var (
	ErrOrderStatusInvalid      = errors.New("order status transition not allowed")
	ErrIdempotencyInProgress   = errors.New("idempotent request in progress")
	ErrCategoryNotFound        = errors.New("category not found")
	ErrCategorySlugExists      = errors.New("category slug exists")
	ErrCategoryInUse           = errors.New("category in use")
	ErrCustomOrderNotFound     = errors.New("custom order not found")
	ErrUserNotFound            = errors.New("user not found")
	ErrUserDisabled            = errors.New("user disabled")
	ErrEmailExists             = errors.New("email exists")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrInvalidPassword         = errors.New("invalid password")
	ErrWeakPassword            = errors.New("weak password")
	ErrAdminNotFound           = errors.New("admin not found")
	ErrCaptchaRequired         = errors.New("captcha required")
	ErrCaptchaInvalid          = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid    = errors.New("captcha config invalid")
	ErrEmailServiceDisabled    = errors.New("email service disabled")
	ErrEmailServiceNotConfig   = errors.New("email service not configured")
	ErrInvalidEmail            = errors.New("invalid email")
	ErrEmailRecipientRejected  = errors.New("email recipient rejected")
	ErrOutboxPublisherRequired = errors.New("outbox publisher required")
)

// ValidationError 输入字段校验失败
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid field %s", e.Field)
	}
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}

// Unwrap 归类为 ErrValidation
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func newValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ProductNotFoundError 商品不存在（含已下架）
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// Unwrap 归类为 ErrProductNotFound
func (e *ProductNotFoundError) Unwrap() error {
	return ErrProductNotFound
}

// InsufficientStockError 库存不足，Shortfall = Requested - Available
type InsufficientStockError struct {
	ProductID uint
	Name      string
	Requested int
	Available int
	Shortfall int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d (%s): requested %d, available %d",
		e.ProductID, e.Name, e.Requested, e.Available)
}

// Unwrap 归类为 ErrInsufficientStock
func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

func newInsufficientStockError(productID uint, name string, requested, available int) error {
	if available < 0 {
		available = 0
	}
	return &InsufficientStockError{
		ProductID: productID,
		Name:      name,
		Requested: requested,
		Available: available,
		Shortfall: requested - available,
	}
}

// storageError 包装存储层错误，保留原始错误便于日志
type storageError struct {
	op  string
	err error
}

func (e *storageError) Error() string {
	return fmt.Sprintf("%s: %v", e.op, e.err)
}

func (e *storageError) Unwrap() []error {
	return []error{ErrStorageUnavailable, e.err}
}

func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorageUnavailable) {
		return err
	}
	return &storageError{op: op, err: err}
}
