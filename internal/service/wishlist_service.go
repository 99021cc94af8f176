package service

import (
	"context"
	"errors"

	"github.com/vastra-shop/internal/constants"
	"github.com/vastra-shop/internal/logger"
	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/repository"

	"gorm.io/gorm"
)

// WishlistService 心愿单服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		cartRepo:     cartRepo,
		productRepo:  productRepo,
	}
}

// List 心愿单列表，已删除商品的条目不返回
func (s *WishlistService) List(userID uint) ([]models.WishlistItem, error) {
	wishlist, err := s.wishlistRepo.GetByUser(userID)
	if err != nil {
		return nil, wrapStorage("load wishlist", err)
	}
	if wishlist == nil {
		return []models.WishlistItem{}, nil
	}
	items, err := s.wishlistRepo.ListItems(wishlist.ID)
	if err != nil {
		return nil, wrapStorage("load wishlist items", err)
	}
	visible := make([]models.WishlistItem, 0, len(items))
	for _, item := range items {
		if item.Product != nil {
			visible = append(visible, item)
		}
	}
	return visible, nil
}

// Add 加入心愿单，重复加入视为成功
func (s *WishlistService) Add(userID, productID uint) error {
	if productID == 0 {
		return newValidationError("product_id", "is required")
	}
	product, err := s.productRepo.GetActiveByID(productID)
	if err != nil {
		return wrapStorage("load product", err)
	}
	if product == nil {
		return &ProductNotFoundError{ProductID: productID}
	}
	err = s.wishlistRepo.Transaction(func(tx *gorm.DB) error {
		wishlistRepo := s.wishlistRepo.WithTx(tx)
		wishlist, err := wishlistRepo.GetOrCreate(userID)
		if err != nil {
			return err
		}
		return wishlistRepo.AddItem(wishlist.ID, product.ID)
	})
	return wrapStorage("add wishlist item", err)
}

// Remove 从心愿单移除
func (s *WishlistService) Remove(userID, itemID uint) error {
	item, err := s.wishlistRepo.GetItemForUser(itemID, userID)
	if err != nil {
		return wrapStorage("load wishlist item", err)
	}
	if item == nil {
		return ErrItemNotFound
	}
	if _, err := s.wishlistRepo.DeleteItem(item.ID); err != nil {
		return wrapStorage("delete wishlist item", err)
	}
	return nil
}

// MoveToCart 将心愿单项移入购物车
// 查找、购物车累加与删除心愿单项在同一事务内；提交后的重试找不到心愿单项，返回 ErrItemNotFound 且不改动购物车
func (s *WishlistService) MoveToCart(_ context.Context, userID, itemID uint) error {
	if userID == 0 {
		return newValidationError("user_id", "is required")
	}
	if itemID == 0 {
		return newValidationError("item_id", "is required")
	}

	err := s.wishlistRepo.Transaction(func(tx *gorm.DB) error {
		wishlistRepo := s.wishlistRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		item, err := wishlistRepo.GetItemForUser(itemID, userID)
		if err != nil {
			return err
		}
		// 商品已删除或已下架时保留心愿单条目
		if item == nil || item.Product == nil || !item.Product.IsActive {
			return ErrItemNotFound
		}
		cart, err := cartRepo.GetOrCreate(userID)
		if err != nil {
			return err
		}
		snapshot := snapshotCartItem(cart.ID, item.Product, constants.WishlistFallbackImage)
		if err := cartRepo.AddItem(snapshot, 1); err != nil {
			return err
		}
		deleted, err := wishlistRepo.DeleteItem(item.ID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			// 并发重试已先一步提交
			return ErrItemNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return ErrItemNotFound
		}
		logger.Warnw("wishlist_move_to_cart_failed", "user_id", userID, "item_id", itemID, "error", err)
		return wrapStorage("move wishlist item to cart", err)
	}
	logger.Infow("wishlist_moved_to_cart", "user_id", userID, "item_id", itemID)
	return nil
}
