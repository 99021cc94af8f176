package service

import (
	"github.com/vastra-shop/internal/constants"
	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/repository"

	"gorm.io/gorm"
)

// CartView 购物车视图（用于响应）
type CartView struct {
	Items         []models.CartItem `json:"items"`
	TotalQuantity int               `json:"total_quantity"`
	TotalAmount   models.Money      `json:"total_amount"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart 获取用户购物车，未创建时返回空购物车
func (s *CartService) GetCart(userID uint) (*CartView, error) {
	view := &CartView{Items: []models.CartItem{}, TotalAmount: models.NewMoneyFromInt(0)}
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, wrapStorage("load cart", err)
	}
	if cart == nil {
		return view, nil
	}
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, wrapStorage("load cart items", err)
	}
	view.Items = items
	for _, item := range items {
		view.TotalQuantity += item.Quantity
		view.TotalAmount = view.TotalAmount.Add(item.PriceAmount.MulQuantity(item.Quantity))
	}
	return view, nil
}

// AddToCart 加入购物车：已有则数量 +1，否则按当前商品快照插入
func (s *CartService) AddToCart(userID, productID uint) (*CartView, error) {
	if productID == 0 {
		return nil, newValidationError("product_id", "is required")
	}
	product, err := s.productRepo.GetActiveByID(productID)
	if err != nil {
		return nil, wrapStorage("load product", err)
	}
	if product == nil {
		return nil, &ProductNotFoundError{ProductID: productID}
	}

	err = s.cartRepo.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		cart, err := cartRepo.GetOrCreate(userID)
		if err != nil {
			return err
		}
		return cartRepo.AddItem(snapshotCartItem(cart.ID, product, constants.CartPlaceholderImage), 1)
	})
	if err != nil {
		return nil, wrapStorage("add cart item", err)
	}
	return s.GetCart(userID)
}

// RemoveOneFromCart 数量减一，数量为 1 时移除该行
func (s *CartService) RemoveOneFromCart(userID, productID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, wrapStorage("load cart", err)
	}
	if cart == nil {
		return nil, ErrItemNotFound
	}
	found, err := s.cartRepo.DecrementItem(cart.ID, productID)
	if err != nil {
		return nil, wrapStorage("decrement cart item", err)
	}
	if !found {
		return nil, ErrItemNotFound
	}
	return s.GetCart(userID)
}

// RemoveFromCart 整行移除
func (s *CartService) RemoveFromCart(userID, productID uint) (*CartView, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, wrapStorage("load cart", err)
	}
	if cart == nil {
		return nil, ErrItemNotFound
	}
	deleted, err := s.cartRepo.DeleteItem(cart.ID, productID)
	if err != nil {
		return nil, wrapStorage("delete cart item", err)
	}
	if deleted == 0 {
		return nil, ErrItemNotFound
	}
	return s.GetCart(userID)
}

// snapshotCartItem 按商品当前信息生成购物车项快照
func snapshotCartItem(cartID uint, product *models.Product, fallbackImage string) *models.CartItem {
	image := product.Images.First()
	if image == "" {
		image = fallbackImage
	}
	return &models.CartItem{
		CartID:      cartID,
		ProductID:   product.ID,
		Name:        product.Name,
		PriceAmount: product.PriceAmount,
		Image:       image,
		Quantity:    1,
	}
}
