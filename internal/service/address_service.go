package service

import (
	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/repository"
)

// AddressService 收货地址服务
type AddressService struct {
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
}

// NewAddressService 创建收货地址服务
func NewAddressService(userRepo repository.UserRepository, orderRepo repository.OrderRepository) *AddressService {
	return &AddressService{userRepo: userRepo, orderRepo: orderRepo}
}

// SaveAddress 保存常用收货地址
func (s *AddressService) SaveAddress(userID uint, address models.ShippingAddress) (*models.ShippingAddress, error) {
	address = address.Trimmed()
	if err := validateStruct(address); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, wrapStorage("load user", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if err := s.userRepo.UpdateAddress(userID, address); err != nil {
		return nil, wrapStorage("save address", err)
	}
	return &address, nil
}

// GetAddress 获取常用收货地址
// 未保存时回退到最近一笔订单的收货地址，都没有返回 nil
func (s *AddressService) GetAddress(userID uint) (*models.ShippingAddress, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, wrapStorage("load user", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.SavedAddress.IsZero() {
		address := user.SavedAddress
		return &address, nil
	}
	order, err := s.orderRepo.GetLatestByUser(userID)
	if err != nil {
		return nil, wrapStorage("load latest order", err)
	}
	if order == nil || order.Shipping.IsZero() {
		return nil, nil
	}
	address := order.Shipping
	return &address, nil
}
