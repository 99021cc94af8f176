package repository

import (
	"github.com/vastra-shop/internal/constants"
	"github.com/vastra-shop/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetOverview() (DashboardOverviewRow, error)
	GetUsersPerMonth() ([]DashboardMonthCountRow, error)
	GetSalesPerMonth() ([]DashboardMonthAmountRow, error)
	GetProductsPerCategory() ([]DashboardCategoryCountRow, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	ProductsTotal   int64
	UsersTotal      int64
	OrdersTotal     int64
	PendingOrders   int64
	CancelledOrders int64
	TotalSales      float64
}

// DashboardMonthCountRow 按月计数
type DashboardMonthCountRow struct {
	Month string
	Count int64
}

// DashboardMonthAmountRow 按月金额
type DashboardMonthAmountRow struct {
	Month  string
	Amount float64
	Orders int64
}

// DashboardCategoryCountRow 分类商品数
type DashboardCategoryCountRow struct {
	CategoryID   uint
	CategoryName string
	Count        int64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 获取总览统计，销售额不含已取消订单
func (r *GormDashboardRepository) GetOverview() (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}

	orderBase := func() *gorm.DB {
		return r.db.Model(&models.Order{})
	}

	if err := r.db.Model(&models.Product{}).Count(&result.ProductsTotal).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.User{}).Count(&result.UsersTotal).Error; err != nil {
		return result, err
	}
	if err := orderBase().Count(&result.OrdersTotal).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusPending).Count(&result.PendingOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().Where("status = ?", constants.OrderStatusCancelled).Count(&result.CancelledOrders).Error; err != nil {
		return result, err
	}
	if err := orderBase().
		Where("status <> ?", constants.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.TotalSales).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetUsersPerMonth 按月统计注册用户
func (r *GormDashboardRepository) GetUsersPerMonth() ([]DashboardMonthCountRow, error) {
	month := monthExpr(r.db, "created_at")
	rows := make([]DashboardMonthCountRow, 0)
	err := r.db.Model(&models.User{}).
		Select(month + " AS month, COUNT(*) AS count").
		Group(month).
		Order("month ASC").
		Scan(&rows).Error
	return rows, err
}

// GetSalesPerMonth 按月统计销售额
func (r *GormDashboardRepository) GetSalesPerMonth() ([]DashboardMonthAmountRow, error) {
	month := monthExpr(r.db, "created_at")
	rows := make([]DashboardMonthAmountRow, 0)
	err := r.db.Model(&models.Order{}).
		Select(month+" AS month, COALESCE(SUM(total_amount), 0) AS amount, COUNT(*) AS orders").
		Where("status <> ?", constants.OrderStatusCancelled).
		Group(month).
		Order("month ASC").
		Scan(&rows).Error
	return rows, err
}

// GetProductsPerCategory 统计各分类商品数（含空分类）
func (r *GormDashboardRepository) GetProductsPerCategory() ([]DashboardCategoryCountRow, error) {
	rows := make([]DashboardCategoryCountRow, 0)
	err := r.db.Model(&models.Category{}).
		Select("categories.id AS category_id, categories.name AS category_name, COUNT(products.id) AS count").
		Joins("LEFT JOIN products ON products.category_id = categories.id AND products.deleted_at IS NULL").
		Group("categories.id, categories.name").
		Order("categories.id ASC").
		Scan(&rows).Error
	return rows, err
}
