package service

import (
	"context"
	"time"

	"github.com/vastra-shop/internal/cache"
	"github.com/vastra-shop/internal/constants"
	"github.com/vastra-shop/internal/logger"
	"github.com/vastra-shop/internal/repository"

	"github.com/shopspring/decimal"
)

const dashboardCacheTTL = 45 * time.Second

// DashboardService 仪表盘服务
// 说明：聚合后台首页核心经营数据。
type DashboardService struct {
	repo repository.DashboardRepository
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// DashboardOverviewResponse 仪表盘响应
type DashboardOverviewResponse struct {
	KPI                 DashboardKPI                `json:"kpi"`
	UsersPerMonth       []DashboardMonthCount       `json:"users_per_month"`
	SalesPerMonth       []DashboardMonthSales       `json:"sales_per_month"`
	ProductsPerCategory []DashboardCategoryProducts `json:"products_per_category"`
	GeneratedAt         time.Time                   `json:"generated_at"`
}

// DashboardKPI 仪表盘核心指标
type DashboardKPI struct {
	ProductsTotal   int64  `json:"products_total"`
	UsersTotal      int64  `json:"users_total"`
	OrdersTotal     int64  `json:"orders_total"`
	PendingOrders   int64  `json:"pending_orders"`
	CancelledOrders int64  `json:"cancelled_orders"`
	TotalSales      string `json:"total_sales"`
}

// DashboardMonthCount 按月计数
type DashboardMonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// DashboardMonthSales 按月销售额
type DashboardMonthSales struct {
	Month  string `json:"month"`
	Amount string `json:"amount"`
	Orders int64  `json:"orders"`
}

// DashboardCategoryProducts 分类商品数
type DashboardCategoryProducts struct {
	CategoryID   uint   `json:"category_id"`
	CategoryName string `json:"category_name"`
	Count        int64  `json:"count"`
}

// GetOverview 获取仪表盘数据，Redis 启用时缓存 45 秒
func (s *DashboardService) GetOverview(ctx context.Context, forceRefresh bool) (*DashboardOverviewResponse, error) {
	if s == nil || s.repo == nil {
		return &DashboardOverviewResponse{}, nil
	}
	if !forceRefresh {
		var cached DashboardOverviewResponse
		hit, cacheErr := cache.GetJSON(ctx, constants.CacheKeyDashboard, &cached)
		if cacheErr == nil && hit {
			return &cached, nil
		}
	}

	overview, err := s.repo.GetOverview()
	if err != nil {
		return nil, wrapStorage("dashboard overview", err)
	}
	usersPerMonth, err := s.repo.GetUsersPerMonth()
	if err != nil {
		return nil, wrapStorage("dashboard users per month", err)
	}
	salesPerMonth, err := s.repo.GetSalesPerMonth()
	if err != nil {
		return nil, wrapStorage("dashboard sales per month", err)
	}
	perCategory, err := s.repo.GetProductsPerCategory()
	if err != nil {
		return nil, wrapStorage("dashboard products per category", err)
	}

	resp := &DashboardOverviewResponse{
		KPI: DashboardKPI{
			ProductsTotal:   overview.ProductsTotal,
			UsersTotal:      overview.UsersTotal,
			OrdersTotal:     overview.OrdersTotal,
			PendingOrders:   overview.PendingOrders,
			CancelledOrders: overview.CancelledOrders,
			TotalSales:      formatDashboardAmount(overview.TotalSales),
		},
		UsersPerMonth:       make([]DashboardMonthCount, 0, len(usersPerMonth)),
		SalesPerMonth:       make([]DashboardMonthSales, 0, len(salesPerMonth)),
		ProductsPerCategory: make([]DashboardCategoryProducts, 0, len(perCategory)),
		GeneratedAt:         time.Now(),
	}
	for _, row := range usersPerMonth {
		resp.UsersPerMonth = append(resp.UsersPerMonth, DashboardMonthCount{Month: row.Month, Count: row.Count})
	}
	for _, row := range salesPerMonth {
		resp.SalesPerMonth = append(resp.SalesPerMonth, DashboardMonthSales{
			Month:  row.Month,
			Amount: formatDashboardAmount(row.Amount),
			Orders: row.Orders,
		})
	}
	for _, row := range perCategory {
		resp.ProductsPerCategory = append(resp.ProductsPerCategory, DashboardCategoryProducts{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Count:        row.Count,
		})
	}

	if err := cache.SetJSON(ctx, constants.CacheKeyDashboard, resp, dashboardCacheTTL); err != nil {
		logger.Debugw("dashboard_cache_write_failed", "error", err)
	}
	return resp, nil
}

func formatDashboardAmount(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2)
}
