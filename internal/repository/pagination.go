package repository

import "gorm.io/gorm"

// applyPagination 按页码与页大小追加 LIMIT/OFFSET，pageSize 非正数时不分页
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	return query.Limit(pageSize).Offset((max(page, 1) - 1) * pageSize)
}

// findPage 先统计总数再取当前页，order 为空时不排序
func findPage[T any](query *gorm.DB, page, pageSize int, order string) ([]T, int64, error) {
	total, err := count(query)
	if err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, page, pageSize)
	if order != "" {
		query = query.Order(order)
	}
	var rows []T
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
