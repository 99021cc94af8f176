package repository

import (
	"strings"
	"time"

	"github.com/vastra-shop/internal/constants"
	"github.com/vastra-shop/internal/models"

	"gorm.io/gorm"
)

// UserRepository 顾客数据访问
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateAddress(userID uint, address models.ShippingAddress) error
	List(filter UserListFilter) ([]models.User, int64, error)
	BatchUpdateStatus(userIDs []uint, status string) error
	Delete(id uint) error
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建顾客仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// bumpTokenVersion 递增 token_version，使已签发的令牌失效
var bumpTokenVersion = gorm.Expr("token_version + ?", 1)

func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	return findOne[models.User](r.db.Where("email = ?", email))
}

func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	return findOne[models.User](r.db, id)
}

func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdateAddress 覆盖顾客保存的收货地址
func (r *GormUserRepository) UpdateAddress(userID uint, address models.ShippingAddress) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"addr_name":    address.Name,
		"addr_address": address.Address,
		"addr_pincode": address.Pincode,
		"addr_city":    address.City,
		"addr_state":   address.State,
		"updated_at":   time.Now(),
	}).Error
}

// List 后台顾客列表，关键字匹配邮箱或用户名
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		condition, n := buildLikeCondition(r.db, []string{"email", "username"})
		query = query.Where(condition, repeatLikeArgs(containsPattern(keyword), n)...)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	return findPage[models.User](query, filter.Page, filter.PageSize, "id DESC")
}

// BatchUpdateStatus 批量修改状态，停用时一并吊销令牌
func (r *GormUserRepository) BatchUpdateStatus(userIDs []uint, status string) error {
	if len(userIDs) == 0 {
		return nil
	}
	updates := map[string]interface{}{"status": status, "updated_at": time.Now()}
	if strings.EqualFold(strings.TrimSpace(status), constants.UserStatusDisabled) {
		updates["token_version"] = bumpTokenVersion
	}
	return r.db.Model(&models.User{}).Where("id IN ?", userIDs).Updates(updates).Error
}

// Delete 软删除顾客并吊销令牌
func (r *GormUserRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", id).Update("token_version", bumpTokenVersion).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}
