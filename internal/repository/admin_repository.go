package repository

import (
	"time"

	"github.com/vastra-shop/internal/models"

	"gorm.io/gorm"
)

// AdminRepository 管理员数据访问
type AdminRepository interface {
	GetByUsername(username string) (*models.Admin, error)
	GetByID(id uint) (*models.Admin, error)
	List() ([]models.Admin, error)
	TouchLogin(id uint, at time.Time) error
	UpdatePassword(id uint, passwordHash string) error
}

// GormAdminRepository GORM 实现
type GormAdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository 创建管理员仓库
func NewAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

func (r *GormAdminRepository) GetByUsername(username string) (*models.Admin, error) {
	return findOne[models.Admin](r.db.Where("username = ?", username))
}

func (r *GormAdminRepository) GetByID(id uint) (*models.Admin, error) {
	return findOne[models.Admin](r.db, id)
}

// List 管理员列表，不返回密码哈希
func (r *GormAdminRepository) List() ([]models.Admin, error) {
	var admins []models.Admin
	err := r.db.Select("id", "username", "is_super", "last_login_at", "created_at").
		Order("id ASC").
		Find(&admins).Error
	return admins, err
}

func (r *GormAdminRepository) TouchLogin(id uint, at time.Time) error {
	return r.db.Model(&models.Admin{}).Where("id = ?", id).Update("last_login_at", at).Error
}

// UpdatePassword 写入新哈希并递增 token_version
func (r *GormAdminRepository) UpdatePassword(id uint, passwordHash string) error {
	return r.db.Model(&models.Admin{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password_hash": passwordHash,
		"token_version": gorm.Expr("token_version + ?", 1),
	}).Error
}
