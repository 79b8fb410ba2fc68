package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pedalpoint/bikeshop/app/models"
	"github.com/pedalpoint/bikeshop/pkg/orm"
)

// UserRepository handles database operations for accounts.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) Update(u *models.User) error {
	return r.db.Save(u).Error
}

func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var u models.User
	err := r.db.First(&u, id).Error
	return u, err
}

func (r *UserRepository) FindByUsername(username string) (models.User, error) {
	var u models.User
	err := r.db.Where("username = ?", username).First(&u).Error
	return u, err
}

func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var u models.User
	err := r.db.Where("email = ?", email).First(&u).Error
	return u, err
}

// UsernameTaken reports whether the username exists on a different account.
// Pass excludeID 0 when registering.
func (r *UserRepository) UsernameTaken(username string, excludeID uint) (bool, error) {
	return r.taken("username = ? AND id <> ?", username, excludeID)
}

// EmailTaken reports whether the email exists on a different account.
func (r *UserRepository) EmailTaken(email string, excludeID uint) (bool, error) {
	return r.taken("email = ? AND id <> ?", email, excludeID)
}

func (r *UserRepository) taken(cond string, value string, excludeID uint) (bool, error) {
	var u models.User
	err := r.db.Where(cond, value, excludeID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Paginate lists users matching scopes, oldest first.
func (r *UserRepository) Paginate(scopes []orm.Scope, page, limit int) ([]models.User, orm.Pagination, error) {
	var out []models.User
	q := orm.All(scopes...)(r.db.Model(&models.User{})).Order("id ASC")
	pg, err := orm.Paginate(q, page, limit, &out)
	return out, pg, err
}

func (r *UserRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.User{}).Count(&n).Error
	return n, err
}
