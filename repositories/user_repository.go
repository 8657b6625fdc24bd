package repositories

import (
	"github.com/civicseva/civicseva-api/db"
	"github.com/civicseva/civicseva-api/models"
)

type UserRepo interface {
	GetUserByUsername(username string) (models.User, error)
	GetUserByID(id uint) (models.User, error)
	SaveUser(user *models.User) error
	DeleteUser(id uint) error
}

type DBUserRepo struct{}

func (r *DBUserRepo) GetUserByUsername(username string) (models.User, error) {
	var user models.User
	err := db.DB.Where("username = ?", username).First(&user).Error
	return user, err
}

func (r *DBUserRepo) GetUserByID(id uint) (models.User, error) {
	var user models.User
	err := db.DB.First(&user, id).Error
	return user, err
}

func (r *DBUserRepo) SaveUser(user *models.User) error {
	return db.DB.Save(user).Error
}

func (r *DBUserRepo) DeleteUser(id uint) error {
	return db.DB.Delete(&models.User{}, id).Error
}
