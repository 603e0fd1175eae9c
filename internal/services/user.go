package services

import (
	"errors"
	"strings"

	"github.com/shiftwise/backend/internal/models"
	"gorm.io/gorm"
)

// UserService is the local identity directory: lookups by provider subject
// or email, account linking, and the ordinary account administration the
// admin endpoints expose.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Roles").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByGoogleID looks up a user by the linked provider subject id.
// Returns (nil, nil) when no account is linked to it.
func (s *UserService) FindByGoogleID(subject string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Roles").Where("google_id = ?", subject).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Roles").Where("email = ?", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// LinkGoogleAccount persists the provider subject id and display name on an
// existing account. This is the only mutation the login path performs.
func (s *UserService) LinkGoogleAccount(user *models.User, subject, name string) error {
	user.GoogleID = &subject
	user.Name = &name
	return s.db.Model(user).Updates(map[string]interface{}{
		"google_id": subject,
		"name":      name,
	}).Error
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Preload("Roles").Order("email").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

type CreateUserRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Active  bool   `json:"active"`
	RoleIDs []uint `json:"role_ids"`
}

func (s *UserService) Create(req *CreateUserRequest, createdBy uint) (*models.User, error) {
	roles, err := s.rolesByIDs(req.RoleIDs)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:       strings.ToLower(req.Email),
		Active:      req.Active,
		Roles:       roles,
		CreatedByID: &createdBy,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

type UpdateUserRequest struct {
	Name    *string `json:"name"`
	Active  bool    `json:"active"`
	RoleIDs []uint  `json:"role_ids"`
}

func (s *UserService) Update(id uint, req *UpdateUserRequest) (*models.User, error) {
	user, err := s.FindByID(id)
	if err != nil || user == nil {
		return nil, err
	}

	roles, err := s.rolesByIDs(req.RoleIDs)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Active = req.Active
	if err := s.db.Model(user).Updates(map[string]interface{}{
		"name":   req.Name,
		"active": req.Active,
	}).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(user).Association("Roles").Replace(roles); err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}

func (s *UserService) Delete(id uint) error {
	return s.db.Delete(&models.User{}, id).Error
}

func (s *UserService) rolesByIDs(ids []uint) ([]models.Role, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var roles []models.Role
	if err := s.db.Where("id IN ?", ids).Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}
