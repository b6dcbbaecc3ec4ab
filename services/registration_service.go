// services/registration_service.go
package services

import (
	"errors"

	"garagepro-backend/models"
	"garagepro-backend/utils"

	"gorm.io/gorm"
)

type RegistrationService struct {
	db *gorm.DB
}

func NewRegistrationService(db *gorm.DB) *RegistrationService {
	return &RegistrationService{db: db}
}

type RegisterCustomerInput struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// RegisterCustomer creates a CUSTOMER user and its customer profile in
// one transaction. If the profile cannot be created the user does not
// persist either.
func (s *RegistrationService) RegisterCustomer(in RegisterCustomerInput) (*models.Customer, error) {
	if in.Username == "" {
		return nil, validationErr("username", "must not be empty")
	}
	if in.Password == "" {
		return nil, validationErr("password", "must not be empty")
	}
	if in.Email == "" {
		return nil, validationErr("email", "must not be empty")
	}
	if in.Phone != "" && !utils.ValidatePhone(in.Phone) {
		return nil, validationErr("phone", "must be exactly 10 digits")
	}

	var existing models.User
	err := s.db.Where("username = ? OR email = ?", in.Username, in.Email).First(&existing).Error
	if err == nil {
		if existing.Email == in.Email {
			return nil, alreadyExistsErr("email already registered")
		}
		return nil, alreadyExistsErr("username already taken")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internalErr(err)
	}

	customer := models.Customer{Phone: in.Phone}
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Username:  in.Username,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Email:     in.Email,
			Password:  in.Password, // hashed in BeforeCreate hook
			Role:      models.RoleCustomer,
		}
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return alreadyExistsErr("username or email already registered")
			}
			return internalErr(err)
		}

		customer.UserID = user.ID
		if err := tx.Create(&customer).Error; err != nil {
			return internalErr(err)
		}
		customer.User = user
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &customer, nil
}
