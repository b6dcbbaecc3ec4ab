// controllers/customer.go
package controllers

import (
	"errors"
	"net/http"

	"garagepro-backend/config"
	"garagepro-backend/models"
	"garagepro-backend/services"
	"garagepro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Phone     *string `json:"phone"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// GetCustomers lists customer profiles. Admins see every profile; a
// customer's listing contains only their own.
func GetCustomers(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var customers []models.Customer
	query := config.DB.Preload("User")
	if !actor.IsAdmin() {
		if actor.CustomerID == nil {
			c.JSON(http.StatusOK, []models.Customer{})
			return
		}
		query = query.Where("id = ?", *actor.CustomerID)
	}
	if err := query.Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer (owner or admin).
func GetCustomer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	customerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var customer models.Customer
	if err := config.DB.Preload("User").Preload("Vehicles").
		First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := services.RequireOwnerOrAdmin(actor, services.OwnerOfCustomer(customer)); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates a customer profile (owner or admin). Phone
// numbers keep the 10-digit invariant.
func UpdateCustomer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	customerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.Preload("User").First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := services.RequireOwnerOrAdmin(actor, services.OwnerOfCustomer(customer)); err != nil {
		respondServiceError(c, err)
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusBadRequest, "Phone must be exactly 10 digits")
			return
		}
		customer.Phone = *input.Phone
		if err := tx.Model(&models.Customer{}).Where("id = ?", customer.ID).
			Update("phone", customer.Phone).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
			return
		}
	}

	if input.FirstName != nil || input.LastName != nil {
		if input.FirstName != nil {
			customer.User.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			customer.User.LastName = *input.LastName
		}
		if err := tx.Model(&models.User{}).Where("id = ?", customer.UserID).
			Updates(map[string]interface{}{
				"first_name": customer.User.FirstName,
				"last_name":  customer.User.LastName,
			}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
			return
		}
	}

	tx.Commit()

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer removes a customer and its dependents (admin only).
func DeleteCustomer(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := services.RequireAdmin(actor); err != nil {
		respondServiceError(c, err)
		return
	}
	customerID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Cascade: invoices, bookings and vehicles go with the customer.
	// Invoices first, while the booking rows are still visible.
	bookingIDs := tx.Model(&models.Booking{}).Select("id").Where("customer_id = ?", customer.ID)
	if err := tx.Where("booking_id IN (?)", bookingIDs).Delete(&models.Invoice{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer invoices")
		return
	}
	if err := tx.Where("customer_id = ?", customer.ID).Delete(&models.Booking{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer bookings")
		return
	}
	if err := tx.Where("customer_id = ?", customer.ID).Delete(&models.Vehicle{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer vehicles")
		return
	}
	if err := tx.Delete(&customer).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
