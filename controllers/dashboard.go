// controllers/dashboard.go
package controllers

import (
	"net/http"

	"garagepro-backend/config"
	"garagepro-backend/models"
	"garagepro-backend/services"
	"garagepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetDashboardOverview returns workload and revenue counters for the
// garage (admin only).
func GetDashboardOverview(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	if err := services.RequireAdmin(actor); err != nil {
		respondServiceError(c, err)
		return
	}

	statusCounts := map[string]int64{}
	for _, status := range []string{
		models.StatusPending, models.StatusApproved, models.StatusInProgress,
		models.StatusCompleted, models.StatusRejected, models.StatusCancelled,
	} {
		var count int64
		if err := config.DB.Model(&models.Booking{}).Where("status = ?", status).Count(&count).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count bookings")
			return
		}
		statusCounts[status] = count
	}

	var customerCount, vehicleCount, unpaidCount int64
	config.DB.Model(&models.Customer{}).Count(&customerCount)
	config.DB.Model(&models.Vehicle{}).Count(&vehicleCount)
	config.DB.Model(&models.Invoice{}).Where("payment_status = ?", models.PaymentPending).Count(&unpaidCount)

	// Paid revenue, summed in exact decimals.
	var paid []models.Invoice
	if err := config.DB.Where("payment_status = ?", models.PaymentPaid).Find(&paid).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute revenue")
		return
	}
	revenue := decimal.Zero
	for _, inv := range paid {
		revenue = revenue.Add(inv.TotalAmount)
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings_by_status": statusCounts,
		"customers":          customerCount,
		"vehicles":           vehicleCount,
		"unpaid_invoices":    unpaidCount,
		"paid_revenue":       revenue,
	})
}
