// controllers/invoice.go
package controllers

import (
	"net/http"

	"garagepro-backend/config"
	"garagepro-backend/services"
	"garagepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInvoiceInput defines the expected JSON structure for generating an invoice
type CreateInvoiceInput struct {
	BookingID                    uuid.UUID       `json:"booking_id" binding:"required"`
	AdditionalCharge             decimal.Decimal `json:"additional_charge"`
	AdditionalChargesDescription string          `json:"additional_charges_description"`
}

// UpdateChargesInput defines the expected JSON structure for updating invoice charges
type UpdateChargesInput struct {
	AdditionalCharge             *decimal.Decimal `json:"additional_charge"`
	AdditionalChargesDescription *string          `json:"additional_charges_description"`
}

// CreateInvoice generates the invoice for a completed booking (admin only).
func CreateInvoice(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	invoice, err := services.NewInvoiceService(config.DB).GenerateInvoice(
		actor, input.BookingID, input.AdditionalCharge, input.AdditionalChargesDescription)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invoice)
}

// GetInvoices lists invoices, role-scoped.
func GetInvoices(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	invoices, err := services.NewInvoiceService(config.DB).ListInvoices(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice retrieves a specific invoice (owner or admin).
func GetInvoice(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	invoice, err := services.NewInvoiceService(config.DB).GetInvoice(actor, invoiceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoiceCharges replaces the additional charge; the total is
// recomputed server-side (admin only).
func UpdateInvoiceCharges(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input UpdateChargesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	invoice, err := services.NewInvoiceService(config.DB).UpdateCharges(actor, invoiceID, services.UpdateChargesInput{
		AdditionalCharge: input.AdditionalCharge,
		Description:      input.AdditionalChargesDescription,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// MarkInvoicePaid sets the payment status to PAID (admin only).
func MarkInvoicePaid(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	invoiceID, ok := parseIDParam(c)
	if !ok {
		return
	}

	invoice, err := services.NewInvoiceService(config.DB).MarkPaid(actor, invoiceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invoice)
}
