package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"hospital-schemes-server/internal/models"
	"hospital-schemes-server/internal/store"
	"hospital-schemes-server/internal/utils"
)

// EnrollmentHandler handles patient scheme enrollments.
type EnrollmentHandler struct {
	Store *store.Store
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(s *store.Store) *EnrollmentHandler {
	return &EnrollmentHandler{Store: s}
}

// EnrollmentFields are the writable enrollment fields. A missing amtClaimed
// defaults to zero.
type EnrollmentFields struct {
	SchemeID   uint            `json:"schemeId" binding:"required,gt=0"`
	EnrollDate string          `json:"enrollDate" binding:"required,datetime=2006-01-02"`
	AmtClaimed decimal.Decimal `json:"amtClaimed"`
}

func (r EnrollmentFields) input() (store.EnrollmentInput, error) {
	date, err := models.ParseDate(r.EnrollDate)
	if err != nil {
		return store.EnrollmentInput{}, err
	}
	return store.EnrollmentInput{
		SchemeID:   r.SchemeID,
		EnrollDate: date,
		AmtClaimed: r.AmtClaimed,
	}, nil
}

// CreateEnrollmentRequest enrolls an existing patient.
type CreateEnrollmentRequest struct {
	PatientID uint `json:"patientId" binding:"required,gt=0"`
	EnrollmentFields
}

// CreateEnrollment handles enrolling an existing patient in a scheme.
func (h *EnrollmentHandler) CreateEnrollment(c *gin.Context) {
	var req CreateEnrollmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	id, err := h.Store.Enroll(c.Request.Context(), req.PatientID, in)
	if err != nil {
		utils.StoreError(c, err, "Enrollment not found")
		return
	}
	detail, err := h.Store.GetEnrollment(c.Request.Context(), id)
	if err != nil {
		utils.StoreError(c, err, "Enrollment not found")
		return
	}
	utils.Created(c, "Enrollment added successfully", detail.View())
}

// GetEnrollments handles listing enrollments, most recent first.
func (h *EnrollmentHandler) GetEnrollments(c *gin.Context) {
	details, err := h.Store.ListEnrollments(c.Request.Context())
	if err != nil {
		utils.StoreError(c, err, "Enrollment not found")
		return
	}
	views := make([]models.EnrollmentView, len(details))
	for i := range details {
		views[i] = details[i].View()
	}
	utils.Success(c, "Enrollments fetched successfully", views)
}

// GetEnrollmentByID handles fetching one enrollment.
func (h *EnrollmentHandler) GetEnrollmentByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	detail, err := h.Store.GetEnrollment(c.Request.Context(), id)
	if err != nil {
		utils.StoreError(c, err, "Enrollment not found")
		return
	}
	utils.Success(c, "Enrollment fetched successfully", detail.View())
}

// UpdateEnrollment handles changing an enrollment's scheme, date and amount.
func (h *EnrollmentHandler) UpdateEnrollment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req EnrollmentFields
	if !utils.BindAndValidate(c, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.Store.UpdateEnrollment(c.Request.Context(), id, in); err != nil {
		utils.StoreError(c, err, "Enrollment not found")
		return
	}
	detail, err := h.Store.GetEnrollment(c.Request.Context(), id)
	if err != nil {
		utils.StoreError(c, err, "Enrollment not found")
		return
	}
	utils.Success(c, "Enrollment updated successfully", detail.View())
}

// DeleteEnrollment handles deleting one enrollment.
func (h *EnrollmentHandler) DeleteEnrollment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Store.DeleteEnrollment(c.Request.Context(), id); err != nil {
		utils.StoreError(c, err, "Enrollment not found")
		return
	}
	utils.Success(c, "Enrollment deleted successfully", nil)
}
