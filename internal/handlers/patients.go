package handlers

import (
	"github.com/gin-gonic/gin"

	"hospital-schemes-server/internal/models"
	"hospital-schemes-server/internal/store"
	"hospital-schemes-server/internal/utils"
)

// PatientHandler handles patient registration and maintenance.
type PatientHandler struct {
	Store *store.Store
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(s *store.Store) *PatientHandler {
	return &PatientHandler{Store: s}
}

// PatientRequest is the request body for replacing a patient's details.
type PatientRequest struct {
	Name        string  `json:"name" binding:"required,notblank,max=255"`
	DateOfBirth string  `json:"dob" binding:"required,datetime=2006-01-02"`
	Email       *string `json:"email" binding:"omitempty,email,max=255"`
	Address     *string `json:"address"`
}

func (r PatientRequest) input() (store.PatientInput, error) {
	dob, err := models.ParseDate(r.DateOfBirth)
	if err != nil {
		return store.PatientInput{}, err
	}
	return store.PatientInput{
		Name:        r.Name,
		DateOfBirth: dob,
		Email:       r.Email,
		Address:     r.Address,
	}, nil
}

// CreatePatientRequest registers a patient with an optional first enrollment.
type CreatePatientRequest struct {
	PatientRequest
	Enrollment *EnrollmentFields `json:"enrollment"`
}

// PatientDetail is a patient with their enrollments.
type PatientDetail struct {
	models.PatientView
	Enrollments []models.EnrollmentView `json:"enrollments"`
}

// CreatePatient handles registering a patient. When an enrollment block is
// present the patient and the enrollment are stored atomically.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	var enrollment *store.EnrollmentInput
	if req.Enrollment != nil {
		e, err := req.Enrollment.input()
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		enrollment = &e
	}

	patientID, enrollmentID, err := h.Store.RegisterPatient(c.Request.Context(), in, enrollment)
	if err != nil {
		utils.StoreError(c, err, "Patient not found")
		return
	}

	detail, err := h.detail(c, patientID)
	if err != nil {
		utils.StoreError(c, err, "Patient not found")
		return
	}
	utils.Created(c, "Patient "+detail.Name+" added successfully", gin.H{
		"patient":      detail,
		"enrollmentId": enrollmentID,
	})
}

// GetPatients handles listing all patients, newest first.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	patients, err := h.Store.ListPatients(c.Request.Context())
	if err != nil {
		utils.StoreError(c, err, "Patient not found")
		return
	}
	views := make([]models.PatientView, len(patients))
	for i := range patients {
		views[i] = patients[i].View()
	}
	utils.Success(c, "Patients fetched successfully", views)
}

// GetPatientByID handles fetching a patient with their enrollments.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	detail, err := h.detail(c, id)
	if err != nil {
		utils.StoreError(c, err, "Patient not found")
		return
	}
	utils.Success(c, "Patient fetched successfully", detail)
}

// UpdatePatient handles replacing a patient's details.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req PatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.Store.UpdatePatient(c.Request.Context(), id, in); err != nil {
		utils.StoreError(c, err, "Patient not found")
		return
	}
	detail, err := h.detail(c, id)
	if err != nil {
		utils.StoreError(c, err, "Patient not found")
		return
	}
	utils.Success(c, "Patient "+detail.Name+" updated successfully", detail)
}

// DeletePatient handles deleting a patient and their enrollments.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	patient, err := h.Store.GetPatient(c.Request.Context(), id)
	if err != nil {
		utils.StoreError(c, err, "Patient not found")
		return
	}
	removed, err := h.Store.DeletePatient(c.Request.Context(), id)
	if err != nil {
		utils.StoreError(c, err, "Patient not found")
		return
	}
	utils.Success(c, "Patient "+patient.Name+" deleted successfully", gin.H{"enrollmentsRemoved": removed})
}

func (h *PatientHandler) detail(c *gin.Context, id uint) (PatientDetail, error) {
	patient, err := h.Store.GetPatient(c.Request.Context(), id)
	if err != nil {
		return PatientDetail{}, err
	}
	enrollments, err := h.Store.PatientEnrollments(c.Request.Context(), id)
	if err != nil {
		return PatientDetail{}, err
	}
	detail := PatientDetail{
		PatientView: patient.View(),
		Enrollments: make([]models.EnrollmentView, len(enrollments)),
	}
	for i := range enrollments {
		detail.Enrollments[i] = enrollments[i].View()
	}
	return detail, nil
}
