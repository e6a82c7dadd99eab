package handlers

import (
	"github.com/gin-gonic/gin"

	"hospital-schemes-server/internal/models"
	"hospital-schemes-server/internal/store"
	"hospital-schemes-server/internal/utils"
)

// SchemeHandler handles scheme management requests.
type SchemeHandler struct {
	Store *store.Store
}

// NewSchemeHandler creates a new SchemeHandler.
func NewSchemeHandler(s *store.Store) *SchemeHandler {
	return &SchemeHandler{Store: s}
}

// SchemeRequest is the request body for creating or replacing a scheme.
type SchemeRequest struct {
	Name        string  `json:"name" binding:"required,notblank,max=255"`
	Description *string `json:"description"`
	StartDate   string  `json:"startDate" binding:"required,datetime=2006-01-02"`
}

func (r SchemeRequest) input() (store.SchemeInput, error) {
	start, err := models.ParseDate(r.StartDate)
	if err != nil {
		return store.SchemeInput{}, err
	}
	return store.SchemeInput{Name: r.Name, Description: r.Description, StartDate: start}, nil
}

// CreateScheme handles creating a new scheme.
func (h *SchemeHandler) CreateScheme(c *gin.Context) {
	var req SchemeRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	id, err := h.Store.CreateScheme(c.Request.Context(), in)
	if err != nil {
		utils.StoreError(c, err, "Scheme not found")
		return
	}
	scheme, err := h.Store.GetScheme(c.Request.Context(), id)
	if err != nil {
		utils.StoreError(c, err, "Scheme not found")
		return
	}
	utils.Created(c, "Scheme "+scheme.Name+" added successfully", scheme.View())
}

// GetSchemes handles listing all schemes ordered by name.
func (h *SchemeHandler) GetSchemes(c *gin.Context) {
	schemes, err := h.Store.ListSchemes(c.Request.Context())
	if err != nil {
		utils.StoreError(c, err, "Scheme not found")
		return
	}
	views := make([]models.SchemeView, len(schemes))
	for i := range schemes {
		views[i] = schemes[i].View()
	}
	utils.Success(c, "Schemes fetched successfully", views)
}

// GetSchemeByID handles fetching a single scheme.
func (h *SchemeHandler) GetSchemeByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	scheme, err := h.Store.GetScheme(c.Request.Context(), id)
	if err != nil {
		utils.StoreError(c, err, "Scheme not found")
		return
	}
	utils.Success(c, "Scheme fetched successfully", scheme.View())
}

// UpdateScheme handles replacing a scheme's fields.
func (h *SchemeHandler) UpdateScheme(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req SchemeRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.Store.UpdateScheme(c.Request.Context(), id, in); err != nil {
		utils.StoreError(c, err, "Scheme not found")
		return
	}
	scheme, err := h.Store.GetScheme(c.Request.Context(), id)
	if err != nil {
		utils.StoreError(c, err, "Scheme not found")
		return
	}
	utils.Success(c, "Scheme "+scheme.Name+" updated successfully", scheme.View())
}

// DeleteScheme handles deleting a scheme and its enrollments.
func (h *SchemeHandler) DeleteScheme(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	removed, err := h.Store.DeleteScheme(c.Request.Context(), id)
	if err != nil {
		utils.StoreError(c, err, "Scheme not found")
		return
	}
	utils.Success(c, "Scheme deleted successfully", gin.H{"enrollmentsRemoved": removed})
}
