package prescription

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Counter is incremented once per successfully created prescription.
type Counter interface {
	Inc()
}

type nopCounter struct{}

func (nopCounter) Inc() {}

type Handler struct {
	svc     *Service
	created Counter
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, created: nopCounter{}}
}

// SetCreatedCounter wires a metrics counter for created prescriptions.
func (h *Handler) SetCreatedCounter(c Counter) {
	h.created = c
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/prescriptions", h.Create)
	e.GET("/prescriptions/:id", h.Get)
	e.PUT("/prescriptions/:id/status", h.UpdateStatus)
	e.GET("/prescriptions/:id/label", h.Labels)
}

type drugRef struct {
	DrugID string `json:"drug_id"`
}

type createRequest struct {
	PatientName       string          `json:"patient_name"`
	PatientFileNumber string          `json:"patient_file_number"`
	DoctorID          string          `json:"doctor_id"`
	Drugs             json.RawMessage `json:"drugs"`
}

type createResponse struct {
	Message        string    `json:"message"`
	PrescriptionID uuid.UUID `json:"prescription_id"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Request body must be JSON")
	}

	// An absent, null or empty drugs list is a missing field; only a
	// present non-list value gets the list-shape message.
	var refs []drugRef
	drugsIsList := false
	rawDrugs := bytes.TrimSpace(req.Drugs)
	drugsEmpty := len(rawDrugs) == 0 || bytes.Equal(rawDrugs, []byte("null"))
	if !drugsEmpty {
		if err := json.Unmarshal(rawDrugs, &refs); err == nil {
			drugsIsList = true
			drugsEmpty = len(refs) == 0
		}
	}

	if req.PatientName == "" || req.PatientFileNumber == "" || req.DoctorID == "" || drugsEmpty {
		return echo.NewHTTPError(http.StatusBadRequest,
			"Missing required fields: patient_name, patient_file_number, doctor_id, drugs")
	}
	if !drugsIsList {
		return echo.NewHTTPError(http.StatusBadRequest, "Drugs must be a non-empty list")
	}

	// A doctor id that does not parse cannot belong to a doctor.
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "Invalid or unauthorized doctor ID")
	}

	drugIDs := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		if ref.DrugID == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "Each drug entry must contain a 'drug_id'")
		}
		id, err := uuid.Parse(ref.DrugID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Drug with ID %s not found", ref.DrugID))
		}
		drugIDs = append(drugIDs, id)
	}

	p, err := h.svc.Create(c.Request().Context(), CreateInput{
		PatientName:       req.PatientName,
		PatientFileNumber: req.PatientFileNumber,
		DoctorID:          doctorID,
		DrugIDs:           drugIDs,
	})
	if err != nil {
		var dnf *DrugNotFoundError
		switch {
		case errors.As(err, &dnf):
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Drug with ID %s not found", dnf.ID))
		case errors.Is(err, ErrUnauthorizedDoctor):
			return echo.NewHTTPError(http.StatusForbidden, "Invalid or unauthorized doctor ID")
		case errors.Is(err, ErrMissingField):
			return echo.NewHTTPError(http.StatusBadRequest,
				"Missing required fields: patient_name, patient_file_number, doctor_id, drugs")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	h.created.Inc()
	return c.JSON(http.StatusCreated, createResponse{
		Message:        "Prescription created successfully",
		PrescriptionID: p.ID,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
	})
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Prescription not found")
	}
	d, err := h.svc.Get(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Prescription not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

type statusRequest struct {
	Status string `json:"status"`
}

// flatDetail is the prescription shape returned by the status update
// endpoint: flat patient/doctor ids rather than the nested summaries.
type flatDetail struct {
	ID        uuid.UUID  `json:"id"`
	PatientID uuid.UUID  `json:"patient_id"`
	DoctorID  uuid.UUID  `json:"doctor_id"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	Drugs     []DrugInfo `json:"prescribed_drugs"`
}

type statusResponse struct {
	Message      string     `json:"message"`
	Prescription flatDetail `json:"prescription"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Prescription not found")
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Request body must be JSON")
	}
	if req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "New status is required")
	}

	d, err := h.svc.UpdateStatus(c.Request().Context(), id, req.Status)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Prescription not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, statusResponse{
		Message: "Prescription status updated successfully",
		Prescription: flatDetail{
			ID:        d.ID,
			PatientID: d.Patient.ID,
			DoctorID:  d.Doctor.ID,
			Status:    d.Status,
			CreatedAt: d.CreatedAt,
			Drugs:     d.Drugs,
		},
	})
}

type labelsResponse struct {
	PrescriptionID uuid.UUID `json:"prescription_id"`
	Labels         []string  `json:"labels"`
}

func (h *Handler) Labels(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Prescription not found")
	}
	labels, err := h.svc.Labels(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Prescription not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, labelsResponse{PrescriptionID: id, Labels: labels})
}
