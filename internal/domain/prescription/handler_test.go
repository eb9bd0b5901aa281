package prescription

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type countingCounter struct{ n int }

func (c *countingCounter) Inc() { c.n++ }

func newTestHandler(t *testing.T) (*Handler, *echo.Echo, *fixture, *countingCounter) {
	t.Helper()
	f := newFixture(t)
	h := NewHandler(f.svc)
	counter := &countingCounter{}
	h.SetCreatedCounter(counter)
	return h, echo.New(), f, counter
}

func jsonRequest(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func (f *fixture) createBody() string {
	return fmt.Sprintf(
		`{"patient_name":"John Doe","patient_file_number":"F-1001","doctor_id":"%s","drugs":[{"drug_id":"%s"},{"drug_id":"%s"}]}`,
		f.doctorID, f.drugIDs[0], f.drugIDs[1])
}

func TestCreateHandler_Success(t *testing.T) {
	h, e, f, counter := newTestHandler(t)

	c, rec := jsonRequest(e, http.MethodPost, "/prescriptions", f.createBody())
	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp createResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Message != "Prescription created successfully" {
		t.Errorf("unexpected message: %s", resp.Message)
	}
	if resp.Status != StatusPending {
		t.Errorf("expected pending status, got %s", resp.Status)
	}
	if resp.PrescriptionID == uuid.Nil {
		t.Error("expected a prescription id")
	}
	if counter.n != 1 {
		t.Errorf("expected created counter at 1, got %d", counter.n)
	}
}

func TestCreateHandler_MissingFields(t *testing.T) {
	h, e, f, counter := newTestHandler(t)

	body := fmt.Sprintf(`{"patient_name":"John Doe","doctor_id":"%s","drugs":[{"drug_id":"%s"}]}`,
		f.doctorID, f.drugIDs[0])
	c, _ := jsonRequest(e, http.MethodPost, "/prescriptions", body)
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if he.Message != "Missing required fields: patient_name, patient_file_number, doctor_id, drugs" {
		t.Errorf("unexpected message: %v", he.Message)
	}
	if counter.n != 0 {
		t.Error("counter must not move on failure")
	}
}

func TestCreateHandler_EmptyDrugList(t *testing.T) {
	h, e, f, _ := newTestHandler(t)

	// An empty or null drugs list counts as a missing field.
	for _, drugs := range []string{`[]`, `null`} {
		body := fmt.Sprintf(`{"patient_name":"John Doe","patient_file_number":"F-1001","doctor_id":"%s","drugs":%s}`,
			f.doctorID, drugs)
		c, _ := jsonRequest(e, http.MethodPost, "/prescriptions", body)
		err := h.Create(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("drugs=%s: expected 400, got %v", drugs, err)
		}
		if he.Message != "Missing required fields: patient_name, patient_file_number, doctor_id, drugs" {
			t.Errorf("drugs=%s: unexpected message: %v", drugs, he.Message)
		}
	}
}

func TestCreateHandler_NonListDrugs(t *testing.T) {
	h, e, f, _ := newTestHandler(t)

	for _, drugs := range []string{`"amoxicillin"`, `{"drug_id":"x"}`, `42`} {
		body := fmt.Sprintf(`{"patient_name":"John Doe","patient_file_number":"F-1001","doctor_id":"%s","drugs":%s}`,
			f.doctorID, drugs)
		c, _ := jsonRequest(e, http.MethodPost, "/prescriptions", body)
		err := h.Create(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("drugs=%s: expected 400, got %v", drugs, err)
		}
		if he.Message != "Drugs must be a non-empty list" {
			t.Errorf("drugs=%s: unexpected message: %v", drugs, he.Message)
		}
	}
}

func TestCreateHandler_DrugEntryWithoutID(t *testing.T) {
	h, e, f, _ := newTestHandler(t)

	body := fmt.Sprintf(`{"patient_name":"John Doe","patient_file_number":"F-1001","doctor_id":"%s","drugs":[{}]}`,
		f.doctorID)
	c, _ := jsonRequest(e, http.MethodPost, "/prescriptions", body)
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if he.Message != "Each drug entry must contain a 'drug_id'" {
		t.Errorf("unexpected message: %v", he.Message)
	}
}

func TestCreateHandler_UnauthorizedDoctor(t *testing.T) {
	h, e, f, _ := newTestHandler(t)

	body := fmt.Sprintf(`{"patient_name":"John Doe","patient_file_number":"F-1001","doctor_id":"%s","drugs":[{"drug_id":"%s"}]}`,
		uuid.New(), f.drugIDs[0])
	c, _ := jsonRequest(e, http.MethodPost, "/prescriptions", body)
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
	if he.Message != "Invalid or unauthorized doctor ID" {
		t.Errorf("unexpected message: %v", he.Message)
	}
}

func TestCreateHandler_MalformedDoctorID(t *testing.T) {
	h, e, f, _ := newTestHandler(t)

	body := fmt.Sprintf(`{"patient_name":"John Doe","patient_file_number":"F-1001","doctor_id":"not-a-uuid","drugs":[{"drug_id":"%s"}]}`,
		f.drugIDs[0])
	c, _ := jsonRequest(e, http.MethodPost, "/prescriptions", body)
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestCreateHandler_UnknownDrug(t *testing.T) {
	h, e, f, _ := newTestHandler(t)

	unknown := uuid.New()
	body := fmt.Sprintf(`{"patient_name":"John Doe","patient_file_number":"F-1001","doctor_id":"%s","drugs":[{"drug_id":"%s"}]}`,
		f.doctorID, unknown)
	c, _ := jsonRequest(e, http.MethodPost, "/prescriptions", body)
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if want := fmt.Sprintf("Drug with ID %s not found", unknown); he.Message != want {
		t.Errorf("expected %q, got %v", want, he.Message)
	}
}

func TestGetHandler_ReturnsDetail(t *testing.T) {
	h, e, f, _ := newTestHandler(t)
	p := mustCreate(t, f)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/prescriptions/:id")
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var d Detail
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if d.ID != p.ID {
		t.Errorf("expected id %s, got %s", p.ID, d.ID)
	}
	if len(d.Drugs) != 2 {
		t.Errorf("expected 2 prescribed drugs, got %d", len(d.Drugs))
	}
}

func TestGetHandler_NotFound(t *testing.T) {
	h, e, _, _ := newTestHandler(t)

	for _, id := range []string{uuid.New().String(), "not-a-uuid"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/prescriptions/:id")
		c.SetParamNames("id")
		c.SetParamValues(id)

		err := h.Get(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusNotFound {
			t.Errorf("id %q: expected 404, got %v", id, err)
			continue
		}
		if he.Message != "Prescription not found" {
			t.Errorf("id %q: unexpected message: %v", id, he.Message)
		}
	}
}

func TestUpdateStatusHandler(t *testing.T) {
	h, e, f, _ := newTestHandler(t)
	p := mustCreate(t, f)

	c, rec := jsonRequest(e, http.MethodPut, "/", `{"status":"dispensed"}`)
	c.SetPath("/prescriptions/:id/status")
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp statusResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Message != "Prescription status updated successfully" {
		t.Errorf("unexpected message: %s", resp.Message)
	}
	if resp.Prescription.Status != "dispensed" {
		t.Errorf("expected dispensed, got %s", resp.Prescription.Status)
	}
	if resp.Prescription.PatientID != f.patients.id {
		t.Error("expected flat patient id in response")
	}
}

func TestUpdateStatusHandler_MissingStatus(t *testing.T) {
	h, e, f, _ := newTestHandler(t)
	p := mustCreate(t, f)

	c, _ := jsonRequest(e, http.MethodPut, "/", `{}`)
	c.SetPath("/prescriptions/:id/status")
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	err := h.UpdateStatus(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if he.Message != "New status is required" {
		t.Errorf("unexpected message: %v", he.Message)
	}
}

func TestUpdateStatusHandler_NotFound(t *testing.T) {
	h, e, _, _ := newTestHandler(t)

	c, _ := jsonRequest(e, http.MethodPut, "/", `{"status":"ready"}`)
	c.SetPath("/prescriptions/:id/status")
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.UpdateStatus(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
	if he.Message != "Prescription not found" {
		t.Errorf("unexpected message: %v", he.Message)
	}
}

func TestLabelsHandler(t *testing.T) {
	h, e, f, _ := newTestHandler(t)
	p := mustCreate(t, f)
	d := f.repo.byID[p.ID]
	d.Patient.Name = "John Doe"
	d.Patient.FileNumber = "F-1001"
	d.Drugs[0].Name = "Amoxicillin"
	d.Drugs[1].Name = "Lisinopril"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/prescriptions/:id/label")
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.Labels(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp labelsResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.PrescriptionID != p.ID {
		t.Errorf("expected prescription id %s, got %s", p.ID, resp.PrescriptionID)
	}
	if len(resp.Labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(resp.Labels))
	}
	if !strings.Contains(resp.Labels[0], "drug name: Amoxicillin") {
		t.Errorf("unexpected first label:\n%s", resp.Labels[0])
	}
}

func mustCreate(t *testing.T, f *fixture) *Prescription {
	t.Helper()
	p, err := f.svc.Create(context.Background(), f.validInput())
	if err != nil {
		t.Fatalf("create prescription: %v", err)
	}
	return p
}
