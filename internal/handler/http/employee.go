package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/qadam-hq/checkin-backend-go/internal/domain/employee"
	"github.com/qadam-hq/checkin-backend-go/internal/handler/http/response"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
	employeesvc "github.com/qadam-hq/checkin-backend-go/internal/service/employee"
)

type EmployeeHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employeesvc.Service
}

func NewEmployeeHandler(employeeService employeesvc.Service) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

type employeeResponse struct {
	TelegramID int64  `json:"telegram_id"`
	FullName   string `json:"full_name"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  string `json:"created_at"`
}

func toEmployeeResponse(emp employee.Employee) employeeResponse {
	return employeeResponse{
		TelegramID: emp.TelegramID,
		FullName:   emp.FullName,
		IsActive:   emp.IsActive,
		CreatedAt:  timeutil.FormatDate(emp.CreatedAt),
	}
}

// Register implements EmployeeHandler.
func (h *employeeHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req employeesvc.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	emp, err := h.employeeService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Employee registered", toEmployeeResponse(emp))
}

// List implements EmployeeHandler.
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]employeeResponse, 0, len(employees))
	for _, emp := range employees {
		out = append(out, toEmployeeResponse(emp))
	}
	response.Success(w, out)
}

// Get implements EmployeeHandler.
func (h *employeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	telegramID, err := strconv.ParseInt(chi.URLParam(r, "telegramID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid telegram ID", nil)
		return
	}

	emp, err := h.employeeService.Get(r.Context(), telegramID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, toEmployeeResponse(emp))
}

// Deactivate implements EmployeeHandler.
func (h *employeeHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	telegramID, err := strconv.ParseInt(chi.URLParam(r, "telegramID"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid telegram ID", nil)
		return
	}

	if err := h.employeeService.Deactivate(r.Context(), telegramID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee deactivated", nil)
}
