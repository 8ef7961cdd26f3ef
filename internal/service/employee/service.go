package employee

import (
	"context"

	"github.com/qadam-hq/checkin-backend-go/internal/domain/employee"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/validator"
)

// RegisterRequest enrolls or renames an employee. Registering a Telegram ID
// that was deactivated brings it back with history intact.
type RegisterRequest struct {
	TelegramID int64  `json:"telegram_id"`
	FullName   string `json:"full_name"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidChatID(r.TelegramID) {
		errs = append(errs, validator.ValidationError{
			Field:   "telegram_id",
			Message: "telegram_id must be a positive integer",
		})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (employee.Employee, error)
	Get(ctx context.Context, telegramID int64) (employee.Employee, error)
	List(ctx context.Context) ([]employee.Employee, error)
	Deactivate(ctx context.Context, telegramID int64) error
}

type ServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewService(employeeRepo employee.EmployeeRepository) Service {
	return &ServiceImpl{employeeRepo: employeeRepo}
}

func (s *ServiceImpl) Register(ctx context.Context, req RegisterRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}
	return s.employeeRepo.Upsert(ctx, employee.Employee{
		TelegramID: req.TelegramID,
		FullName:   req.FullName,
	})
}

func (s *ServiceImpl) Get(ctx context.Context, telegramID int64) (employee.Employee, error) {
	return s.employeeRepo.GetByTelegramID(ctx, telegramID, true)
}

func (s *ServiceImpl) List(ctx context.Context) ([]employee.Employee, error) {
	return s.employeeRepo.ListActive(ctx)
}

func (s *ServiceImpl) Deactivate(ctx context.Context, telegramID int64) error {
	return s.employeeRepo.SetActive(ctx, telegramID, false)
}
