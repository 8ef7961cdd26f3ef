package status

import (
	"context"
	"time"

	"github.com/qadam-hq/checkin-backend-go/internal/domain/employee"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/timeutil"
)

// StatusResponse is the API shape of one derived status.
type StatusResponse struct {
	EmployeeID int64  `json:"employee_id"`
	FullName   string `json:"full_name"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	Label      string `json:"label"`
}

type Service interface {
	// GetStatus derives the composite status for one employee on one date.
	GetStatus(ctx context.Context, employeeID int64, date time.Time) (StatusResponse, error)
}

type ServiceImpl struct {
	loader       *Loader
	employeeRepo employee.EmployeeRepository
}

func NewService(loader *Loader, employeeRepo employee.EmployeeRepository) Service {
	return &ServiceImpl{loader: loader, employeeRepo: employeeRepo}
}

// GetStatus implements Service.
func (s *ServiceImpl) GetStatus(ctx context.Context, employeeID int64, date time.Time) (StatusResponse, error) {
	emp, err := s.employeeRepo.GetByTelegramID(ctx, employeeID, false)
	if err != nil {
		return StatusResponse{}, err
	}

	fs, err := s.loader.Load(ctx, date, date)
	if err != nil {
		return StatusResponse{}, err
	}

	composite := fs.Derive(employeeID, date)

	return StatusResponse{
		EmployeeID: emp.TelegramID,
		FullName:   emp.FullName,
		Date:       timeutil.FormatDate(date),
		Status:     string(composite.Kind),
		Label:      composite.Label(),
	}, nil
}
