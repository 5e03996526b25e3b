package attendance

import (
	"context"
	"io"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/pagination"
)

type AttendanceService interface {
	Create(ctx context.Context, req CreateAttendanceRequest) (AttendanceResponse, error)
	FindAll(ctx context.Context, req ListAttendanceRequest) (pagination.Page[AttendanceResponse], error)
	FindByID(ctx context.Context, id string) (AttendanceResponse, error)
	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
	SoftDelete(ctx context.Context, id string) error
	Search(ctx context.Context, req SearchAttendanceRequest) (pagination.Page[AttendanceResponse], error)
	Import(ctx context.Context, file io.Reader) (ImportResult, error)
	Export(ctx context.Context, req SearchAttendanceRequest) ([]byte, error)
	Statistics(ctx context.Context, req StatisticsRequest) (StatisticsResponse, error)
}
