package employee

import (
	"context"
	"io"
)

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Me(ctx context.Context) (EmployeeResponse, error)
	List(ctx context.Context, filter ListFilter) (ListResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	UploadProfileImage(ctx context.Context, id string, filename string, file io.Reader) (string, error)
}
