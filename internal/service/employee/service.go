package employee

import (
	"context"
	"fmt"
	"math"
	"mime/multipart"
	"time"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/employee"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/validator"
	"github.com/staffdesk/staffdesk-backend-go/internal/service/file"
)

type employeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	fileService  file.FileService
}

func NewEmployeeService(employeeRepository employee.EmployeeRepository, fileService file.FileService) employee.EmployeeService {
	return &employeeServiceImpl{
		employeeRepo: employeeRepository,
		fileService:  fileService,
	}
}

// Create implements employee.EmployeeService.
func (s *employeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hireDate, _ := time.Parse("2006-01-02", req.HireDate)

	newEmployee := employee.Employee{
		EmployeeCode: req.EmployeeCode,
		Name:         req.Name,
		Position:     req.Position,
		Department:   req.Department,
		Address:      req.Address,
		Email:        req.Email,
		Salary:       req.Salary,
		SSS:          req.SSS,
		PagIbig:      req.PagIbig,
		PhilHealth:   req.PhilHealth,
		HireDate:     hireDate,
	}

	// Photo first so the row never references a file that failed to land.
	var photoPath *string
	if req.Photo != nil {
		path, err := s.fileService.UploadEmployeePhoto(ctx, req.EmployeeCode, req.Photo, req.PhotoHeader.Filename)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("upload photo: %w", err)
		}
		photoPath = &path
	}
	newEmployee.PhotoPath = photoPath

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		if photoPath != nil {
			if delErr := s.fileService.DeleteFile(ctx, *photoPath); delErr != nil {
				return employee.EmployeeResponse{}, fmt.Errorf("create employee: %w (photo cleanup: %v)", err, delErr)
			}
		}
		return employee.EmployeeResponse{}, err
	}

	return s.toResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *employeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	found, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.toResponse(found), nil
}

// List implements employee.EmployeeService.
func (s *employeeServiceImpl) List(ctx context.Context, filter employee.ListFilter) (employee.ListEmployeesResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	employees, totalCount, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeesResponse{}, err
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, s.toResponse(emp))
	}

	return employee.ListEmployeesResponse{
		Employees:  responses,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(filter.Limit))),
	}, nil
}

// Update implements employee.EmployeeService.
func (s *employeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.Update(ctx, req)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.toResponse(updated), nil
}

// UpdatePhoto implements employee.EmployeeService.
func (s *employeeServiceImpl) UpdatePhoto(ctx context.Context, id string, photo multipart.File, header *multipart.FileHeader) (employee.EmployeeResponse, error) {
	var errs validator.ValidationErrors
	if header == nil {
		errs = append(errs, validator.ValidationError{Field: "photo", Message: "photo is required"})
	} else {
		if header.Size > employee.MaxPhotoSizeBytes {
			errs = append(errs, validator.ValidationError{Field: "photo", Message: "photo must not exceed 2MB"})
		}
		if !validator.IsInSlice(header.Header.Get("Content-Type"), employee.AllowedPhotoTypes) {
			errs = append(errs, validator.ValidationError{Field: "photo", Message: "photo must be a jpeg, png or gif image"})
		}
	}
	if len(errs) > 0 {
		return employee.EmployeeResponse{}, errs
	}

	current, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	newPath, err := s.fileService.UploadEmployeePhoto(ctx, current.EmployeeCode, photo, header.Filename)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("upload photo: %w", err)
	}

	if err := s.employeeRepo.UpdatePhoto(ctx, id, &newPath); err != nil {
		if delErr := s.fileService.DeleteFile(ctx, newPath); delErr != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("update photo: %w (cleanup: %v)", err, delErr)
		}
		return employee.EmployeeResponse{}, err
	}

	// Old asset goes only after the new one is referenced.
	if current.PhotoPath != nil {
		_ = s.fileService.DeleteFile(ctx, *current.PhotoPath)
	}

	current.PhotoPath = &newPath
	return s.toResponse(current), nil
}

// Delete implements employee.EmployeeService.
func (s *employeeServiceImpl) Delete(ctx context.Context, id string) error {
	current, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	if current.PhotoPath != nil {
		_ = s.fileService.DeleteFile(ctx, *current.PhotoPath)
	}

	return nil
}

// Counts implements employee.EmployeeService.
func (s *employeeServiceImpl) Counts(ctx context.Context) (employee.DepartmentCountsResponse, error) {
	total, departments, err := s.employeeRepo.CountByDepartment(ctx)
	if err != nil {
		return employee.DepartmentCountsResponse{}, err
	}

	return employee.DepartmentCountsResponse{
		Total:       total,
		Departments: departments,
	}, nil
}

func (s *employeeServiceImpl) toResponse(emp employee.Employee) employee.EmployeeResponse {
	var photoURL *string
	if emp.PhotoPath != nil {
		url := s.fileService.FileURL(*emp.PhotoPath)
		photoURL = &url
	}

	return employee.EmployeeResponse{
		ID:           emp.ID,
		EmployeeCode: emp.EmployeeCode,
		Name:         emp.Name,
		Position:     emp.Position,
		Department:   emp.Department,
		Address:      emp.Address,
		Email:        emp.Email,
		Salary:       emp.Salary,
		SSS:          emp.SSS,
		PagIbig:      emp.PagIbig,
		PhilHealth:   emp.PhilHealth,
		HireDate:     emp.HireDate.Format("2006-01-02"),
		PhotoURL:     photoURL,
	}
}
