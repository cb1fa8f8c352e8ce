package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/payroll-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() leave.LeaveService {
	employees := servicetest.NewEmployees(employee.Employee{
		ID:            "emp-1",
		EmployeeCode:  "E001",
		DateOfJoining: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
	})
	return NewLeaveService(servicetest.NewLeaveTypes(), servicetest.NewLeaves(), employees)
}

func TestLeaveService_RequestAndApprove(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	lt, err := svc.CreateType(ctx, leave.CreateLeaveTypeRequest{Name: "Sick"})
	require.NoError(t, err)

	requested, err := svc.Request(ctx, leave.CreateLeaveRequest{EmployeeID: "emp-1", Date: "2024-06-05", LeaveTypeID: lt.ID})
	require.NoError(t, err)
	assert.False(t, requested.Approved)
	assert.Equal(t, "2024-06-05", requested.Date)

	approved, err := svc.Approve(ctx, requested.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	_, err = svc.Approve(ctx, requested.ID)
	assert.True(t, errors.Is(err, leave.ErrLeaveAlreadyApproved))
}

func TestLeaveService_Request_Errors(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	lt, err := svc.CreateType(ctx, leave.CreateLeaveTypeRequest{Name: "Annual"})
	require.NoError(t, err)

	_, err = svc.Request(ctx, leave.CreateLeaveRequest{EmployeeID: "emp-1", Date: "2024-06-05", LeaveTypeID: lt.ID})
	require.NoError(t, err)

	_, err = svc.Request(ctx, leave.CreateLeaveRequest{EmployeeID: "emp-1", Date: "2024-06-05", LeaveTypeID: lt.ID})
	assert.True(t, errors.Is(err, leave.ErrLeaveAlreadyExists))

	_, err = svc.Request(ctx, leave.CreateLeaveRequest{EmployeeID: "ghost", Date: "2024-06-06", LeaveTypeID: lt.ID})
	assert.True(t, errors.Is(err, employee.ErrEmployeeNotFound))

	_, err = svc.Request(ctx, leave.CreateLeaveRequest{EmployeeID: "emp-1", Date: "2024-06-06", LeaveTypeID: "nope"})
	assert.True(t, errors.Is(err, leave.ErrLeaveTypeNotFound))

	_, err = svc.Request(ctx, leave.CreateLeaveRequest{EmployeeID: "emp-1", Date: "06/06/2024"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)

	_, err = svc.Approve(ctx, "missing")
	assert.True(t, errors.Is(err, leave.ErrLeaveNotFound))
}

func TestLeaveService_Types(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.CreateType(ctx, leave.CreateLeaveTypeRequest{Name: "Sick"})
	require.NoError(t, err)
	_, err = svc.CreateType(ctx, leave.CreateLeaveTypeRequest{Name: "Sick"})
	assert.True(t, errors.Is(err, leave.ErrLeaveTypeNameExists))
	_, err = svc.CreateType(ctx, leave.CreateLeaveTypeRequest{Name: "  "})
	assert.Error(t, err)

	types, err := svc.ListTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 1)
}
