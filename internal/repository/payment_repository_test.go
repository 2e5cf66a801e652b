package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/edulane/enrollment-api/internal/models"
)

func TestPaymentRepositoryCreateWithPlanSingleTx(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO payments").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectQuery("INSERT INTO installment_plans").
		WithArgs(int64(7), decimal.RequireFromString("500.00"), decimal.RequireFromString("500.00"), models.InstallmentStatusPending, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectCommit()

	payment := &models.Payment{
		ApplicationID: "A100",
		FullName:      "Jane Smith",
		Email:         "jane@example.com",
		CourseID:      "C1",
		CourseName:    "Data Science",
		Fee:           decimal.RequireFromString("1000.00"),
		PaymentMethod: "card",
		PaymentOption: models.OptionPaymentPlan,
	}
	plan := &models.InstallmentPlan{
		FirstInstallment:  decimal.RequireFromString("500.00"),
		SecondInstallment: decimal.RequireFromString("500.00"),
	}
	require.NoError(t, repo.CreateWithPlan(context.Background(), payment, plan))
	require.Equal(t, int64(7), payment.ID)
	require.Equal(t, int64(7), plan.PaymentID)
	require.Equal(t, int64(3), plan.ID)
	require.Equal(t, models.InstallmentStatusPending, plan.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryCreateWithFullPaymentRollsBackOnSubInsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO payments").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))
	mock.ExpectQuery("INSERT INTO full_payments").
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	payment := &models.Payment{
		ApplicationID: "A100",
		Fee:           decimal.RequireFromString("1000.00"),
		PaymentOption: models.OptionFullPayment,
	}
	record := &models.FullPaymentRecord{Amount: decimal.RequireFromString("1000.00")}
	err := repo.CreateWithFullPayment(context.Background(), payment, record)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryExistsForApplication(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM payments WHERE application_id = $1 LIMIT 1")).
		WithArgs("A100").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsForApplication(context.Background(), "A100")
	require.NoError(t, err)
	require.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM payments WHERE application_id = $1 LIMIT 1")).
		WithArgs("A999").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err = repo.ExistsForApplication(context.Background(), "A999")
	require.NoError(t, err)
	require.False(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepositoryListCoursesByApplicant(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	rows := sqlmock.NewRows([]string{"course_id", "course_name"}).
		AddRow("C1", "Data Science").
		AddRow("C2", "Cloud Computing")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT course_id, course_name FROM payments WHERE full_name = $1 ORDER BY course_id ASC")).
		WithArgs("Jane Smith").
		WillReturnRows(rows)

	courses, err := repo.ListCoursesByApplicant(context.Background(), "Jane Smith")
	require.NoError(t, err)
	require.Len(t, courses, 2)
	require.Equal(t, "C1", courses[0].CourseID)
	require.NoError(t, mock.ExpectationsWereMet())
}
