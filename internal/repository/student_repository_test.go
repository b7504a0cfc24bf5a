package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/el-timetable/internal/models"
)

func TestStudentRepositoryCreateWithSubjects(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO students").
		WithArgs(sqlmock.AnyArg(), "Ana", 25.0, nil, nil, nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO student_subjects (student_id, subject_id, created_at) VALUES (?, ?, ?)")).
		WithArgs(sqlmock.AnyArg(), "math", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO student_subjects")).
		WithArgs(sqlmock.AnyArg(), "art", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	student := &models.Student{Name: "Ana", RatePerClass: 25}
	require.NoError(t, repo.Create(context.Background(), student, []string{"math", "art"}))
	assert.NotEmpty(t, student.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateReplacesSubjects(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE students SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM student_subjects WHERE student_id = ?")).
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO student_subjects").
		WithArgs("s1", "math", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), &models.Student{ID: "s1", Name: "Ana"}, []string{"math"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDeleteCascades(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM attendance").WithArgs("s1", "s1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM class_sessions").WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM payments").WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM student_subjects").WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM students").WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), "s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListEnrollments(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{"student_id", "student_name", "subject_id", "subject_name", "price"}).
		AddRow("s1", "Ana", "math", "Math", 200.0)
	mock.ExpectQuery("FROM student_subjects ss").WillReturnRows(rows)

	enrollments, err := repo.ListEnrollments(context.Background())
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	assert.Equal(t, models.MembershipKey{StudentID: "s1", SubjectID: "math"}, enrollments[0].Key())
	assert.Equal(t, 200.0, enrollments[0].Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}
