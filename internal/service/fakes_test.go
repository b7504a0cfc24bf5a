package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/noah-isme/el-timetable/internal/models"
)

type fakeTeacherRepo struct {
	items   map[string]*models.Teacher
	seq     int
	deleted []string
}

func newFakeTeacherRepo(teachers ...models.Teacher) *fakeTeacherRepo {
	r := &fakeTeacherRepo{items: make(map[string]*models.Teacher)}
	for i := range teachers {
		t := teachers[i]
		r.items[t.ID] = &t
	}
	return r
}

func (r *fakeTeacherRepo) List(ctx context.Context) ([]models.Teacher, error) {
	out := make([]models.Teacher, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeTeacherRepo) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	if t, ok := r.items[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeTeacherRepo) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	for id, t := range r.items {
		if t.Name == name && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	r.seq++
	if teacher.ID == "" {
		teacher.ID = fmt.Sprintf("teacher-%d", r.seq)
	}
	cp := *teacher
	r.items[teacher.ID] = &cp
	return nil
}

func (r *fakeTeacherRepo) Update(ctx context.Context, teacher *models.Teacher) error {
	cp := *teacher
	r.items[teacher.ID] = &cp
	return nil
}

func (r *fakeTeacherRepo) Delete(ctx context.Context, id string) error {
	delete(r.items, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeTeacherRepo) Search(ctx context.Context, term string, limit int) ([]models.Lookup, error) {
	var out []models.Lookup
	for _, t := range r.items {
		if strings.Contains(strings.ToLower(t.Name), strings.ToLower(term)) {
			out = append(out, models.Lookup{ID: t.ID, Name: t.Name})
		}
	}
	return out, nil
}

type fakeStudentRepo struct {
	items       map[string]*models.Student
	subjects    map[string][]string
	enrollments []models.Enrollment
}

func newFakeStudentRepo(students ...models.Student) *fakeStudentRepo {
	r := &fakeStudentRepo{items: make(map[string]*models.Student), subjects: make(map[string][]string)}
	for i := range students {
		s := students[i]
		r.items[s.ID] = &s
	}
	return r
}

func (r *fakeStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	out := make([]models.Student, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeStudentRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if s, ok := r.items[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeStudentRepo) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	for id, s := range r.items {
		if s.Name == name && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeStudentRepo) Create(ctx context.Context, student *models.Student, subjectIDs []string) error {
	if student.ID == "" {
		student.ID = "student-new"
	}
	cp := *student
	r.items[student.ID] = &cp
	r.subjects[student.ID] = subjectIDs
	return nil
}

func (r *fakeStudentRepo) Update(ctx context.Context, student *models.Student, subjectIDs []string) error {
	cp := *student
	r.items[student.ID] = &cp
	r.subjects[student.ID] = subjectIDs
	return nil
}

func (r *fakeStudentRepo) Delete(ctx context.Context, id string) error {
	delete(r.items, id)
	delete(r.subjects, id)
	return nil
}

func (r *fakeStudentRepo) SubjectIDs(ctx context.Context, studentID string) ([]string, error) {
	return r.subjects[studentID], nil
}

func (r *fakeStudentRepo) ListEnrollments(ctx context.Context) ([]models.Enrollment, error) {
	return r.enrollments, nil
}

func (r *fakeStudentRepo) Search(ctx context.Context, term string, limit int) ([]models.Lookup, error) {
	return []models.Lookup{}, nil
}

type fakeSubjectRepo struct {
	items     map[string]*models.Subject
	byStudent map[string][]models.Subject
}

func newFakeSubjectRepo(subjects ...models.Subject) *fakeSubjectRepo {
	r := &fakeSubjectRepo{items: make(map[string]*models.Subject), byStudent: make(map[string][]models.Subject)}
	for i := range subjects {
		s := subjects[i]
		r.items[s.ID] = &s
	}
	return r
}

func (r *fakeSubjectRepo) List(ctx context.Context) ([]models.Subject, error) {
	out := make([]models.Subject, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeSubjectRepo) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	if s, ok := r.items[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeSubjectRepo) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	for id, s := range r.items {
		if s.Name == name && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSubjectRepo) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = "subject-new"
	}
	cp := *subject
	r.items[subject.ID] = &cp
	return nil
}

func (r *fakeSubjectRepo) Update(ctx context.Context, subject *models.Subject) error {
	cp := *subject
	r.items[subject.ID] = &cp
	return nil
}

func (r *fakeSubjectRepo) Delete(ctx context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *fakeSubjectRepo) ListByStudent(ctx context.Context) (map[string][]models.Subject, error) {
	return r.byStudent, nil
}

func (r *fakeSubjectRepo) Search(ctx context.Context, term string, limit int) ([]models.Lookup, error) {
	return []models.Lookup{}, nil
}

type fakeSessionRepo struct {
	items    map[string]*models.ClassSession
	views    []models.SessionView
	lastFrom models.DateRange
	created  int
}

func newFakeSessionRepo(views ...models.SessionView) *fakeSessionRepo {
	r := &fakeSessionRepo{items: make(map[string]*models.ClassSession), views: views}
	for i := range views {
		cs := views[i].ClassSession
		r.items[cs.ID] = &cs
	}
	return r
}

func (r *fakeSessionRepo) FindByID(ctx context.Context, id string) (*models.ClassSession, error) {
	if s, ok := r.items[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeSessionRepo) ListInRange(ctx context.Context, rng models.DateRange) ([]models.SessionView, error) {
	r.lastFrom = rng
	var out []models.SessionView
	for _, v := range r.views {
		if v.SessionDate >= rng.From && v.SessionDate < rng.To {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) ListByTeacherInRange(ctx context.Context, teacherID string, rng models.DateRange) ([]models.SessionView, error) {
	all, _ := r.ListInRange(ctx, rng)
	var out []models.SessionView
	for _, v := range all {
		if v.TeacherID == teacherID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *models.ClassSession) error {
	r.created++
	if session.ID == "" {
		session.ID = "session-new"
	}
	cp := *session
	r.items[session.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *models.ClassSession) error {
	cp := *session
	r.items[session.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type fakePaymentRepo struct {
	items map[string]*models.Payment
	sums  map[models.MembershipKey]float64
	views []models.PaymentView
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{items: make(map[string]*models.Payment), sums: make(map[models.MembershipKey]float64)}
}

func (r *fakePaymentRepo) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	if p, ok := r.items[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakePaymentRepo) ListInRange(ctx context.Context, rng models.DateRange) ([]models.PaymentView, error) {
	var out []models.PaymentView
	for _, v := range r.views {
		if v.PaymentDate >= rng.From && v.PaymentDate < rng.To {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) SumByMembership(ctx context.Context) (map[models.MembershipKey]float64, error) {
	return r.sums, nil
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = "payment-new"
	}
	cp := *payment
	r.items[payment.ID] = &cp
	r.sums[models.MembershipKey{StudentID: payment.StudentID, SubjectID: payment.SubjectID}] += payment.Amount
	return nil
}

func (r *fakePaymentRepo) Delete(ctx context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type fakeAttendanceRepo struct {
	items map[string]*models.Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{items: make(map[string]*models.Attendance)}
}

func (r *fakeAttendanceRepo) FindByID(ctx context.Context, id string) (*models.Attendance, error) {
	if a, ok := r.items[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeAttendanceRepo) ListInRange(ctx context.Context, rng models.DateRange) ([]models.AttendanceView, error) {
	return nil, nil
}

func (r *fakeAttendanceRepo) Create(ctx context.Context, attendance *models.Attendance) error {
	if attendance.ID == "" {
		attendance.ID = "attendance-new"
	}
	cp := *attendance
	r.items[attendance.ID] = &cp
	return nil
}

func (r *fakeAttendanceRepo) Update(ctx context.Context, attendance *models.Attendance) error {
	cp := *attendance
	r.items[attendance.ID] = &cp
	return nil
}

func (r *fakeAttendanceRepo) Delete(ctx context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type fakeLogRepo struct {
	mu      sync.Mutex
	entries []models.LogEntry
	err     error
}

func (r *fakeLogRepo) Create(ctx context.Context, entry *models.LogEntry) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeLogRepo) ListRecent(ctx context.Context, limit int) ([]models.LogEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	if len(r.entries) > limit {
		return r.entries[:limit], nil
	}
	return r.entries, nil
}

type recordedAudit struct {
	Action  string
	Details string
}

type recordingAuditor struct {
	records []recordedAudit
}

func (a *recordingAuditor) Record(ctx context.Context, action, details string) {
	a.records = append(a.records, recordedAudit{Action: action, Details: details})
}

func (a *recordingAuditor) actions() []string {
	out := make([]string, 0, len(a.records))
	for _, r := range a.records {
		out = append(out, r.Action)
	}
	return out
}

var errBoom = errors.New("boom")

func strPtr(s string) *string { return &s }

// sessionView builds a joined session row for aggregation-backed tests.
func sessionView(id, teacherID, teacherName, studentID, studentName, subjectName, date, start, end string) models.SessionView {
	return models.SessionView{
		ClassSession: models.ClassSession{
			ID:          id,
			TeacherID:   teacherID,
			StudentID:   studentID,
			SubjectID:   "subject-" + strings.ToLower(subjectName),
			SessionDate: date,
			StartTime:   start,
			EndTime:     end,
		},
		TeacherName: teacherName,
		StudentName: studentName,
		SubjectName: subjectName,
	}
}
