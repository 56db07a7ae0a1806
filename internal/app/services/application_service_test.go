package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okaradag/unipath/internal/app/models"
	"github.com/okaradag/unipath/internal/app/models/dto"
	"github.com/okaradag/unipath/internal/pkg/apperrors"
)

type fakeApplicationStore struct {
	apps   map[int64]*models.Application
	nextID int64
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{apps: map[int64]*models.Application{}, nextID: 1}
}

func (f *fakeApplicationStore) Create(_ context.Context, app *models.Application) (int64, error) {
	for _, a := range f.apps {
		if a.StudentID == app.StudentID && a.ProgramID == app.ProgramID {
			return 0, apperrors.ErrAlreadyApplied
		}
	}
	id := f.nextID
	f.nextID++
	stored := *app
	stored.ID = id
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	stored.Program = &models.Program{ID: app.ProgramID, University: &models.University{ID: 1}}
	f.apps[id] = &stored
	return id, nil
}

func (f *fakeApplicationStore) GetByID(_ context.Context, id int64) (*models.Application, error) {
	a, ok := f.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	return a, nil
}

func (f *fakeApplicationStore) ListByStudentID(_ context.Context, studentID int64) ([]*models.Application, error) {
	var out []*models.Application
	for _, a := range f.apps {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplicationStore) UpdateStatus(_ context.Context, id int64, status models.ApplicationStatus) error {
	a, ok := f.apps[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	a.Status = status
	return nil
}

type fakeStudentGetter struct {
	students map[int64]*models.Student
}

func (f *fakeStudentGetter) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	s, ok := f.students[userID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return s, nil
}

func newTestApplicationService() (*ApplicationService, *fakeApplicationStore, *fakeStudentGetter) {
	apps := newFakeApplicationStore()
	students := &fakeStudentGetter{students: map[int64]*models.Student{
		1: {ID: 10, UserID: 1, CompletionStatus: models.CompletionComplete},
		2: {ID: 20, UserID: 2, CompletionStatus: models.CompletionPartial},
	}}
	return NewApplicationService(apps, students), apps, students
}

func TestCreateApplicationRequiresCompleteProfile(t *testing.T) {
	svc, _, _ := newTestApplicationService()

	_, err := svc.Create(context.Background(), 2, dto.CreateApplicationRequest{ProgramID: 5})
	if !errors.Is(err, apperrors.ErrProfileIncomplete) {
		t.Fatalf("err = %v, want ErrProfileIncomplete", err)
	}

	resp, err := svc.Create(context.Background(), 1, dto.CreateApplicationRequest{ProgramID: 5})
	if err != nil {
		t.Fatalf("Create with complete profile: %v", err)
	}
	if resp.Status != string(models.ApplicationSubmitted) {
		t.Errorf("Status = %q, want submitted", resp.Status)
	}
}

func TestCreateApplicationDuplicate(t *testing.T) {
	svc, _, _ := newTestApplicationService()

	if _, err := svc.Create(context.Background(), 1, dto.CreateApplicationRequest{ProgramID: 5}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), 1, dto.CreateApplicationRequest{ProgramID: 5}); !errors.Is(err, apperrors.ErrAlreadyApplied) {
		t.Errorf("err = %v, want ErrAlreadyApplied", err)
	}
}

func TestApplicationOwnership(t *testing.T) {
	svc, apps, students := newTestApplicationService()
	students.students[2].CompletionStatus = models.CompletionComplete

	created, err := svc.Create(context.Background(), 1, dto.CreateApplicationRequest{ProgramID: 5})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(context.Background(), 2, created.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("Get by other student: err = %v, want ErrPermissionDenied", err)
	}
	if err := svc.Withdraw(context.Background(), 2, created.ID); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("Withdraw by other student: err = %v, want ErrPermissionDenied", err)
	}

	if err := svc.Withdraw(context.Background(), 1, created.ID); err != nil {
		t.Fatalf("Withdraw by owner: %v", err)
	}
	if apps.apps[created.ID].Status != models.ApplicationWithdrawn {
		t.Errorf("Status = %q, want withdrawn", apps.apps[created.ID].Status)
	}
}

func TestWithdrawTwiceIsIdempotent(t *testing.T) {
	svc, _, _ := newTestApplicationService()
	created, err := svc.Create(context.Background(), 1, dto.CreateApplicationRequest{ProgramID: 5})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Withdraw(context.Background(), 1, created.ID); err != nil {
		t.Fatalf("first Withdraw: %v", err)
	}
	if err := svc.Withdraw(context.Background(), 1, created.ID); err != nil {
		t.Errorf("second Withdraw: %v", err)
	}
}
