package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rahulpatel51/hostel-management/internal/entity"
	"github.com/rahulpatel51/hostel-management/internal/modules/admin/dto"
	"github.com/rahulpatel51/hostel-management/internal/modules/admin/service"
	userRepo "github.com/rahulpatel51/hostel-management/internal/modules/user/repository"
	"github.com/rahulpatel51/hostel-management/pkg/apperror"
)

// fakeUserRepo mirrors the transactional contract of the real repository:
// a student and its user are created or deleted together, never one-sided.
type fakeUserRepo struct {
	userRepo.UserRepository
	users    map[uuid.UUID]*entity.User
	students map[uuid.UUID]*entity.StudentProfile
	wardens  map[uuid.UUID]*entity.WardenProfile
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    make(map[uuid.UUID]*entity.User),
		students: make(map[uuid.UUID]*entity.StudentProfile),
		wardens:  make(map[uuid.UUID]*entity.WardenProfile),
	}
}

func (f *fakeUserRepo) CreateStudent(_ context.Context, user *entity.User, profile *entity.StudentProfile) error {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return apperror.ErrConflict
		}
	}
	user.ID = uuid.New()
	profile.ID = uuid.New()
	profile.UserID = user.ID
	f.users[user.ID] = user
	f.students[profile.ID] = profile
	return nil
}

func (f *fakeUserRepo) FindStudentByID(_ context.Context, id uuid.UUID) (*entity.StudentProfile, error) {
	profile, ok := f.students[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return profile, nil
}

func (f *fakeUserRepo) FindAllStudents(_ context.Context) ([]*entity.StudentProfile, error) {
	var out []*entity.StudentProfile
	for _, profile := range f.students {
		out = append(out, profile)
	}
	return out, nil
}

func (f *fakeUserRepo) FindStudentsByBlocks(_ context.Context, blocks []string) ([]*entity.StudentProfile, error) {
	var out []*entity.StudentProfile
	for _, profile := range f.students {
		if profile.Room == nil {
			continue
		}
		for _, block := range blocks {
			if profile.Room.Block == block {
				out = append(out, profile)
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) FindWardenByUserID(_ context.Context, userID uuid.UUID) (*entity.WardenProfile, error) {
	warden, ok := f.wardens[userID]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return warden, nil
}

func (f *fakeUserRepo) UpdateStudent(_ context.Context, user *entity.User, profile *entity.StudentProfile) error {
	if user != nil {
		f.users[user.ID] = user
	}
	f.students[profile.ID] = profile
	return nil
}

func (f *fakeUserRepo) DeleteStudent(_ context.Context, id uuid.UUID) error {
	profile, ok := f.students[id]
	if !ok {
		return apperror.ErrNotFound
	}
	delete(f.students, id)
	delete(f.users, profile.UserID)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.ErrNotFound
	}
	user, ok := f.users[parsed]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func studentInput(email string) dto.CreateStudentInput {
	return dto.CreateStudentInput{
		Email:         email,
		Password:      "secret123",
		FullName:      "Ravi Kumar",
		RollNumber:    "21BCS017",
		Course:        "B.Tech CSE",
		Year:          2,
		ContactNumber: "9876543210",
	}
}

func TestCreateStudentMakesLinkedUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAdminService(repo, nil)

	profile, err := svc.CreateStudent(context.Background(), studentInput("ravi@hostel.local"), nil)
	require.NoError(t, err)

	user, ok := repo.users[profile.UserID]
	require.True(t, ok, "student profile must reference a stored user")
	assert.Equal(t, entity.RoleStudent, user.Role)
	assert.True(t, user.Active)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
}

func TestCreateStudentDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAdminService(repo, nil)

	_, err := svc.CreateStudent(context.Background(), studentInput("ravi@hostel.local"), nil)
	require.NoError(t, err)

	_, err = svc.CreateStudent(context.Background(), studentInput("ravi@hostel.local"), nil)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Len(t, repo.users, 1)
	assert.Len(t, repo.students, 1)
}

func TestDeleteStudentRemovesLinkedUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAdminService(repo, nil)

	profile, err := svc.CreateStudent(context.Background(), studentInput("ravi@hostel.local"), nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteStudent(context.Background(), profile.ID))
	assert.Empty(t, repo.students)
	assert.Empty(t, repo.users, "deleting a student must not leave an orphan user")

	err = svc.DeleteStudent(context.Background(), profile.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestSetUserActive(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAdminService(repo, nil)

	profile, err := svc.CreateStudent(context.Background(), studentInput("ravi@hostel.local"), nil)
	require.NoError(t, err)

	require.NoError(t, svc.SetUserActive(context.Background(), profile.UserID.String(), false))
	assert.False(t, repo.users[profile.UserID].Active)

	require.NoError(t, svc.SetUserActive(context.Background(), profile.UserID.String(), true))
	assert.True(t, repo.users[profile.UserID].Active)
}

func TestSetUserActiveProtectsAdmins(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAdminService(repo, nil)

	admin := &entity.User{ID: uuid.New(), Role: entity.RoleAdmin, Active: true}
	repo.users[admin.ID] = admin

	err := svc.SetUserActive(context.Background(), admin.ID.String(), false)
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
	assert.True(t, admin.Active)
}

func TestGetStudentsForWarden(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAdminService(repo, nil)
	ctx := context.Background()

	inA, err := svc.CreateStudent(ctx, studentInput("ravi@hostel.local"), nil)
	require.NoError(t, err)
	inA.Room = &entity.Room{ID: uuid.New(), Block: "A"}

	inB, err := svc.CreateStudent(ctx, studentInput("asha@hostel.local"), nil)
	require.NoError(t, err)
	inB.Room = &entity.Room{ID: uuid.New(), Block: "B"}

	wardenUserID := uuid.New()
	repo.wardens[wardenUserID] = &entity.WardenProfile{
		ID:             uuid.New(),
		UserID:         wardenUserID,
		AssignedBlocks: pq.StringArray{"A"},
	}

	roster, err := svc.GetStudentsForWarden(ctx, wardenUserID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, inA.ID, roster[0].ID)

	_, err = svc.GetStudentsForWarden(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestResetPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := service.NewAdminService(repo, nil)

	profile, err := svc.CreateStudent(context.Background(), studentInput("ravi@hostel.local"), nil)
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(context.Background(), profile.UserID.String(), "newpass456"))
	user := repo.users[profile.UserID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpass456")))
}
