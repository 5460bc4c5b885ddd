package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/agile-academy/academy_api/dto"
	"github.com/agile-academy/academy_api/model"
	"github.com/agile-academy/academy_api/services/repositories"
)

func TestRegisterDuplicateConflicts(t *testing.T) {
	db := practiceDB(t)
	svc := &AuthService{userRepo: repositories.NewUserRepository(db)}

	req := dto.RegisterRequest{
		Email:    "ana@example.com",
		Username: "anasm",
		Password: "SecurePass123!",
	}
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	require.Error(t, err)
	assert.Equal(t, 409, statusOf(t, err))

	req.Email = "otra@example.com"
	_, err = svc.Register(req)
	require.Error(t, err)
	assert.Equal(t, 409, statusOf(t, err))
}

// Two racing registrations can both pass the existence pre-checks; the
// unique index then rejects the loser and that error must map to a
// conflict, not an internal error.
func TestRegisterDuplicateKeyIsConflict(t *testing.T) {
	db := practiceDB(t)
	repo := repositories.NewUserRepository(db)

	_, err := repo.CreateUser(&model.User{Email: "ana@example.com", Username: "anasm", Password: "x"})
	require.NoError(t, err)

	_, err = repo.CreateUser(&model.User{Email: "ana@example.com", Username: "anasm2", Password: "x"})
	require.Error(t, err)
	assert.True(t, isDuplicateKey(err))

	assert.True(t, isDuplicateKey(gorm.ErrDuplicatedKey))
	assert.False(t, isDuplicateKey(gorm.ErrRecordNotFound))
}
