package api

import (
	"net/http"
	"testing"

	"hoaxify/hoax-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordResetRequest(t *testing.T) {
	a, mailer := newTestAPI(t)
	user := createUser(t, a, "user1", "user1@email.com", "P4ssword")

	w := doJSON(t, a, http.MethodPost, "/api/1.0/user/password", map[string]any{
		"email": "user1@email.com",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Check your e-mail for resetting your password", decode(t, w)["message"])

	var saved model.User
	require.NoError(t, a.DB.First(&saved, user.ID).Error)
	require.NotNil(t, saved.PasswordResetToken)
	assert.Len(t, *saved.PasswordResetToken, 16)

	require.Equal(t, []string{"user1@email.com"}, mailer.resetTo)
	assert.Equal(t, *saved.PasswordResetToken, mailer.resetToken)
}

func TestPasswordResetRequestUnknownEmail(t *testing.T) {
	a, _ := newTestAPI(t)

	w := doJSON(t, a, http.MethodPost, "/api/1.0/user/password", map[string]any{
		"email": "nobody@email.com",
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "E-mail not found", decode(t, w)["message"])
}

func TestPasswordResetRequestMailFailure(t *testing.T) {
	a, mailer := newTestAPI(t)
	createUser(t, a, "user1", "user1@email.com", "P4ssword")
	mailer.failWith = errSMTPDown

	w := doJSON(t, a, http.MethodPost, "/api/1.0/user/password", map[string]any{
		"email": "user1@email.com",
	})

	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "E-mail Failure", decode(t, w)["message"])
}

func TestPasswordUpdate(t *testing.T) {
	a, mailer := newTestAPI(t)
	user := createUser(t, a, "user1", "user1@email.com", "P4ssword")

	// A dormant account with open sessions, mid reset
	require.NoError(t, a.DB.Model(user).Update("inactive", true).Error)
	loginToken(t, a, user.ID)

	w := doJSON(t, a, http.MethodPost, "/api/1.0/user/password", map[string]any{
		"email": "user1@email.com",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, a, http.MethodPut, "/api/1.0/user/password", map[string]any{
		"password":           "N3w-password",
		"passwordResetToken": mailer.resetToken,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var saved model.User
	require.NoError(t, a.DB.First(&saved, user.ID).Error)
	assert.Nil(t, saved.PasswordResetToken)
	assert.Nil(t, saved.ActivationToken)
	assert.False(t, saved.Inactive, "reset reactivates a dormant account")

	ok, err := a.Argon.VerifyPasswd("N3w-password", saved.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	var count int64
	require.NoError(t, a.DB.Model(model.Token{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count, "every session must be invalidated")
}

func TestPasswordUpdateInvalidToken(t *testing.T) {
	a, _ := newTestAPI(t)

	w := doJSON(t, a, http.MethodPut, "/api/1.0/user/password", map[string]any{
		"password":           "N3w-password",
		"passwordResetToken": "bogus",
	})

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t,
		"You are not authorized to update your password. Please follow the password reset steps again",
		decode(t, w)["message"])
}

func TestPasswordUpdateWeakPassword(t *testing.T) {
	a, mailer := newTestAPI(t)
	createUser(t, a, "user1", "user1@email.com", "P4ssword")

	w := doJSON(t, a, http.MethodPost, "/api/1.0/user/password", map[string]any{
		"email": "user1@email.com",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, a, http.MethodPut, "/api/1.0/user/password", map[string]any{
		"password":           "weak",
		"passwordResetToken": mailer.resetToken,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := decode(t, w)["validationErrors"].(map[string]any)
	assert.Equal(t, "Password must be at least 6 characters", errs["password"])
}
