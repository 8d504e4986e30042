package handler_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLoginPage(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doGet(r, "/", false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Log in")
}

func TestLogin(t *testing.T) {
	r, mock, _ := newTestServer(t)

	mock.ExpectQuery(`SELECT user_id, username, password_hash FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "username", "password_hash"}).
			AddRow(int64(1), "alice", hashPassword(t, "opensesame1")))
	mock.ExpectExec(`INSERT INTO sessions`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := doPost(r, "/", url.Values{"username": {"alice"}, "password": {"opensesame1"}}, false)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/roster/", w.Header().Get("Location"))

	cookies := strings.Join(w.Header().Values("Set-Cookie"), "; ")
	assert.Contains(t, cookies, testCookie+"=")
	assert.Contains(t, cookies, "roster_flash")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_BadCredentials(t *testing.T) {
	r, mock, _ := newTestServer(t)

	mock.ExpectQuery(`SELECT user_id, username, password_hash FROM users WHERE username = \$1`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "username", "password_hash"}).
			AddRow(int64(1), "alice", hashPassword(t, "opensesame1")))

	w := doPost(r, "/", url.Values{"username": {"alice"}, "password": {"wrong"}}, false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "There was an error while logging in.")
	assert.NotContains(t, strings.Join(w.Header().Values("Set-Cookie"), ";"), testCookie+"=")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLogout(t *testing.T) {
	r, mock, _ := newTestServer(t)

	mock.ExpectExec(`DELETE FROM sessions WHERE token = \$1`).
		WithArgs(testToken).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := doGet(r, "/logout/", true)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChangePasswordPage(t *testing.T) {
	r, mock, _ := newTestServer(t)

	expectSession(mock)

	w := doGet(r, "/change-password/", true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Change password")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChangePassword(t *testing.T) {
	r, mock, _ := newTestServer(t)

	expectSession(mock)
	mock.ExpectQuery(`SELECT user_id, username, password_hash FROM users WHERE user_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "username", "password_hash"}).
			AddRow(int64(1), "alice", hashPassword(t, "oldpassword")))
	mock.ExpectExec(`UPDATE users SET password_hash = \$1 WHERE user_id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM sessions WHERE token = \$1`).
		WithArgs(testToken).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO sessions`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	form := url.Values{
		"old_password":  {"oldpassword"},
		"new_password1": {"newpassword1"},
		"new_password2": {"newpassword1"},
	}
	w := doPost(r, "/change-password/", form, true)

	// The session is re-bound: redirect carries a fresh session cookie.
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/roster/", w.Header().Get("Location"))
	assert.Contains(t, strings.Join(w.Header().Values("Set-Cookie"), "; "), testCookie+"=")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChangePassword_FieldErrors(t *testing.T) {
	r, mock, _ := newTestServer(t)

	expectSession(mock)
	mock.ExpectQuery(`SELECT user_id, username, password_hash FROM users WHERE user_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "username", "password_hash"}).
			AddRow(int64(1), "alice", hashPassword(t, "oldpassword")))

	form := url.Values{
		"old_password":  {"oldpassword"},
		"new_password1": {"newpassword1"},
		"new_password2": {"different1"},
	}
	w := doPost(r, "/change-password/", form, true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Please correct the error below.")
	assert.Contains(t, w.Body.String(), "didn&#39;t match")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChangePassword_Unauthenticated(t *testing.T) {
	r, _, _ := newTestServer(t)

	w := doPost(r, "/change-password/", url.Values{}, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
