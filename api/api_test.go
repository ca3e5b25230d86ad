package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"hoaxify/hoax-api/db"
	"hoaxify/hoax-api/model"
	"hoaxify/hoax-api/security"
	"hoaxify/hoax-api/service"
	"hoaxify/hoax-api/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter atomic.Int64

// stubMailer records dispatched mails instead of talking to an SMTP relay
type stubMailer struct {
	activationTo    []string
	activationToken string
	resetTo         []string
	resetToken      string
	failWith        error
}

func (m *stubMailer) SendAccountActivation(to, token string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.activationTo = append(m.activationTo, to)
	m.activationToken = token
	return nil
}

func (m *stubMailer) SendPasswordReset(to, token string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.resetTo = append(m.resetTo, to)
	m.resetToken = token
	return nil
}

func newTestAPI(t *testing.T) (*API, *stubMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:apitest%d?mode=memory&cache=shared", dbCounter.Add(1))
	d, err := gorm.Open(sqlite.Open(dsn))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(d))

	files, err := storage.NewLocalStore(t.TempDir(), "profile", "attachment")
	require.NoError(t, err)

	mailer := &stubMailer{}

	a := &API{
		DB:     d,
		Argon:  security.New(),
		Files:  files,
		Mailer: mailer,
	}
	a.Mount()

	return a, mailer
}

// createUser inserts an active user directly and returns it
func createUser(t *testing.T, a *API, username, email, password string) *model.User {
	t.Helper()

	hash, err := a.Argon.GenerateFromPassword(password)
	require.NoError(t, err)

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Inactive:     false,
	}
	require.NoError(t, a.DB.Create(user).Error)

	return user
}

func loginToken(t *testing.T, a *API, userID uint) string {
	t.Helper()

	token, err := service.CreateToken(a.DB, userID)
	require.NoError(t, err)

	return token
}

type reqOpts struct {
	token string
}

func doJSON(t *testing.T, a *API, method, path string, body any, opts ...reqOpts) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, o := range opts {
		if o.token != "" {
			req.Header.Set("Authorization", "Bearer "+o.token)
		}
	}

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	return w
}

func doMultipart(t *testing.T, a *API, path string, field, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

// Minimal file signatures, enough for content sniffing
var (
	pngBytes  = append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 64)...)
	jpegBytes = append([]byte{0xff, 0xd8, 0xff, 0xe0}, make([]byte, 64)...)
	txtBytes  = []byte("this is clearly just some plain text content")
)

var errSMTPDown = errors.New("smtp relay unreachable")
