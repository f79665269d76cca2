package app

import (
	"bytes"
	"comply/media-api/config"
	"comply/media-api/db/dbtest"
	"comply/media-api/internal"
	"comply/media-api/internal/model"
	"comply/media-api/internal/repository"
	"comply/media-api/internal/service"
	"comply/media-api/internal/storage"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	router *gin.Engine
	root   string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()

	v := viper.New()
	v.Set("jwt.secret", "router-test-secret")
	v.Set("security.rate_limit", 0)
	v.Set("security.bcrypt_cost", 4)
	v.Set("storage.local.path", root)
	v.Set("upload.video.max_size", 2)
	v.Set("upload.presentation.max_size", 1)

	cfg, err := config.Load(v)
	require.NoError(t, err)

	gdb := dbtest.New(t)
	require.NoError(t, service.Seed(context.Background(), repository.NewUserRepository(gdb)))

	store, err := storage.NewLocal(root)
	require.NoError(t, err)

	d, err := internal.NewDeps(cfg, gdb, store)
	require.NoError(t, err)

	return &testAPI{router: NewRouter(d), root: root}
}

func (a *testAPI) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) storedFiles(t *testing.T) []string {
	t.Helper()

	var out []string
	filepath.WalkDir(a.root, func(p string, d os.DirEntry, err error) error {
		require.NoError(t, err)
		if !d.IsDir() {
			out = append(out, p)
		}
		return nil
	})

	return out
}

func jsonRequest(method, path string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func authed(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func (a *testAPI) login(t *testing.T, email, password string) string {
	t.Helper()

	w := a.do(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var sess service.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	require.NotEmpty(t, sess.AccessToken)

	return sess.AccessToken
}

type filePart struct {
	name        string
	contentType string
	data        []byte
}

func multipartRequest(t *testing.T, method, path string, fields map[string]string, file *filePart) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	if file != nil {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, file.name))
		h.Set("Content-Type", file.contentType)

		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body["requestID"])
	return body["error"]
}

func TestHeartbeat(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(httptest.NewRequest(http.MethodHead, "/api/heartbeat", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthFlow(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(jsonRequest(http.MethodPost, "/api/auth/register", map[string]string{
		"email":     "jane@example.com",
		"password":  "password123",
		"firstName": "Jane",
		"lastName":  "Doe",
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotContains(t, w.Body.String(), "password")

	var sess service.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sess))
	require.Equal(t, model.RoleUser, sess.User.Role)

	w = a.do(jsonRequest(http.MethodPost, "/api/auth/register", map[string]string{
		"email":     "jane@example.com",
		"password":  "password123",
		"firstName": "Jane",
		"lastName":  "Doe",
	}))
	require.Equal(t, http.StatusConflict, w.Code)

	token := a.login(t, "jane@example.com", "password123")

	w = a.do(authed(httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil), token))
	require.Equal(t, http.StatusOK, w.Code)

	var profile model.PublicUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	require.Equal(t, sess.User.ID, profile.ID)
	require.NotContains(t, w.Body.String(), "$2a$")

	w = a.do(authed(httptest.NewRequest(http.MethodGet, "/api/validate", nil), token))
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(authed(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), token))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(authed(httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil), token))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	a := newTestAPI(t)

	wrong := a.do(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "user@example.com",
		"password": "not-the-password",
	}))
	unknown := a.do(jsonRequest(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	}))

	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, decodeError(t, wrong), decodeError(t, unknown))
}

func TestVideoUploadAndStream(t *testing.T) {
	a := newTestAPI(t)
	token := a.login(t, "admin@example.com", "admin123")

	data := bytes.Repeat([]byte("frame"), 200_000)

	w := a.do(authed(multipartRequest(t, http.MethodPost, "/api/videos/upload", map[string]string{
		"title":    "Lecture 1",
		"duration": "12:30",
		"type":     "module",
		"moduleId": "m1",
	}, &filePart{name: "lecture.mp4", contentType: "video/mp4", data: data}), token))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var v model.Video
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	require.True(t, strings.HasPrefix(v.FileURL, "/uploads/videos/"))
	require.Equal(t, "lecture.mp4", v.FileName)
	require.Equal(t, int64(len(data)), v.FileSize)
	require.Equal(t, "video/mp4", v.MimeType)
	require.Len(t, a.storedFiles(t), 1)

	w = a.do(authed(httptest.NewRequest(http.MethodGet, "/api/videos?moduleId=m1", nil), token))
	require.Equal(t, http.StatusOK, w.Code)

	var list []model.Video
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, v.ID, list[0].ID)

	w = a.do(authed(httptest.NewRequest(http.MethodGet, "/api/videos/"+v.ID+"/stream", nil), token))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, data, w.Body.Bytes())
	require.Equal(t, "video/mp4", w.Header().Get("Content-Type"))

	req := authed(httptest.NewRequest(http.MethodGet, "/api/videos/"+v.ID+"/stream", nil), token)
	req.Header.Set("Range", "bytes=0-4")
	w = a.do(req)
	require.Equal(t, http.StatusPartialContent, w.Code)
	require.Equal(t, "frame", w.Body.String())

	w = a.do(authed(httptest.NewRequest(http.MethodGet, "/api/videos/missing", nil), token))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestVideoUploadRejectsWrongType(t *testing.T) {
	a := newTestAPI(t)
	token := a.login(t, "admin@example.com", "admin123")

	w := a.do(authed(multipartRequest(t, http.MethodPost, "/api/videos/upload", map[string]string{
		"title":    "Notes",
		"duration": "1:00",
		"type":     "basic",
	}, &filePart{name: "notes.exe", contentType: "application/octet-stream", data: []byte("MZ....")}), token))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, a.storedFiles(t))

	w = a.do(authed(httptest.NewRequest(http.MethodGet, "/api/videos", nil), token))
	require.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestVideoUploadRequiresFile(t *testing.T) {
	a := newTestAPI(t)
	token := a.login(t, "admin@example.com", "admin123")

	w := a.do(authed(multipartRequest(t, http.MethodPost, "/api/videos/upload", map[string]string{
		"title":    "Lecture",
		"duration": "1:00",
		"type":     "basic",
	}, nil), token))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPresentationSizeLimit(t *testing.T) {
	a := newTestAPI(t)
	token := a.login(t, "admin@example.com", "admin123")

	fields := map[string]string{"title": "Deck", "slides": "10", "moduleId": "m1"}

	// Over the body cap, rejected before the handler runs
	w := a.do(authed(multipartRequest(t, http.MethodPost, "/api/ppts/upload", fields,
		&filePart{name: "deck.pptx", contentType: "application/pdf", data: make([]byte, 3<<20)}), token))
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	// Under the body cap but over the presentation limit
	w = a.do(authed(multipartRequest(t, http.MethodPost, "/api/ppts/upload", fields,
		&filePart{name: "deck.pdf", contentType: "application/pdf", data: make([]byte, 3<<19)}), token))
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	require.Empty(t, a.storedFiles(t))
}

func TestPresentationLifecycle(t *testing.T) {
	a := newTestAPI(t)
	token := a.login(t, "admin@example.com", "admin123")

	w := a.do(authed(multipartRequest(t, http.MethodPost, "/api/ppts/upload", map[string]string{
		"title":    "Deck",
		"slides":   "10",
		"moduleId": "m1",
	}, &filePart{name: "Quarterly Deck.pdf", contentType: "application/pdf", data: []byte("%PDF-1.4 deck")}), token))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var p model.Presentation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	require.Equal(t, 10, p.Slides)

	w = a.do(authed(multipartRequest(t, http.MethodPatch, "/api/ppts/"+p.ID, map[string]string{"slides": "12"}, nil), token))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated model.Presentation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, 12, updated.Slides)
	require.Equal(t, p.FileURL, updated.FileURL)

	w = a.do(authed(httptest.NewRequest(http.MethodGet, "/api/ppts/"+p.ID+"/download", nil), token))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	require.Contains(t, w.Header().Get("Content-Disposition"), "Quarterly Deck.pdf")
	body, _ := io.ReadAll(w.Body)
	require.Equal(t, "%PDF-1.4 deck", string(body))

	w = a.do(authed(httptest.NewRequest(http.MethodDelete, "/api/ppts/"+p.ID, nil), token))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(authed(httptest.NewRequest(http.MethodGet, "/api/ppts/"+p.ID, nil), token))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserCannotDelete(t *testing.T) {
	a := newTestAPI(t)
	adminToken := a.login(t, "admin@example.com", "admin123")
	userToken := a.login(t, "user@example.com", "password123")

	w := a.do(authed(multipartRequest(t, http.MethodPost, "/api/videos/upload", map[string]string{
		"title":    "Basics",
		"duration": "3:00",
		"type":     "basic",
	}, &filePart{name: "basics.webm", contentType: "video/webm", data: []byte("webm")}), adminToken))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var v model.Video
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))

	w = a.do(authed(httptest.NewRequest(http.MethodDelete, "/api/videos/"+v.ID, nil), userToken))
	require.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(authed(multipartRequest(t, http.MethodPost, "/api/videos/upload", map[string]string{
		"title":    "Sneaky",
		"duration": "3:00",
		"type":     "basic",
	}, &filePart{name: "sneaky.mp4", contentType: "video/mp4", data: []byte("mp4")}), userToken))
	require.Equal(t, http.StatusForbidden, w.Code)

	// Users can still read
	w = a.do(authed(httptest.NewRequest(http.MethodGet, "/api/videos/"+v.ID, nil), userToken))
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(authed(httptest.NewRequest(http.MethodGet, "/api/videos", nil), userToken))
	var list []model.Video
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Len(t, a.storedFiles(t), 1)
}

func TestRequiresToken(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(httptest.NewRequest(http.MethodGet, "/api/videos", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(httptest.NewRequest(http.MethodDelete, "/api/ppts/anything", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
