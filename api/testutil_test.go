package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jvconstructions/constructions-backend/database"
	"github.com/jvconstructions/constructions-backend/models"
	"github.com/jvconstructions/constructions-backend/storage"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) database.Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Project{},
		&models.ProjectImage{},
		&models.Enquiry{},
		&models.Service{},
	))

	return database.New(db)
}

// fakeMedia records storage calls instead of talking to a bucket.
type fakeMedia struct {
	uploads     map[string][]byte
	deletedKeys []string
	presigned   []string
	failDelete  bool
}

func newFakeMedia() *fakeMedia {
	return &fakeMedia{uploads: make(map[string][]byte)}
}

func (f *fakeMedia) CreatePresignedPut(_ context.Context, key, mimeType string, sizeBytes int64) (*storage.PresignedUpload, error) {
	f.presigned = append(f.presigned, key)
	return &storage.PresignedUpload{
		UploadURL:  "https://bucket.example.com/" + key + "?signature=abc",
		Method:     http.MethodPut,
		Headers:    map[string]string{"Content-Type": mimeType},
		ExpiresIn:  300,
		StorageKey: key,
	}, nil
}

func (f *fakeMedia) UploadObject(_ context.Context, key string, data []byte, _ string) error {
	f.uploads[key] = data
	return nil
}

func (f *fakeMedia) DeleteObject(_ context.Context, key string) error {
	if f.failDelete {
		return context.DeadlineExceeded
	}
	f.deletedKeys = append(f.deletedKeys, key)
	return nil
}

func (f *fakeMedia) CDNURL(key string) string {
	return "https://cdn.example.com/" + key
}

// withURLParams attaches chi route parameters to a request built outside a
// router.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	routeCtx := chi.NewRouteContext()
	for k, v := range params {
		routeCtx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

// seedProject inserts a project directly through the repositories.
func seedProject(t *testing.T, db database.Database, project *models.Project) *models.Project {
	t.Helper()
	require.NoError(t, db.ProjectRepo().Add(project))
	return project
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, target, body string, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if params != nil {
		req = withURLParams(req, params)
	}

	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}
