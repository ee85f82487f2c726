package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvconstructions/constructions-backend/database"
	"github.com/jvconstructions/constructions-backend/models"
	"github.com/jvconstructions/constructions-backend/storage"
)

func TestCreateProject(t *testing.T) {
	db := newTestDB(t)
	h := newProjectHandler(db, newFakeMedia(), nil)

	body := `{"code":"lakeview-villas","name":"Lakeview Villas","status":"ONGOING","city":"Kochi","startDate":"2025-01-15"}`
	rec := doJSON(t, h.createProject(), http.MethodPost, "/api/v1/projects", body, nil)

	require.Equal(t, http.StatusCreated, rec.Code)

	var detail ProjectDetailDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "lakeview-villas", detail.Code)
	assert.Equal(t, "ONGOING", detail.Status)
	require.NotNil(t, detail.StartDate)
	assert.Equal(t, "2025-01-15", *detail.StartDate)
	assert.NotEqual(t, uuid.Nil, detail.ID)
	assert.Empty(t, detail.Images)
}

func TestCreateProjectDuplicateCode(t *testing.T) {
	db := newTestDB(t)
	h := newProjectHandler(db, newFakeMedia(), nil)
	seedProject(t, db, &models.Project{Code: "lakeview-villas", Name: "Existing", Status: models.StatusPlanned})

	body := `{"code":"lakeview-villas","name":"Again","status":"PLANNED"}`
	rec := doJSON(t, h.createProject(), http.MethodPost, "/api/v1/projects", body, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Project code already exists")
	assert.Contains(t, rec.Body.String(), `"code":"BAD_REQUEST"`)
}

func TestCreateProjectValidation(t *testing.T) {
	db := newTestDB(t)
	h := newProjectHandler(db, newFakeMedia(), nil)

	cases := []struct {
		name string
		body string
	}{
		{"bad code pattern", `{"code":"UPPER CASE","name":"X","status":"PLANNED"}`},
		{"code too short", `{"code":"ab","name":"X","status":"PLANNED"}`},
		{"missing name", `{"code":"valid-code","status":"PLANNED"}`},
		{"unknown status", `{"code":"valid-code","name":"X","status":"DONE"}`},
		{"bad date", `{"code":"valid-code","name":"X","status":"PLANNED","startDate":"15/01/2025"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, h.createProject(), http.MethodPost, "/api/v1/projects", tc.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetProjectByCodeNotFound(t *testing.T) {
	db := newTestDB(t)
	h := newProjectHandler(db, newFakeMedia(), nil)

	rec := doJSON(t, h.getProjectByCode(), http.MethodGet, "/api/v1/projects/nope", "", map[string]string{"code": "nope"})

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"HANDLER_NOT_FOUND"`)
}

func TestListProjectsStatusFilter(t *testing.T) {
	db := newTestDB(t)
	h := newProjectHandler(db, newFakeMedia(), nil)
	seedProject(t, db, &models.Project{Code: "planned-one", Name: "A", Status: models.StatusPlanned})
	seedProject(t, db, &models.Project{Code: "ongoing-one", Name: "B", Status: models.StatusOngoing})
	seedProject(t, db, &models.Project{Code: "ongoing-two", Name: "C", Status: models.StatusOngoing})

	rec := doJSON(t, h.listProjects(), http.MethodGet, "/api/v1/projects?status=ONGOING", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page PageDTO[ProjectCardDTO]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(2), page.TotalElements)
	for _, card := range page.Content {
		assert.Equal(t, models.StatusOngoing, card.Status)
	}
}

func TestListProjectsInvalidStatus(t *testing.T) {
	db := newTestDB(t)
	h := newProjectHandler(db, newFakeMedia(), nil)

	rec := doJSON(t, h.listProjects(), http.MethodGet, "/api/v1/projects?status=FINISHED", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListProjectsCityFilterAndPaging(t *testing.T) {
	db := newTestDB(t)
	h := newProjectHandler(db, newFakeMedia(), nil)
	kochi := "Kochi"
	for i := 0; i < 3; i++ {
		seedProject(t, db, &models.Project{
			Code:   fmt.Sprintf("kochi-%d", i),
			Name:   "K",
			Status: models.StatusPlanned,
			City:   &kochi,
		})
	}
	chennai := "Chennai"
	seedProject(t, db, &models.Project{Code: "chennai-0", Name: "C", Status: models.StatusPlanned, City: &chennai})

	rec := doJSON(t, h.listProjects(), http.MethodGet, "/api/v1/projects?city=Kochi&page=0&size=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page PageDTO[ProjectCardDTO]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Content, 2)
}

func TestUpdateProjectPartial(t *testing.T) {
	db := newTestDB(t)
	h := newProjectHandler(db, newFakeMedia(), nil)
	city := "Kochi"
	project := seedProject(t, db, &models.Project{
		Code:        "partial-update",
		Name:        "Before",
		Description: "Original description",
		Status:      models.StatusPlanned,
		City:        &city,
	})

	// Only name and status present; description and city must survive.
	body := `{"name":"After","status":"COMPLETED"}`
	rec := doJSON(t, h.updateProject(), http.MethodPut, "/api/v1/projects/"+project.ID.String(), body,
		map[string]string{"projectID": project.ID.String()})

	require.Equal(t, http.StatusOK, rec.Code)

	var detail ProjectDetailDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "After", detail.Name)
	assert.Equal(t, models.StatusCompleted, detail.Status)
	assert.Equal(t, "Original description", detail.Description)
	require.NotNil(t, detail.City)
	assert.Equal(t, "Kochi", *detail.City)
}

func TestUpdateProjectUnknownID(t *testing.T) {
	db := newTestDB(t)
	h := newProjectHandler(db, newFakeMedia(), nil)

	id := uuid.New().String()
	rec := doJSON(t, h.updateProject(), http.MethodPut, "/api/v1/projects/"+id, `{"name":"X"}`,
		map[string]string{"projectID": id})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProjectRemovesStoredObjects(t *testing.T) {
	db := newTestDB(t)
	media := newFakeMedia()
	h := newProjectHandler(db, media, nil)
	project := seedProject(t, db, &models.Project{Code: "to-delete", Name: "X", Status: models.StatusCompleted})

	keys := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		key := storage.ImageKey(project.Code, "jpg")
		keys = append(keys, key)
		require.NoError(t, db.ProjectImageRepo().Add(&models.ProjectImage{
			ProjectID:  project.ID,
			StorageKey: key,
			MimeType:   "image/jpeg",
			SortOrder:  i,
		}))
	}

	rec := doJSON(t, h.deleteProject(), http.MethodDelete, "/api/v1/projects/"+project.ID.String(), "",
		map[string]string{"projectID": project.ID.String()})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.ElementsMatch(t, keys, media.deletedKeys)

	_, err := db.ProjectRepo().FindByID(project.ID)
	assert.Error(t, err)
	images, err := db.ProjectImageRepo().FindByProject(project.ID)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestDeleteProjectStorageFailureKeepsRows(t *testing.T) {
	db := newTestDB(t)
	media := newFakeMedia()
	media.failDelete = true
	h := newProjectHandler(db, media, nil)
	project := seedProject(t, db, &models.Project{Code: "keep-on-fail", Name: "X", Status: models.StatusCompleted})
	require.NoError(t, db.ProjectImageRepo().Add(&models.ProjectImage{
		ProjectID:  project.ID,
		StorageKey: storage.ImageKey(project.Code, "jpg"),
		MimeType:   "image/jpeg",
	}))

	rec := doJSON(t, h.deleteProject(), http.MethodDelete, "/api/v1/projects/"+project.ID.String(), "",
		map[string]string{"projectID": project.ID.String()})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	_, err := db.ProjectRepo().FindByID(project.ID)
	assert.NoError(t, err)
}

func TestCreateUploadURL(t *testing.T) {
	db := newTestDB(t)
	media := newFakeMedia()
	h := newProjectHandler(db, media, nil)
	project := seedProject(t, db, &models.Project{Code: "upload-target", Name: "X", Status: models.StatusOngoing})

	body := `{"mimeType":"image/png","sizeBytes":2048}`
	rec := doJSON(t, h.createUploadURL(), http.MethodPost, "/x", body,
		map[string]string{"projectID": project.ID.String()})
	require.Equal(t, http.StatusOK, rec.Code)

	var grant storage.PresignedUpload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &grant))
	assert.Equal(t, http.MethodPut, grant.Method)
	assert.True(t, storage.KeyBelongsToProject(grant.StorageKey, project.Code))
	assert.Contains(t, grant.StorageKey, ".png")
}

func TestCreateUploadURLRejectsNonImage(t *testing.T) {
	db := newTestDB(t)
	h := newProjectHandler(db, newFakeMedia(), nil)
	project := seedProject(t, db, &models.Project{Code: "upload-target", Name: "X", Status: models.StatusOngoing})

	rec := doJSON(t, h.createUploadURL(), http.MethodPost, "/x", `{"mimeType":"application/pdf","sizeBytes":10}`,
		map[string]string{"projectID": project.ID.String()})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Only images allowed")

	rec = doJSON(t, h.createUploadURL(), http.MethodPost, "/x", `{"mimeType":"image/tiff","sizeBytes":10}`,
		map[string]string{"projectID": project.ID.String()})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unsupported media type")
}

func TestConfirmImage(t *testing.T) {
	db := newTestDB(t)
	h := newProjectHandler(db, newFakeMedia(), nil)
	project := seedProject(t, db, &models.Project{Code: "confirm-me", Name: "X", Status: models.StatusOngoing})

	key := storage.ImageKey(project.Code, "jpg")
	hero := true
	body, _ := json.Marshal(confirmImageRequest{
		StorageKey: key,
		MimeType:   "image/jpeg",
		SizeBytes:  4096,
		IsHero:     &hero,
	})

	rec := doJSON(t, h.confirmImage(), http.MethodPost, "/x", string(body),
		map[string]string{"projectID": project.ID.String()})
	require.Equal(t, http.StatusOK, rec.Code)

	var dto ImageDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.True(t, dto.Hero)
	assert.Equal(t, "https://cdn.example.com/"+key, dto.URL)

	reloaded, err := db.ProjectRepo().FindByID(project.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.HeroImageID)
	assert.Equal(t, dto.ID, *reloaded.HeroImageID)
}

func TestConfirmImageForeignKeyRejected(t *testing.T) {
	db := newTestDB(t)
	h := newProjectHandler(db, newFakeMedia(), nil)
	project := seedProject(t, db, &models.Project{Code: "mine", Name: "X", Status: models.StatusOngoing})

	body := `{"storageKey":"projects/other-project/images/abc.jpg","mimeType":"image/jpeg","sizeBytes":10}`
	rec := doJSON(t, h.confirmImage(), http.MethodPost, "/x", body,
		map[string]string{"projectID": project.ID.String()})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	images, err := db.ProjectImageRepo().FindByProject(project.ID)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestSetHeroImageClearsSiblings(t *testing.T) {
	db := newTestDB(t)
	h := newProjectHandler(db, newFakeMedia(), nil)
	project := seedProject(t, db, &models.Project{Code: "hero-swap", Name: "X", Status: models.StatusOngoing})

	first := &models.ProjectImage{ProjectID: project.ID, StorageKey: storage.ImageKey(project.Code, "jpg"), MimeType: "image/jpeg", Hero: true}
	second := &models.ProjectImage{ProjectID: project.ID, StorageKey: storage.ImageKey(project.Code, "jpg"), MimeType: "image/jpeg"}
	require.NoError(t, db.ProjectImageRepo().Add(first))
	require.NoError(t, db.ProjectImageRepo().Add(second))
	project.HeroImageID = &first.ID
	require.NoError(t, db.ProjectRepo().Save(project))

	rec := doJSON(t, h.setHeroImage(), http.MethodPut, "/x", "",
		map[string]string{"projectID": project.ID.String(), "imageID": second.ID.String()})
	require.Equal(t, http.StatusOK, rec.Code)

	reloaded, err := db.ProjectRepo().FindByID(project.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.HeroImageID)
	assert.Equal(t, second.ID, *reloaded.HeroImageID)

	firstAgain, err := db.ProjectImageRepo().FindByID(first.ID)
	require.NoError(t, err)
	assert.False(t, firstAgain.Hero)
	secondAgain, err := db.ProjectImageRepo().FindByID(second.ID)
	require.NoError(t, err)
	assert.True(t, secondAgain.Hero)
}

func TestSetHeroImageNotInProject(t *testing.T) {
	db := newTestDB(t)
	h := newProjectHandler(db, newFakeMedia(), nil)
	mine := seedProject(t, db, &models.Project{Code: "mine", Name: "X", Status: models.StatusOngoing})
	other := seedProject(t, db, &models.Project{Code: "other", Name: "Y", Status: models.StatusOngoing})
	foreign := &models.ProjectImage{ProjectID: other.ID, StorageKey: storage.ImageKey(other.Code, "jpg"), MimeType: "image/jpeg"}
	require.NoError(t, db.ProjectImageRepo().Add(foreign))

	rec := doJSON(t, h.setHeroImage(), http.MethodPut, "/x", "",
		map[string]string{"projectID": mine.ID.String(), "imageID": foreign.ID.String()})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Image not in project")
}

func TestDeleteImageClearsHeroPointer(t *testing.T) {
	db := newTestDB(t)
	media := newFakeMedia()
	h := newProjectHandler(db, media, nil)
	project := seedProject(t, db, &models.Project{Code: "hero-del", Name: "X", Status: models.StatusOngoing})

	image := &models.ProjectImage{ProjectID: project.ID, StorageKey: storage.ImageKey(project.Code, "jpg"), MimeType: "image/jpeg", Hero: true}
	require.NoError(t, db.ProjectImageRepo().Add(image))
	project.HeroImageID = &image.ID
	require.NoError(t, db.ProjectRepo().Save(project))

	rec := doJSON(t, h.deleteImage(), http.MethodDelete, "/x", "",
		map[string]string{"projectID": project.ID.String(), "imageID": image.ID.String()})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []string{image.StorageKey}, media.deletedKeys)

	reloaded, err := db.ProjectRepo().FindByID(project.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.HeroImageID)
}

// uploadPart is one multipart file entry; slice order is the wire order.
type uploadPart struct {
	filename string
	data     []byte
}

func multipartBody(t *testing.T, field string, parts []uploadPart, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, p := range parts {
		part, err := writer.CreateFormFile(field, p.filename)
		require.NoError(t, err)
		_, err = part.Write(p.data)
		require.NoError(t, err)
	}
	for k, v := range values {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	db := newTestDB(t)
	media := newFakeMedia()
	h := newProjectHandler(db, media, nil)
	project := seedProject(t, db, &models.Project{Code: "direct-up", Name: "X", Status: models.StatusOngoing})

	body, contentType := multipartBody(t, "file", []uploadPart{{"site.jpg", []byte("jpegbytes")}}, map[string]string{"isHero": "true"})
	req := httptest.NewRequest(http.MethodPost, "/x", body)
	req.Header.Set("Content-Type", contentType)
	req = withURLParams(req, map[string]string{"projectID": project.ID.String()})

	rec := httptest.NewRecorder()
	h.uploadImage()(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var dto ImageDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.True(t, dto.Hero)
	assert.Nil(t, dto.Width)
	assert.Nil(t, dto.Height)

	require.Len(t, media.uploads, 1)
	reloaded, err := db.ProjectRepo().FindByID(project.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.HeroImageID)
	assert.Equal(t, dto.ID, *reloaded.HeroImageID)
}

func TestUploadImageRejectsBadExtension(t *testing.T) {
	db := newTestDB(t)
	media := newFakeMedia()
	h := newProjectHandler(db, media, nil)
	project := seedProject(t, db, &models.Project{Code: "direct-up", Name: "X", Status: models.StatusOngoing})

	body, contentType := multipartBody(t, "file", []uploadPart{{"notes.pdf", []byte("pdf")}}, nil)
	req := httptest.NewRequest(http.MethodPost, "/x", body)
	req.Header.Set("Content-Type", contentType)
	req = withURLParams(req, map[string]string{"projectID": project.ID.String()})

	rec := httptest.NewRecorder()
	h.uploadImage()(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, media.uploads)
}

func TestUploadImageRejectsOversized(t *testing.T) {
	db := newTestDB(t)
	media := newFakeMedia()
	h := newProjectHandler(db, media, map[string]string{"MAX_UPLOAD_BYTES": "4"})
	project := seedProject(t, db, &models.Project{Code: "direct-up", Name: "X", Status: models.StatusOngoing})

	body, contentType := multipartBody(t, "file", []uploadPart{{"big.jpg", []byte("way too big")}}, nil)
	req := httptest.NewRequest(http.MethodPost, "/x", body)
	req.Header.Set("Content-Type", contentType)
	req = withURLParams(req, map[string]string{"projectID": project.ID.String()})

	rec := httptest.NewRecorder()
	h.uploadImage()(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "File exceeds maximum upload size")
	assert.Empty(t, media.uploads)
}

func TestUploadMultipleImages(t *testing.T) {
	db := newTestDB(t)
	media := newFakeMedia()
	h := newProjectHandler(db, media, nil)
	project := seedProject(t, db, &models.Project{Code: "batch-up", Name: "X", Status: models.StatusOngoing})

	files := []uploadPart{
		{"a.jpg", []byte("aaa")},
		{"skip.txt", []byte("nope")},
		{"b.png", []byte("bbb")},
	}
	body, contentType := multipartBody(t, "files", files, map[string]string{"isHero": "true"})
	req := httptest.NewRequest(http.MethodPost, "/x", body)
	req.Header.Set("Content-Type", contentType)
	req = withURLParams(req, map[string]string{"projectID": project.ID.String()})

	rec := httptest.NewRecorder()
	h.uploadMultipleImages()(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var dtos []ImageDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dtos))
	// The .txt entry is skipped, not fatal; survivors keep their input
	// position as sort order, leaving a gap where the skipped file sat.
	require.Len(t, dtos, 2)
	assert.Len(t, media.uploads, 2)
	assert.Equal(t, 0, dtos[0].SortOrder)
	assert.Equal(t, 2, dtos[1].SortOrder)

	// Only the first surviving file becomes the hero.
	assert.True(t, dtos[0].Hero)
	assert.False(t, dtos[1].Hero)

	rows, err := db.ProjectImageRepo().FindByProject(project.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].SortOrder)
	assert.True(t, strings.HasSuffix(rows[0].StorageKey, ".jpg"))
	assert.True(t, rows[0].Hero)
	assert.Equal(t, 2, rows[1].SortOrder)
	assert.True(t, strings.HasSuffix(rows[1].StorageKey, ".png"))
	assert.False(t, rows[1].Hero)

	reloaded, err := db.ProjectRepo().FindByID(project.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.HeroImageID)
	assert.Equal(t, rows[0].ID, *reloaded.HeroImageID)
}

func TestUploadMultipleImagesSkipsOversized(t *testing.T) {
	db := newTestDB(t)
	media := newFakeMedia()
	h := newProjectHandler(db, media, map[string]string{"MAX_UPLOAD_BYTES": "4"})
	project := seedProject(t, db, &models.Project{Code: "batch-up", Name: "X", Status: models.StatusOngoing})

	files := []uploadPart{
		{"ok.jpg", []byte("abc")},
		{"huge.png", []byte("definitely too big")},
	}
	body, contentType := multipartBody(t, "files", files, nil)
	req := httptest.NewRequest(http.MethodPost, "/x", body)
	req.Header.Set("Content-Type", contentType)
	req = withURLParams(req, map[string]string{"projectID": project.ID.String()})

	rec := httptest.NewRecorder()
	h.uploadMultipleImages()(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var dtos []ImageDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dtos))
	require.Len(t, dtos, 1)
	assert.Equal(t, 0, dtos[0].SortOrder)
	assert.Len(t, media.uploads, 1)
}

func TestUploadMultipleImagesLimits(t *testing.T) {
	db := newTestDB(t)
	h := newProjectHandler(db, newFakeMedia(), nil)
	project := seedProject(t, db, &models.Project{Code: "batch-up", Name: "X", Status: models.StatusOngoing})

	files := make([]uploadPart, 0, maxBatchUploadFiles+1)
	for i := 0; i <= maxBatchUploadFiles; i++ {
		files = append(files, uploadPart{fmt.Sprintf("f%d.jpg", i), []byte("x")})
	}
	body, contentType := multipartBody(t, "files", files, nil)
	req := httptest.NewRequest(http.MethodPost, "/x", body)
	req.Header.Set("Content-Type", contentType)
	req = withURLParams(req, map[string]string{"projectID": project.ID.String()})

	rec := httptest.NewRecorder()
	h.uploadMultipleImages()(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Maximum 10 files allowed per upload")

	body, contentType = multipartBody(t, "other-field", []uploadPart{{"a.jpg", []byte("x")}}, nil)
	req = httptest.NewRequest(http.MethodPost, "/x", body)
	req.Header.Set("Content-Type", contentType)
	req = withURLParams(req, map[string]string{"projectID": project.ID.String()})

	rec = httptest.NewRecorder()
	h.uploadMultipleImages()(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No files provided")
}

func TestTransactionRollsBack(t *testing.T) {
	db := newTestDB(t)

	err := db.Transaction(func(tx database.Database) error {
		if err := tx.ProjectRepo().Add(&models.Project{Code: "rollback-me", Name: "X", Status: models.StatusPlanned}); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.Error(t, err)

	exists, err := db.ProjectRepo().ExistsByCode("rollback-me")
	require.NoError(t, err)
	assert.False(t, exists)
}
