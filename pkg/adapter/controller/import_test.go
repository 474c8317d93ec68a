package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"talenthui-go-backend/pkg/adapter/controller"
	"talenthui-go-backend/pkg/entity/model"
	"talenthui-go-backend/pkg/usecase/repository"
	"talenthui-go-backend/pkg/usecase/usecase/importer"
)

type stubProfileRepo struct {
	stored   int
	fetchErr error
}

func (s *stubProfileRepo) FetchIdentityKeys(_ context.Context) (*model.IdentitySet, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return model.NewIdentitySet(), nil
}

func (s *stubProfileRepo) InsertBatch(_ context.Context, records []*model.CandidateRecord) (int, error) {
	s.stored += len(records)
	return len(records), nil
}

func (s *stubProfileRepo) UpsertBatch(_ context.Context, records []*model.CandidateRecord, _ repository.UpsertOptions) (int, error) {
	s.stored += len(records)
	return len(records), nil
}

func (s *stubProfileRepo) ListPayBandCandidates(_ context.Context) ([]*model.ProfileSummary, error) {
	return nil, nil
}

func (s *stubProfileRepo) UpdatePayBand(_ context.Context, _ string, _ int) error { return nil }

func (s *stubProfileRepo) DeleteByEmail(_ context.Context, _ string) (int, error) { return 0, nil }

func (s *stubProfileRepo) Count(_ context.Context) (int, error) { return s.stored, nil }

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return body, writer.FormDataContentType()
}

const sampleCSV = `First name,Last name,Personal Email,Location,Current Title,Current Org Name
Kai,Nakamura,kai@example.com,"Honolulu, Hawaii",Software Engineer,Google
Sam,Lee,sam@example.com,"Austin, Texas",Software Engineer,Dell
`

func TestImportCSV(t *testing.T) {
	tests := []struct {
		name    string
		arrange func() (controller.Import, *http.Request)
		act     func(ctrl controller.Import, req *http.Request) *httptest.ResponseRecorder
		assert  func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Should import a valid CSV upload",
			arrange: func() (controller.Import, *http.Request) {
				repo := &stubProfileRepo{}
				im := importer.NewImporter(repo, importer.Config{
					OnConflict:        "username",
					DedupAgainstStore: true,
				})
				ctrl := controller.NewImportController(im, nil, nil)

				body, contentType := multipartBody(t, "candidates.csv", sampleCSV)
				req := httptest.NewRequest(http.MethodPost, "/api/admin/import-csv", body)
				req.Header.Set(echo.HeaderContentType, contentType)
				return ctrl, req
			},
			act: func(ctrl controller.Import, req *http.Request) *httptest.ResponseRecorder {
				rec := httptest.NewRecorder()
				c := echo.New().NewContext(req, rec)
				assert.Nil(t, ctrl.ImportCSV(c))
				return rec
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)

				var resp struct {
					Success  bool     `json:"success"`
					Imported int      `json:"imported"`
					Total    int      `json:"total"`
					Errors   []string `json:"errors"`
				}
				assert.Nil(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.True(t, resp.Success)
				assert.Equal(t, 1, resp.Imported)
				assert.Equal(t, 1, resp.Total)
				assert.Empty(t, resp.Errors)
			},
		},
		{
			name: "Should reject a request without a file",
			arrange: func() (controller.Import, *http.Request) {
				im := importer.NewImporter(&stubProfileRepo{}, importer.Config{})
				ctrl := controller.NewImportController(im, nil, nil)
				req := httptest.NewRequest(http.MethodPost, "/api/admin/import-csv", nil)
				return ctrl, req
			},
			act: func(ctrl controller.Import, req *http.Request) *httptest.ResponseRecorder {
				rec := httptest.NewRecorder()
				c := echo.New().NewContext(req, rec)
				assert.Nil(t, ctrl.ImportCSV(c))
				return rec
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Contains(t, rec.Body.String(), "No file provided")
			},
		},
		{
			name: "Should reject an empty file",
			arrange: func() (controller.Import, *http.Request) {
				im := importer.NewImporter(&stubProfileRepo{}, importer.Config{})
				ctrl := controller.NewImportController(im, nil, nil)

				body, contentType := multipartBody(t, "empty.csv", "")
				req := httptest.NewRequest(http.MethodPost, "/api/admin/import-csv", body)
				req.Header.Set(echo.HeaderContentType, contentType)
				return ctrl, req
			},
			act: func(ctrl controller.Import, req *http.Request) *httptest.ResponseRecorder {
				rec := httptest.NewRecorder()
				c := echo.New().NewContext(req, rec)
				assert.Nil(t, ctrl.ImportCSV(c))
				return rec
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Contains(t, rec.Body.String(), "CSV file is empty or invalid")
			},
		},
		{
			name: "Should reject a CSV with no eligible candidates",
			arrange: func() (controller.Import, *http.Request) {
				im := importer.NewImporter(&stubProfileRepo{}, importer.Config{})
				ctrl := controller.NewImportController(im, nil, nil)

				csv := "First name,Last name,Location\nSam,Lee,\"Austin, Texas\"\n"
				body, contentType := multipartBody(t, "mainland.csv", csv)
				req := httptest.NewRequest(http.MethodPost, "/api/admin/import-csv", body)
				req.Header.Set(echo.HeaderContentType, contentType)
				return ctrl, req
			},
			act: func(ctrl controller.Import, req *http.Request) *httptest.ResponseRecorder {
				rec := httptest.NewRecorder()
				c := echo.New().NewContext(req, rec)
				assert.Nil(t, ctrl.ImportCSV(c))
				return rec
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Contains(t, rec.Body.String(), "No valid candidates found in CSV")
			},
		},
		{
			name: "Should report a misconfigured store as a server error",
			arrange: func() (controller.Import, *http.Request) {
				repo := &stubProfileRepo{
					fetchErr: &model.StoreError{
						Message: `relation "profiles" does not exist`,
						Code:    model.CodeUndefinedTable,
					},
				}
				im := importer.NewImporter(repo, importer.Config{DedupAgainstStore: true})
				ctrl := controller.NewImportController(im, nil, nil)

				body, contentType := multipartBody(t, "candidates.csv", sampleCSV)
				req := httptest.NewRequest(http.MethodPost, "/api/admin/import-csv", body)
				req.Header.Set(echo.HeaderContentType, contentType)
				return ctrl, req
			},
			act: func(ctrl controller.Import, req *http.Request) *httptest.ResponseRecorder {
				rec := httptest.NewRecorder()
				c := echo.New().NewContext(req, rec)
				assert.Nil(t, ctrl.ImportCSV(c))
				return rec
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
				assert.Contains(t, rec.Body.String(), "Database not configured")
			},
		},
		{
			name: "Should report an unreachable store as a server error, not bad input",
			arrange: func() (controller.Import, *http.Request) {
				repo := &stubProfileRepo{
					fetchErr: errors.New("dial tcp 127.0.0.1:5433: connect: connection refused"),
				}
				im := importer.NewImporter(repo, importer.Config{DedupAgainstStore: true})
				ctrl := controller.NewImportController(im, nil, nil)

				body, contentType := multipartBody(t, "candidates.csv", sampleCSV)
				req := httptest.NewRequest(http.MethodPost, "/api/admin/import-csv", body)
				req.Header.Set(echo.HeaderContentType, contentType)
				return ctrl, req
			},
			act: func(ctrl controller.Import, req *http.Request) *httptest.ResponseRecorder {
				rec := httptest.NewRecorder()
				c := echo.New().NewContext(req, rec)
				assert.Nil(t, ctrl.ImportCSV(c))
				return rec
			},
			assert: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
				assert.Contains(t, rec.Body.String(), "Database unavailable")
				assert.Contains(t, rec.Body.String(), "connection refused")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, req := tt.arrange()
			rec := tt.act(ctrl, req)
			tt.assert(t, rec)
		})
	}
}
