package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cmdb-system/internal/dto"
	"cmdb-system/internal/services"
)

type stubClosureCodeService struct {
	services.ClosureCodeServiceInterface

	lookup     *dto.ClosureCodeLookupDTO
	lastLookup *uint64
	called     bool
}

func (s *stubClosureCodeService) Lookup(_ context.Context, applicationID *uint64) (*dto.ClosureCodeLookupDTO, error) {
	s.called = true
	s.lastLookup = applicationID
	return s.lookup, nil
}

func newLookupController(service *stubClosureCodeService) *ClosureCodeController {
	return NewClosureCodeController(service, nil, zap.NewNop())
}

func doLookup(t *testing.T, controller *ClosureCodeController, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	require.NoError(t, controller.Lookup(e.NewContext(req, rec)))
	return rec
}

func TestLookupByApplication(t *testing.T) {
	service := &stubClosureCodeService{
		lookup: &dto.ClosureCodeLookupDTO{Codigos: []dto.ClosureCodeOptionDTO{
			{ID: 1, Text: "CC-001"},
			{ID: 2, Text: "CC-002"},
		}},
	}
	rec := doLookup(t, newLookupController(service), "/api/codigos-cierre?aplicativo_id=7")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, service.lastLookup)
	assert.Equal(t, uint64(7), *service.lastLookup)

	var body dto.ClosureCodeLookupDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Codigos, 2)
	assert.Equal(t, "CC-001", body.Codigos[0].Text)
}

func TestLookupWithoutApplicationWidens(t *testing.T) {
	service := &stubClosureCodeService{lookup: &dto.ClosureCodeLookupDTO{Codigos: []dto.ClosureCodeOptionDTO{}}}
	rec := doLookup(t, newLookupController(service), "/api/codigos-cierre")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, service.called)
	assert.Nil(t, service.lastLookup)

	// Empty result still carries the codigos key with an empty array.
	assert.JSONEq(t, `{"codigos":[]}`, rec.Body.String())
}

func TestLookupBlankApplicationTreatedAsAbsent(t *testing.T) {
	service := &stubClosureCodeService{lookup: &dto.ClosureCodeLookupDTO{Codigos: []dto.ClosureCodeOptionDTO{}}}
	rec := doLookup(t, newLookupController(service), "/api/codigos-cierre?aplicativo_id=+++")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, service.lastLookup)
}

func TestLookupRejectsNonNumericApplication(t *testing.T) {
	service := &stubClosureCodeService{}
	rec := doLookup(t, newLookupController(service), "/api/codigos-cierre?aplicativo_id=abc")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, service.called)
}
