package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tabsplit/internal/domain"
	"tabsplit/internal/handler"
	"tabsplit/mocks"
)

func setupTurnRouter(turnSvc *mocks.MockTurnService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewTurnHandler(turnSvc)
	r := gin.New()
	r.GET("/reciepts/turns", h.List)
	r.GET("/reciepts/turns/export", h.Export)
	r.GET("/reciepts/turns/:id", h.GetByID)
	return r
}

func sampleTurn(kind domain.TurnKind) domain.SplitTurn {
	return domain.SplitTurn{
		ID:        uuid.New(),
		Kind:      kind,
		ChatID:    "chat_1",
		Model:     "deepseek-r1-70b",
		Provider:  "0xdef",
		IsValid:   true,
		Payload:   json.RawMessage(`{"summary":"even split","currency":"USD","total":60,"payer":"alice","participants":[{"identifier":"alice","paid":60,"owes":30,"comment":""}],"openQuestions":[]}`),
		CreatedAt: time.Now().UTC(),
	}
}

func TestTurnList_Success(t *testing.T) {
	turnSvc := &mocks.MockTurnService{}
	r := setupTurnRouter(turnSvc)

	turns := []domain.SplitTurn{sampleTurn(domain.TurnKindSplit)}
	turnSvc.On("List", mock.Anything, (*domain.TurnKind)(nil), 0, 50).Return(turns, 1, nil)

	req := httptest.NewRequest(http.MethodGet, "/reciepts/turns", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.JSONEq(t, `true`, string(resp["success"]))
	assert.Contains(t, string(resp["meta"]), `"total":1`)
}

func TestTurnList_KindFilter(t *testing.T) {
	turnSvc := &mocks.MockTurnService{}
	r := setupTurnRouter(turnSvc)

	kind := domain.TurnKindParse
	turnSvc.On("List", mock.Anything, &kind, 0, 50).Return([]domain.SplitTurn{}, 0, nil)

	req := httptest.NewRequest(http.MethodGet, "/reciepts/turns?kind=parse", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	turnSvc.AssertExpectations(t)
}

func TestTurnList_BadKindIs400(t *testing.T) {
	turnSvc := &mocks.MockTurnService{}
	r := setupTurnRouter(turnSvc)

	req := httptest.NewRequest(http.MethodGet, "/reciepts/turns?kind=bogus", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	turnSvc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTurnList_BadPagingIs400(t *testing.T) {
	turnSvc := &mocks.MockTurnService{}
	r := setupTurnRouter(turnSvc)

	for _, query := range []string{"?limit=abc", "?offset=1.5", "?offset=2&limit="} {
		req := httptest.NewRequest(http.MethodGet, "/reciepts/turns"+query, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
	turnSvc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTurnGetByID_NotFound(t *testing.T) {
	turnSvc := &mocks.MockTurnService{}
	r := setupTurnRouter(turnSvc)

	id := uuid.New()
	turnSvc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrTurnNotFound)

	req := httptest.NewRequest(http.MethodGet, "/reciepts/turns/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTurnGetByID_BadUUID(t *testing.T) {
	turnSvc := &mocks.MockTurnService{}
	r := setupTurnRouter(turnSvc)

	req := httptest.NewRequest(http.MethodGet, "/reciepts/turns/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	turnSvc.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestTurnExport_ReturnsWorkbook(t *testing.T) {
	turnSvc := &mocks.MockTurnService{}
	r := setupTurnRouter(turnSvc)

	turns := []domain.SplitTurn{sampleTurn(domain.TurnKindSplit), sampleTurn(domain.TurnKindParse)}
	turnSvc.On("Export", mock.Anything, (*domain.TurnKind)(nil)).Return(turns, nil)

	req := httptest.NewRequest(http.MethodGet, "/reciepts/turns/export", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.NotZero(t, w.Body.Len())
	// xlsx files are zip archives
	assert.Equal(t, []byte{'P', 'K'}, w.Body.Bytes()[:2])
}
