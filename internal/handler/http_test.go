package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/emellop-senai/arena-senai-forca/internal/domain"
	"github.com/emellop-senai/arena-senai-forca/internal/websocket"
)

// fakeService scripts each operation for handler tests.
type fakeService struct {
	loginFn       func(req domain.LoginRequest) (*domain.User, error)
	randomWordFn  func() (*domain.Word, error)
	recordMatchFn func(m domain.MatchSubmission) (*domain.User, error)
	rankingFn     func() ([]domain.RankingEntry, error)
}

func (f *fakeService) Login(_ context.Context, req domain.LoginRequest) (*domain.User, error) {
	return f.loginFn(req)
}

func (f *fakeService) RandomWord(_ context.Context) (*domain.Word, error) {
	return f.randomWordFn()
}

func (f *fakeService) RecordMatch(_ context.Context, m domain.MatchSubmission) (*domain.User, error) {
	return f.recordMatchFn(m)
}

func (f *fakeService) Ranking(_ context.Context) ([]domain.RankingEntry, error) {
	return f.rankingFn()
}

type HandlerSuite struct {
	suite.Suite

	svc    *fakeService
	router http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.svc = &fakeService{}
	h := NewHandler(s.svc, websocket.NewHub(slog.Default()), slog.Default())
	s.router = h.Router()
}

func (s *HandlerSuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) TestLoginReturnsUser() {
	s.svc.loginFn = func(req domain.LoginRequest) (*domain.User, error) {
		s.Equal("ana", req.Username)
		return &domain.User{ID: 1, Username: "ana", Score: 120}, nil
	}

	rec := s.do(http.MethodPost, "/api/login", map[string]string{"username": "ana"})
	s.Equal(http.StatusOK, rec.Code)

	var got map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal(float64(1), got["id"])
	s.Equal("ana", got["username"])
	s.Equal(float64(120), got["score"])
	s.NotContains(got, "created_at")
}

func (s *HandlerSuite) TestLoginShortUsernameIs400() {
	s.svc.loginFn = func(req domain.LoginRequest) (*domain.User, error) {
		_, err := req.Validate()
		return nil, err
	}

	rec := s.do(http.MethodPost, "/api/login", map[string]string{"username": "Al"})
	s.Equal(http.StatusBadRequest, rec.Code)

	var got errorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.NotEmpty(got.Error)
}

func (s *HandlerSuite) TestLoginMalformedBodyIs400() {
	s.svc.loginFn = func(domain.LoginRequest) (*domain.User, error) {
		s.Fail("service must not be called")
		return nil, nil
	}

	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestRandomWordReturnsContractShape() {
	s.svc.randomWordFn = func() (*domain.Word, error) {
		return &domain.Word{ID: 7, Palavra: "CORAÇÃO", Dica: "símbolo do amor"}, nil
	}

	rec := s.do(http.MethodGet, "/api/palavras/aleatoria", nil)
	s.Equal(http.StatusOK, rec.Code)

	var got domain.Word
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal(int64(7), got.ID)
	s.Equal("CORAÇÃO", got.Palavra)
	s.Equal("símbolo do amor", got.Dica)
}

func (s *HandlerSuite) TestRandomWordEmptyCorpusIs404() {
	s.svc.randomWordFn = func() (*domain.Word, error) {
		return nil, domain.ErrWordNotFound
	}

	rec := s.do(http.MethodGet, "/api/palavras/aleatoria", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestRecordMatchReturnsMessage() {
	s.svc.recordMatchFn = func(m domain.MatchSubmission) (*domain.User, error) {
		s.Equal(int64(1), m.UsuarioID)
		s.Equal(int64(7), m.PalavraID)
		s.Equal(int64(40), m.PontosGanhos)
		s.Equal(domain.OutcomeWin, m.Resultado)
		return &domain.User{ID: 1, Username: "ana", Score: 40}, nil
	}

	rec := s.do(http.MethodPost, "/api/partidas", map[string]interface{}{
		"usuario_id":    1,
		"palavra_id":    7,
		"pontos_ganhos": 40,
		"resultado":     "vitoria",
	})
	s.Equal(http.StatusCreated, rec.Code)

	var got map[string]string
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.NotEmpty(got["message"])
}

func (s *HandlerSuite) TestRecordMatchUnknownUserIs404() {
	s.svc.recordMatchFn = func(domain.MatchSubmission) (*domain.User, error) {
		return nil, domain.ErrUserNotFound
	}

	rec := s.do(http.MethodPost, "/api/partidas", map[string]interface{}{
		"usuario_id":    99,
		"palavra_id":    7,
		"pontos_ganhos": 40,
		"resultado":     "vitoria",
	})
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlerSuite) TestRecordMatchBadOutcomeIs400() {
	s.svc.recordMatchFn = func(m domain.MatchSubmission) (*domain.User, error) {
		return nil, m.Validate()
	}

	rec := s.do(http.MethodPost, "/api/partidas", map[string]interface{}{
		"usuario_id":    1,
		"palavra_id":    7,
		"pontos_ganhos": 40,
		"resultado":     "empate",
	})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestRankingReturnsOrderedEntries() {
	s.svc.rankingFn = func() ([]domain.RankingEntry, error) {
		return []domain.RankingEntry{
			{Username: "bruno", Score: 300},
			{Username: "ana", Score: 120},
		}, nil
	}

	rec := s.do(http.MethodGet, "/api/ranking", nil)
	s.Equal(http.StatusOK, rec.Code)

	var got []domain.RankingEntry
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Len(got, 2)
	s.Equal("bruno", got[0].Username)
}

func (s *HandlerSuite) TestRankingEmptyBoardIsEmptyArray() {
	s.svc.rankingFn = func() ([]domain.RankingEntry, error) {
		return nil, nil
	}

	rec := s.do(http.MethodGet, "/api/ranking", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq("[]", rec.Body.String())
}

func (s *HandlerSuite) TestUnexpectedErrorIs500WithOpaqueBody() {
	s.svc.rankingFn = func() ([]domain.RankingEntry, error) {
		return nil, errors.New("pg: connection refused")
	}

	rec := s.do(http.MethodGet, "/api/ranking", nil)
	s.Equal(http.StatusInternalServerError, rec.Code)

	var got errorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.NotContains(got.Error, "connection refused")
}

func (s *HandlerSuite) TestHealthAndReady() {
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/health", nil).Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/ready", nil).Code)
}
