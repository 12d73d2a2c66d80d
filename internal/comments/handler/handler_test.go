package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"lumina/internal/activity"
	"lumina/internal/comments"
	"lumina/internal/likes"
	"lumina/internal/photos"
	"lumina/pkg/testutil"
)

type CommentHandlerSuite struct {
	suite.Suite
	router  http.Handler
	photoID int64
}

func TestCommentHandlerSuite(t *testing.T) {
	suite.Run(t, new(CommentHandlerSuite))
}

func (s *CommentHandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	hook := activity.NewHook(activity.NewService(activity.NewInMemoryStore(), nil), logger)

	commentStore := comments.NewInMemoryStore()
	photoService := photos.NewService(photos.NewInMemoryStore(), likes.NewInMemoryStore(), commentStore, hook, nil)
	photo, err := photoService.Upload(context.Background(), 3, "Sunset", "/uploads/sunset.jpg")
	s.Require().NoError(err)
	s.photoID = photo.ID

	service := comments.NewService(commentStore, photoService, hook)

	h := New(service, logger)
	r := chi.NewRouter()
	h.Register(r)
	h.RegisterPublic(r)
	s.router = r
}

func (s *CommentHandlerSuite) post(userID int64, path, text string) *httptest.ResponseRecorder {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, path, map[string]string{"text": text})
	req = testutil.WithUser(req, userID)
	return testutil.DoRequest(s.router, req)
}

func (s *CommentHandlerSuite) TestAddAndListRoundTrip() {
	rec := s.post(7, "/photos/1/comments", "Great shot")
	testutil.AssertStatus(s.T(), rec, http.StatusCreated)

	created := testutil.UnmarshalResponse[comments.Comment](s.T(), rec)
	s.Positive(created.ID)
	s.Equal("Great shot", created.Text)

	listRec := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/photos/1/comments"))
	testutil.AssertStatus(s.T(), listRec, http.StatusOK)

	resp := testutil.UnmarshalResponse[listResponse](s.T(), listRec)
	s.Equal(int64(1), resp.Total)
	s.Require().Len(resp.Comments, 1)
	s.Equal("Great shot", resp.Comments[0].Text)
}

func (s *CommentHandlerSuite) TestListIsPublic() {
	req := testutil.NewRequest(s.T(), http.MethodGet, "/photos/1/comments")
	rec := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rec, http.StatusOK)
}

func (s *CommentHandlerSuite) TestAddRequiresAuthentication() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/photos/1/comments", map[string]string{"text": "hi"})
	rec := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rec, http.StatusUnauthorized)
}

func (s *CommentHandlerSuite) TestAddRejectsMalformedPhotoID() {
	rec := s.post(7, "/photos/abc/comments", "hi")
	testutil.AssertStatus(s.T(), rec, http.StatusBadRequest)
}

func (s *CommentHandlerSuite) TestAddUnknownPhoto() {
	rec := s.post(7, "/photos/999/comments", "hi")
	testutil.AssertStatus(s.T(), rec, http.StatusNotFound)
}
