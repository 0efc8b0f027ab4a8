package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productModel "fitbooks-backend/internal/domains/product/model"
	"fitbooks-backend/internal/domains/review/model"
)

// serviceStub lets each test pin the workflow outcome.
type serviceStub struct {
	submitFn    func(model.SubmitReviewRequest) (*model.ReviewResponse, error)
	canReviewFn func(uuid.UUID, string) (bool, error)
	listFn      func(uuid.UUID) ([]*model.ReviewResponse, error)
	tagsFn      func(int) ([]model.TagCount, error)
}

func (s *serviceStub) SubmitReview(ctx context.Context, req model.SubmitReviewRequest) (*model.ReviewResponse, error) {
	return s.submitFn(req)
}

func (s *serviceStub) CanReview(ctx context.Context, productID uuid.UUID, username string) (bool, error) {
	return s.canReviewFn(productID, username)
}

func (s *serviceStub) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*model.ReviewResponse, error) {
	return s.listFn(productID)
}

func (s *serviceStub) PopularTags(ctx context.Context, limit int) ([]model.TagCount, error) {
	return s.tagsFn(limit)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupRouter(svc *serviceStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewReviewHandler(svc, nil, 5*1024*1024)

	router := gin.New()
	router.POST("/reviews", h.CreateReview)
	router.GET("/reviews/product/:productId", h.ListByProduct)
	router.GET("/reviews/can-review/:productId/:username", h.CanReview)
	router.GET("/tags/popular", h.PopularTags)
	return router
}

func postReview(t *testing.T, router *gin.Engine, fields map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/reviews", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestCreateReview_Success(t *testing.T) {
	productID := uuid.New()
	svc := &serviceStub{
		submitFn: func(req model.SubmitReviewRequest) (*model.ReviewResponse, error) {
			assert.Equal(t, productID, req.ProductID)
			assert.Equal(t, "alex", req.Username)
			assert.Equal(t, 5, req.Rating)
			require.NotNil(t, req.ReviewText)
			assert.Equal(t, "excellent read", *req.ReviewText)
			return &model.ReviewResponse{ID: uuid.New(), ProductID: productID, Username: "alex", Rating: 5}, nil
		},
	}

	rec, resp := postReview(t, setupRouter(svc), map[string]string{
		"product_id":  productID.String(),
		"username":    "alex",
		"rating":      "5",
		"review_text": "excellent read",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, resp.Success)
}

func TestCreateReview_MissingRequiredField(t *testing.T) {
	router := setupRouter(&serviceStub{})

	rec, resp := postReview(t, router, map[string]string{
		"product_id": uuid.NewString(),
		"username":   "alex",
		// no rating
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, model.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "missing required field", resp.Error.Message)
}

func TestCreateReview_RatingOutOfRange(t *testing.T) {
	router := setupRouter(&serviceStub{})

	for _, rating := range []string{"0", "6", "abc"} {
		rec, resp := postReview(t, router, map[string]string{
			"product_id": uuid.NewString(),
			"username":   "alex",
			"rating":     rating,
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "rating out of range", resp.Error.Message)
	}
}

func TestCreateReview_MalformedProductID(t *testing.T) {
	router := setupRouter(&serviceStub{})

	rec, resp := postReview(t, router, map[string]string{
		"product_id": "not-a-uuid",
		"username":   "alex",
		"rating":     "5",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "invalid product id", resp.Error.Message)
}

func TestCreateReview_Duplicate(t *testing.T) {
	svc := &serviceStub{
		submitFn: func(req model.SubmitReviewRequest) (*model.ReviewResponse, error) {
			return nil, model.NewAlreadyReviewedError()
		},
	}

	rec, resp := postReview(t, setupRouter(svc), map[string]string{
		"product_id":  uuid.NewString(),
		"username":    "alex",
		"rating":      "5",
		"review_text": "again",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, model.ErrCodeAlreadyReviewed, resp.Error.Code)
}

func TestCreateReview_UnknownProduct(t *testing.T) {
	svc := &serviceStub{
		submitFn: func(req model.SubmitReviewRequest) (*model.ReviewResponse, error) {
			return nil, productModel.ErrProductNotFound
		},
	}

	rec, resp := postReview(t, setupRouter(svc), map[string]string{
		"product_id":  uuid.NewString(),
		"username":    "alex",
		"rating":      "5",
		"review_text": "nice",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, productModel.ErrCodeProductNotFound, resp.Error.Code)
}

func TestCreateReview_StorageFailure(t *testing.T) {
	svc := &serviceStub{
		submitFn: func(req model.SubmitReviewRequest) (*model.ReviewResponse, error) {
			return nil, model.NewStorageError(assert.AnError)
		},
	}

	rec, resp := postReview(t, setupRouter(svc), map[string]string{
		"product_id":  uuid.NewString(),
		"username":    "alex",
		"rating":      "5",
		"review_text": "nice",
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, model.ErrCodeStorage, resp.Error.Code)
}

func TestCanReview_Endpoint(t *testing.T) {
	productID := uuid.New()
	svc := &serviceStub{
		canReviewFn: func(id uuid.UUID, username string) (bool, error) {
			assert.Equal(t, productID, id)
			assert.Equal(t, "alex", username)
			return false, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/reviews/can-review/"+productID.String()+"/alex", nil)
	rec := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	var data model.CanReviewResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.False(t, data.CanReview)
}

func TestListByProduct_InvalidID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/reviews/product/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	setupRouter(&serviceStub{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPopularTags_Endpoint(t *testing.T) {
	svc := &serviceStub{
		tagsFn: func(limit int) ([]model.TagCount, error) {
			assert.Equal(t, 3, limit)
			return []model.TagCount{{Tag: "great", Count: 7}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/tags/popular?limit=3", nil)
	rec := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)

	var data []model.TagCount
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Len(t, data, 1)
	assert.Equal(t, "great", data[0].Tag)
}
