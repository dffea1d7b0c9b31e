package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/handlers"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock VoucherService ---
type MockVoucherService struct {
	mock.Mock
}

func (m *MockVoucherService) GetVoucherByID(ctx context.Context, businessID string, voucherID string, requestingUserID string) (*domain.Voucher, error) {
	args := m.Called(ctx, businessID, voucherID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}
func (m *MockVoucherService) ListVouchers(ctx context.Context, businessID string, userID string, params dto.ListVouchersParams) (*dto.ListVouchersResponse, error) {
	args := m.Called(ctx, businessID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListVouchersResponse), args.Error(1)
}
func (m *MockVoucherService) CreateVoucher(ctx context.Context, businessID string, req dto.CreateVoucherRequest, creatorUserID string) (*domain.Voucher, error) {
	args := m.Called(ctx, businessID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}
func (m *MockVoucherService) UpdateVoucher(ctx context.Context, businessID string, voucherID string, req dto.UpdateVoucherRequest, requestingUserID string) (*domain.Voucher, error) {
	args := m.Called(ctx, businessID, voucherID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}
func (m *MockVoucherService) DeleteVoucher(ctx context.Context, businessID string, voucherID string, requestingUserID string) error {
	args := m.Called(ctx, businessID, voucherID, requestingUserID)
	return args.Error(0)
}
func (m *MockVoucherService) ListJournalEntriesByAccount(ctx context.Context, businessID string, accountID string, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, businessID, accountID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.VoucherSvcFacade = (*MockVoucherService)(nil)

// --- Test Suite ---
type VoucherHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockVoucherService *MockVoucherService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *VoucherHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "bizledger-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *VoucherHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockVoucherService = new(MockVoucherService)

	// Mimic the business-scoped grouping used by the real router
	business := suite.router.Group("/api/v1/businesses/:business_id")
	handlers.RegisterVoucherRoutes(business, suite.mockVoucherService)
}

// --- Test Cases ---

func (suite *VoucherHandlerTestSuite) TestCreateVoucher_Success() {
	businessID := uuid.NewString()
	requestingUserID := uuid.NewString()
	voucherTypeID := uuid.NewString()
	cashAccountID := uuid.NewString()
	salesAccountID := uuid.NewString()
	date := time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC)

	reqBody := dto.CreateVoucherRequest{
		VoucherTypeID: voucherTypeID,
		Date:          date,
		Narration:     "Cash sale",
		Items: []dto.VoucherItemRequest{
			{LedgerAccountID: cashAccountID, DebitAmount: decimal.NewFromInt(500)},
			{LedgerAccountID: salesAccountID, CreditAmount: decimal.NewFromInt(500)},
		},
	}

	expectedVoucher := &domain.Voucher{
		VoucherID:     uuid.NewString(),
		BusinessID:    businessID,
		VoucherTypeID: voucherTypeID,
		VoucherNumber: "SAL-1",
		Sequence:      1,
		Date:          date,
		Narration:     "Cash sale",
		TotalAmount:   decimal.NewFromInt(500),
		IsPosted:      true,
	}

	suite.mockVoucherService.On("CreateVoucher",
		mock.AnythingOfType("*context.valueCtx"),
		businessID,
		mock.MatchedBy(func(r dto.CreateVoucherRequest) bool {
			return r.VoucherTypeID == voucherTypeID && len(r.Items) == 2
		}),
		requestingUserID,
	).Return(expectedVoucher, nil).Once()

	body, _ := json.Marshal(reqBody)
	url := fmt.Sprintf("/api/v1/businesses/%s/vouchers", businessID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var responseBody dto.VoucherResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal(expectedVoucher.VoucherID, responseBody.VoucherID)
	suite.Equal("SAL-1", responseBody.VoucherNumber)
	suite.True(responseBody.TotalAmount.Equal(decimal.NewFromInt(500)))

	suite.mockVoucherService.AssertExpectations(suite.T())
}

func (suite *VoucherHandlerTestSuite) TestCreateVoucher_RejectsSingleLine() {
	businessID := uuid.NewString()
	requestingUserID := uuid.NewString()

	// A voucher with a single line can never balance; binding rejects it
	// before the service is reached.
	reqBody := dto.CreateVoucherRequest{
		VoucherTypeID: uuid.NewString(),
		Date:          time.Now(),
		Items: []dto.VoucherItemRequest{
			{LedgerAccountID: uuid.NewString(), DebitAmount: decimal.NewFromInt(100)},
		},
	}

	body, _ := json.Marshal(reqBody)
	url := fmt.Sprintf("/api/v1/businesses/%s/vouchers", businessID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockVoucherService.AssertNotCalled(suite.T(), "CreateVoucher")
}

func (suite *VoucherHandlerTestSuite) TestGetVoucher_NotFound() {
	businessID := uuid.NewString()
	voucherID := uuid.NewString()
	requestingUserID := uuid.NewString()

	suite.mockVoucherService.On("GetVoucherByID",
		mock.AnythingOfType("*context.valueCtx"),
		businessID,
		voucherID,
		requestingUserID,
	).Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/businesses/%s/vouchers/%s", businessID, voucherID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockVoucherService.AssertExpectations(suite.T())
}

func (suite *VoucherHandlerTestSuite) TestListVouchers_PassesFilters() {
	businessID := uuid.NewString()
	requestingUserID := uuid.NewString()
	voucherTypeID := uuid.NewString()
	limit := 10

	expectedResponse := &dto.ListVouchersResponse{
		Vouchers:  []dto.VoucherResponse{},
		NextToken: nil,
	}

	suite.mockVoucherService.On("ListVouchers",
		mock.AnythingOfType("*context.valueCtx"),
		businessID,
		requestingUserID,
		mock.MatchedBy(func(p dto.ListVouchersParams) bool {
			return p.Limit == limit && p.VoucherTypeID != nil && *p.VoucherTypeID == voucherTypeID
		}),
	).Return(expectedResponse, nil).Once()

	url := fmt.Sprintf("/api/v1/businesses/%s/vouchers?limit=%d&voucherTypeID=%s", businessID, limit, voucherTypeID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockVoucherService.AssertExpectations(suite.T())
}

func (suite *VoucherHandlerTestSuite) TestListJournalEntriesByAccount_Success() {
	businessID := uuid.NewString()
	accountID := uuid.NewString()
	requestingUserID := uuid.NewString()
	limit := 50

	expectedEntries := []dto.JournalEntryResponse{
		{
			JournalEntryID:  uuid.NewString(),
			VoucherID:       uuid.NewString(),
			LedgerAccountID: accountID,
			Date:            time.Now(),
			DebitAmount:     decimal.NewFromInt(100),
		},
		{
			JournalEntryID:  uuid.NewString(),
			VoucherID:       uuid.NewString(),
			LedgerAccountID: accountID,
			Date:            time.Now().Add(-24 * time.Hour),
			CreditAmount:    decimal.NewFromInt(50),
		},
	}
	expectedResponse := &dto.ListJournalEntriesResponse{
		Entries:   expectedEntries,
		NextToken: nil,
	}

	suite.mockVoucherService.On("ListJournalEntriesByAccount",
		mock.AnythingOfType("*context.valueCtx"),
		businessID,
		accountID,
		requestingUserID,
		mock.MatchedBy(func(p dto.ListJournalEntriesParams) bool {
			return p.Limit == limit
		}),
	).Return(expectedResponse, nil).Once()

	url := fmt.Sprintf("/api/v1/businesses/%s/accounts/%s/entries?limit=%d", businessID, accountID, limit)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.ListJournalEntriesResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Len(responseBody.Entries, len(expectedEntries))
	if len(responseBody.Entries) == len(expectedEntries) {
		suite.Equal(expectedEntries[0].JournalEntryID, responseBody.Entries[0].JournalEntryID)
		suite.Equal(expectedEntries[1].JournalEntryID, responseBody.Entries[1].JournalEntryID)
	}

	suite.mockVoucherService.AssertExpectations(suite.T())
}

func (suite *VoucherHandlerTestSuite) TestDeleteVoucher_Locked() {
	businessID := uuid.NewString()
	voucherID := uuid.NewString()
	requestingUserID := uuid.NewString()

	suite.mockVoucherService.On("DeleteVoucher",
		mock.AnythingOfType("*context.valueCtx"),
		businessID,
		voucherID,
		requestingUserID,
	).Return(apperrors.NewConflictError("financial year is locked")).Once()

	url := fmt.Sprintf("/api/v1/businesses/%s/vouchers/%s", businessID, voucherID)
	req, _ := http.NewRequest(http.MethodDelete, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(requestingUserID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockVoucherService.AssertExpectations(suite.T())
}

func (suite *VoucherHandlerTestSuite) TestListVouchers_MissingToken() {
	businessID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/businesses/%s/vouchers", businessID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockVoucherService.AssertNotCalled(suite.T(), "ListVouchers")
}

// --- Run Test Suite ---
func TestVoucherHandler(t *testing.T) {
	suite.Run(t, new(VoucherHandlerTestSuite))
}
