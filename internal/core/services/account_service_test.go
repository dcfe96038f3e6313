package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ledgerline/ledgerline_backend/internal/apperrors"
	"github.com/ledgerline/ledgerline_backend/internal/core/domain"
	portssvc "github.com/ledgerline/ledgerline_backend/internal/core/ports/services"
	"github.com/ledgerline/ledgerline_backend/internal/core/services"
	"github.com/ledgerline/ledgerline_backend/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1500",
		Name:        "Office Equipment",
		AccountType: domain.Asset,
		Description: "Desks and machines",
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Code == req.Code && acc.AccountType == domain.Asset &&
			acc.Balance.IsZero() && acc.IsActive && acc.AccountID != ""
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal(req.Name, account.Name)
	suite.True(account.Balance.IsZero())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash Again",
		AccountType: domain.Asset,
	}

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Contains(err.Error(), "1000")
}

func (suite *AccountServiceTestSuite) TestGetAccountByCode_Success() {
	ctx := context.Background()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1200",
		Name:        "Inventory",
		AccountType: domain.Asset,
		Balance:     decimal.NewFromInt(300),
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1200").
		Return(&account, nil).Once()

	found, err := suite.service.GetAccountByCode(ctx, "1200")

	suite.Require().NoError(err)
	suite.Equal(account.AccountID, found.AccountID)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PatchesOnlyProvidedFields() {
	ctx := context.Background()
	existing := &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		Description: "Till and bank",
		Balance:     decimal.NewFromInt(500),
		IsActive:    true,
	}
	newName := "Cash and Equivalents"

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Name == newName && acc.Description == "Till and bank" &&
			acc.Balance.Equal(decimal.NewFromInt(500)) && acc.IsActive
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, existing.AccountID, dto.UpdateAccountRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RefusesControlAccountCodeChange() {
	ctx := context.Background()
	existing := &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        domain.CodeRetainedEarnings,
		Name:        "Retained Earnings",
		AccountType: domain.Equity,
		IsActive:    true,
	}
	newCode := "3900"

	suite.mockAccountRepo.On("FindAccountByID", ctx, existing.AccountID).Return(existing, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, existing.AccountID, dto.UpdateAccountRequest{Code: &newCode})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "1500",
		AccountType: domain.Asset,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("HasEntryLines", ctx, account.AccountID).Return(false, nil).Once()
	suite.mockAccountRepo.On("DeleteAccount", ctx, account.AccountID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, account.AccountID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_RefusesControlAccount() {
	ctx := context.Background()
	inventory := &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        domain.CodeInventory,
		AccountType: domain.Asset,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, inventory.AccountID).Return(inventory, nil).Once()

	err := suite.service.DeleteAccount(ctx, inventory.AccountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_RefusesReferencedAccount() {
	ctx := context.Background()
	account := &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        "6000",
		AccountType: domain.Expense,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("HasEntryLines", ctx, account.AccountID).Return(true, nil).Once()

	err := suite.service.DeleteAccount(ctx, account.AccountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListAccounts_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockAccountRepo.On("ListAccounts", ctx, false).Return([]domain.Account{}, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, false)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
