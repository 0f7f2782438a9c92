package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"mothwallet/internal/infra/infratest"
	"mothwallet/internal/models/db_models"
	"mothwallet/internal/models/request_models"
	"mothwallet/internal/repositories"
	"mothwallet/pkg/utils"
)

type ResourceServiceSuite struct {
	suite.Suite
	tagRepo  repositories.TagRepositoryInterface
	accounts repositories.AccountRepository
	tags     TagServiceInterface
	payments PaymentMethodServiceInterface
	alice    uint
	bob      uint
}

func TestResourceServiceSuite(t *testing.T) {
	suite.Run(t, new(ResourceServiceSuite))
}

func (s *ResourceServiceSuite) SetupTest() {
	db := infratest.NewSQLite(s.T())
	accounts := repositories.NewAccountRepository(db)
	s.accounts = accounts
	s.tagRepo = repositories.NewTagRepository(db)
	s.tags = NewTagService(s.tagRepo, accounts, zap.NewNop())
	s.payments = NewPaymentMethodService(repositories.NewPaymentMethodRepository(db), accounts, zap.NewNop())

	alice := &db_models.Account{Email: "alice@example.com", Username: "alice", PasswordHash: "x"}
	bob := &db_models.Account{Email: "bob@example.com", Username: "bob", PasswordHash: "x"}
	s.Require().NoError(accounts.InsertTx(alice, ctx))
	s.Require().NoError(accounts.InsertTx(bob, ctx))
	s.alice, s.bob = alice.ID, bob.ID
}

func req(name, description string) request_models.ResourceRequest {
	return request_models.ResourceRequest{Name: name, Description: description}
}

func (s *ResourceServiceSuite) TestCreateAndList() {
	tag, err := s.tags.Create(ctx, s.alice, req("food", "groceries"))
	s.Require().NoError(err)
	s.NotZero(tag.ID)
	s.Equal(s.alice, tag.AccountID)

	list, err := s.tags.ListAll(ctx, s.alice)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("food", list[0].Name)
	s.Equal("groceries", list[0].Description)

	again, err := s.tags.ListAll(ctx, s.alice)
	s.Require().NoError(err)
	s.Equal(list, again)

	other, err := s.tags.ListAll(ctx, s.bob)
	s.Require().NoError(err)
	s.Empty(other)
}

func (s *ResourceServiceSuite) TestCreateDuplicateName() {
	_, err := s.tags.Create(ctx, s.alice, req("food", ""))
	s.Require().NoError(err)

	_, err = s.tags.Create(ctx, s.alice, req("food", "again"))
	s.ErrorIs(err, utils.ErrNameAlreadyExists)
	s.Equal("Tag 'food' already exists.", utils.UserMessage(err))

	list, err := s.tags.ListAll(ctx, s.alice)
	s.Require().NoError(err)
	s.Len(list, 1)

	_, err = s.tags.Create(ctx, s.bob, req("food", ""))
	s.NoError(err)
}

func (s *ResourceServiceSuite) TestUnknownAccountIsUnauthorized() {
	_, err := s.tags.Create(ctx, 9999, req("food", ""))
	s.ErrorIs(err, utils.ErrUnauthorizedAccount)
	s.Equal("Unauthorized account.", utils.UserMessage(err))

	_, err = s.payments.ListAll(ctx, 0)
	s.ErrorIs(err, utils.ErrUnauthorizedAccount)
}

func (s *ResourceServiceSuite) TestGetOneIsOwnerScoped() {
	tag, err := s.tags.Create(ctx, s.alice, req("food", ""))
	s.Require().NoError(err)

	got, err := s.tags.GetOne(ctx, tag.ID, s.alice)
	s.Require().NoError(err)
	s.Equal("food", got.Name)

	_, err = s.tags.GetOne(ctx, tag.ID, s.bob)
	s.ErrorIs(err, utils.ErrNotFoundOrNotAuthorized)
	s.Equal("Tag not found or not authorized.", utils.UserMessage(err))
}

func (s *ResourceServiceSuite) TestUpdate() {
	visa, err := s.payments.Create(ctx, s.alice, req("Visa", ""))
	s.Require().NoError(err)
	_, err = s.payments.Create(ctx, s.alice, req("Cash", ""))
	s.Require().NoError(err)

	// keeping the name while changing the description is not a conflict
	same, err := s.payments.Update(ctx, visa.ID, s.alice, req("Visa", "credit card"))
	s.Require().NoError(err)
	s.Equal("credit card", same.Description)

	_, err = s.payments.Update(ctx, visa.ID, s.alice, req("Cash", ""))
	s.ErrorIs(err, utils.ErrNameAlreadyExists)
	s.Equal("Payment method 'Cash' already exists.", utils.UserMessage(err))

	renamed, err := s.payments.Update(ctx, visa.ID, s.alice, req("Mastercard", ""))
	s.Require().NoError(err)
	s.Equal(visa.ID, renamed.ID)
	s.Equal("Mastercard", renamed.Name)

	_, err = s.payments.Update(ctx, visa.ID, s.bob, req("Stolen", ""))
	s.ErrorIs(err, utils.ErrNotFoundOrNotAuthorized)
}

// deletingTagRepo removes the row right before the update reaches the store,
// like a delete from another session landing between the read and the write.
type deletingTagRepo struct {
	repositories.TagRepositoryInterface
}

func (r deletingTagRepo) UpdateByIDAndOwner(ctx context.Context, id, accountID uint, name, description string) error {
	if err := r.DeleteByIDAndOwner(ctx, id, accountID); err != nil {
		return err
	}
	return r.TagRepositoryInterface.UpdateByIDAndOwner(ctx, id, accountID, name, description)
}

func (s *ResourceServiceSuite) TestUpdateOfConcurrentlyDeletedResource() {
	tag, err := s.tags.Create(ctx, s.alice, req("food", ""))
	s.Require().NoError(err)

	racing := NewTagService(deletingTagRepo{s.tagRepo}, s.accounts, zap.NewNop())
	_, err = racing.Update(ctx, tag.ID, s.alice, req("groceries", "weekly"))
	s.ErrorIs(err, utils.ErrNotFoundOrNotAuthorized)

	list, err := s.tags.ListAll(ctx, s.alice)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *ResourceServiceSuite) TestDeleteAcrossAccountsLeavesResource() {
	tag, err := s.tags.Create(ctx, s.alice, req("food", ""))
	s.Require().NoError(err)

	_, err = s.tags.Delete(ctx, tag.ID, s.bob)
	s.ErrorIs(err, utils.ErrNotFoundOrNotAuthorized)

	still, err := s.tags.GetOne(ctx, tag.ID, s.alice)
	s.Require().NoError(err)
	s.Equal("food", still.Name)

	deleted, err := s.tags.Delete(ctx, tag.ID, s.alice)
	s.Require().NoError(err)
	s.Equal("food", deleted.Name)

	_, err = s.tags.GetOne(ctx, tag.ID, s.alice)
	s.ErrorIs(err, utils.ErrNotFoundOrNotAuthorized)

	// the name is free again
	_, err = s.tags.Create(ctx, s.alice, req("food", ""))
	s.NoError(err)
}

func (s *ResourceServiceSuite) TestKind() {
	s.Equal("Tag", s.tags.Kind())
	s.Equal("Payment method", s.payments.Kind())
}
