package service_test

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/crestline-remodeling/proposal-api/internal/domain"
	"github.com/crestline-remodeling/proposal-api/internal/repository"
	"github.com/crestline-remodeling/proposal-api/internal/service"
	"github.com/crestline-remodeling/proposal-api/internal/storage"
	"github.com/crestline-remodeling/proposal-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testClock = func() time.Time {
	return time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
}

func createContractService(t *testing.T, db *gorm.DB) (*service.ContractService, storage.Storage) {
	t.Helper()

	store, err := storage.NewLocalStorage(filepath.Join(t.TempDir(), "blobs"))
	require.NoError(t, err)

	svc := service.NewContractService(
		repository.NewContractRepository(db),
		repository.NewProposalRepository(db),
		store,
		zap.NewNop(),
		testClock,
	)
	return svc, store
}

func generateRequest() domain.GenerateContractRequest {
	return domain.GenerateContractRequest{
		ClientName:         "Jordan Smith",
		ContractorName:     "Crestline Remodeling LLC",
		TermsAndConditions: "Payment due within 30 days of completion.",
	}
}

func TestContractService_Generate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := createContractService(t, db)
	ctx := context.Background()

	proposal := testutil.CreateTestProposal(t, db, "Smith Kitchen", nil)

	t.Run("first contract is version 1 and active", func(t *testing.T) {
		dto, err := svc.Generate(ctx, proposal.ID, generateRequest())
		require.NoError(t, err)
		assert.Equal(t, 1, dto.Version)
		assert.True(t, dto.IsActive)
		assert.False(t, dto.FullyExecuted)
	})

	t.Run("regeneration demotes the previous version", func(t *testing.T) {
		second, err := svc.Generate(ctx, proposal.ID, generateRequest())
		require.NoError(t, err)
		assert.Equal(t, 2, second.Version)
		assert.True(t, second.IsActive)

		third, err := svc.Generate(ctx, proposal.ID, generateRequest())
		require.NoError(t, err)
		assert.Equal(t, 3, third.Version)

		var activeCount int64
		require.NoError(t, db.Model(&domain.Contract{}).
			Where("proposal_id = ? AND is_active = ?", proposal.ID, true).
			Count(&activeCount).Error)
		assert.Equal(t, int64(1), activeCount, "exactly one active version at a time")

		active, err := svc.GetActiveByProposal(ctx, proposal.ID)
		require.NoError(t, err)
		assert.Equal(t, third.ID, active.ID)
	})

	t.Run("history lists newest version first", func(t *testing.T) {
		contracts, err := svc.ListByProposal(ctx, proposal.ID)
		require.NoError(t, err)
		require.Len(t, contracts, 3)
		assert.Equal(t, 3, contracts[0].Version)
		assert.Equal(t, 1, contracts[2].Version)
	})

	t.Run("global list paginates across proposals", func(t *testing.T) {
		contracts, total, err := svc.List(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, contracts, 2)

		contracts, _, err = svc.List(ctx, 2, 2)
		require.NoError(t, err)
		assert.Len(t, contracts, 1)
	})

	t.Run("unknown proposal", func(t *testing.T) {
		_, err := svc.Generate(ctx, uuid.New(), generateRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestContractService_Sign(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, store := createContractService(t, db)
	ctx := context.Background()

	proposal := testutil.CreateTestProposal(t, db, "Smith Kitchen", nil)
	contract, err := svc.Generate(ctx, proposal.ID, generateRequest())
	require.NoError(t, err)

	signaturePNG := base64.StdEncoding.EncodeToString([]byte("fake png bytes"))

	t.Run("client signs with signature image", func(t *testing.T) {
		dto, err := svc.Sign(ctx, contract.ID, domain.SignerClient, domain.SignContractRequest{
			Signature: signaturePNG,
			Initials:  "JS",
		})
		require.NoError(t, err)
		require.NotNil(t, dto.ClientSignedAt)
		assert.Equal(t, "2025-06-15T10:30:00Z", *dto.ClientSignedAt)
		assert.Equal(t, "JS", dto.ClientInitials)
		assert.False(t, dto.FullyExecuted)

		expectedPath := storage.SignaturePath(contract.ID.String(), "client")
		assert.Equal(t, expectedPath, dto.ClientSignature)

		rc, err := store.Open(ctx, expectedPath)
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, []byte("fake png bytes"), data)
	})

	t.Run("contractor signs without image", func(t *testing.T) {
		dto, err := svc.Sign(ctx, contract.ID, domain.SignerContractor, domain.SignContractRequest{})
		require.NoError(t, err)
		require.NotNil(t, dto.ContractorSignedAt)
		assert.Empty(t, dto.ContractorSignature)
		assert.True(t, dto.FullyExecuted)
	})

	t.Run("re-signing restamps but keeps existing signature and initials", func(t *testing.T) {
		dto, err := svc.Sign(ctx, contract.ID, domain.SignerClient, domain.SignContractRequest{})
		require.NoError(t, err)
		require.NotNil(t, dto.ClientSignedAt)
		assert.Equal(t, "JS", dto.ClientInitials, "initials survive an empty re-sign")
		assert.NotEmpty(t, dto.ClientSignature, "signature path survives an empty re-sign")
	})

	t.Run("invalid base64 signature", func(t *testing.T) {
		_, err := svc.Sign(ctx, contract.ID, domain.SignerClient, domain.SignContractRequest{
			Signature: "not-base64!!!",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, service.ErrInvalidInput))
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := svc.Sign(ctx, contract.ID, domain.SignerRole("witness"), domain.SignContractRequest{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, service.ErrInvalidInput))
	})

	t.Run("unknown contract", func(t *testing.T) {
		_, err := svc.Sign(ctx, uuid.New(), domain.SignerClient, domain.SignContractRequest{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestContractService_GetSignature(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := createContractService(t, db)
	ctx := context.Background()

	proposal := testutil.CreateTestProposal(t, db, "Smith Kitchen", nil)
	contract, err := svc.Generate(ctx, proposal.ID, generateRequest())
	require.NoError(t, err)

	signaturePNG := base64.StdEncoding.EncodeToString([]byte("fake png bytes"))
	_, err = svc.Sign(ctx, contract.ID, domain.SignerClient, domain.SignContractRequest{Signature: signaturePNG})
	require.NoError(t, err)

	t.Run("returns the stored image", func(t *testing.T) {
		rc, err := svc.GetSignature(ctx, contract.ID, domain.SignerClient)
		require.NoError(t, err)
		defer rc.Close()

		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, []byte("fake png bytes"), data)
	})

	t.Run("unsigned role", func(t *testing.T) {
		_, err := svc.GetSignature(ctx, contract.ID, domain.SignerContractor)
		require.Error(t, err)
		assert.True(t, errors.Is(err, service.ErrNotFound))
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := svc.GetSignature(ctx, contract.ID, domain.SignerRole("witness"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, service.ErrInvalidInput))
	})

	t.Run("unknown contract", func(t *testing.T) {
		_, err := svc.GetSignature(ctx, uuid.New(), domain.SignerClient)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestContractService_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, store := createContractService(t, db)
	ctx := context.Background()

	proposal := testutil.CreateTestProposal(t, db, "Smith Kitchen", nil)
	contract, err := svc.Generate(ctx, proposal.ID, generateRequest())
	require.NoError(t, err)

	signaturePNG := base64.StdEncoding.EncodeToString([]byte("fake png bytes"))
	_, err = svc.Sign(ctx, contract.ID, domain.SignerClient, domain.SignContractRequest{Signature: signaturePNG})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, contract.ID))

	_, err = svc.GetByID(ctx, contract.ID)
	require.Error(t, err)

	_, err = store.Open(ctx, storage.SignaturePath(contract.ID.String(), "client"))
	assert.Error(t, err, "signature blob removed with the contract")

	t.Run("unknown contract", func(t *testing.T) {
		err := svc.Delete(ctx, uuid.New())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}
