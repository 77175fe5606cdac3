package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"vipreviews/internal/app/reviews/entity"
	"vipreviews/internal/app/reviews/repository/mocks"
)

func newManifestService() (*ManifestService, *mocks.MockManifestRepository, *mocks.MockReviewRequestRepository) {
	manifests := new(mocks.MockManifestRepository)
	requests := new(mocks.MockReviewRequestRepository)
	return NewManifestService(manifests, requests), manifests, requests
}

func TestImport_RosterHeaders(t *testing.T) {
	service, manifests, _ := newManifestService()
	ctx := context.Background()

	csv := strings.Join([]string{
		"PassengerFirstName,PassengerLastName,PassengerCellPhoneNumber,PassengerEmailAddress,PickupAddress",
		"Alice,Smith,+15550001111,alice@example.com,123 Main St",
		"Bob,Jones,+15550002222,bob@example.com,456 Oak Ave",
	}, "\n")

	manifests.On("Create", ctx, mock.AnythingOfType("*entity.Manifest")).Return(nil)

	var saved []entity.Contact
	manifests.On("CreateContacts", ctx, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]entity.Contact)
	})

	result, err := service.Import(ctx, "morning-run", strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Equal(t, "morning-run", result.Name)
	assert.Len(t, result.Contacts, 2)
	assert.Equal(t, "Alice Smith", saved[0].Name)
	assert.Equal(t, "+15550001111", saved[0].Phone)
	assert.Equal(t, "alice@example.com", saved[0].Email)
	// Нераспознанные колонки уходят в Extra
	assert.Contains(t, saved[0].Extra, "123 Main St")
}

func TestImport_GenericHeaders(t *testing.T) {
	service, manifests, _ := newManifestService()
	ctx := context.Background()

	csv := "name,phone,email\nCarol,+15550003333,carol@example.com\n"

	manifests.On("Create", ctx, mock.Anything).Return(nil)

	var saved []entity.Contact
	manifests.On("CreateContacts", ctx, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]entity.Contact)
	})

	_, err := service.Import(ctx, "generic", strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Len(t, saved, 1)
	assert.Equal(t, "Carol", saved[0].Name)
	assert.Equal(t, "+15550003333", saved[0].Phone)
}

func TestImport_SkipsEmptyRows(t *testing.T) {
	service, manifests, _ := newManifestService()
	ctx := context.Background()

	csv := "name,phone,email\nDave,+15550004444,\n,,\n"

	manifests.On("Create", ctx, mock.Anything).Return(nil)
	manifests.On("CreateContacts", ctx, mock.MatchedBy(func(contacts []entity.Contact) bool {
		return len(contacts) == 1
	})).Return(nil)

	result, err := service.Import(ctx, "sparse", strings.NewReader(csv))

	assert.NoError(t, err)
	assert.Len(t, result.Contacts, 1)
}

func TestImport_EmptyFile(t *testing.T) {
	service, manifests, _ := newManifestService()

	_, err := service.Import(context.Background(), "empty", strings.NewReader(""))

	assert.ErrorIs(t, err, ErrEmptyManifest)
	manifests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestImport_HeaderOnly(t *testing.T) {
	service, manifests, _ := newManifestService()

	_, err := service.Import(context.Background(), "header-only", strings.NewReader("name,phone,email\n"))

	assert.ErrorIs(t, err, ErrEmptyManifest)
	manifests.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestManifestDelete_CascadesRequestsAndContacts(t *testing.T) {
	service, manifests, requests := newManifestService()
	ctx := context.Background()
	manifestID := uuid.New()

	manifests.On("GetByID", ctx, manifestID).Return(&entity.Manifest{ID: manifestID}, nil)
	requests.On("DeleteByManifest", ctx, manifestID).Return(nil)
	manifests.On("DeleteContactsByManifest", ctx, manifestID).Return(nil)
	manifests.On("Delete", ctx, manifestID).Return(nil)

	err := service.Delete(ctx, manifestID)

	assert.NoError(t, err)
	requests.AssertCalled(t, "DeleteByManifest", ctx, manifestID)
	manifests.AssertCalled(t, "DeleteContactsByManifest", ctx, manifestID)
	manifests.AssertCalled(t, "Delete", ctx, manifestID)
}
