package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/heysh/crm-backend/internal/entity"
)

type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, c *entity.Contact) (*StoredContact, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StoredContact), args.Error(1)
}

func (m *MockContactRepository) FindByID(ctx context.Context, id string) (*StoredContact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StoredContact), args.Error(1)
}

func (m *MockContactRepository) FindByEmail(ctx context.Context, email string) (*StoredContact, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StoredContact), args.Error(1)
}

func (m *MockContactRepository) EmailExistsForOther(ctx context.Context, email, excludeID string) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockContactRepository) FindAll(ctx context.Context, filter ContactFilter) ([]*StoredContact, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*StoredContact), args.Error(1)
}

func (m *MockContactRepository) Update(ctx context.Context, id string, c *entity.Contact) error {
	args := m.Called(ctx, id, c)
	return args.Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContactRepository) FindBySegment(ctx context.Context, def *SegmentDefinition, limit int) ([]*StoredContact, error) {
	args := m.Called(ctx, def, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*StoredContact), args.Error(1)
}

func (m *MockContactRepository) CountByStatus(ctx context.Context) (map[entity.ContactStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entity.ContactStatus]int), args.Error(1)
}

func (m *MockContactRepository) AverageEngagement(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockContactRepository) TopEngaged(ctx context.Context, limit int) ([]*StoredContact, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*StoredContact), args.Error(1)
}

type MockTimelineRepository struct {
	mock.Mock
}

func (m *MockTimelineRepository) Create(ctx context.Context, entry *entity.TimelineEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTimelineRepository) FindByContactID(ctx context.Context, contactID string, limit, offset int) ([]*entity.TimelineEntry, error) {
	args := m.Called(ctx, contactID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.TimelineEntry), args.Error(1)
}

func (m *MockTimelineRepository) ListInteractions(ctx context.Context, contactID string) ([]entity.Interaction, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Interaction), args.Error(1)
}

func (m *MockTimelineRepository) CountByTypeForCampaign(ctx context.Context, campaignID string) (map[entity.InteractionType]int, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entity.InteractionType]int), args.Error(1)
}

type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) Create(ctx context.Context, c *entity.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCampaignRepository) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Campaign, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) Update(ctx context.Context, c *entity.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCampaignRepository) CreateAsset(ctx context.Context, a *entity.CampaignAsset) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockCampaignRepository) FindAssetsByCampaignID(ctx context.Context, campaignID string) ([]*entity.CampaignAsset, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CampaignAsset), args.Error(1)
}

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(to, subject, htmlBody string) error {
	args := m.Called(to, subject, htmlBody)
	return args.Error(0)
}

type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishRescore(ctx context.Context, payload RescorePayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
