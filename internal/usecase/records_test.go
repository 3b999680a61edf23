package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saltandserenity/booking/internal/entity"
	"github.com/saltandserenity/booking/internal/infra/recordstore"
)

// sliceLeads is an in-memory lead store used by the paging property.
type sliceLeads struct {
	leads      []entity.Lead
	lastOffset int
}

func newSliceLeads(n int) *sliceLeads {
	s := &sliceLeads{}
	for i := 0; i < n; i++ {
		s.leads = append(s.leads, entity.Lead{ID: fmt.Sprintf("rec%04d", i)})
	}
	return s
}

func (s *sliceLeads) Page(ctx context.Context, offset, limit int) (entity.LeadPage, error) {
	s.lastOffset = offset
	if offset >= len(s.leads) {
		return entity.LeadPage{Total: len(s.leads)}, nil
	}
	end := offset + limit
	if end > len(s.leads) {
		end = len(s.leads)
	}
	return entity.LeadPage{Leads: s.leads[offset:end], Total: len(s.leads)}, nil
}

func (s *sliceLeads) Get(ctx context.Context, id string) (*entity.Lead, error) {
	return nil, nil
}

func (s *sliceLeads) Create(ctx context.Context, lead *entity.Lead) error {
	return nil
}

func (s *sliceLeads) UpdateStatus(ctx context.Context, id string, status entity.LeadStatus) (*entity.Lead, error) {
	return nil, nil
}

func TestListRecordsPagingProperty(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("every page in range has the right window", prop.ForAll(
		func(total, pick int) bool {
			store := newSliceLeads(total)
			uc := NewListRecordsUseCase(store)
			pages := TotalPages(total)
			page := pick%pages + 1

			out, err := uc.Execute(context.Background(), fmt.Sprint(page))
			if err != nil {
				return false
			}
			wantCount := PageSize
			if page == pages {
				wantCount = total - (pages-1)*PageSize
			}
			return store.lastOffset == (page-1)*PageSize &&
				len(out.Records) <= PageSize &&
				len(out.Records) == wantCount &&
				out.TotalPages == pages &&
				out.Total == total &&
				out.Records[0].ID == fmt.Sprintf("rec%04d", (page-1)*PageSize)
		},
		gen.IntRange(1, 600),
		gen.IntRange(0, 1000),
	))

	properties.TestingRun(t)
}

func TestListRecordsPastTheEnd(t *testing.T) {
	uc := NewListRecordsUseCase(newSliceLeads(120))

	out, err := uc.Execute(context.Background(), "7")

	require.NoError(t, err)
	assert.Empty(t, out.Records)
	assert.NotNil(t, out.Records)
	assert.Equal(t, 3, out.TotalPages)
	assert.Equal(t, 7, out.Page)
}

func TestListRecordsRejectsBadPage(t *testing.T) {
	uc := NewListRecordsUseCase(newSliceLeads(10))

	for _, raw := range []string{"0", "-2", "two", "1.5"} {
		_, err := uc.Execute(context.Background(), raw)
		assert.True(t, IsKind(err, KindValidation), raw)
	}

	out, err := uc.Execute(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Len(t, out.Records, 10)
}

func TestListRecordsTranslatesStoreError(t *testing.T) {
	leads := new(MockLeadRepository)
	leads.On("Page", mock.Anything, 0, PageSize).Return(entity.LeadPage{}, &recordstore.UpstreamError{Status: 403, Type: "INVALID_PERMISSIONS_OR_MODEL_NOT_FOUND"})

	_, err := NewListRecordsUseCase(leads).Execute(context.Background(), "1")

	var ucErr *Error
	require.ErrorAs(t, err, &ucErr)
	assert.Equal(t, KindUpstream, ucErr.Kind)
	assert.Equal(t, 403, ucErr.UpstreamStatus)
	assert.Contains(t, ucErr.Details, "no access")
}

func TestListReferrers(t *testing.T) {
	refs := new(MockReferrerRepository)
	refs.On("List", mock.Anything).Return(nil, nil).Once()

	out, err := NewListReferrersUseCase(refs).Execute(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, out.Referrers)
	assert.Empty(t, out.Referrers)
}

func TestUpdateLeadStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("moves forward", func(t *testing.T) {
		leads := new(MockLeadRepository)
		leads.On("Get", ctx, "recL1").Return(&entity.Lead{ID: "recL1", Status: entity.LeadStatusNew}, nil)
		leads.On("UpdateStatus", ctx, "recL1", entity.LeadStatusContacted).
			Return(&entity.Lead{ID: "recL1", Status: entity.LeadStatusContacted}, nil)

		lead, err := NewUpdateLeadStatusUseCase(leads, zerolog.Nop()).Execute(ctx, "recL1", LeadStatusInput{Status: "Contacted"})

		require.NoError(t, err)
		assert.Equal(t, entity.LeadStatusContacted, lead.Status)
	})

	t.Run("refuses to move back", func(t *testing.T) {
		leads := new(MockLeadRepository)
		leads.On("Get", ctx, "recL1").Return(&entity.Lead{ID: "recL1", Status: entity.LeadStatusBooked}, nil)

		_, err := NewUpdateLeadStatusUseCase(leads, zerolog.Nop()).Execute(ctx, "recL1", LeadStatusInput{Status: "New"})

		assert.True(t, IsKind(err, KindValidation))
		leads.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown status", func(t *testing.T) {
		leads := new(MockLeadRepository)

		_, err := NewUpdateLeadStatusUseCase(leads, zerolog.Nop()).Execute(ctx, "recL1", LeadStatusInput{Status: "Lost"})

		assert.True(t, IsKind(err, KindValidation))
		leads.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}
