package syncing

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
	"github.com/vfg2006/traffic-sync-worker/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

// harness monta o orquestrador com mocks e guarda as continuações publicadas
type harness struct {
	source       *mocks.MockAdsSource
	jobs         *mocks.MockJobStore
	writer       *mocks.MockEntityWriter
	ids          *mocks.MockIDSource
	publisher    *mocks.MockPublisher
	clock        *fakeClock
	orchestrator *Orchestrator
	published    []domain.ContinuationPayload
	progress     []int
}

func testOptions() Options {
	return Options{
		PageSize:          100,
		CampaignBatchSize: 10,
		AdSetBatchSize:    10,
	}
}

func newHarness(t *testing.T, ctrl *gomock.Controller, opts Options) *harness {
	h := &harness{
		source:    mocks.NewMockAdsSource(ctrl),
		jobs:      mocks.NewMockJobStore(ctrl),
		writer:    mocks.NewMockEntityWriter(ctrl),
		ids:       mocks.NewMockIDSource(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     newFakeClock(),
	}

	// Mock: as esperas de backoff consomem o relógio da invocação
	fetcher, _ := newTestFetcher(testFetcherConfig())
	fetcher.sleep = func(_ context.Context, d time.Duration) error {
		h.clock.Advance(d)
		return nil
	}

	h.orchestrator = NewOrchestrator(Dependencies{
		Source:   h.source,
		Jobs:     h.jobs,
		IDs:      h.ids,
		Fetcher:  fetcher,
		Insights: NewInsightsResolver(h.source, fetcher, testInsightFields),
		Upserter: NewUpserter(map[domain.EntityType]EntityWriter{
			domain.EntityAccount:  h.writer,
			domain.EntityCampaign: h.writer,
			domain.EntityAdSet:    h.writer,
			domain.EntityAd:       h.writer,
		}),
		Scheduler: NewContinuationScheduler(ContinuationConfig{MaxIterations: 500, DeliveryRetries: 3}, h.publisher, nil),
		Guard:     NewGuard(h.jobs, 500),
		Budget:    NewTimeBudget(80*time.Second, 5*time.Second, h.clock.Now),
		Now:       h.clock.Now,
	}, opts)

	return h
}

// allowJobReads aceita a leitura do job (sempre em processamento) e as escritas de progresso
func (h *harness) allowJobReads() {
	h.jobs.EXPECT().GetJob(gomock.Any(), gomock.Any()).
		Return(&domain.SyncJob{Status: domain.JobStatusProcessing}, nil).AnyTimes()
	h.jobs.EXPECT().UpdateProgress(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, progress int) error {
			h.progress = append(h.progress, progress)
			return nil
		}).AnyTimes()
}

// allowInsights responde todas as consultas de insights com dados na primeira tentativa
func (h *harness) allowInsights() {
	h.source.EXPECT().GetInsights(gomock.Any(), gomock.Any()).
		Return(&domain.InsightsRecord{Impressions: 1000, Clicks: 20, Spend: 35.5}, nil).AnyTimes()
}

func (h *harness) allowPublish() {
	h.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg domain.ContinuationMessage, _ time.Duration) (string, error) {
			var payload domain.ContinuationPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				return "", err
			}
			h.published = append(h.published, payload)
			return msg.ID, nil
		}).AnyTimes()
}

func (h *harness) lastPublished(t *testing.T) domain.ContinuationPayload {
	t.Helper()
	require.NotEmpty(t, h.published)
	return h.published[len(h.published)-1]
}

func campaignsPage(prefix string, n int, next string) *domain.Page[domain.Campaign] {
	items := make([]domain.Campaign, n)
	for i := range items {
		items[i] = domain.Campaign{ID: fmt.Sprintf("%s-%03d", prefix, i), AccountID: "123"}
	}
	return &domain.Page[domain.Campaign]{Items: items, NextCursor: next}
}

func basePayload(phase domain.Phase) domain.ContinuationPayload {
	return domain.ContinuationPayload{
		RequestID: "req-1",
		AccountID: "123",
		Timeframe: domain.TimeframeLast30Days,
		Phase:     phase,
		Iteration: 1,
	}
}

func TestOrchestrator_AccountPhase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl, testOptions())
	h.allowJobReads()
	h.allowPublish()

	payload := basePayload("")
	payload.Iteration = 0

	// Mock: job criado e marcado em processamento na primeira invocação
	h.jobs.EXPECT().EnsureJob(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job *domain.SyncJob) (bool, error) {
			assert.Equal(t, "req-1", job.RequestID)
			assert.Equal(t, domain.TimeframeLast30Days, job.Timeframe)
			return true, nil
		})
	h.jobs.EXPECT().MarkProcessing(gomock.Any(), "req-1").Return(nil)

	h.source.EXPECT().GetAccount(gomock.Any(), "123").
		Return(&domain.AccountSnapshot{ID: "123", Name: "Loja A"}, nil)

	// Mock: consulta completa vazia e a reduzida de 7 dias com dados
	gomock.InOrder(
		h.source.EXPECT().GetInsights(gomock.Any(), gomock.Any()).Return(nil, nil),
		h.source.EXPECT().GetInsights(gomock.Any(), gomock.Any()).
			Return(&domain.InsightsRecord{Impressions: 500, Clicks: 10, Spend: 20}, nil),
	)

	h.writer.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entity domain.Entity) (bool, error) {
			account, ok := entity.(*domain.AccountSnapshot)
			require.True(t, ok)
			assert.Equal(t, domain.InsightsSourceReduced7, account.Metrics.Source)
			assert.Equal(t, int64(500), account.Metrics.Impressions)
			return true, nil
		})

	result, err := h.orchestrator.Run(context.Background(), payload)
	require.NoError(t, err)

	assert.Equal(t, domain.StateCampaigns, result.State)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, []int{10, 15, 25, 35, 40}, h.progress)

	next := h.lastPublished(t)
	assert.Equal(t, domain.PhaseCampaigns, next.Phase)
	assert.Equal(t, 1, next.Iteration)
	assert.Empty(t, next.Cursor)
	assert.Equal(t, 1, next.Stats.Accounts)
}

func TestOrchestrator_AccountNotFoundFailsJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl, testOptions())
	h.allowJobReads()

	payload := basePayload(domain.PhaseAccount)
	payload.Iteration = 0

	h.jobs.EXPECT().EnsureJob(gomock.Any(), gomock.Any()).Return(false, nil)
	h.jobs.EXPECT().MarkProcessing(gomock.Any(), "req-1").Return(nil)
	h.source.EXPECT().GetAccount(gomock.Any(), "123").Return(nil, errGone)
	h.jobs.EXPECT().Fail(gomock.Any(), "req-1", gomock.Any()).Return(nil)

	result, err := h.orchestrator.Run(context.Background(), payload)

	var notFoundErr *EntityNotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, domain.EntityAccount, notFoundErr.Type)
	assert.Equal(t, domain.StateFailed, result.State)
}

// 250 campanhas em páginas de 100 geram duas continuações da própria fase e a
// transição para conjuntos com os 250 ids na terceira invocação
func TestOrchestrator_CampaignPagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl, testOptions())
	h.allowJobReads()
	h.allowInsights()
	h.allowPublish()

	h.writer.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(true, nil).Times(250)

	gomock.InOrder(
		h.source.EXPECT().ListCampaigns(gomock.Any(), "123", domain.PageRequest{Limit: 100}).
			Return(campaignsPage("p1", 100, "after-1"), nil),
		h.source.EXPECT().ListCampaigns(gomock.Any(), "123", domain.PageRequest{Limit: 100, After: "after-1"}).
			Return(campaignsPage("p2", 100, "after-2"), nil),
		h.source.EXPECT().ListCampaigns(gomock.Any(), "123", domain.PageRequest{Limit: 100, After: "after-2"}).
			Return(campaignsPage("p3", 50, ""), nil),
	)

	payload := basePayload(domain.PhaseCampaigns)
	for invocation := 1; invocation <= 3; invocation++ {
		result, err := h.orchestrator.Run(context.Background(), payload)
		require.NoError(t, err)
		assert.False(t, result.Deferred)
		payload = h.lastPublished(t)
	}

	require.Len(t, h.published, 3)
	assert.Equal(t, domain.PhaseCampaigns, h.published[0].Phase)
	assert.Equal(t, domain.PhaseCampaigns, h.published[1].Phase)
	assert.NotEqual(t, h.published[0].Cursor, h.published[1].Cursor)
	assert.Equal(t, h.published[0].Cursor, h.published[1].PreviousCursor)

	final := h.published[2]
	assert.Equal(t, domain.PhaseAdSets, final.Phase)
	assert.Len(t, final.CampaignIDs, 250)
	assert.Empty(t, final.Cursor)
	assert.Equal(t, 250, final.Stats.Campaigns)
	assert.Equal(t, 250, final.Stats.CampaignsTotal)
	assert.Equal(t, 4, final.Iteration)

	// O progresso nunca regride
	for i := 1; i < len(h.progress); i++ {
		assert.GreaterOrEqual(t, h.progress[i], h.progress[i-1])
	}
}

// Com 80s de limite e 5s de margem, 76s decorridos adiam o trabalho e o cursor
// aponta para a primeira campanha não processada
func TestOrchestrator_TimeBudgetDeferral(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl, testOptions())
	h.allowJobReads()
	h.allowInsights()
	h.allowPublish()

	page := campaignsPage("c", 10, "")
	h.source.EXPECT().ListCampaigns(gomock.Any(), "123", domain.PageRequest{Limit: 100}).Return(page, nil).Times(2)

	// Mock: a terceira gravação leva o relógio para 76s
	saved := 0
	h.writer.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.Entity) (bool, error) {
			saved++
			if saved == 3 {
				h.clock.Advance(76 * time.Second)
			}
			return true, nil
		}).Times(10)

	result, err := h.orchestrator.Run(context.Background(), basePayload(domain.PhaseCampaigns))
	require.NoError(t, err)
	assert.True(t, result.Deferred)
	assert.Equal(t, domain.StateCampaigns, result.State)
	assert.Equal(t, 3, result.Processed)

	deferred := h.lastPublished(t)
	assert.Equal(t, domain.PhaseCampaigns, deferred.Phase)
	assert.Equal(t, []string{"c-000", "c-001", "c-002"}, deferred.CampaignIDs)

	point, err := DecodeCursor(deferred.Cursor)
	require.NoError(t, err)
	assert.Equal(t, ResumePoint{ParentID: "123", Offset: 3}, point)

	// A continuação retoma da quarta campanha e segue para a fase de conjuntos
	result, err = h.orchestrator.Run(context.Background(), deferred)
	require.NoError(t, err)
	assert.False(t, result.Deferred)
	assert.Equal(t, 7, result.Processed)

	next := h.lastPublished(t)
	assert.Equal(t, domain.PhaseAdSets, next.Phase)
	assert.Len(t, next.CampaignIDs, 10)
	assert.Equal(t, 10, next.Stats.Campaigns)
}

func TestOrchestrator_NoCampaignsCompletesJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl, testOptions())
	h.allowJobReads()

	h.source.EXPECT().ListCampaigns(gomock.Any(), "123", gomock.Any()).Return(campaignsPage("c", 0, ""), nil)
	h.jobs.EXPECT().Complete(gomock.Any(), "req-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, summary domain.SyncSummary) error {
			assert.Equal(t, domain.ReasonNoCampaigns, summary.Reason)
			assert.Equal(t, 2, summary.Iterations)
			return nil
		})

	result, err := h.orchestrator.Run(context.Background(), basePayload(domain.PhaseCampaigns))
	require.NoError(t, err)
	assert.Equal(t, domain.StateCompleted, result.State)
	assert.Nil(t, result.NextPayload)
}

func TestOrchestrator_AdSetsBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl, testOptions())
	h.allowJobReads()
	h.allowInsights()
	h.allowPublish()

	campaignIDs := make([]string, 12)
	for i := range campaignIDs {
		campaignIDs[i] = fmt.Sprintf("c%02d", i)
	}

	payload := basePayload(domain.PhaseAdSets)
	payload.CampaignIDs = campaignIDs
	payload.Stats.CampaignsTotal = 12

	// Mock: a campanha c03 foi removida; as demais têm um conjunto cada
	h.source.EXPECT().ListAdSets(gomock.Any(), "c03", gomock.Any()).Return(nil, errGone)
	h.source.EXPECT().ListAdSets(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, campaignID string, _ domain.PageRequest) (*domain.Page[domain.AdSet], error) {
			return &domain.Page[domain.AdSet]{Items: []domain.AdSet{{ID: "as-" + campaignID, CampaignID: campaignID}}}, nil
		}).Times(9)
	h.writer.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(true, nil).Times(9)

	result, err := h.orchestrator.Run(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, 9, result.Processed)
	assert.Equal(t, 1, result.Failed)

	next := h.lastPublished(t)
	assert.Equal(t, domain.PhaseAdSets, next.Phase)
	assert.Equal(t, []string{"c10", "c11"}, next.CampaignIDs)
	assert.Len(t, next.AdSetIDs, 9)
	assert.Equal(t, 1, next.Stats.Errors)
	assert.Equal(t, 9, next.Stats.AdSets)
}

func TestOrchestrator_AdSetsTransitionToAds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl, testOptions())
	h.allowJobReads()
	h.allowInsights()
	h.allowPublish()

	payload := basePayload(domain.PhaseAdSets)
	payload.CampaignIDs = []string{"c1"}
	payload.AdSetIDs = []string{"as-0"}

	// Mock: duas páginas de conjuntos para a mesma campanha
	gomock.InOrder(
		h.source.EXPECT().ListAdSets(gomock.Any(), "c1", domain.PageRequest{Limit: 100}).
			Return(&domain.Page[domain.AdSet]{Items: []domain.AdSet{{ID: "as-1"}}, NextCursor: "next"}, nil),
		h.source.EXPECT().ListAdSets(gomock.Any(), "c1", domain.PageRequest{Limit: 100, After: "next"}).
			Return(&domain.Page[domain.AdSet]{Items: []domain.AdSet{{ID: "as-2"}}}, nil),
	)
	h.writer.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)

	result, err := h.orchestrator.Run(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, domain.StateAds, result.State)

	next := h.lastPublished(t)
	assert.Equal(t, domain.PhaseAds, next.Phase)
	assert.Equal(t, []string{"as-0", "as-1", "as-2"}, next.AdSetIDs)
	assert.Equal(t, 3, next.Stats.AdSetsTotal)
	assert.Empty(t, next.CampaignIDs)
}

func TestOrchestrator_AdsPhaseCompletes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl, testOptions())
	h.allowJobReads()
	h.allowInsights()

	payload := basePayload(domain.PhaseAds)
	payload.AdSetIDs = []string{"as-1", "as-2"}
	payload.Stats = domain.SyncStats{Accounts: 1, Campaigns: 1, AdSets: 2, AdSetsTotal: 2}

	h.source.EXPECT().ListAds(gomock.Any(), "as-1", gomock.Any()).
		Return(&domain.Page[domain.Ad]{Items: []domain.Ad{{ID: "ad-1"}, {ID: "ad-2"}}}, nil)
	h.source.EXPECT().ListAds(gomock.Any(), "as-2", gomock.Any()).
		Return(&domain.Page[domain.Ad]{Items: []domain.Ad{{ID: "ad-3"}}}, nil)

	// Mock: a gravação do ad-2 falha e não interrompe os irmãos
	h.writer.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entity domain.Entity) (bool, error) {
			if entity.NaturalID() == "ad-2" {
				return false, errors.New("connection reset")
			}
			return true, nil
		}).Times(3)

	h.jobs.EXPECT().Complete(gomock.Any(), "req-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, summary domain.SyncSummary) error {
			assert.Equal(t, domain.ReasonFinished, summary.Reason)
			assert.Equal(t, 2, summary.Ads)
			assert.Equal(t, 1, summary.Errors)
			assert.Equal(t, 2, summary.AdSets)
			return nil
		})

	result, err := h.orchestrator.Run(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCompleted, result.State)
	assert.Equal(t, domain.ReasonFinished, result.Reason)
	assert.Equal(t, 1, result.Failed)
}

// Fase de anúncios sem conjuntos é rejeitada sem chamar a fonte
func TestOrchestrator_AdsWithoutAdSetIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl, testOptions())
	h.allowJobReads()

	payload := basePayload(domain.PhaseAds)
	payload.AdSetIDs = []string{}

	h.jobs.EXPECT().Fail(gomock.Any(), "req-1", gomock.Any()).Return(nil)

	result, err := h.orchestrator.Run(context.Background(), payload)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAdSetIDs)
	assert.True(t, IsValidation(err))
	assert.Equal(t, domain.StateFailed, result.State)
}

func TestOrchestrator_AdSetsWithoutCampaignIDs(t *testing.T) {
	tests := []struct {
		name     string
		fallback bool
		setup    func(h *harness)
		validate func(t *testing.T, h *harness, result *PhaseResult, err error)
	}{
		{
			name: "Sem fallback falha com validação",
			setup: func(h *harness) {
				h.jobs.EXPECT().Fail(gomock.Any(), "req-1", gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, h *harness, result *PhaseResult, err error) {
				assert.ErrorIs(t, err, ErrMissingCampaignIDs)
				assert.Equal(t, domain.StateFailed, result.State)
			},
		},
		{
			name:     "Fallback recupera os ids do banco",
			fallback: true,
			setup: func(h *harness) {
				h.allowInsights()
				h.allowPublish()
				h.ids.EXPECT().ListCampaignIDs(gomock.Any(), "123").Return([]string{"c1"}, nil)
				h.source.EXPECT().ListAdSets(gomock.Any(), "c1", gomock.Any()).
					Return(&domain.Page[domain.AdSet]{Items: []domain.AdSet{{ID: "as-1"}}}, nil)
				h.writer.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			validate: func(t *testing.T, h *harness, result *PhaseResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, []string{"as-1"}, h.lastPublished(t).AdSetIDs)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			opts := testOptions()
			opts.StoreFallback = tt.fallback
			h := newHarness(t, ctrl, opts)
			tt.setup(h)
			h.allowJobReads()

			result, err := h.orchestrator.Run(context.Background(), basePayload(domain.PhaseAdSets))
			tt.validate(t, h, result, err)
		})
	}
}

func TestOrchestrator_StopsBeforeExternalCalls(t *testing.T) {
	tests := []struct {
		name     string
		opts     func(o *Options)
		payload  func(p *domain.ContinuationPayload)
		setup    func(h *harness)
		validate func(t *testing.T, result *PhaseResult, err error)
	}{
		{
			name: "Motor desligado",
			opts: func(o *Options) { o.Disabled = true },
			validate: func(t *testing.T, result *PhaseResult, err error) {
				require.NoError(t, err)
				assert.True(t, result.Skipped)
			},
		},
		{
			name:    "Limite de iterações conclui o job",
			payload: func(p *domain.ContinuationPayload) { p.Iteration = 500 },
			setup: func(h *harness) {
				h.jobs.EXPECT().Complete(gomock.Any(), "req-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, summary domain.SyncSummary) error {
						assert.Equal(t, domain.ReasonMaxIterationsReached, summary.Reason)
						return nil
					})
			},
			validate: func(t *testing.T, result *PhaseResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.StateCompleted, result.State)
				assert.Equal(t, domain.ReasonMaxIterationsReached, result.Reason)
			},
		},
		{
			name: "Cursor repetido conclui o job",
			payload: func(p *domain.ContinuationPayload) {
				p.Cursor = EncodeCursor(ResumePoint{ParentID: "123", After: "x"})
				p.PreviousCursor = p.Cursor
			},
			setup: func(h *harness) {
				h.jobs.EXPECT().Complete(gomock.Any(), "req-1", gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, result *PhaseResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.ReasonRepeatedCursor, result.Reason)
			},
		},
		{
			name: "Requisição cancelada",
			setup: func(h *harness) {
				h.jobs.EXPECT().GetJob(gomock.Any(), "req-1").Return(&domain.SyncJob{Status: domain.JobStatusCancelled}, nil)
			},
			validate: func(t *testing.T, result *PhaseResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.StateCancelled, result.State)
				assert.Nil(t, result.NextPayload)
			},
		},
		{
			name: "Job já concluído",
			setup: func(h *harness) {
				h.jobs.EXPECT().GetJob(gomock.Any(), "req-1").Return(&domain.SyncJob{Status: domain.JobStatusCompleted}, nil)
			},
			validate: func(t *testing.T, result *PhaseResult, err error) {
				require.NoError(t, err)
				assert.True(t, result.Skipped)
			},
		},
		{
			name:    "Fase desconhecida",
			payload: func(p *domain.ContinuationPayload) { p.Phase = "creatives" },
			setup: func(h *harness) {
				h.jobs.EXPECT().Fail(gomock.Any(), "req-1", gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, result *PhaseResult, err error) {
				assert.True(t, IsValidation(err))
				assert.Equal(t, domain.StateFailed, result.State)
			},
		},
		{
			name:    "Payload sem conta",
			payload: func(p *domain.ContinuationPayload) { p.AccountID = "" },
			setup: func(h *harness) {
				h.jobs.EXPECT().Fail(gomock.Any(), "req-1", gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, result *PhaseResult, err error) {
				assert.True(t, IsValidation(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			opts := testOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			payload := basePayload(domain.PhaseCampaigns)
			if tt.payload != nil {
				tt.payload(&payload)
			}

			// Mock: nenhuma chamada à fonte é esperada
			h := newHarness(t, ctrl, opts)
			if tt.setup != nil {
				tt.setup(h)
			}

			result, err := h.orchestrator.Run(context.Background(), payload)
			tt.validate(t, result, err)
		})
	}
}

func TestOrchestrator_RateLimitExhaustedFailsJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl, testOptions())
	h.allowJobReads()

	// Mock: 1 tentativa + 3 repetições
	h.source.EXPECT().ListCampaigns(gomock.Any(), "123", gomock.Any()).Return(nil, errRateLimited).Times(4)
	h.jobs.EXPECT().Fail(gomock.Any(), "req-1", gomock.Any()).Return(nil)

	result, err := h.orchestrator.Run(context.Background(), basePayload(domain.PhaseCampaigns))
	require.Error(t, err)
	assert.True(t, IsRateLimitExhausted(err))
	assert.Equal(t, domain.StateFailed, result.State)
}

func TestOrchestrator_PublishFailureIsRedelivered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl, testOptions())
	h.allowJobReads()
	h.allowInsights()

	h.source.EXPECT().ListCampaigns(gomock.Any(), "123", gomock.Any()).Return(campaignsPage("c", 1, "after-1"), nil)
	h.writer.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(true, nil)
	h.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("redis down"))

	// Mock: nenhuma chamada a Fail, o job continua aberto para a reentrega
	result, err := h.orchestrator.Run(context.Background(), basePayload(domain.PhaseCampaigns))
	require.Error(t, err)
	assert.False(t, result.State.IsTerminal())
}

func TestOrchestrator_IdempotentReplay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl, testOptions())
	h.allowJobReads()
	h.allowInsights()
	h.allowPublish()

	page := campaignsPage("c", 2, "")
	h.source.EXPECT().ListCampaigns(gomock.Any(), "123", gomock.Any()).Return(page, nil).Times(2)

	// Mock: a segunda execução encontra as linhas iguais
	gomock.InOrder(
		h.writer.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(true, nil).Times(2),
		h.writer.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(false, nil).Times(2),
	)

	first, err := h.orchestrator.Run(context.Background(), basePayload(domain.PhaseCampaigns))
	require.NoError(t, err)
	second, err := h.orchestrator.Run(context.Background(), basePayload(domain.PhaseCampaigns))
	require.NoError(t, err)

	assert.Equal(t, first.State, second.State)
	require.Len(t, h.published, 2)
	assert.Equal(t, h.published[0].CampaignIDs, h.published[1].CampaignIDs)
}

// Duas respostas de rate limit pesado numa página retomada: a segunda espera não
// cabe no orçamento e a fase é adiada no mesmo cursor, sem concluir o job
func TestOrchestrator_BackoffBeyondBudgetDefers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl, testOptions())
	h.allowJobReads()
	h.allowInsights()
	h.allowPublish()

	payload := basePayload(domain.PhaseCampaigns)
	payload.Cursor = EncodeCursor(ResumePoint{ParentID: "123", After: "page2"})
	page2 := domain.PageRequest{Limit: 100, After: "page2"}

	// Mock: duas respostas de rate limit pesado e depois a página
	gomock.InOrder(
		h.source.EXPECT().ListCampaigns(gomock.Any(), "123", page2).Return(nil, errHardLimited).Times(2),
		h.source.EXPECT().ListCampaigns(gomock.Any(), "123", page2).Return(campaignsPage("p2", 2, "page3"), nil),
	)
	h.writer.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)

	start := h.clock.Now()
	result, err := h.orchestrator.Run(context.Background(), payload)
	require.NoError(t, err)
	assert.LessOrEqual(t, h.clock.Now().Sub(start), 80*time.Second)
	assert.True(t, result.Deferred)
	assert.Equal(t, domain.StateCampaigns, result.State)
	assert.Zero(t, result.Processed)

	deferred := h.lastPublished(t)
	assert.Equal(t, domain.PhaseCampaigns, deferred.Phase)
	assert.Equal(t, payload.Cursor, deferred.Cursor)
	assert.Equal(t, 1, deferred.Deferrals)
	assert.Equal(t, 2, deferred.Iteration)

	// A reentrada adiada passa pelo guard e retoma a mesma página
	result, err = h.orchestrator.Run(context.Background(), deferred)
	require.NoError(t, err)
	assert.False(t, result.Deferred)
	assert.Equal(t, 2, result.Processed)

	next := h.lastPublished(t)
	assert.Equal(t, EncodeCursor(ResumePoint{ParentID: "123", After: "page3"}), next.Cursor)
	assert.Zero(t, next.Deferrals)
	assert.Equal(t, []string{"p2-000", "p2-001"}, next.CampaignIDs)
}

func TestOrchestrator_DeferralsWithoutProgressFailJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl, testOptions())
	h.allowJobReads()

	payload := basePayload(domain.PhaseCampaigns)
	payload.Iteration = 5
	payload.Cursor = EncodeCursor(ResumePoint{ParentID: "123", After: "page2"})
	payload.PreviousCursor = payload.Cursor
	payload.Deferrals = 3

	h.source.EXPECT().ListCampaigns(gomock.Any(), "123", gomock.Any()).Return(nil, errHardLimited).Times(2)

	// Mock: o job falha e nunca é concluído
	h.jobs.EXPECT().Fail(gomock.Any(), "req-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, reason string) error {
			assert.Contains(t, reason, ReasonDeferralsExhausted)
			return nil
		})

	result, err := h.orchestrator.Run(context.Background(), payload)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDeferralsExhausted)
	assert.Equal(t, domain.StateFailed, result.State)
	assert.Empty(t, h.published)
}

func TestOrchestrator_AccountPhaseDefersOnBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl, testOptions())
	h.allowJobReads()
	h.allowPublish()

	payload := basePayload(domain.PhaseAccount)
	payload.Iteration = 0

	h.jobs.EXPECT().EnsureJob(gomock.Any(), gomock.Any()).Return(true, nil)
	h.jobs.EXPECT().MarkProcessing(gomock.Any(), "req-1").Return(nil)
	h.source.EXPECT().GetAccount(gomock.Any(), "123").Return(&domain.AccountSnapshot{ID: "123"}, nil)

	// Mock: a consulta completa de insights recebe rate limit pesado duas vezes
	h.source.EXPECT().GetInsights(gomock.Any(), gomock.Any()).Return(nil, errHardLimited).Times(2)

	start := h.clock.Now()
	result, err := h.orchestrator.Run(context.Background(), payload)
	require.NoError(t, err)
	assert.LessOrEqual(t, h.clock.Now().Sub(start), 80*time.Second)
	assert.True(t, result.Deferred)
	assert.Equal(t, domain.StateOf(domain.PhaseAccount), result.State)

	deferred := h.lastPublished(t)
	assert.Equal(t, domain.PhaseAccount, deferred.Phase)
	assert.Equal(t, 1, deferred.Iteration)
	assert.Equal(t, 1, deferred.Deferrals)
	assert.Zero(t, deferred.Stats.Accounts)
}

func TestOrchestrator_AdSetInsightsBeyondBudgetDefers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := newHarness(t, ctrl, testOptions())
	h.allowJobReads()
	h.allowPublish()

	payload := basePayload(domain.PhaseAdSets)
	payload.CampaignIDs = []string{"c1", "c2"}

	h.source.EXPECT().ListAdSets(gomock.Any(), "c1", gomock.Any()).
		Return(&domain.Page[domain.AdSet]{Items: []domain.AdSet{{ID: "as-1"}, {ID: "as-2"}}}, nil)

	// Mock: o as-2 só recebe rate limit pesado
	h.source.EXPECT().GetInsights(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, query domain.InsightsQuery) (*domain.InsightsRecord, error) {
			if query.Ref.ID == "as-2" {
				return nil, errHardLimited
			}
			return &domain.InsightsRecord{Impressions: 10}, nil
		}).AnyTimes()

	// Mock: a gravação do as-1 leva o relógio para 70s
	h.writer.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.Entity) (bool, error) {
			h.clock.Advance(70 * time.Second)
			return true, nil
		})

	result, err := h.orchestrator.Run(context.Background(), payload)
	require.NoError(t, err)
	assert.True(t, result.Deferred)
	assert.Equal(t, 1, result.Processed)

	deferred := h.lastPublished(t)
	assert.Equal(t, domain.PhaseAdSets, deferred.Phase)
	assert.Equal(t, []string{"c1", "c2"}, deferred.CampaignIDs)
	assert.Equal(t, []string{"as-1"}, deferred.AdSetIDs)
	assert.Zero(t, deferred.Deferrals)

	point, err := DecodeCursor(deferred.Cursor)
	require.NoError(t, err)
	assert.Equal(t, ResumePoint{ParentID: "c1", Offset: 1}, point)
}
