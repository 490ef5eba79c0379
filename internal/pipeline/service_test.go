package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"phonecheck/internal/audit"
	"phonecheck/internal/domain"
	"phonecheck/internal/history"
	"phonecheck/internal/pipeline/mocks"
	"phonecheck/internal/ratelimit"
	"phonecheck/pkg/platform/sentinel"
)

type ServiceSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockAllowlist *mocks.MockAllowlistPort
	mockCarrier   *mocks.MockCarrierPort
	mockSearch    *mocks.MockSearchPort
	store         *history.MemoryStore
	auditStore    *audit.MemoryStore
	ctx           context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockAllowlist = mocks.NewMockAllowlistPort(s.ctrl)
	s.mockCarrier = mocks.NewMockCarrierPort(s.ctrl)
	s.mockSearch = mocks.NewMockSearchPort(s.ctrl)
	s.store = history.NewMemoryStore()
	s.auditStore = audit.NewMemoryStore()
	s.ctx = context.Background()
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) newService(limiter ratelimit.Limiter, userLimit int) *Service {
	svc, err := New(Params{
		Allowlist: s.mockAllowlist,
		Carrier:   s.mockCarrier,
		Search:    s.mockSearch,
		Limiter:   limiter,
		History:   s.store,
		Audit:     audit.NewPublisher(s.auditStore),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		UserLimit: userLimit,
		Window:    time.Hour,
	})
	s.Require().NoError(err)
	return svc
}

func (s *ServiceSuite) TestNewRequiresDependencies() {
	_, err := New(Params{})
	s.Require().Error(err)

	_, err = New(Params{Allowlist: s.mockAllowlist, Carrier: s.mockCarrier, Search: s.mockSearch})
	s.Require().Error(err) // history missing
}

func (s *ServiceSuite) TestAllowlistHitShortCircuits() {
	// Neither adapter mock has expectations: any call fails the test.
	s.mockAllowlist.EXPECT().Lookup("+61412345678").Return("family", true)
	svc := s.newService(nil, 0)

	d, err := svc.Evaluate(s.ctx, "0412 345 678", "alice")
	s.Require().NoError(err)
	s.Equal(domain.VerdictSafe, d.Verdict)
	s.Equal(domain.RiskLow, d.RiskScore)
	s.Equal("Safe", d.Carrier)
	s.Equal("+61", d.Country)
	s.NotEmpty(d.ID)

	persisted, err := s.store.Recent(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(persisted, 1)
	s.Equal(d, persisted[0])
}

func (s *ServiceSuite) TestMalformedInputYieldsLowConfidenceDecision() {
	svc := s.newService(nil, 0)

	d, err := svc.Evaluate(s.ctx, "not a number", "alice")
	s.Require().NoError(err)
	s.Equal(domain.VerdictUnknown, d.Verdict)
	s.Equal(domain.RiskMedium, d.RiskScore)
	s.Equal(domain.UnknownValue, d.Carrier)
	s.Equal(domain.UnknownValue, d.Country)

	persisted, err := s.store.Recent(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(persisted, 1)
}

func (s *ServiceSuite) TestRateLimitRejection() {
	s.mockAllowlist.EXPECT().Lookup(gomock.Any()).Return("", false).Times(2)
	s.mockCarrier.EXPECT().Fetch(gomock.Any(), "+61412345678").Return(domain.CarrierInfo{Carrier: "Telco X", Country: "AU"})
	s.mockSearch.EXPECT().Search(gomock.Any(), "+61412345678").Return(domain.SearchEvidence{Snippets: []string{"no issues found"}})
	svc := s.newService(ratelimit.NewInMemoryStore(), 1)

	_, err := svc.Evaluate(s.ctx, "0412345678", "alice")
	s.Require().NoError(err)

	// Budget exhausted: no adapter calls, no history write.
	_, err = svc.Evaluate(s.ctx, "0412345678", "alice")
	s.Require().ErrorIs(err, sentinel.ErrRateLimited)

	persisted, err := s.store.Recent(s.ctx, 10)
	s.Require().NoError(err)
	s.Len(persisted, 1)

	events := s.auditStore.Recent(0)
	s.Require().NotEmpty(events)
	s.Equal(audit.ActionRateLimitExceeded, events[len(events)-1].Action)
}

func (s *ServiceSuite) TestDegradedCarrierStillPersists() {
	s.mockAllowlist.EXPECT().Lookup(gomock.Any()).Return("", false)
	s.mockCarrier.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(domain.UnknownCarrier())
	s.mockSearch.EXPECT().Search(gomock.Any(), gomock.Any()).Return(domain.SearchEvidence{Snippets: []string{"nothing of note"}})
	svc := s.newService(nil, 0)

	d, err := svc.Evaluate(s.ctx, "0412345678", "alice")
	s.Require().NoError(err)
	s.Equal(domain.VerdictUnknown, d.Verdict)
	s.Equal(domain.RiskMedium, d.RiskScore)

	persisted, err := s.store.Recent(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(persisted, 1)
}

func (s *ServiceSuite) TestScamEvidenceOutranksKnownCarrier() {
	s.mockAllowlist.EXPECT().Lookup(gomock.Any()).Return("", false)
	s.mockCarrier.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(domain.CarrierInfo{Carrier: "Telco X", Country: "AU"})
	s.mockSearch.EXPECT().Search(gomock.Any(), gomock.Any()).Return(domain.SearchEvidence{Snippets: []string{"reported as a SCAM call"}})
	svc := s.newService(nil, 0)

	d, err := svc.Evaluate(s.ctx, "0412345678", "alice")
	s.Require().NoError(err)
	s.Equal(domain.VerdictScamLikely, d.Verdict)
	s.Equal(domain.RiskHigh, d.RiskScore)
}

func (s *ServiceSuite) TestLimiterErrorFailsOpen() {
	s.mockAllowlist.EXPECT().Lookup(gomock.Any()).Return("", false)
	s.mockCarrier.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(domain.CarrierInfo{Carrier: "Telco X", Country: "AU"})
	s.mockSearch.EXPECT().Search(gomock.Any(), gomock.Any()).Return(domain.SearchEvidence{})
	svc := s.newService(&erroringLimiter{}, 1)

	d, err := svc.Evaluate(s.ctx, "0412345678", "alice")
	s.Require().NoError(err)
	s.Equal(domain.VerdictSafe, d.Verdict)
}

func (s *ServiceSuite) TestAllowlistedEvaluationIsIdempotent() {
	s.mockAllowlist.EXPECT().Lookup("+61412345678").Return("family", true).Times(2)
	svc := s.newService(nil, 0)

	first, err := svc.Evaluate(s.ctx, "0412345678", "alice")
	s.Require().NoError(err)
	second, err := svc.Evaluate(s.ctx, "0412 345-678", "alice")
	s.Require().NoError(err)

	s.Equal(first.Verdict, second.Verdict)
	s.Equal(first.RiskScore, second.RiskScore)
	s.Equal(first.Carrier, second.Carrier)
	s.Equal(first.Country, second.Country)
	s.Equal(first.Number, second.Number)
	s.NotEqual(first.ID, second.ID)
}

func (s *ServiceSuite) TestHistoryFailureDoesNotWithholdDecision() {
	s.mockAllowlist.EXPECT().Lookup(gomock.Any()).Return("family", true)
	svc, err := New(Params{
		Allowlist: s.mockAllowlist,
		Carrier:   s.mockCarrier,
		Search:    s.mockSearch,
		History:   &failingStore{},
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	s.Require().NoError(err)

	d, err := svc.Evaluate(s.ctx, "0412345678", "alice")
	s.Require().NoError(err)
	s.Equal(domain.VerdictSafe, d.Verdict)
}

func (s *ServiceSuite) TestRecentDegradesToEmptyOnStoreError() {
	svc, err := New(Params{
		Allowlist: s.mockAllowlist,
		Carrier:   s.mockCarrier,
		Search:    s.mockSearch,
		History:   &failingStore{},
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	s.Require().NoError(err)

	s.Empty(svc.Recent(s.ctx, 10))
}

type erroringLimiter struct{}

func (l *erroringLimiter) Allow(context.Context, string, int, time.Duration) (*ratelimit.Result, error) {
	return nil, errors.New("limiter backend down")
}

type failingStore struct{}

func (f *failingStore) Append(context.Context, domain.Decision) error {
	return errors.New("disk full")
}

func (f *failingStore) Recent(context.Context, int) ([]domain.Decision, error) {
	return nil, errors.New("disk unreadable")
}
