//go:build integration

package statuscache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"hdc/internal/licence"
	"hdc/internal/licence/status"
	"hdc/pkg/testutil/containers"
)

type StatusCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *Cache
}

func TestStatusCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(StatusCacheSuite))
}

func (s *StatusCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.cache = New(s.redis.Client, time.Minute)
}

func (s *StatusCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *StatusCacheSuite) TestRoundTrip() {
	ctx := context.Background()

	derived := status.LicenceStatus{
		Stage:        licence.StageProcessingCA,
		PostApproval: false,
	}
	derived.Tasks.FinalChecks = status.Done
	derived.Decisions.CurfewAddressApproved = status.AddressApproved

	_, ok := s.cache.Get(ctx, 100, licence.StageProcessingCA, "2.0")
	s.False(ok)

	s.cache.Put(ctx, 100, licence.StageProcessingCA, "2.0", derived)

	cached, ok := s.cache.Get(ctx, 100, licence.StageProcessingCA, "2.0")
	s.Require().True(ok)
	s.Equal(derived, cached)
}

func (s *StatusCacheSuite) TestKeyedByStageAndCompoundVersion() {
	ctx := context.Background()

	s.cache.Put(ctx, 100, licence.StageEligibility, "2.0", status.LicenceStatus{Stage: licence.StageEligibility})

	_, ok := s.cache.Get(ctx, 100, licence.StageEligibility, "3.0")
	s.False(ok, "a version bump must miss the old entry")

	_, ok = s.cache.Get(ctx, 100, licence.StageProcessingRO, "2.0")
	s.False(ok, "a handover changes stage without a version bump and must miss")

	_, ok = s.cache.Get(ctx, 101, licence.StageEligibility, "2.0")
	s.False(ok, "entries are per booking")
}

func (s *StatusCacheSuite) TestEntriesExpire() {
	ctx := context.Background()

	short := New(s.redis.Client, 50*time.Millisecond)
	short.Put(ctx, 100, licence.StageEligibility, "1.0", status.LicenceStatus{Stage: licence.StageEligibility})

	_, ok := short.Get(ctx, 100, licence.StageEligibility, "1.0")
	s.Require().True(ok)

	time.Sleep(100 * time.Millisecond)
	_, ok = short.Get(ctx, 100, licence.StageEligibility, "1.0")
	s.False(ok)
}

func (s *StatusCacheSuite) TestPing() {
	s.Require().NoError(s.cache.Ping(context.Background()))
}
