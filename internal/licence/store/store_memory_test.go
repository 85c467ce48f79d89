package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"hdc/internal/licence"
	"hdc/internal/licence/document"
	"hdc/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *MemoryStore
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemory()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) TestCreateAndGet() {
	s.Run("creates and reads back", func() {
		doc := document.Document{"eligibility": map[string]any{}}
		s.Require().NoError(s.store.Create(s.ctx, 100, doc, licence.StageEligibility, 1, 0))

		rec, err := s.store.Get(s.ctx, 100)
		s.Require().NoError(err)
		s.Equal(int64(100), rec.BookingID)
		s.Equal(licence.StageEligibility, rec.Stage)
		s.Equal("1.0", rec.CompoundVersion())
	})

	s.Run("unknown booking is ErrNotFound", func() {
		_, err := s.store.Get(s.ctx, 999)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("duplicate create is ErrConflict", func() {
		s.Require().NoError(s.store.Create(s.ctx, 101, nil, licence.StageEligibility, 1, 0))
		err := s.store.Create(s.ctx, 101, nil, licence.StageEligibility, 1, 0)
		s.Require().ErrorIs(err, sentinel.ErrConflict)
	})
}

func (s *MemoryStoreSuite) TestGetReturnsCopy() {
	doc := document.Document{"risk": map[string]any{"riskManagement": map[string]any{"planningActions": "Yes"}}}
	s.Require().NoError(s.store.Create(s.ctx, 100, doc, licence.StageEligibility, 1, 0))

	rec, err := s.store.Get(s.ctx, 100)
	s.Require().NoError(err)
	rec.Document.Set("No", "risk", "riskManagement", "planningActions")

	fresh, err := s.store.Get(s.ctx, 100)
	s.Require().NoError(err)
	s.Equal("Yes", fresh.Document.GetString("risk", "riskManagement", "planningActions"))
}

func (s *MemoryStoreSuite) TestReplaceDocumentBumpsVersion() {
	s.Require().NoError(s.store.Create(s.ctx, 100, nil, licence.StageEligibility, 1, 0))

	next, err := s.store.ReplaceDocument(s.ctx, 100, document.Document{"a": "b"}, false)
	s.Require().NoError(err)
	s.Equal(2, next)

	next, err = s.store.ReplaceDocument(s.ctx, 100, document.Document{"a": "c"}, false)
	s.Require().NoError(err)
	s.Equal(3, next)

	rec, err := s.store.Get(s.ctx, 100)
	s.Require().NoError(err)
	s.Equal("3.0", rec.CompoundVersion())
}

func (s *MemoryStoreSuite) TestReplaceDocumentPostRelease() {
	s.Require().NoError(s.store.Create(s.ctx, 100, nil, licence.StageVary, 1, 1))

	next, err := s.store.ReplaceDocument(s.ctx, 100, document.Document{"vary": "x"}, true)
	s.Require().NoError(err)
	s.Equal(2, next)

	rec, err := s.store.Get(s.ctx, 100)
	s.Require().NoError(err)
	s.Equal(1, rec.Version, "post-release writes leave version alone")
	s.Equal("1.2", rec.CompoundVersion())
}

func (s *MemoryStoreSuite) TestReplaceDocumentUnknownBooking() {
	_, err := s.store.ReplaceDocument(s.ctx, 999, document.Document{}, false)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestConcurrentVersionMonotonicity() {
	s.Require().NoError(s.store.Create(s.ctx, 100, nil, licence.StageEligibility, 1, 0))

	const writers = 50
	var wg sync.WaitGroup
	seen := make(chan int, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			next, err := s.store.ReplaceDocument(s.ctx, 100, document.Document{"w": "x"}, false)
			s.NoError(err)
			seen <- next
		}()
	}
	wg.Wait()
	close(seen)

	versions := map[int]bool{}
	for v := range seen {
		s.False(versions[v], "version %d assigned twice", v)
		versions[v] = true
	}
	s.Len(versions, writers)

	rec, err := s.store.Get(s.ctx, 100)
	s.Require().NoError(err)
	s.Equal(1+writers, rec.Version)
}

func (s *MemoryStoreSuite) TestSetStage() {
	s.Require().NoError(s.store.Create(s.ctx, 100, nil, licence.StageEligibility, 1, 0))
	s.Require().NoError(s.store.SetStage(s.ctx, 100, licence.StageProcessingRO))

	rec, err := s.store.Get(s.ctx, 100)
	s.Require().NoError(err)
	s.Equal(licence.StageProcessingRO, rec.Stage)
	s.False(rec.TransitionDate.IsZero())

	s.Run("unknown booking", func() {
		err := s.store.SetStage(s.ctx, 999, licence.StageProcessingRO)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestApprovedVersions() {
	s.Require().NoError(s.store.Create(s.ctx, 100, document.Document{"v": "1"}, licence.StageApproval, 1, 0))

	_, err := s.store.GetApprovedVersion(s.ctx, 100)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.SnapshotApprovedVersion(s.ctx, 100, "hdc_ap"))

	_, err = s.store.ReplaceDocument(s.ctx, 100, document.Document{"v": "2"}, false)
	s.Require().NoError(err)
	s.Require().NoError(s.store.SnapshotApprovedVersion(s.ctx, 100, "hdc_ap_pss"))

	latest, err := s.store.GetApprovedVersion(s.ctx, 100)
	s.Require().NoError(err)
	s.Equal(2, latest.Version)
	s.Equal("hdc_ap_pss", latest.Template)
	s.Equal("2", latest.Document.GetString("v"))
}

func (s *MemoryStoreSuite) TestDeleteAll() {
	s.Require().NoError(s.store.Create(s.ctx, 100, nil, licence.StageEligibility, 1, 0))
	s.Require().NoError(s.store.SnapshotApprovedVersion(s.ctx, 100, "hdc_ap"))

	s.Require().NoError(s.store.DeleteAll(s.ctx))

	_, err := s.store.Get(s.ctx, 100)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.GetApprovedVersion(s.ctx, 100)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
