package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/auracount/auracount/internal/storage"
	"github.com/auracount/auracount/internal/storage/memory"
	"github.com/auracount/auracount/internal/testutil"
)

type HealthSuite struct {
	suite.Suite
	remote *testutil.FlakyStore
	health *storage.Health
	ctx    context.Context
}

func TestHealthSuite(t *testing.T) {
	suite.Run(t, new(HealthSuite))
}

func (s *HealthSuite) SetupTest() {
	s.remote = testutil.NewFlakyStore(memory.New())
	s.health = storage.NewHealth(s.remote, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *HealthSuite) TestStartsOffline() {
	s.False(s.health.Online())
}

func (s *HealthSuite) TestProbeBringsOnline() {
	s.True(s.health.Probe(s.ctx))
	s.True(s.health.Online())
}

func (s *HealthSuite) TestProbeFailureStaysOffline() {
	s.remote.Err = errors.New("connection refused")
	s.False(s.health.Probe(s.ctx))
	s.False(s.health.Online())
}

func (s *HealthSuite) TestMarkOfflineFlipsState() {
	s.Require().True(s.health.Probe(s.ctx))

	s.health.MarkOffline()
	s.False(s.health.Online())
}

func (s *HealthSuite) TestOnlyProbeRestoresOnline() {
	s.Require().True(s.health.Probe(s.ctx))
	s.health.MarkOffline()

	// A successful remote call elsewhere does not restore the state
	s.Require().NoError(s.remote.Ping(s.ctx))
	s.False(s.health.Online())

	s.True(s.health.Probe(s.ctx))
	s.True(s.health.Online())
}
