package redis

import (
	"context"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/emellop-senai/arena-senai-forca/internal/domain"
)

type RankingCacheSuite struct {
	suite.Suite

	mr    *miniredis.Miniredis
	cache *RankingCache
}

func TestRankingCacheSuite(t *testing.T) {
	suite.Run(t, new(RankingCacheSuite))
}

func (s *RankingCacheSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	s.cache = &RankingCache{
		client: goredis.NewClient(&goredis.Options{Addr: s.mr.Addr()}),
		logger: slog.Default(),
	}
}

func (s *RankingCacheSuite) TearDownTest() {
	s.NoError(s.cache.Close())
}

func (s *RankingCacheSuite) TestTopNOrdersByScoreDescending() {
	ctx := context.Background()

	s.Require().NoError(s.cache.SetScore(ctx, "ana", 120))
	s.Require().NoError(s.cache.SetScore(ctx, "bruno", 300))
	s.Require().NoError(s.cache.SetScore(ctx, "carla", 60))

	top, err := s.cache.TopN(ctx, 2)
	s.Require().NoError(err)
	s.Equal([]domain.RankingEntry{
		{Username: "bruno", Score: 300},
		{Username: "ana", Score: 120},
	}, top)
}

func (s *RankingCacheSuite) TestTopNWithFewerUsersThanLimit() {
	ctx := context.Background()

	s.Require().NoError(s.cache.SetScore(ctx, "ana", 50))

	top, err := s.cache.TopN(ctx, 5)
	s.Require().NoError(err)
	s.Len(top, 1)
}

func (s *RankingCacheSuite) TestIncrementScoreAccumulates() {
	ctx := context.Background()

	score, err := s.cache.IncrementScore(ctx, "ana", 40)
	s.Require().NoError(err)
	s.Equal(int64(40), score)

	score, err = s.cache.IncrementScore(ctx, "ana", 20)
	s.Require().NoError(err)
	s.Equal(int64(60), score)
}

func (s *RankingCacheSuite) TestRebuildReplacesStaleEntries() {
	ctx := context.Background()

	s.Require().NoError(s.cache.SetScore(ctx, "fantasma", 999))

	err := s.cache.Rebuild(ctx, map[string]int64{
		"ana":   120,
		"bruno": 300,
	})
	s.Require().NoError(err)

	count, err := s.cache.Count(ctx)
	s.Require().NoError(err)
	s.Equal(int64(2), count)

	top, err := s.cache.TopN(ctx, 5)
	s.Require().NoError(err)
	s.Equal("bruno", top[0].Username)
	s.Equal("ana", top[1].Username)
}

func (s *RankingCacheSuite) TestRebuildWithNoScoresClearsCache() {
	ctx := context.Background()

	s.Require().NoError(s.cache.SetScore(ctx, "ana", 10))
	s.Require().NoError(s.cache.Rebuild(ctx, nil))

	count, err := s.cache.Count(ctx)
	s.Require().NoError(err)
	s.Equal(int64(0), count)
}
