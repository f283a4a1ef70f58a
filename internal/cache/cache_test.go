package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type CacheSuite struct {
	suite.Suite
	cache *Cache
	now   time.Time
}

func (s *CacheSuite) SetupTest() {
	s.now = time.Date(2024, 9, 15, 12, 0, 0, 0, time.UTC)
	s.cache = New(time.Minute, WithClock(func() time.Time { return s.now }))
}

func (s *CacheSuite) advance(d time.Duration) {
	s.now = s.now.Add(d)
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) TestGetBeforeAndAfterExpiry() {
	s.cache.Set("k", "v", 10*time.Second)

	v, ok := s.cache.Get("k")
	s.Require().True(ok)
	s.Equal("v", v)

	s.advance(9 * time.Second)
	_, ok = s.cache.Get("k")
	s.True(ok, "entry should be live just before expiry")

	s.advance(time.Second)
	_, ok = s.cache.Get("k")
	s.False(ok, "entry should be gone at expiry")

	// The expired read deleted the entry.
	s.Equal(0, s.cache.Size())
}

func (s *CacheSuite) TestSetOverwrites() {
	s.cache.Set("k", 1, time.Minute)
	s.cache.Set("k", 2, time.Minute)

	v, ok := s.cache.Get("k")
	s.Require().True(ok)
	s.Equal(2, v)
	s.Equal(1, s.cache.Size())
}

func (s *CacheSuite) TestZeroTTLIsImmediatelyExpired() {
	s.cache.Set("k", "v", 0)

	_, ok := s.cache.Get("k")
	s.False(ok)
}

func (s *CacheSuite) TestSetDefaultUsesDefaultTTL() {
	s.cache.SetDefault("k", "v")

	s.advance(59 * time.Second)
	s.True(s.cache.Has("k"))

	s.advance(2 * time.Second)
	s.False(s.cache.Has("k"))
}

func (s *CacheSuite) TestInvalidate() {
	s.cache.Set("k", "v", time.Minute)

	s.True(s.cache.Invalidate("k"))
	s.False(s.cache.Invalidate("k"), "second invalidate finds nothing")
	s.False(s.cache.Has("k"))
}

func (s *CacheSuite) TestClear() {
	s.cache.Set("a", 1, time.Minute)
	s.cache.Set("b", 2, time.Minute)

	s.cache.Clear()

	s.Equal(0, s.cache.Size())
	s.False(s.cache.Has("a"))
}

func (s *CacheSuite) TestSizeCountsExpiredUntilTouched() {
	s.cache.Set("a", 1, time.Second)
	s.cache.Set("b", 2, time.Minute)

	s.advance(2 * time.Second)

	// "a" is expired but nothing has touched it yet.
	s.Equal(2, s.cache.Size())

	s.cache.Has("a")
	s.Equal(1, s.cache.Size())
}

func (s *CacheSuite) TestPrune() {
	s.cache.Set("a", 1, time.Second)
	s.cache.Set("b", 2, time.Second)
	s.cache.Set("c", 3, time.Minute)

	s.advance(2 * time.Second)

	s.Equal(2, s.cache.Prune())
	s.Equal(1, s.cache.Size())
	s.True(s.cache.Has("c"))
}

func (s *CacheSuite) TestConcurrentAccess() {
	// Real clock here; this test only cares that concurrent readers and
	// writers do not race or corrupt the map.
	c := New(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%10)
			c.Set(key, i, time.Minute)
			c.Get(key)
			c.Has(key)
			c.Prune()
		}(i)
	}
	wg.Wait()

	s.LessOrEqual(c.Size(), 10)
}
