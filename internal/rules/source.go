package rules

import (
	"fmt"
	"os"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const defaultCacheTTL = 30 * time.Second

// Source serves the active rule set and re-reads the rules file when it
// changes on disk. An empty path serves the built-in defaults.
type Source struct {
	path   string
	cache  *gocache.Cache
	logger *zap.Logger
}

func NewSource(path string, ttl time.Duration, logger *zap.Logger) *Source {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{
		path:   strings.TrimSpace(path),
		cache:  gocache.New(ttl, 2*ttl),
		logger: logger,
	}
}

func (s *Source) Path() string {
	return s.path
}

// Rules returns the current rule set. Failures to read or parse the file are
// logged and answered with the defaults; skipped rules are logged one by one.
func (s *Source) Rules() []Rule {
	if s.path == "" {
		return Defaults()
	}

	stat, err := os.Stat(s.path)
	if err != nil {
		s.logger.Warn("rules file is not readable, using built-in rules",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return Defaults()
	}

	key := fmt.Sprintf("%s|%d|%d", s.path, stat.ModTime().UnixNano(), stat.Size())
	if cached, found := s.cache.Get(key); found {
		rules := cached.([]Rule)
		out := make([]Rule, len(rules))
		copy(out, rules)
		return out
	}

	rules, skipped, err := LoadFile(s.path)
	if err != nil {
		s.logger.Warn("rules file is malformed, using built-in rules",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return Defaults()
	}

	for _, skip := range skipped {
		s.logger.Warn("skipping malformed rule",
			zap.String("path", s.path),
			zap.Int("index", skip.Index),
			zap.String("rule", skip.Name),
			zap.Error(skip.Err),
		)
	}

	s.logger.Debug("loaded rules",
		zap.String("path", s.path),
		zap.Int("rules", len(rules)),
		zap.Int("skipped", len(skipped)),
	)

	s.cache.Flush()
	s.cache.SetDefault(key, rules)
	return append([]Rule(nil), rules...)
}
