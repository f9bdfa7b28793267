package compatibility

import (
	"context"
	"errors"
	"strings"

	entdomain "github.com/smallbiznis/togetherbot/internal/entitlement/domain"
	obslogger "github.com/smallbiznis/togetherbot/internal/observability/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	ErrInvalidUser  = errors.New("invalid_user")
	ErrMissingNames = errors.New("missing_names")
)

type Result struct {
	First   string
	Second  string
	Score   int
	Verdict Verdict
}

type Service interface {
	Check(ctx context.Context, userID int64, first, second string) (*Result, error)
}

type Params struct {
	fx.In

	Log  *zap.Logger
	Gate entdomain.Gate
}

type service struct {
	log  *zap.Logger
	gate entdomain.Gate
}

func New(p Params) Service {
	return &service{log: p.Log.Named("compatibility.service"), gate: p.Gate}
}

func (s *service) Check(ctx context.Context, userID int64, first, second string) (*Result, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}
	if err := s.gate.Require(ctx, userID, entdomain.FeatureCompatibility); err != nil {
		return nil, err
	}
	first, second = strings.TrimSpace(first), strings.TrimSpace(second)
	if first == "" || second == "" {
		return nil, ErrMissingNames
	}

	score := Score(first, second)
	obslogger.WithContext(ctx, s.log).Debug("compatibility computed", zap.Int("score", score))
	return &Result{First: first, Second: second, Score: score, Verdict: VerdictFor(score)}, nil
}
