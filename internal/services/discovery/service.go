package discovery

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jordanhale/emberline/internal/domain/model"
	"github.com/jordanhale/emberline/internal/domain/rules"
	pgrepo "github.com/jordanhale/emberline/internal/repo/postgres"
)

const (
	defaultTopK           = 5
	defaultCandidateLimit = 500
	maxCandidateLimit     = 2000
)

var (
	ErrValidation      = errors.New("validation error")
	ErrProfileNotFound = errors.New("profile not found")
)

type Directory interface {
	GetProfile(ctx context.Context, userID int64) (model.Profile, error)
	FindEligible(ctx context.Context, q pgrepo.EligibleQuery) ([]model.Profile, error)
}

type ExclusionStore interface {
	GetPassed(ctx context.Context, sessionID string) ([]int64, error)
	AddPassed(ctx context.Context, sessionID string, userID int64) error
	ClearPassed(ctx context.Context, sessionID string) error
}

type PhotoStore interface {
	ListKeys(ctx context.Context, userID int64) ([]string, error)
}

type PhotoURLSigner interface {
	PresignGet(ctx context.Context, key string) (string, error)
}

type Config struct {
	TopK           int
	CandidateLimit int
}

type Service struct {
	directory  Directory
	exclusions ExclusionStore
	photos     PhotoStore
	photoSign  PhotoURLSigner
	cfg        Config
	log        *zap.Logger
	now        func() time.Time
	randIntn   func(n int) int
}

// Candidate is one scored discovery result offered to the requester.
type Candidate struct {
	UserID    int64
	FirstName string
	LastName  string
	Bio       string
	Age       int
	Interests string
	Score     int
	PhotoURLs []string
}

type scoredProfile struct {
	profile model.Profile
	age     int
	score   int
	ok      bool
}

func NewService(directory Directory, exclusions ExclusionStore, cfg Config) *Service {
	if cfg.TopK <= 0 {
		cfg.TopK = defaultTopK
	}
	if cfg.CandidateLimit <= 0 {
		cfg.CandidateLimit = defaultCandidateLimit
	}
	if cfg.CandidateLimit > maxCandidateLimit {
		cfg.CandidateLimit = maxCandidateLimit
	}

	return &Service{
		directory:  directory,
		exclusions: exclusions,
		cfg:        cfg,
		log:        zap.NewNop(),
		now:        time.Now,
		randIntn:   rand.Intn,
	}
}

func (s *Service) AttachPhotos(photos PhotoStore, signer PhotoURLSigner) {
	s.photos = photos
	s.photoSign = signer
}

func (s *Service) AttachLogger(log *zap.Logger) {
	if log != nil {
		s.log = log
	}
}

// NextCandidate picks one candidate for the requester: resolve the
// compatibility policy, load eligible profiles minus the session's passed
// set, score them all, then draw uniformly from the top scorers. The
// returned bool is false when the pool is exhausted.
func (s *Service) NextCandidate(ctx context.Context, requesterID int64, sessionID string) (Candidate, bool, error) {
	if requesterID <= 0 || strings.TrimSpace(sessionID) == "" {
		return Candidate{}, false, ErrValidation
	}
	if s.directory == nil || s.exclusions == nil {
		return Candidate{}, false, fmt.Errorf("discovery service is not wired")
	}

	requester, err := s.directory.GetProfile(ctx, requesterID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return Candidate{}, false, ErrProfileNotFound
		}
		return Candidate{}, false, fmt.Errorf("get requester profile: %w", err)
	}

	today := s.now().UTC()
	if requester.Birthdate.IsZero() {
		return Candidate{}, false, fmt.Errorf("requester birthdate: %w", rules.ErrInvalidBirthdate)
	}
	requesterAge := rules.Age(requester.Birthdate, today)

	compat := rules.ResolveCompat(requester.Gender, requester.Orientation)

	passed, err := s.exclusions.GetPassed(ctx, sessionID)
	if err != nil {
		return Candidate{}, false, fmt.Errorf("get passed users: %w", err)
	}

	profiles, err := s.directory.FindEligible(ctx, pgrepo.EligibleQuery{
		RequesterID:        requesterID,
		RequesterGender:    requester.Gender,
		TargetGenders:      compat.TargetGenders,
		TargetOrientations: compat.TargetOrientations,
		BisexualRule:       compat.BisexualRule,
		ExcludeIDs:         passed,
		Limit:              s.cfg.CandidateLimit,
	})
	if err != nil {
		return Candidate{}, false, fmt.Errorf("find eligible candidates: %w", err)
	}
	if len(profiles) == 0 {
		return Candidate{}, false, nil
	}

	scored := s.scoreAll(requester, requesterAge, compat, profiles, today)
	if len(scored) == 0 {
		return Candidate{}, false, nil
	}

	pool := topScorers(scored, s.cfg.TopK)
	pick := pool[s.randIntn(len(pool))]

	candidate := Candidate{
		UserID:    pick.profile.UserID,
		FirstName: pick.profile.FirstName,
		LastName:  pick.profile.LastName,
		Bio:       pick.profile.Bio,
		Age:       pick.age,
		Interests: pick.profile.Interests,
		Score:     pick.score,
	}
	candidate.PhotoURLs = s.signedPhotoURLs(ctx, pick.profile.UserID)

	return candidate, true, nil
}

// Pass hides the candidate from this session. The write is idempotent, so a
// repeated pass for the same candidate is harmless.
func (s *Service) Pass(ctx context.Context, requesterID int64, sessionID string, candidateID int64) error {
	if requesterID <= 0 || candidateID <= 0 || strings.TrimSpace(sessionID) == "" {
		return ErrValidation
	}
	if candidateID == requesterID {
		return ErrValidation
	}

	if err := s.exclusions.AddPassed(ctx, sessionID, candidateID); err != nil {
		return fmt.Errorf("add passed user: %w", err)
	}
	return nil
}

// Refresh clears the session's passed set so previously skipped candidates
// become visible again.
func (s *Service) Refresh(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return ErrValidation
	}

	if err := s.exclusions.ClearPassed(ctx, sessionID); err != nil {
		return fmt.Errorf("clear passed users: %w", err)
	}
	return nil
}

// scoreAll fans candidate scoring out over a bounded worker pool. Results
// land at their input index, so output order does not depend on scheduling.
// Candidates the resolved policy rejects are dropped; candidates without a
// usable birthdate are dropped with a warning.
func (s *Service) scoreAll(requester model.Profile, requesterAge int, compat rules.Compat, profiles []model.Profile, today time.Time) []scoredProfile {
	results := make([]scoredProfile, len(profiles))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(profiles) {
		workers = len(profiles)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for idx := range indexes {
				profile := profiles[idx]
				if profile.UserID == requester.UserID || profile.Banned {
					continue
				}
				if !compat.Allows(profile.Gender, profile.Orientation) {
					continue
				}
				if profile.Birthdate.IsZero() {
					s.log.Warn("dropping candidate without birthdate", zap.Int64("user_id", profile.UserID))
					continue
				}

				age := rules.Age(profile.Birthdate, today)
				results[idx] = scoredProfile{
					profile: profile,
					age:     age,
					score:   rules.MatchScore(requester.Interests, profile.Interests, requesterAge, age),
					ok:      true,
				}
			}
		}()
	}

	for idx := range profiles {
		indexes <- idx
	}
	close(indexes)
	wg.Wait()

	scored := make([]scoredProfile, 0, len(results))
	for _, item := range results {
		if item.ok {
			scored = append(scored, item)
		}
	}
	return scored
}

// topScorers orders by score descending with user id as the tie break, then
// keeps at most k entries. Every candidate in the returned slice has an
// equal chance of being offered.
func topScorers(scored []scoredProfile, k int) []scoredProfile {
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].profile.UserID < scored[j].profile.UserID
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}

// signedPhotoURLs is best effort. Discovery still works without configured
// photo storage; the candidate just carries no URLs.
func (s *Service) signedPhotoURLs(ctx context.Context, userID int64) []string {
	if s.photos == nil || s.photoSign == nil {
		return nil
	}

	keys, err := s.photos.ListKeys(ctx, userID)
	if err != nil || len(keys) == 0 {
		return nil
	}

	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		signed, err := s.photoSign.PresignGet(ctx, key)
		if err != nil {
			continue
		}
		urls = append(urls, signed)
	}
	return urls
}
