package likes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	pgrepo "github.com/jordanhale/emberline/internal/repo/postgres"
)

type likeStoreStub struct {
	likes    map[[2]int64]string
	incoming []pgrepo.IncomingLikeRecord
}

func newLikeStoreStub() *likeStoreStub {
	return &likeStoreStub{likes: make(map[[2]int64]string)}
}

func (s *likeStoreStub) Upsert(_ context.Context, _ pgx.Tx, likerID, likedID int64, message string) error {
	s.likes[[2]int64{likerID, likedID}] = message
	return nil
}

func (s *likeStoreStub) Exists(_ context.Context, _ pgx.Tx, likerID, likedID int64) (bool, error) {
	_, ok := s.likes[[2]int64{likerID, likedID}]
	return ok, nil
}

func (s *likeStoreStub) Delete(_ context.Context, _ pgx.Tx, likerID, likedID int64) (bool, error) {
	key := [2]int64{likerID, likedID}
	_, ok := s.likes[key]
	delete(s.likes, key)
	return ok, nil
}

func (s *likeStoreStub) ListIncoming(_ context.Context, _ int64, limit int) ([]pgrepo.IncomingLikeRecord, error) {
	if limit < len(s.incoming) {
		return s.incoming[:limit], nil
	}
	return s.incoming, nil
}

type matchStoreStub struct {
	created [][2]int64
}

func (s *matchStoreStub) Create(_ context.Context, _ pgx.Tx, userID, targetID int64) (bool, error) {
	s.created = append(s.created, [2]int64{userID, targetID})
	return true, nil
}

type rejectedStoreStub struct {
	rejected [][2]int64
}

func (s *rejectedStoreStub) Create(_ context.Context, _ pgx.Tx, likerID, likedID int64) error {
	s.rejected = append(s.rejected, [2]int64{likerID, likedID})
	return nil
}

func newServiceForTest(likeStore *likeStoreStub, matchStore *matchStoreStub, rejectedStore *rejectedStoreStub) *Service {
	svc := NewService(Dependencies{
		LikeStore:     likeStore,
		MatchStore:    matchStore,
		RejectedStore: rejectedStore,
	})
	svc.runTx = func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
		return fn(ctx, nil)
	}
	return svc
}

func TestLikeAndRelikeReplacesMessage(t *testing.T) {
	likeStore := newLikeStoreStub()
	svc := newServiceForTest(likeStore, &matchStoreStub{}, &rejectedStoreStub{})
	ctx := context.Background()

	if err := svc.Like(ctx, 1, 2, "hey"); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := svc.Like(ctx, 1, 2, "hey again"); err != nil {
		t.Fatalf("re-like: %v", err)
	}

	if got := likeStore.likes[[2]int64{1, 2}]; got != "hey again" {
		t.Fatalf("expected replaced message, got %q", got)
	}
}

func TestLikeRejectsSelf(t *testing.T) {
	svc := newServiceForTest(newLikeStoreStub(), &matchStoreStub{}, &rejectedStoreStub{})

	if err := svc.Like(context.Background(), 1, 1, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRespondMatchConsumesLike(t *testing.T) {
	likeStore := newLikeStoreStub()
	likeStore.likes[[2]int64{2, 1}] = "hi"
	matchStore := &matchStoreStub{}
	svc := newServiceForTest(likeStore, matchStore, &rejectedStoreStub{})

	result, err := svc.Respond(context.Background(), 1, 2, "match")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if !result.Matched {
		t.Fatalf("expected a match")
	}
	if len(matchStore.created) != 1 {
		t.Fatalf("expected one match created, got %d", len(matchStore.created))
	}
	if _, still := likeStore.likes[[2]int64{2, 1}]; still {
		t.Fatalf("pending like should be consumed")
	}
}

func TestRespondPassRecordsRejection(t *testing.T) {
	likeStore := newLikeStoreStub()
	likeStore.likes[[2]int64{2, 1}] = ""
	rejectedStore := &rejectedStoreStub{}
	matchStore := &matchStoreStub{}
	svc := newServiceForTest(likeStore, matchStore, rejectedStore)

	result, err := svc.Respond(context.Background(), 1, 2, "pass")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if result.Matched {
		t.Fatalf("pass must not create a match")
	}
	if len(matchStore.created) != 0 {
		t.Fatalf("pass must not touch the match store")
	}
	if len(rejectedStore.rejected) != 1 || rejectedStore.rejected[0] != [2]int64{2, 1} {
		t.Fatalf("expected rejection (2,1), got %v", rejectedStore.rejected)
	}
	if _, still := likeStore.likes[[2]int64{2, 1}]; still {
		t.Fatalf("pending like should be consumed")
	}
}

func TestRespondWithoutPendingLike(t *testing.T) {
	svc := newServiceForTest(newLikeStoreStub(), &matchStoreStub{}, &rejectedStoreStub{})

	if _, err := svc.Respond(context.Background(), 1, 2, "match"); !errors.Is(err, ErrLikeNotFound) {
		t.Fatalf("expected ErrLikeNotFound, got %v", err)
	}
}

func TestRespondUnsupportedAction(t *testing.T) {
	likeStore := newLikeStoreStub()
	likeStore.likes[[2]int64{2, 1}] = ""
	svc := newServiceForTest(likeStore, &matchStoreStub{}, &rejectedStoreStub{})

	if _, err := svc.Respond(context.Background(), 1, 2, "superlike"); !errors.Is(err, ErrUnsupportedAction) {
		t.Fatalf("expected ErrUnsupportedAction, got %v", err)
	}
}

func TestIncomingMapsRecords(t *testing.T) {
	likeStore := newLikeStoreStub()
	likedAt := time.Date(2024, time.May, 20, 10, 0, 0, 0, time.UTC)
	likeStore.incoming = []pgrepo.IncomingLikeRecord{
		{LikerID: 5, FirstName: "Dana", Age: 29, Message: "hello", CreatedAt: likedAt},
	}
	svc := newServiceForTest(likeStore, &matchStoreStub{}, &rejectedStoreStub{})

	items, err := svc.Incoming(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("incoming: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one incoming like, got %d", len(items))
	}
	if items[0].LikerID != 5 || items[0].FirstName != "Dana" || items[0].Age != 29 {
		t.Fatalf("unexpected incoming like %+v", items[0])
	}
	if !items[0].CreatedAt.Equal(likedAt) {
		t.Fatalf("unexpected liked-at %v", items[0].CreatedAt)
	}
}
