package application

import (
	"context"
	"crypto/rand"
	"math/big"
	mrand "math/rand"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kotobukicho/kotobuki/internal/domain/entity"
	"github.com/kotobukicho/kotobuki/internal/domain/repository"
	"github.com/kotobukicho/kotobuki/pkg/apperr"
	"github.com/kotobukicho/kotobuki/pkg/helpers"
)

const (
	cardIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	cardIDLength   = 6

	// recentHead is how many newest cards stay pinned in recency order at
	// the top of the listing; everything after them is reshuffled per call.
	recentHead = 3

	// createIDRetries bounds regeneration when a generated card id collides
	// with an existing row.
	createIDRetries = 5
)

var cardIDPattern = regexp.MustCompile(`^[0-9A-Z]{6}$`)

// GenerateCardID returns a 6-character public identifier drawn uniformly
// from [0-9A-Z].
func GenerateCardID() string {
	alphabetLen := big.NewInt(int64(len(cardIDAlphabet)))
	b := make([]byte, cardIDLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			panic(err)
		}
		b[i] = cardIDAlphabet[n.Int64()]
	}
	return string(b)
}

// CardService owns the card catalog: listing order, the public identifier
// scheme, and create/fetch/delete.
type CardService struct {
	Repo    repository.CardRepository
	Uploads *UploadService
	Queue   *helpers.RabbitPublisher // optional; nil means inline cleanup
	Logger  *logrus.Logger
}

func NewCardService(repo repository.CardRepository, uploads *UploadService, queue *helpers.RabbitPublisher, logger *logrus.Logger) *CardService {
	return &CardService{Repo: repo, Uploads: uploads, Queue: queue, Logger: logger}
}

// CreateCardInput carries the user-supplied card fields. CardID may be empty,
// in which case the catalog assigns one.
type CreateCardInput struct {
	UserID       string
	CardID       string
	Title        string
	Description  string
	Category     *string
	ImageURL     string
	MusicURL     *string
	MusicFileURL *string
}

// List returns every card with the newest three pinned first in recency
// order and the remainder shuffled on each call. The shuffle is recomputed
// per call and is deliberately not stable across reads.
func (s *CardService) List(ctx context.Context) ([]entity.Card, error) {
	cards, err := s.Repo.ListByCreatedDesc(ctx)
	if err != nil {
		return nil, err
	}
	if len(cards) > recentHead {
		rest := cards[recentHead:]
		mrand.Shuffle(len(rest), func(i, j int) {
			rest[i], rest[j] = rest[j], rest[i]
		})
	}
	return cards, nil
}

// Get fetches a card by its public identifier.
func (s *CardService) Get(ctx context.Context, cardID string) (*entity.Card, error) {
	return s.Repo.GetByCardID(ctx, cardID)
}

// Create persists a new card. The image must already be uploaded; if the
// insert fails the blob stays behind (accepted at-least-stored gap).
func (s *CardService) Create(ctx context.Context, in CreateCardInput) (*entity.Card, error) {
	if in.UserID == "" {
		return nil, apperr.New(apperr.KindValidation, "user id required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.New(apperr.KindValidation, "Title is required")
	}
	if in.ImageURL == "" {
		return nil, apperr.New(apperr.KindValidation, "Image is required")
	}

	supplied := in.CardID != ""
	if supplied && !cardIDPattern.MatchString(in.CardID) {
		return nil, apperr.New(apperr.KindValidation, "Invalid card id")
	}

	id := in.CardID
	if !supplied {
		id = GenerateCardID()
	}

	var lastErr error
	for attempt := 0; attempt < createIDRetries; attempt++ {
		c := &entity.Card{
			UserID:       in.UserID,
			CardID:       id,
			Title:        in.Title,
			Description:  in.Description,
			Category:     in.Category,
			ImageURL:     in.ImageURL,
			MusicURL:     in.MusicURL,
			MusicFileURL: in.MusicFileURL,
		}
		err := s.Repo.Create(ctx, c)
		if err == nil {
			return c, nil
		}
		if supplied || !apperr.Is(err, apperr.KindConflict) {
			return nil, err
		}
		// Generated id collided with an existing row; try a fresh one.
		s.Logger.WithField("card_id", id).Debug("card id collision, regenerating")
		lastErr = err
		id = GenerateCardID()
	}
	return nil, lastErr
}

// Delete removes a card by internal id, permitted only to its owner.
// Deleting an id that no longer exists is a no-op. Uploaded blobs the card
// referenced are cleaned up best-effort afterwards.
func (s *CardService) Delete(ctx context.Context, internalID, userID string) error {
	c, err := s.Repo.GetByID(ctx, internalID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil
		}
		return err
	}
	if c.UserID != userID {
		return apperr.New(apperr.KindForbidden, "Only the owner can delete a card")
	}
	if _, err := s.Repo.Delete(ctx, internalID); err != nil {
		return err
	}
	s.cleanupBlobs(ctx, c)
	return nil
}

// cleanupBlobs schedules or performs best-effort deletion of the uploaded
// assets a deleted card referenced. External music links are left alone.
func (s *CardService) cleanupBlobs(ctx context.Context, c *entity.Card) {
	urls := []string{c.ImageURL}
	if c.MusicFileURL != nil && *c.MusicFileURL != "" {
		urls = append(urls, *c.MusicFileURL)
	}
	if s.Queue != nil {
		err := s.Queue.PublishJSON(ctx, CleanupJob{URLs: urls})
		if err == nil {
			return
		}
		s.Logger.WithError(err).Warn("cleanup publish failed, deleting inline")
	}
	if s.Uploads == nil {
		return
	}
	for _, u := range urls {
		s.Uploads.RemoveByURL(ctx, u)
	}
}
