package services

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/princeprakhar/device-catalog/internal/models"
	"github.com/princeprakhar/device-catalog/internal/store"
	"github.com/princeprakhar/device-catalog/internal/types"
	"github.com/princeprakhar/device-catalog/internal/utils"
	"github.com/princeprakhar/device-catalog/pkg/logger"
)

// FeedbackService manages the comments and ratings attached to devices.
type FeedbackService struct {
	store store.Store
}

func NewFeedbackService(s store.Store) *FeedbackService {
	return &FeedbackService{store: s}
}

func (s *FeedbackService) requireDevice(ctx context.Context, deviceID string) error {
	_, err := s.store.Get(ctx, models.DeviceKey(deviceID))
	if errors.Is(err, store.ErrNotFound) {
		return models.NewNotFoundError("Phone")
	}
	return err
}

func listOf[T any](ctx context.Context, s store.Store, key string) ([]T, error) {
	list, err := store.GetJSON[[]T](ctx, s, key)
	if errors.Is(err, store.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

// Comments returns the comments of a device, newest first.
func (s *FeedbackService) Comments(ctx context.Context, deviceID string) ([]models.Comment, error) {
	return listOf[models.Comment](ctx, s.store, models.CommentsKey(deviceID))
}

// AddComment prepends a comment, keeping at most MaxComments.
func (s *FeedbackService) AddComment(ctx context.Context, deviceID string, author *Principal, message string) (*models.Comment, error) {
	if author.IsBanned() {
		return nil, models.NewForbiddenError("User is banned")
	}
	message = utils.SanitizeString(message)
	if message == "" {
		return nil, models.NewBadRequestError("Message required")
	}
	if utf8.RuneCountInString(message) > models.MaxCommentLength {
		return nil, models.NewBadRequestError("Message too long")
	}
	if err := s.requireDevice(ctx, deviceID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		UserID:    author.ID,
		Name:      author.DisplayName(),
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	err := store.UpdateJSON(ctx, s.store, models.CommentsKey(deviceID), func(cur []models.Comment, _ bool) ([]models.Comment, error) {
		next := append([]models.Comment{comment}, cur...)
		if len(next) > models.MaxComments {
			next = next[:models.MaxComments]
		}
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes one comment. Unknown ids are a no-op.
func (s *FeedbackService) DeleteComment(ctx context.Context, deviceID, commentID string) error {
	err := store.UpdateJSON(ctx, s.store, models.CommentsKey(deviceID), func(cur []models.Comment, exists bool) ([]models.Comment, error) {
		if !exists {
			return nil, store.ErrSkip
		}
		next := make([]models.Comment, 0, len(cur))
		for _, c := range cur {
			if c.ID != commentID {
				next = append(next, c)
			}
		}
		return next, nil
	})
	if err != nil {
		return err
	}
	logger.WithFields(map[string]interface{}{"device_id": deviceID, "comment_id": commentID}).Info("Comment deleted")
	return nil
}

// ParseScore reads a submitted score from a JSON number or numeric string.
func ParseScore(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func summarizeRatings(list []models.Rating) types.RatingSummary {
	if len(list) == 0 {
		return types.RatingSummary{}
	}
	total := 0
	for _, r := range list {
		total += r.Score
	}
	avg := float64(total) / float64(len(list))
	return types.RatingSummary{
		Average: math.Round(avg*10) / 10,
		Count:   len(list),
	}
}

func (s *FeedbackService) Ratings(ctx context.Context, deviceID string) (types.RatingSummary, error) {
	list, err := listOf[models.Rating](ctx, s.store, models.RatingsKey(deviceID))
	if err != nil {
		return types.RatingSummary{}, err
	}
	return summarizeRatings(list), nil
}

func (s *FeedbackService) MyRating(ctx context.Context, deviceID, userID string) (types.MyRating, error) {
	list, err := listOf[models.Rating](ctx, s.store, models.RatingsKey(deviceID))
	if err != nil {
		return types.MyRating{}, err
	}
	for _, r := range list {
		if r.UserID == userID {
			score := r.Score
			return types.MyRating{Score: &score}, nil
		}
	}
	return types.MyRating{}, nil
}

// Rate records the caller's one rating of a device. A second rating by the
// same user is a conflict and leaves the list untouched.
func (s *FeedbackService) Rate(ctx context.Context, deviceID string, rater *Principal, raw any) (*types.RatingResult, error) {
	if rater.IsBanned() {
		return nil, models.NewForbiddenError("User is banned")
	}
	value, ok := ParseScore(raw)
	if !ok {
		return nil, models.NewBadRequestError("Score required")
	}
	if err := s.requireDevice(ctx, deviceID); err != nil {
		return nil, err
	}

	rating := models.Rating{
		UserID:    rater.ID,
		Score:     utils.ClampScore(value),
		CreatedAt: time.Now().UTC(),
	}
	var summary types.RatingSummary
	err := store.UpdateJSON(ctx, s.store, models.RatingsKey(deviceID), func(cur []models.Rating, _ bool) ([]models.Rating, error) {
		for _, r := range cur {
			if r.UserID == rater.ID {
				return nil, models.NewConflictError("Already rated")
			}
		}
		next := append([]models.Rating{rating}, cur...)
		if len(next) > models.MaxRatings {
			next = next[:models.MaxRatings]
		}
		summary = summarizeRatings(next)
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return &types.RatingResult{Average: summary.Average, Count: summary.Count, Score: rating.Score}, nil
}
