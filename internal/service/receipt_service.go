package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/aidarkhanov/nanoid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tabsplit/internal/domain"
	"tabsplit/internal/metrics"
	"tabsplit/internal/port"
)

// ParseReceiptInput is the DTO for one receipt extraction turn. Exactly one
// image source must be set.
type ParseReceiptInput struct {
	ImageURL    string
	Base64Image string
}

// ParseReceiptResult is the outcome of one extraction turn.
type ParseReceiptResult struct {
	Receipt  *domain.Receipt
	Metadata domain.ResponseMetadata
}

// ReceiptService defines the receipt extraction contract.
type ReceiptService interface {
	Parse(ctx context.Context, input *ParseReceiptInput) (*ParseReceiptResult, error)
}

type receiptService struct {
	broker    port.ComputeBroker
	extractor port.ReceiptExtractor
	provider  string
	cache     port.ReceiptCache       // optional
	archive   port.ObjectStorage      // optional
	bucket    string
	turns     port.SplitTurnRepository // optional
	log       *zap.SugaredLogger
}

// NewReceiptService creates a new ReceiptService implementation. Cache,
// archive, and turn repository may be nil; the pipeline works without them.
func NewReceiptService(
	broker port.ComputeBroker,
	extractor port.ReceiptExtractor,
	provider string,
	cache port.ReceiptCache,
	archive port.ObjectStorage,
	bucket string,
	turns port.SplitTurnRepository,
	log *zap.SugaredLogger,
) ReceiptService {
	return &receiptService{
		broker:    broker,
		extractor: extractor,
		provider:  provider,
		cache:     cache,
		archive:   archive,
		bucket:    bucket,
		turns:     turns,
		log:       log,
	}
}

func (s *receiptService) Parse(ctx context.Context, input *ParseReceiptInput) (*ParseReceiptResult, error) {
	imageURL := strings.TrimSpace(input.ImageURL)
	base64Image := strings.TrimSpace(input.Base64Image)

	if imageURL == "" && base64Image == "" {
		return nil, domain.ErrMissingImageSource
	}
	if imageURL != "" && base64Image != "" {
		return nil, domain.ErrConflictingImage
	}

	source := imageURL
	if source == "" {
		source = base64Image
	}
	key := fingerprint(source)
	chatID := newChatID()

	if s.cache != nil {
		if receipt, ok := s.cache.Get(ctx, key); ok {
			metrics.CacheHits.WithLabelValues("hit").Inc()
			return &ParseReceiptResult{
				Receipt: receipt,
				Metadata: domain.ResponseMetadata{
					Model:    "cache",
					Provider: s.provider,
					IsValid:  true,
					ChatID:   chatID,
				},
			}, nil
		}
		metrics.CacheHits.WithLabelValues("miss").Inc()
	}

	headers, err := s.broker.RequestHeaders(ctx, s.provider, key)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	out, err := s.extractor.Extract(ctx, port.ExtractInput{
		ImageURL:    imageURL,
		Base64Image: base64Image,
		Headers:     headers,
	})
	if err != nil {
		metrics.InferenceCount.WithLabelValues("", "parse", "error").Inc()
		return nil, err
	}
	metrics.InferenceDuration.WithLabelValues(out.Model, "parse").Observe(time.Since(start).Seconds())
	metrics.InferenceCount.WithLabelValues(out.Model, "parse", "ok").Inc()

	isValid := s.settle(ctx, out.Content, out.ResponseID)

	if s.cache != nil {
		s.cache.Set(ctx, key, out.Receipt)
	}
	if s.archive != nil && base64Image != "" {
		s.archiveImage(ctx, chatID, base64Image)
	}
	s.recordTurn(ctx, domain.TurnKindParse, chatID, out.Model, isValid, false, out.Receipt)

	return &ParseReceiptResult{
		Receipt: out.Receipt,
		Metadata: domain.ResponseMetadata{
			Model:    out.Model,
			Provider: s.provider,
			IsValid:  isValid,
			ChatID:   chatID,
		},
	}, nil
}

// settle reports the response to the broker. Settlement failures degrade to
// isValid=false; they never fail the turn.
func (s *receiptService) settle(ctx context.Context, content, responseID string) bool {
	valid, err := s.broker.Settle(ctx, s.provider, content, responseID)
	if err != nil {
		s.log.Warnw("settlement check failed", "provider", s.provider, "error", err)
		metrics.SettlementResults.WithLabelValues(s.provider, "error").Inc()
		return false
	}
	if valid {
		metrics.SettlementResults.WithLabelValues(s.provider, "valid").Inc()
	} else {
		metrics.SettlementResults.WithLabelValues(s.provider, "invalid").Inc()
	}
	return valid
}

func (s *receiptService) archiveImage(ctx context.Context, chatID, base64Image string) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(base64Image, "data:image/jpeg;base64,"))
	if err != nil {
		s.log.Warnw("image archive skipped: bad base64", "chat_id", chatID, "error", err)
		return
	}
	_, err = s.archive.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         "receipts/" + chatID + ".jpg",
		Body:        bytes.NewReader(data),
		ContentType: "image/jpeg",
	})
	if err != nil {
		s.log.Warnw("image archive failed", "chat_id", chatID, "error", err)
	}
}

func (s *receiptService) recordTurn(ctx context.Context, kind domain.TurnKind, chatID, model string, isValid, refinement bool, payload any) {
	if s.turns == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		s.log.Warnw("turn record skipped", "chat_id", chatID, "error", err)
		return
	}
	turn := &domain.SplitTurn{
		ID:         uuid.New(),
		Kind:       kind,
		ChatID:     chatID,
		Model:      model,
		Provider:   s.provider,
		IsValid:    isValid,
		Payload:    raw,
		Refinement: refinement,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.turns.Create(ctx, turn); err != nil {
		s.log.Warnw("turn record failed", "chat_id", chatID, "error", err)
	}
}

const chatIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func newChatID() string {
	id, err := nanoid.Generate(chatIDAlphabet, 24)
	if err != nil {
		return "chat_" + uuid.New().String()
	}
	return "chat_" + id
}

// fingerprint derives a stable digest of a query or image source, used both
// as the cache key and as the broker's billing query seed.
func fingerprint(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}
