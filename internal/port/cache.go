package port

import (
	"context"

	"tabsplit/internal/domain"
)

// ReceiptCache caches extraction results keyed by a digest of the image
// source, so repeat parses of the same image skip the paid vision call.
// Implementations must treat every failure as a miss.
type ReceiptCache interface {
	Get(ctx context.Context, key string) (*domain.Receipt, bool)
	Set(ctx context.Context, key string, receipt *domain.Receipt)
}
