package usecase

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/your-org/estate-admin/internal/listing/domain"
	"github.com/your-org/estate-admin/internal/listing/form"
	"github.com/your-org/estate-admin/internal/platform/logger"
)

// DraftUsecase keeps the live draft stores, one per started form.
type DraftUsecase struct {
	mu     sync.Mutex
	drafts map[string]*form.Store
	logger *logger.Logger
}

func NewDraftUsecase(log *logger.Logger) *DraftUsecase {
	return &DraftUsecase{
		drafts: make(map[string]*form.Store),
		logger: log,
	}
}

// Create opens a fresh empty draft and returns its id.
func (uc *DraftUsecase) Create() string {
	id := uuid.NewString()

	uc.mu.Lock()
	uc.drafts[id] = form.NewStore()
	uc.mu.Unlock()

	uc.logger.Info("DraftUsecase.Create: opened new draft", "draft_id", id)
	return id
}

func (uc *DraftUsecase) Get(id string) (*form.Store, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	store, ok := uc.drafts[id]
	if !ok {
		return nil, fmt.Errorf("draft %q: %w", id, domain.ErrDraftNotFound)
	}
	return store, nil
}

// Discard drops the draft entirely, staged files included.
func (uc *DraftUsecase) Discard(id string) {
	uc.mu.Lock()
	delete(uc.drafts, id)
	uc.mu.Unlock()

	uc.logger.Info("DraftUsecase.Discard: dropped draft", "draft_id", id)
}
