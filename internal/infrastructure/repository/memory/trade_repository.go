package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riftlabs/fantasy-esports/internal/domain/trade"
)

type TradeRepository struct {
	mu    sync.RWMutex
	items map[string]trade.Trade
}

func NewTradeRepository() *TradeRepository {
	return &TradeRepository{items: make(map[string]trade.Trade)}
}

func (r *TradeRepository) GetByID(_ context.Context, id string) (trade.Trade, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return trade.Trade{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *TradeRepository) ListByTeam(_ context.Context, teamID string) ([]trade.Trade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]trade.Trade, 0, len(r.items))
	for _, item := range r.items {
		if item.ProposingTeamID == teamID || item.ReceivingTeamID == teamID {
			out = append(out, item.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *TradeRepository) Create(_ context.Context, item trade.Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item.Clone()
	return nil
}

func (r *TradeRepository) Update(_ context.Context, item trade.Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ID] = item.Clone()
	return nil
}
