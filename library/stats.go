package library

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

const (
	searchNotFound     = "Not found or error"
	searchNetworkError = "Network error"
)

// StatsState is a snapshot of the statistics and search panel.
type StatsState struct {
	Name           string
	Borrowed       []TitleItem
	SearchError    string
	Statistic      []StatisticEntry
	DistinctTitles []TitleItem
}

// StatsPanel holds three independent result lists. Each list is only ever
// replaced by its own fetch.
type StatsPanel struct {
	mu      sync.Mutex
	backend Backend

	name      string
	borrowed  []TitleItem
	searchErr string
	searchSeq uint64
	statistic []StatisticEntry
	statSeq   uint64
	titles    []TitleItem
	titlesSeq uint64
}

func NewStatsPanel(backend Backend) *StatsPanel {
	return &StatsPanel{backend: backend}
}

func (p *StatsPanel) SetName(name string) {
	p.mu.Lock()
	p.name = name
	p.mu.Unlock()
}

func (p *StatsPanel) State() StatsState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return StatsState{
		Name:           p.name,
		Borrowed:       append([]TitleItem(nil), p.borrowed...),
		SearchError:    p.searchErr,
		Statistic:      append([]StatisticEntry(nil), p.statistic...),
		DistinctTitles: append([]TitleItem(nil), p.titles...),
	}
}

// SearchByName lists the books borrowed by the user with the current name.
// A refusal by the API and a failure to reach it are reported differently.
func (p *StatsPanel) SearchByName(ctx context.Context) error {
	p.mu.Lock()
	name := p.name
	if err := requireField("name", name); err != nil {
		p.mu.Unlock()
		return err
	}
	p.borrowed = nil
	p.searchErr = ""
	p.searchSeq++
	token := p.searchSeq
	p.mu.Unlock()

	items, err := p.backend.BorrowedByName(ctx, name)

	p.mu.Lock()
	defer p.mu.Unlock()
	if token != p.searchSeq {
		return ErrSuperseded
	}
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			p.searchErr = searchNotFound
		} else {
			p.searchErr = searchNetworkError
		}
		return fmt.Errorf("search borrowed books of %q: %w", name, err)
	}
	p.borrowed = items
	return nil
}

// FetchStatistic replaces the per-title borrow counts. A failed fetch leaves
// the list empty and sets no message.
func (p *StatsPanel) FetchStatistic(ctx context.Context) error {
	p.mu.Lock()
	p.statistic = nil
	p.statSeq++
	token := p.statSeq
	p.mu.Unlock()

	entries, err := p.backend.Statistic(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if token != p.statSeq {
		return ErrSuperseded
	}
	if err != nil {
		return fmt.Errorf("fetch statistic: %w", err)
	}
	p.statistic = entries
	return nil
}

// FetchDistinctTitles replaces the distinct borrowed titles, silently like
// FetchStatistic.
func (p *StatsPanel) FetchDistinctTitles(ctx context.Context) error {
	p.mu.Lock()
	p.titles = nil
	p.titlesSeq++
	token := p.titlesSeq
	p.mu.Unlock()

	items, err := p.backend.DistinctTitles(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if token != p.titlesSeq {
		return ErrSuperseded
	}
	if err != nil {
		return fmt.Errorf("fetch distinct titles: %w", err)
	}
	p.titles = items
	return nil
}
