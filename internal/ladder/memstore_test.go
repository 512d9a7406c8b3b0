package ladder

import (
	"context"
	"sort"
	"sync"
	"time"
)

// memStore is an in-memory Store used by the engine tests. It mimics
// database copy semantics: reads return copies, writes replace rows.
type memStore struct {
	mu         sync.Mutex
	pairs      map[int]Pair
	challenges map[int]Challenge
	nextID     int
}

func newMemStore() *memStore {
	return &memStore{
		pairs:      make(map[int]Pair),
		challenges: make(map[int]Challenge),
		nextID:     1,
	}
}

func (m *memStore) putPair(p Pair) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pairs[p.ID] = p
}

func (m *memStore) putChallenge(c Challenge) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == 0 {
		c.ID = m.nextID
		m.nextID++
	} else if c.ID >= m.nextID {
		m.nextID = c.ID + 1
	}
	m.challenges[c.ID] = c
}

func (m *memStore) PairByID(_ context.Context, id int) (*Pair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pairs[id]
	if !ok {
		return nil, ErrPairNotFound
	}
	clone := p
	return &clone, nil
}

func (m *memStore) ActivePairByPlayer(_ context.Context, playerID int) (*Pair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.pairs {
		if p.Active && p.HasPlayer(playerID) {
			clone := p
			return &clone, nil
		}
	}
	return nil, ErrNoActivePair
}

func (m *memStore) ActivePairsByGroup(_ context.Context, group string) ([]Pair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Pair
	for _, p := range m.pairs {
		if p.Active && p.Group == group {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := out[i].Position, out[j].Position
		if pi == nil || pj == nil {
			return out[i].ID < out[j].ID
		}
		return *pi < *pj
	})
	return out, nil
}

func (m *memStore) MaxActivePosition(_ context.Context, group string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	maxPos := 0
	for _, p := range m.pairs {
		if p.Active && p.Group == group && p.Position != nil && *p.Position > maxPos {
			maxPos = *p.Position
		}
	}
	return maxPos, nil
}

func (m *memStore) ChallengeByID(_ context.Context, id int) (*Challenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.challenges[id]
	if !ok {
		return nil, ErrChallengeNotFound
	}
	clone := c
	return &clone, nil
}

func (m *memStore) CreateChallenge(_ context.Context, c *Challenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.nextID
	m.nextID++
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.challenges[c.ID] = *c
	return nil
}

func (m *memStore) UpdateChallenge(_ context.Context, c *Challenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.challenges[c.ID]; !ok {
		return ErrChallengeNotFound
	}
	c.UpdatedAt = time.Now()
	m.challenges[c.ID] = *c
	return nil
}

func (m *memStore) ApplyResult(_ context.Context, c *Challenge, challenger, challenged *Pair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.challenges[c.ID]; !ok {
		return ErrChallengeNotFound
	}
	c.UpdatedAt = time.Now()
	m.challenges[c.ID] = *c
	m.pairs[challenger.ID] = *challenger
	m.pairs[challenged.ID] = *challenged
	return nil
}

func (m *memStore) ChallengesByStatus(_ context.Context, statuses ...string) ([]Challenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Challenge
	for _, c := range m.challenges {
		if containsStatus(statuses, c.Status) {
			out = append(out, c)
		}
	}
	sortByID(out)
	return out, nil
}

func (m *memStore) ChallengesByPair(_ context.Context, pairID int) ([]Challenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Challenge
	for _, c := range m.challenges {
		if c.HasPair(pairID) {
			out = append(out, c)
		}
	}
	sortByID(out)
	return out, nil
}

func (m *memStore) ChallengesByPlayer(_ context.Context, playerID int, statuses []string, since time.Time) ([]Challenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var pairIDs []int
	for _, p := range m.pairs {
		if p.HasPlayer(playerID) {
			pairIDs = append(pairIDs, p.ID)
		}
	}
	var out []Challenge
	for _, c := range m.challenges {
		participates := false
		for _, id := range pairIDs {
			if c.HasPair(id) {
				participates = true
				break
			}
		}
		if !participates {
			continue
		}
		if len(statuses) > 0 && !containsStatus(statuses, c.Status) {
			continue
		}
		if !since.IsZero() && c.Date.Before(since) {
			continue
		}
		out = append(out, c)
	}
	sortByID(out)
	return out, nil
}

func (m *memStore) CountWeekChallenges(_ context.Context, pairID int, weekStart, weekEnd Date, excludeID int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.challenges {
		if excludeID != 0 && c.ID == excludeID {
			continue
		}
		if !c.HasPair(pairID) || !containsStatus(ActiveStatuses, c.Status) {
			continue
		}
		if c.Date.Before(weekStart.Time) || !c.Date.Before(weekEnd.Time) {
			continue
		}
		n++
	}
	return n, nil
}

func (m *memStore) PendingCreatedBefore(_ context.Context, cutoff time.Time) ([]Challenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Challenge
	for _, c := range m.challenges {
		if c.Status == StatusPending && c.CreatedAt.Before(cutoff) {
			out = append(out, c)
		}
	}
	sortByID(out)
	return out, nil
}

func containsStatus(statuses []string, s string) bool {
	for _, v := range statuses {
		if v == s {
			return true
		}
	}
	return false
}

func sortByID(cs []Challenge) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].ID < cs[j].ID })
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

type notifyCall struct {
	playerIDs []int
	title     string
	body      string
	data      map[string]string
}

func (n *recordingNotifier) Notify(_ context.Context, playerIDs []int, title, body string, data map[string]string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifyCall{playerIDs: playerIDs, title: title, body: body, data: data})
}
