package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/gov-dx-sandbox/member-service/v1/database"
	"github.com/gov-dx-sandbox/member-service/v1/models"
)

// Repository method names accepted by MockRepository.FailOn
const (
	OpSave       = "Save"
	OpFindByID   = "FindByID"
	OpExistsByID = "ExistsByID"
	OpDeleteByID = "DeleteByID"
	OpFindAll    = "FindAll"
	OpPing       = "Ping"
)

// MockRepository is an in-memory database.MemberRepository for tests.
// Transactions restore the previous contents when fn fails.
type MockRepository struct {
	mu      sync.Mutex
	txMu    sync.Mutex
	members map[int64]models.Member
	nextID  int64
	failOn  map[string]error
}

var _ database.MemberRepository = (*MockRepository)(nil)

// NewMockRepository creates an empty MockRepository
func NewMockRepository() *MockRepository {
	return &MockRepository{
		members: make(map[int64]models.Member),
		nextID:  1,
		failOn:  make(map[string]error),
	}
}

// FailOn makes every later call to op return err
func (m *MockRepository) FailOn(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failOn[op] = err
}

// Seed stores members as-is, advancing the id sequence past them
func (m *MockRepository) Seed(members ...models.Member) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, member := range members {
		m.members[member.ID] = member
		if member.ID >= m.nextID {
			m.nextID = member.ID + 1
		}
	}
}

// Len returns the number of stored members
func (m *MockRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.members)
}

func (m *MockRepository) Save(ctx context.Context, member *models.Member) (*models.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failOn[OpSave]; err != nil {
		return nil, err
	}
	if member.ID == 0 {
		member.ID = m.nextID
		m.nextID++
	} else if _, ok := m.members[member.ID]; !ok {
		return nil, models.NewMemberNotFoundError(member.ID)
	}
	m.members[member.ID] = *member
	return member, nil
}

func (m *MockRepository) FindByID(ctx context.Context, id int64) (models.Member, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failOn[OpFindByID]; err != nil {
		return models.Member{}, false, err
	}
	member, ok := m.members[id]
	return member, ok, nil
}

func (m *MockRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failOn[OpExistsByID]; err != nil {
		return false, err
	}
	_, ok := m.members[id]
	return ok, nil
}

func (m *MockRepository) DeleteByID(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failOn[OpDeleteByID]; err != nil {
		return err
	}
	delete(m.members, id)
	return nil
}

func (m *MockRepository) FindAll(ctx context.Context) ([]models.Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failOn[OpFindAll]; err != nil {
		return nil, err
	}
	members := make([]models.Member, 0, len(m.members))
	for _, member := range m.members {
		members = append(members, member)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

func (m *MockRepository) Transaction(ctx context.Context, fn func(repo database.MemberRepository) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	snapshot := make(map[int64]models.Member, len(m.members))
	for id, member := range m.members {
		snapshot[id] = member
	}
	nextID := m.nextID
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.members = snapshot
		m.nextID = nextID
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *MockRepository) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failOn[OpPing]
}
