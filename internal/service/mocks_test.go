package service

import (
	"context"

	"github.com/crewly/api/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockUserRepo struct {
	createFunc        func(ctx context.Context, user *model.User) error
	getByIDFunc       func(ctx context.Context, id string) (*model.User, error)
	getByEmailFunc    func(ctx context.Context, email string) (*model.User, error)
	getByUsernameFunc func(ctx context.Context, username string) (*model.User, error)
	listFunc          func(ctx context.Context) ([]*model.User, error)
	updateFunc        func(ctx context.Context, user *model.User) error
	deleteFunc        func(ctx context.Context, id string) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFunc != nil {
		return m.getByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]*model.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockEventRepo struct {
	createWithOrganizerFunc func(ctx context.Context, event *model.Event, organizerID string) error
	getByIDFunc             func(ctx context.Context, id string) (*model.Event, error)
	listFunc                func(ctx context.Context) ([]*model.Event, error)
	listOrganizedFunc       func(ctx context.Context, userID string) ([]*model.OrganizedEvent, error)
	updateFunc              func(ctx context.Context, event *model.Event) error
	deleteFunc              func(ctx context.Context, id string) error
}

func (m *mockEventRepo) CreateWithOrganizer(ctx context.Context, event *model.Event, organizerID string) error {
	if m.createWithOrganizerFunc != nil {
		return m.createWithOrganizerFunc(ctx, event, organizerID)
	}
	return nil
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockEventRepo) List(ctx context.Context) ([]*model.Event, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

func (m *mockEventRepo) ListOrganizedByUser(ctx context.Context, userID string) ([]*model.OrganizedEvent, error) {
	if m.listOrganizedFunc != nil {
		return m.listOrganizedFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockEventRepo) Update(ctx context.Context, event *model.Event) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, event)
	}
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockTeamRepo struct {
	createFunc             func(ctx context.Context, team *model.Team) error
	getByIDFunc            func(ctx context.Context, id string) (*model.Team, error)
	getMembershipFunc      func(ctx context.Context, userID, eventID string) (*model.Team, error)
	listByEventFunc        func(ctx context.Context, eventID string) ([]*model.Team, error)
	listPendingForUserFunc func(ctx context.Context, userID string) ([]*model.Team, error)
	updateFunc             func(ctx context.Context, team *model.Team) error
	deleteFunc             func(ctx context.Context, id string) error
}

func (m *mockTeamRepo) Create(ctx context.Context, team *model.Team) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, team)
	}
	return nil
}

func (m *mockTeamRepo) GetByID(ctx context.Context, id string) (*model.Team, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTeamRepo) GetMembership(ctx context.Context, userID, eventID string) (*model.Team, error) {
	if m.getMembershipFunc != nil {
		return m.getMembershipFunc(ctx, userID, eventID)
	}
	return nil, nil
}

func (m *mockTeamRepo) ListByEvent(ctx context.Context, eventID string) ([]*model.Team, error) {
	if m.listByEventFunc != nil {
		return m.listByEventFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *mockTeamRepo) ListPendingForUser(ctx context.Context, userID string) ([]*model.Team, error) {
	if m.listPendingForUserFunc != nil {
		return m.listPendingForUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockTeamRepo) Update(ctx context.Context, team *model.Team) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, team)
	}
	return nil
}

func (m *mockTeamRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockTaskRepo struct {
	createFunc      func(ctx context.Context, task *model.Task) error
	getByIDFunc     func(ctx context.Context, id string) (*model.Task, error)
	listByEventFunc func(ctx context.Context, eventID string) ([]*model.Task, error)
	updateFunc      func(ctx context.Context, task *model.Task) error
	deleteFunc      func(ctx context.Context, id string) error
}

func (m *mockTaskRepo) Create(ctx context.Context, task *model.Task) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id string) (*model.Task, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTaskRepo) ListByEvent(ctx context.Context, eventID string) ([]*model.Task, error) {
	if m.listByEventFunc != nil {
		return m.listByEventFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *mockTaskRepo) Update(ctx context.Context, task *model.Task) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockBudgetRepo struct {
	createFunc      func(ctx context.Context, item *model.BudgetItem) error
	getByIDFunc     func(ctx context.Context, id string) (*model.BudgetItem, error)
	listByEventFunc func(ctx context.Context, eventID string) ([]*model.BudgetItem, error)
	updateFunc      func(ctx context.Context, item *model.BudgetItem) error
	deleteFunc      func(ctx context.Context, id string) error
}

func (m *mockBudgetRepo) Create(ctx context.Context, item *model.BudgetItem) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, item)
	}
	return nil
}

func (m *mockBudgetRepo) GetByID(ctx context.Context, id string) (*model.BudgetItem, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockBudgetRepo) ListByEvent(ctx context.Context, eventID string) ([]*model.BudgetItem, error) {
	if m.listByEventFunc != nil {
		return m.listByEventFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *mockBudgetRepo) Update(ctx context.Context, item *model.BudgetItem) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, item)
	}
	return nil
}

func (m *mockBudgetRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockTicketRepo struct {
	createFunc     func(ctx context.Context, ticket *model.Ticket) error
	getByIDFunc    func(ctx context.Context, id string) (*model.Ticket, error)
	listByUserFunc func(ctx context.Context, userID string) ([]*model.Ticket, error)
	deleteFunc     func(ctx context.Context, id string) error
}

func (m *mockTicketRepo) Create(ctx context.Context, ticket *model.Ticket) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, ticket)
	}
	return nil
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id string) (*model.Ticket, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTicketRepo) ListByUser(ctx context.Context, userID string) ([]*model.Ticket, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockTicketRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockMessageRepo struct {
	createFunc      func(ctx context.Context, message *model.Message) error
	getByIDFunc     func(ctx context.Context, id string) (*model.Message, error)
	listByEventFunc func(ctx context.Context, eventID string) ([]*model.Message, error)
	updateFunc      func(ctx context.Context, message *model.Message) error
	deleteFunc      func(ctx context.Context, id string) error
}

func (m *mockMessageRepo) Create(ctx context.Context, message *model.Message) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, message)
	}
	return nil
}

func (m *mockMessageRepo) GetByID(ctx context.Context, id string) (*model.Message, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockMessageRepo) ListByEvent(ctx context.Context, eventID string) ([]*model.Message, error) {
	if m.listByEventFunc != nil {
		return m.listByEventFunc(ctx, eventID)
	}
	return nil, nil
}

func (m *mockMessageRepo) Update(ctx context.Context, message *model.Message) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, message)
	}
	return nil
}

func (m *mockMessageRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockTokenRepo struct {
	createFunc        func(ctx context.Context, token *RefreshToken) error
	getByHashFunc     func(ctx context.Context, hash string) (*RefreshToken, error)
	revokeFunc        func(ctx context.Context, hash string) error
	revokeAllFunc     func(ctx context.Context, userID string) error
	deleteExpiredFunc func(ctx context.Context) error
}

func (m *mockTokenRepo) CreateRefreshToken(ctx context.Context, token *RefreshToken) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, token)
	}
	return nil
}

func (m *mockTokenRepo) GetRefreshTokenByHash(ctx context.Context, hash string) (*RefreshToken, error) {
	if m.getByHashFunc != nil {
		return m.getByHashFunc(ctx, hash)
	}
	return nil, nil
}

func (m *mockTokenRepo) RevokeRefreshToken(ctx context.Context, hash string) error {
	if m.revokeFunc != nil {
		return m.revokeFunc(ctx, hash)
	}
	return nil
}

func (m *mockTokenRepo) RevokeAllUserTokens(ctx context.Context, userID string) error {
	if m.revokeAllFunc != nil {
		return m.revokeAllFunc(ctx, userID)
	}
	return nil
}

func (m *mockTokenRepo) DeleteExpiredTokens(ctx context.Context) error {
	if m.deleteExpiredFunc != nil {
		return m.deleteExpiredFunc(ctx)
	}
	return nil
}

// ============================================================================
// Shared Fixtures
// ============================================================================

// membershipOf builds a resolver backed by a fixed set of team rows keyed
// by "userID|eventID"
func membershipOf(rows map[string]*model.Team) *MembershipResolver {
	repo := &mockTeamRepo{
		getMembershipFunc: func(ctx context.Context, userID, eventID string) (*model.Team, error) {
			return rows[userID+"|"+eventID], nil
		},
	}
	return NewMembershipResolver(repo)
}

func acceptedTeam(userID, eventID string, role model.TeamRole) *model.Team {
	return &model.Team{
		ID:               "team:" + userID + "-" + eventID,
		UserID:           userID,
		EventID:          eventID,
		Role:             role,
		InvitationStatus: true,
	}
}

func pendingTeam(userID, eventID string, role model.TeamRole) *model.Team {
	team := acceptedTeam(userID, eventID, role)
	team.InvitationStatus = false
	return team
}
