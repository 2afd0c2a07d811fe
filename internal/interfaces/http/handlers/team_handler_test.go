package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"projecthub.backend/internal/domain/entities"
	domainerrors "projecthub.backend/internal/domain/errors"
	"projecthub.backend/internal/interfaces/http/middleware"
	"projecthub.backend/internal/metrics"
	"projecthub.backend/internal/usecases"
)

type teamRepoStub struct {
	teams map[uuid.UUID]*entities.Team
	users map[uuid.UUID]*entities.User
}

func newTeamRepoStub() *teamRepoStub {
	return &teamRepoStub{
		teams: map[uuid.UUID]*entities.Team{},
		users: map[uuid.UUID]*entities.User{},
	}
}

func (s *teamRepoStub) Create(_ context.Context, team *entities.Team) error {
	s.teams[team.ID] = team
	return nil
}

func (s *teamRepoStub) GetByCode(_ context.Context, code string) (*entities.Team, error) {
	for _, team := range s.teams {
		if team.Code == code {
			return team, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *teamRepoStub) GetByProjectID(_ context.Context, projectID uuid.UUID) (*entities.Team, error) {
	for _, team := range s.teams {
		if team.Project != nil && team.Project.ID == projectID {
			return team, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *teamRepoStub) AddMember(_ context.Context, teamID, userID uuid.UUID, teamLeader int) error {
	team, ok := s.teams[teamID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if team.FindMember(userID) != nil {
		return domainerrors.ErrAlreadyExists
	}
	team.Members = append(team.Members, entities.Membership{
		ID:         uuid.New(),
		User:       s.users[userID],
		TeamLeader: teamLeader,
		JoinedAt:   time.Now(),
	})
	return nil
}

func (s *teamRepoStub) RemoveMember(_ context.Context, teamID, userID uuid.UUID) error {
	team, ok := s.teams[teamID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	for i := range team.Members {
		if team.Members[i].User != nil && team.Members[i].User.ID == userID {
			team.Members = append(team.Members[:i], team.Members[i+1:]...)
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

type userRepoStub struct {
	users map[uuid.UUID]*entities.User
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: map[uuid.UUID]*entities.User{}}
}

func (s *userRepoStub) Create(_ context.Context, user *entities.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *userRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return user, nil
}

func (s *userRepoStub) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

type uowStub struct{}

func (uowStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type teamFixture struct {
	teamRepo *teamRepoStub
	userRepo *userRepoStub
	router   *gin.Engine
	team     *entities.Team
	user     *entities.User
}

// identityAs simulates the auth middleware for a fixed caller.
func identityAs(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

func newTeamFixture(t *testing.T, authed bool) *teamFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	teamRepo := newTeamRepoStub()
	userRepo := newUserRepoStub()

	user := &entities.User{
		ID:    uuid.New(),
		Email: "alice@example.com",
		Name:  "Alice Nguyen",
		Role:  entities.RoleMember,
	}
	if err := userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	teamRepo.users[user.ID] = user

	team := &entities.Team{
		ID:   uuid.New(),
		Name: "Team Rocket",
		Code: "ABC123",
		Project: &entities.Project{
			ID:     uuid.New(),
			Code:   "P2026-01",
			Topic:  "Realtime dashboard",
			Status: entities.ProjectStatusActive,
		},
		Members: []entities.Membership{},
	}
	if err := teamRepo.Create(context.Background(), team); err != nil {
		t.Fatalf("seed team: %v", err)
	}

	usecase := usecases.NewTeamUsecase(teamRepo, userRepo, uowStub{})
	collector := metrics.NewCollector(prometheus.NewRegistry())
	h := NewTeamHandler(usecase, collector)

	r := gin.New()
	r.POST("/api/team/auto-join/:teamCode", h.AutoJoin)
	r.GET("/api/team/:projectId", h.GetTeamByProject)
	if authed {
		r.DELETE("/api/team/:projectId/members/:userId", identityAs(user.ID), h.LeaveTeam)
	} else {
		r.DELETE("/api/team/:projectId/members/:userId", h.LeaveTeam)
	}

	return &teamFixture{
		teamRepo: teamRepo,
		userRepo: userRepo,
		router:   r,
		team:     team,
		user:     user,
	}
}

func (f *teamFixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestTeamHandler_AutoJoinFlow(t *testing.T) {
	f := newTeamFixture(t, false)

	rec := f.do(http.MethodPost, "/api/team/auto-join/ABC123", map[string]any{
		"email": "  Alice@Example.COM ",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data entities.AutoJoinResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal auto-join response: %v", err)
	}
	if resp.Data.User == nil || resp.Data.User.Email != "alice@example.com" {
		t.Fatalf("unexpected user in response: %+v", resp.Data.User)
	}
	if resp.Data.Team == nil || len(resp.Data.Team.Members) != 1 {
		t.Fatalf("expected one membership, got %+v", resp.Data.Team)
	}
	if resp.Data.Team.Members[0].TeamLeader != entities.MemberRegular {
		t.Fatalf("auto-join must not grant leadership")
	}

	// Repeating the join is a conflict, not an idempotent success.
	rec = f.do(http.MethodPost, "/api/team/auto-join/ABC123", map[string]any{
		"email": "alice@example.com",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rec.Code, rec.Body.String())
	}
	var errBody struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if errBody.Message == "" {
		t.Fatalf("conflict response must carry a message")
	}
}

func TestTeamHandler_AutoJoinRejections(t *testing.T) {
	f := newTeamFixture(t, false)

	cases := []struct {
		name string
		code string
		body any
		want int
	}{
		{"unknown team code", "ZZZ999", map[string]any{"email": "alice@example.com"}, http.StatusNotFound},
		{"unregistered email", "ABC123", map[string]any{"email": "nobody@example.com"}, http.StatusNotFound},
		{"missing email", "ABC123", map[string]any{}, http.StatusBadRequest},
		{"malformed email", "ABC123", map[string]any{"email": "not-an-address"}, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.do(http.MethodPost, "/api/team/auto-join/"+tc.code, tc.body)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d body=%s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestTeamHandler_GetTeamByProject(t *testing.T) {
	f := newTeamFixture(t, false)

	rec := f.do(http.MethodGet, "/api/team/"+f.team.Project.ID.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data entities.Team `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal team response: %v", err)
	}
	if resp.Data.Code != "ABC123" {
		t.Fatalf("unexpected team code %q", resp.Data.Code)
	}
	if resp.Data.Members == nil {
		t.Fatalf("membership list must serialize as an array, not null")
	}

	rec = f.do(http.MethodGet, "/api/team/"+uuid.New().String(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown project, got %d", rec.Code)
	}

	rec = f.do(http.MethodGet, "/api/team/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed project ID, got %d", rec.Code)
	}
}

func TestTeamHandler_LeaveTeam(t *testing.T) {
	f := newTeamFixture(t, true)
	caller := f.user.ID

	if err := f.teamRepo.AddMember(context.Background(), f.team.ID, caller, entities.MemberLeader); err != nil {
		t.Fatalf("seed membership: %v", err)
	}

	projectID := f.team.Project.ID.String()

	// Removing someone else is forbidden even for a valid session.
	rec := f.do(http.MethodDelete, "/api/team/"+projectID+"/members/"+uuid.New().String(), nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = f.do(http.MethodDelete, "/api/team/"+projectID+"/members/"+caller.String(), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data entities.LeaveResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal leave response: %v", err)
	}
	if resp.Data.UserID != caller {
		t.Fatalf("acknowledgement names the wrong user: %s", resp.Data.UserID)
	}
	if !resp.Data.LeftLeaderless {
		t.Fatalf("sole leader leaving should flag the team as leaderless")
	}

	// The membership is gone; leaving again is a not-found, same as never
	// having been a member.
	rec = f.do(http.MethodDelete, "/api/team/"+projectID+"/members/"+caller.String(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on repeat leave, got %d", rec.Code)
	}
}

func TestTeamHandler_LeaveTeamRequiresIdentity(t *testing.T) {
	f := newTeamFixture(t, false)

	rec := f.do(http.MethodDelete, "/api/team/"+f.team.Project.ID.String()+"/members/"+f.user.ID.String(), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d body=%s", rec.Code, rec.Body.String())
	}
}
